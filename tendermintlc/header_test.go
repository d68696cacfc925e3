package tendermintlc_test

import (
	"testing"
	"time"

	cmtmath "github.com/cometbft/cometbft/libs/math"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/stretchr/testify/require"

	"github.com/cosmos/solidity-ibc-eureka/tendermintlc"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

func testClientState() tendermintlc.ClientState {
	return tendermintlc.ClientState{
		ChainID:         "test-chain",
		TrustLevel:      cmtmath.Fraction{Numerator: 1, Denominator: 3},
		TrustingPeriod:  48 * time.Hour,
		UnbondingPeriod: 3 * 7 * 24 * time.Hour,
		MaxClockDrift:   10 * time.Second,
		LatestHeight:    types.NewHeight(0, 100),
	}
}

func TestVerifyAndApplyHeaderRejectsWhenFrozen(t *testing.T) {
	cs := testClientState()
	cs.IsFrozen = true
	_, _, _, err := tendermintlc.VerifyAndApplyHeader(cs, tendermintlc.ConsensusState{}, tendermintlc.Header{}, time.Now())
	require.ErrorIs(t, err, tendermintlc.ErrClientFrozen)
}

func TestVerifyAndApplyHeaderRejectsChainIDMismatch(t *testing.T) {
	cs := testClientState()
	header := tendermintlc.Header{
		SignedHeader: &cmttypes.SignedHeader{
			Header: &cmttypes.Header{ChainID: "wrong-chain", Height: 101, Time: time.Now()},
			Commit: &cmttypes.Commit{},
		},
	}
	trusted := tendermintlc.ConsensusState{Timestamp: time.Now().Add(-time.Hour)}
	_, _, _, err := tendermintlc.VerifyAndApplyHeader(cs, trusted, header, time.Now())
	require.ErrorIs(t, err, tendermintlc.ErrChainIDMismatch)
}

func TestVerifyAndApplyHeaderRejectsOutsideTrustingPeriod(t *testing.T) {
	cs := testClientState()
	header := tendermintlc.Header{
		SignedHeader: &cmttypes.SignedHeader{
			Header: &cmttypes.Header{ChainID: cs.ChainID, Height: 101, Time: time.Now()},
			Commit: &cmttypes.Commit{},
		},
	}
	trusted := tendermintlc.ConsensusState{Timestamp: time.Now().Add(-72 * time.Hour)}
	_, _, _, err := tendermintlc.VerifyAndApplyHeader(cs, trusted, header, time.Now())
	require.ErrorIs(t, err, tendermintlc.ErrOutsideTrustingPeriod)
}

func TestVerifyAndApplyHeaderRejectsNonIncreasingHeight(t *testing.T) {
	cs := testClientState()
	header := tendermintlc.Header{
		SignedHeader: &cmttypes.SignedHeader{
			Header: &cmttypes.Header{ChainID: cs.ChainID, Height: 100, Time: time.Now()},
			Commit: &cmttypes.Commit{},
		},
		TrustedHeight: cs.LatestHeight,
	}
	trusted := tendermintlc.ConsensusState{Timestamp: time.Now().Add(-time.Hour)}
	_, _, _, err := tendermintlc.VerifyAndApplyHeader(cs, trusted, header, time.Now())
	var heightErr *tendermintlc.HeightMismatchError
	require.ErrorAs(t, err, &heightErr)
}

func TestVerifyAndApplyHeaderRequiresTrustedNextValidatorSetWhenSkipping(t *testing.T) {
	cs := testClientState()
	valSet := mustValidatorSet(t, 1)
	header := tendermintlc.Header{
		SignedHeader: &cmttypes.SignedHeader{
			Header: &cmttypes.Header{ChainID: cs.ChainID, Height: 110, Time: time.Now()},
			Commit: &cmttypes.Commit{},
		},
		ValidatorSet: valSet,
	}
	trusted := tendermintlc.ConsensusState{Timestamp: time.Now().Add(-time.Hour), NextValidatorsHash: valSet.Hash()}
	_, _, _, err := tendermintlc.VerifyAndApplyHeader(cs, trusted, header, time.Now())
	require.Error(t, err)
}

func mustValidatorSet(t *testing.T, power int64) *cmttypes.ValidatorSet {
	t.Helper()
	priv := cmttypes.NewMockPV()
	pub, err := priv.GetPubKey()
	require.NoError(t, err)
	val := cmttypes.NewValidator(pub, power)
	return cmttypes.NewValidatorSet([]*cmttypes.Validator{val})
}

func TestCheckMisbehaviourDetectsConflictingRootsAtSameHeight(t *testing.T) {
	h := types.NewHeight(0, 100)
	a := tendermintlc.ConsensusState{Root: []byte("root-a")}
	b := tendermintlc.ConsensusState{Root: []byte("root-b")}
	require.True(t, tendermintlc.CheckMisbehaviour(h, h, a, b))

	c := tendermintlc.ConsensusState{Root: []byte("root-a")}
	require.False(t, tendermintlc.CheckMisbehaviour(h, h, a, c))
}

func TestCheckMisbehaviourDetectsMonotonicityViolation(t *testing.T) {
	now := time.Now()
	lowerHeight := types.NewHeight(0, 100)
	higherHeight := types.NewHeight(0, 101)
	lower := tendermintlc.ConsensusState{Timestamp: now}
	higher := tendermintlc.ConsensusState{Timestamp: now.Add(-time.Second)} // earlier time at a higher height

	require.True(t, tendermintlc.CheckMisbehaviour(lowerHeight, higherHeight, lower, higher))
}

func TestCheckMisbehaviourAcceptsConsistentHeaders(t *testing.T) {
	now := time.Now()
	lowerHeight := types.NewHeight(0, 100)
	higherHeight := types.NewHeight(0, 101)
	lower := tendermintlc.ConsensusState{Timestamp: now}
	higher := tendermintlc.ConsensusState{Timestamp: now.Add(time.Second)}

	require.False(t, tendermintlc.CheckMisbehaviour(lowerHeight, higherHeight, lower, higher))
}

func TestFreezeRecordsHeight(t *testing.T) {
	cs := testClientState()
	at := types.NewHeight(0, 150)
	frozen := tendermintlc.Freeze(cs, at)
	require.True(t, frozen.IsFrozen)
	require.Equal(t, at, frozen.FrozenHeight)
}
