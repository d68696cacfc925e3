package tendermintlc

import (
	"bytes"
	"fmt"
	"time"

	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/cosmos/solidity-ibc-eureka/lightclient"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

// Header is the client message UpdateClient verifies: a signed header and
// the validator set that produced its commit, plus the trusted height this
// update is relative to, §4.2.
type Header struct {
	SignedHeader *cmttypes.SignedHeader
	ValidatorSet *cmttypes.ValidatorSet

	TrustedHeight types.Height
	// TrustedNextValidatorSet is required for a skipping update
	// (header.height > trusted.height+1): it must hash to the trusted
	// consensus state's next_validators_hash.
	TrustedNextValidatorSet *cmttypes.ValidatorSet
}

// VerifyAndApplyHeader runs the §4.2 adjacent-or-skipping verification
// algorithm and, on success, returns the new ClientState/ConsensusState. It
// is pure: callers persist the returned states themselves.
func VerifyAndApplyHeader(
	cs ClientState,
	trusted ConsensusState,
	header Header,
	now time.Time,
) (ClientState, ConsensusState, lightclient.UpdateResult, error) {
	var zero lightclient.UpdateResult

	// Step 1.
	if cs.IsFrozen {
		return cs, trusted, zero, ErrClientFrozen
	}

	sh := header.SignedHeader
	if sh == nil || sh.Header == nil || sh.Commit == nil {
		return cs, trusted, zero, fmt.Errorf("tendermintlc: signed header is incomplete")
	}

	// Step 1 (chain id).
	if sh.Header.ChainID != cs.ChainID {
		return cs, trusted, zero, fmt.Errorf("%w: client=%s header=%s", ErrChainIDMismatch, cs.ChainID, sh.Header.ChainID)
	}

	// Step 2 (trusting period).
	if now.Sub(trusted.Timestamp) >= cs.TrustingPeriod {
		return cs, trusted, zero, fmt.Errorf("%w: trusted_time=%s now=%s trusting_period=%s", ErrOutsideTrustingPeriod, trusted.Timestamp, now, cs.TrustingPeriod)
	}

	headerHeight := sh.Header.Height
	trustedHeight := int64(header.TrustedHeight.RevisionHeight)
	if headerHeight <= trustedHeight {
		return cs, trusted, zero, &HeightMismatchError{TrustedHeight: trustedHeight, HeaderHeight: headerHeight}
	}

	// Step 3/4: adjacent-or-skipping verification.
	if headerHeight == trustedHeight+1 {
		// Adjacent: the header's validator set must itself be the trusted
		// next validator set, and the commit must be a full (2/3+) commit.
		if !bytes.Equal(header.ValidatorSet.Hash(), trusted.NextValidatorsHash) {
			return cs, trusted, zero, ErrNextValidatorsHashMismatch
		}
		if err := header.ValidatorSet.VerifyCommitLight(cs.ChainID, sh.Commit.BlockID, headerHeight, sh.Commit); err != nil {
			return cs, trusted, zero, fmt.Errorf("%w: %v", ErrInvalidCommit, err)
		}
	} else {
		// Skipping: the trusted next validator set (at trusted_height+1)
		// must sign off on at least trust_level of its voting power for the
		// new header's commit.
		if header.TrustedNextValidatorSet == nil {
			return cs, trusted, zero, fmt.Errorf("tendermintlc: skipping update from height %d to %d requires the trusted next validator set", trustedHeight, headerHeight)
		}
		if !bytes.Equal(header.TrustedNextValidatorSet.Hash(), trusted.NextValidatorsHash) {
			return cs, trusted, zero, ErrNextValidatorsHashMismatch
		}
		if err := header.TrustedNextValidatorSet.VerifyCommitLightTrusting(cs.ChainID, sh.Commit, cs.TrustLevel); err != nil {
			return cs, trusted, zero, fmt.Errorf("%w: %v", ErrNotEnoughTrust, err)
		}
		// The full validator set supplied with the header must also match
		// what it claims to be the signer of this commit.
		if err := header.ValidatorSet.VerifyCommitLight(cs.ChainID, sh.Commit.BlockID, headerHeight, sh.Commit); err != nil {
			return cs, trusted, zero, fmt.Errorf("%w: %v", ErrInvalidCommit, err)
		}
	}

	// Step 5 (monotonic time, bounded clock drift).
	if !sh.Header.Time.After(trusted.Timestamp) {
		return cs, trusted, zero, ErrHeaderNotMoreRecent
	}
	if sh.Header.Time.After(now.Add(cs.MaxClockDrift)) {
		return cs, trusted, zero, ErrHeaderFromFuture
	}

	newConsensus := ConsensusState{
		Timestamp:          sh.Header.Time,
		Root:               []byte(sh.Header.AppHash),
		NextValidatorsHash: []byte(sh.Header.NextValidatorsHash),
	}

	newClientState := cs
	newHeight := types.NewHeight(cs.LatestHeight.RevisionNumber, uint64(headerHeight))
	if newHeight.GT(cs.LatestHeight) {
		newClientState.LatestHeight = newHeight
	}

	return newClientState, newConsensus, lightclient.UpdateResult{Outcome: lightclient.UpdateOutcomeUpdated, NewHeight: newHeight}, nil
}

// CheckMisbehaviour implements §4.2's misbehaviour rule: two headers at the
// same height with conflicting app hashes, or a monotonicity violation
// (earlier height with a later or equal timestamp), are misbehaviour.
func CheckMisbehaviour(h1Height, h2Height types.Height, h1, h2 ConsensusState) bool {
	if h1Height == h2Height {
		return !bytes.Equal(h1.Root, h2.Root)
	}
	lower, higher := h1, h2
	if h2Height.LT(h1Height) {
		lower, higher = h2, h1
	}
	return !higher.Timestamp.After(lower.Timestamp)
}

// Freeze marks a client state frozen at the height misbehaviour was
// detected, §4.2.
func Freeze(cs ClientState, at types.Height) ClientState {
	cs.IsFrozen = true
	cs.FrozenHeight = at
	return cs
}
