package tendermintlc_test

import (
	"testing"

	ics23 "github.com/cosmos/ics23/go"
	"github.com/stretchr/testify/require"

	"github.com/cosmos/solidity-ibc-eureka/tendermintlc"
)

func TestVerifyMembershipRejectsMissingSegments(t *testing.T) {
	err := tendermintlc.VerifyMembership([]byte("app-hash"), tendermintlc.MerkleProof{}, []byte("key"), []byte("value"))
	require.Error(t, err)
}

func TestVerifyNonMembershipRejectsMissingSegments(t *testing.T) {
	err := tendermintlc.VerifyNonMembership([]byte("app-hash"), tendermintlc.MerkleProof{}, []byte("key"))
	require.Error(t, err)
}

func TestVerifyMembershipRejectsEmptyExistenceProof(t *testing.T) {
	proof := tendermintlc.MerkleProof{
		Inner: &ics23.CommitmentProof{},
		Outer: &ics23.CommitmentProof{},
	}
	err := tendermintlc.VerifyMembership([]byte("app-hash"), proof, []byte("key"), []byte("value"))
	require.Error(t, err)
}
