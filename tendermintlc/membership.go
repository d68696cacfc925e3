package tendermintlc

import (
	"fmt"

	ics23 "github.com/cosmos/ics23/go"
)

// MerkleProof is a two-segment ICS-23 proof chain: an inner proof of the
// key under an IBC module's store root, and an outer proof of that store
// root under the Tendermint app hash. §4.2's "two-segment merkle path
// (store-prefix, key)".
type MerkleProof struct {
	Inner *ics23.CommitmentProof
	Outer *ics23.CommitmentProof
}

// storeKey computes the outer proof's key: the IBC store's prefix under
// the multistore, the fixed "ibc" module store this system commits IBC
// records under.
var storeKey = []byte("ibc")

// VerifyMembership verifies that value is committed at key under appHash,
// via the two-segment ICS-23 proof chain: key/value under the module
// store root (IavlSpec), then the module store root under the app hash
// (TendermintSpec), §4.2.
func VerifyMembership(appHash []byte, proof MerkleProof, key []byte, value []byte) error {
	if proof.Inner == nil || proof.Outer == nil {
		return fmt.Errorf("tendermintlc: merkle proof missing a segment")
	}

	innerRoot, err := proof.Inner.Calculate()
	if err != nil {
		return fmt.Errorf("tendermintlc: inner proof root calculation failed: %w", err)
	}
	if !ics23.VerifyMembership(ics23.IavlSpec, innerRoot, proof.Inner, key, value) {
		return fmt.Errorf("tendermintlc: inner membership proof failed for key %x", key)
	}
	if !ics23.VerifyMembership(ics23.TendermintSpec, appHash, proof.Outer, storeKey, innerRoot) {
		return fmt.Errorf("tendermintlc: outer membership proof failed for store key %q", storeKey)
	}
	return nil
}

// VerifyNonMembership verifies that no value is committed at key under
// appHash: the inner segment is a non-membership proof (key absent from
// the module store), while the outer segment still proves the module
// store root itself is committed in the app hash.
func VerifyNonMembership(appHash []byte, proof MerkleProof, key []byte) error {
	if proof.Inner == nil || proof.Outer == nil {
		return fmt.Errorf("tendermintlc: merkle proof missing a segment")
	}

	innerRoot, err := proof.Inner.Calculate()
	if err != nil {
		return fmt.Errorf("tendermintlc: inner proof root calculation failed: %w", err)
	}
	if !ics23.VerifyNonMembership(ics23.IavlSpec, innerRoot, proof.Inner, key) {
		return fmt.Errorf("tendermintlc: inner non-membership proof failed for key %x", key)
	}
	if !ics23.VerifyMembership(ics23.TendermintSpec, appHash, proof.Outer, storeKey, innerRoot) {
		return fmt.Errorf("tendermintlc: outer membership proof failed for store key %q", storeKey)
	}
	return nil
}
