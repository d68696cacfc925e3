package tendermintlc

import (
	"errors"
	"fmt"
)

// Sentinel errors for the Tendermint light client, grounded on the
// ibc-rs/tendermint-light-client-verifier error surface the Solana
// update-client/misbehaviour programs wrap
// (original_source/packages/tendermint-light-client/update-client/src/solana.rs).
var (
	ErrClientFrozen         = errors.New("client is frozen")
	ErrChainIDMismatch      = errors.New("chain id mismatch")
	ErrOutsideTrustingPeriod = errors.New("header is outside the trusting period")
	ErrHeaderNotMoreRecent  = errors.New("header time must be strictly greater than trusted time")
	ErrHeaderFromFuture     = errors.New("header time is too far in the future")
	ErrNotEnoughTrust       = errors.New("not enough trusted voting power signed the commit")
	ErrInvalidCommit        = errors.New("commit does not verify against the validator set")
	ErrNextValidatorsHashMismatch = errors.New("trusted next validators hash does not match supplied validator set")
)

// HeightMismatchError reports a header whose height does not exceed the
// trusted height, which every update (adjacent or skipping) must satisfy.
type HeightMismatchError struct {
	TrustedHeight, HeaderHeight int64
}

func (e *HeightMismatchError) Error() string {
	return fmt.Sprintf("header height %d must be greater than trusted height %d", e.HeaderHeight, e.TrustedHeight)
}
