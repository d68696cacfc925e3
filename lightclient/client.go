// Package lightclient defines the small capability interfaces every
// concrete light client (Ethereum, Tendermint, Attestor) and every host
// adapter implement, per the design note in spec §9: no inheritance
// hierarchy, just two narrow interfaces dispatched on via tagged variants.
package lightclient

import (
	"github.com/cosmos/solidity-ibc-eureka/types"
)

// Status is the result of a client's Status query, §6.4.
type Status int

const (
	// StatusActive means the client accepts updates and proofs.
	StatusActive Status = iota
	// StatusFrozen means the client detected misbehaviour and rejects all
	// further proofs.
	StatusFrozen
	// StatusExpired means the client's latest trusted state is older than
	// its trusting period.
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusFrozen:
		return "Frozen"
	case StatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// UpdateOutcome tags the result of UpdateClient, §6.4.
type UpdateOutcome int

const (
	// UpdateOutcomeUpdated means a new consensus state was stored.
	UpdateOutcomeUpdated UpdateOutcome = iota
	// UpdateOutcomeMisbehaviour means conflicting data was detected and the
	// client is now frozen.
	UpdateOutcomeMisbehaviour
	// UpdateOutcomeNoOp means the update carried nothing new (e.g. replay).
	UpdateOutcomeNoOp
)

// UpdateResult is the return value of UpdateClient.
type UpdateResult struct {
	Outcome UpdateOutcome
	// NewHeight is populated when Outcome == UpdateOutcomeUpdated.
	NewHeight types.Height
}

// LightClient is the capability surface the ICS-26 router invokes, §6.4.
// Every concrete client (ethereumlc, tendermintlc, attestorlc) implements
// this directly; the router holds a map of ClientId to LightClient and
// never type-switches on the concrete client.
type LightClient interface {
	// UpdateClient applies a client message (header, attestation, etc.),
	// returning whether it advanced the client, froze it, or was a no-op.
	UpdateClient(clientMessage any) (UpdateResult, error)

	// VerifyMembership checks that value is committed at path under the
	// consensus state at height, per the client's proof scheme.
	VerifyMembership(height types.Height, path []byte, value []byte, proof []byte) error

	// VerifyNonMembership checks that no value is committed at path under
	// the consensus state at height.
	VerifyNonMembership(height types.Height, path []byte, proof []byte) error

	// TimestampAtHeight returns the consensus timestamp at height, in
	// nanoseconds, §6.4.
	TimestampAtHeight(height types.Height) (uint64, error)

	// Status reports whether the client is active, frozen, or expired.
	Status() Status
}

// HostStore is the capability surface every host (Ethereum, Solana,
// CosmWasm) implements for the router and light clients to persist
// records, §9. Concrete adapters live under hostadapter/.
type HostStore interface {
	Get(key []byte) ([]byte, bool)
	Put(key []byte, value []byte)
	Delete(key []byte)
	// IterateByPrefix calls fn for every key with the given prefix, in
	// insertion order, until fn returns false.
	IterateByPrefix(prefix []byte, fn func(key, value []byte) bool)
}
