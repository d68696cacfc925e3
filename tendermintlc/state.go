package tendermintlc

import (
	"time"

	cmtmath "github.com/cometbft/cometbft/libs/math"

	"github.com/cosmos/solidity-ibc-eureka/types"
)

// ClientState is the Tendermint light client's per-client configuration,
// mirroring the fields the Solana update-client/misbehaviour programs carry
// (original_source/packages/tendermint-light-client/update-client/src/solana.rs),
// §4.2.
type ClientState struct {
	ChainID string
	// TrustLevel is the fractional voting-power floor a skipping update must
	// clear, e.g. 1/3.
	TrustLevel cmtmath.Fraction

	TrustingPeriod  time.Duration
	UnbondingPeriod time.Duration
	MaxClockDrift   time.Duration

	LatestHeight types.Height

	// IsFrozen is set once misbehaviour has been detected; FrozenHeight
	// records the height at which the conflicting headers were observed.
	IsFrozen     bool
	FrozenHeight types.Height
}

// ConsensusState is the per-height trusted Tendermint snapshot, §4.2.
type ConsensusState struct {
	Timestamp time.Time
	// Root is the app hash committed to at this height, the ICS-23 root
	// membership/non-membership proofs verify against.
	Root []byte
	// NextValidatorsHash is the hash of the validator set that will sign
	// the next height's commit; adjacent/skipping verification checks a
	// header's validator set against this.
	NextValidatorsHash []byte
}
