package ethereumlc

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/cosmos/solidity-ibc-eureka/types"
)

// ForkParameters carries the beacon-chain fork schedule and the
// generalized-index layout that changes across forks, so the verification
// code in update.go never hardcodes a fork-specific magic number (§4.1).
type ForkParameters struct {
	// CurrentFork is the name of the fork active at the client's latest
	// trusted slot ("deneb", "electra", ...).
	CurrentFork string
	// ExecutionPayloadGIndex is the generalized index of
	// BeaconBlockBody.execution_payload under the active fork.
	ExecutionPayloadGIndex uint64
	// FinalizedRootGIndex is the generalized index of
	// BeaconState.finalized_checkpoint.root under the active fork.
	FinalizedRootGIndex uint64
	// NextSyncCommitteeGIndex is the generalized index of
	// BeaconState.next_sync_committee under the active fork.
	NextSyncCommitteeGIndex uint64
	// HasBlobFields reports whether headers in this fork must carry
	// blob_gas_used / excess_blob_gas (Deneb+), §4.1 step 3.
	HasBlobFields bool
}

// ClientState is the Ethereum light client's per-client configuration and
// mutable frozen/latest-slot flags, §4.1.
type ClientState struct {
	ChainID                    string
	Fork                       ForkParameters
	SlotsPerEpoch              uint64
	EpochsPerSyncCommitteePeriod uint64
	SecondsPerSlot             uint64
	GenesisTime                uint64
	LatestSlot                 uint64
	IsFrozen                   bool
	// IBCCommitmentSlot is the EVM storage slot holding the IBC contract's
	// commitment-store root (an ERC-7201-style fixed slot).
	IBCCommitmentSlot common.Hash
	// IBCContractAddress is the address whose account proof is verified
	// against the execution state root.
	IBCContractAddress common.Address
}

// SyncCommitteePeriod returns floor(slot / (slots_per_epoch *
// epochs_per_sync_committee_period)), the period-numbering scheme §4.1
// step 5 operates on.
func (cs ClientState) SyncCommitteePeriod(slot uint64) uint64 {
	slotsPerPeriod := cs.SlotsPerEpoch * cs.EpochsPerSyncCommitteePeriod
	if slotsPerPeriod == 0 {
		return 0
	}
	return slot / slotsPerPeriod
}

// CurrentSlot returns the slot beacon genesis_time + slot*seconds_per_slot
// would put "now" at, used for the §4.1 step 2 "not from the future" check.
func (cs ClientState) CurrentSlot(nowUnixSeconds uint64) uint64 {
	if nowUnixSeconds <= cs.GenesisTime || cs.SecondsPerSlot == 0 {
		return 0
	}
	return (nowUnixSeconds - cs.GenesisTime) / cs.SecondsPerSlot
}

// ConsensusState is the per-height (per-slot) trusted snapshot, §4.1.
type ConsensusState struct {
	Slot      uint64
	StateRoot common.Hash
	// StorageRoot is the IBC contract's storage root as of this slot,
	// established by the account proof in update.go.
	StorageRoot common.Hash
	Timestamp   uint64

	// CurrentSyncCommitteeAggregatePubkey is the BLS12-381 aggregate
	// pubkey of the committee active starting at this slot's period.
	CurrentSyncCommitteeAggregatePubkey []byte // 48 bytes, compressed G1
	// NextSyncCommitteeAggregatePubkey is the next period's aggregate
	// pubkey, once known (nil until a LightClientUpdate reveals it).
	NextSyncCommitteeAggregatePubkey []byte

	// CurrentSyncCommitteePubkeys/NextSyncCommitteePubkeys hold each
	// member's individual compressed G1 pubkey. §3.4 describes
	// ConsensusState fields as "at minimum" the aggregate pubkeys; we also
	// keep the per-member list because FastAggregateVerify must be run
	// against only the participating subset of a period's committee, not
	// the whole-committee aggregate (see DESIGN.md for this Open Question
	// resolution).
	CurrentSyncCommitteePubkeys [][]byte
	NextSyncCommitteePubkeys    [][]byte
}

// Height returns the types.Height a ConsensusState is stored at: revision 0
// (Ethereum has no hard-fork revision bump) and the beacon slot.
func (cons ConsensusState) Height() types.Height {
	return types.NewHeight(0, cons.Slot)
}
