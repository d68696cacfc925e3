package ethereumlc

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cosmos/solidity-ibc-eureka/internal/merkle"
	"github.com/cosmos/solidity-ibc-eureka/lightclient"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

// BeaconBlockHeader is the SSZ beacon block header, tree-hashed to obtain
// the leaves this package's Merkle-branch checks operate over.
type BeaconBlockHeader struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    common.Hash
	StateRoot     common.Hash
	BodyRoot      common.Hash
}

// ExecutionPayloadHeader is the subset of the EL header the light client
// cares about: the state root it commits to, plus the Deneb+ blob fields
// that are only present from the Deneb fork onward (§4.1 step 3).
type ExecutionPayloadHeader struct {
	StateRoot       common.Hash
	BlockNumber     uint64
	Timestamp       uint64
	BlobGasUsed     *uint64 // nil pre-Deneb
	ExcessBlobGas   *uint64 // nil pre-Deneb
}

// LightClientHeader bundles a beacon header with its execution payload and
// the Merkle branch proving the execution payload's inclusion in the
// beacon block body, §4.1.
type LightClientHeader struct {
	Beacon             BeaconBlockHeader
	Execution          ExecutionPayloadHeader
	ExecutionBranch    merkle.Branch
}

// SyncAggregate is the sync committee's aggregate signature over an
// attested header's signing root, with a bitfield of which of the
// SyncCommitteeSize members participated.
type SyncAggregate struct {
	Bits      []byte // SyncCommitteeSize/8 bytes
	Signature []byte // 96-byte compressed G2 point
}

// NextSyncCommittee carries the next period's committee, revealed ahead of
// time so clients can verify its Merkle branch before it becomes active.
type NextSyncCommittee struct {
	Pubkeys         [][]byte // SyncCommitteeSize compressed G1 points
	AggregatePubkey []byte
	Branch          merkle.Branch
}

// LightClientUpdate is the client message the Ethereum light client's
// UpdateClient verifies, §4.1.
type LightClientUpdate struct {
	AttestedHeader    LightClientHeader
	NextSyncCommittee *NextSyncCommittee // optional
	FinalizedHeader   LightClientHeader
	FinalityBranch    merkle.Branch
	SyncAggregate     SyncAggregate
	SignatureSlot     uint64

	// AccountProof proves the IBC contract's storage root against the
	// execution state root chosen by VerifyAndApplyUpdate, §4.1 step 9.
	AccountProof [][]byte
}

// signingRoot returns the root the sync committee signs over: here, the
// attested beacon header's own tree-hash root, standing in for the
// fork-versioned signing-domain wrapper a full beacon implementation would
// apply.
func signingRoot(h BeaconBlockHeader) [32]byte {
	return beaconBlockHeaderRoot(h)
}

// isValidLightClientHeader checks §4.1 step 3: the execution payload
// hashes to the leaf at the fork's EXECUTION_PAYLOAD_INDEX under the
// beacon body root, and the Deneb blob fields are present iff the fork
// requires them.
func isValidLightClientHeader(h LightClientHeader, fork ForkParameters) error {
	if fork.HasBlobFields {
		if h.Execution.BlobGasUsed == nil || h.Execution.ExcessBlobGas == nil {
			return fmt.Errorf("header at slot %d missing required Deneb blob fields", h.Beacon.Slot)
		}
	} else if h.Execution.BlobGasUsed != nil || h.Execution.ExcessBlobGas != nil {
		return fmt.Errorf("header at slot %d carries Deneb blob fields before Deneb", h.Beacon.Slot)
	}

	leaf := executionPayloadHeaderRoot(h.Execution)
	depth := merkle.Depth(fork.ExecutionPayloadGIndex)
	branch := merkle.NormalizeBranch(h.ExecutionBranch, depth)
	return merkle.VerifyBranch(leaf, branch, depth, fork.ExecutionPayloadGIndex, merkle.Root(h.Beacon.BodyRoot))
}

// VerifyAndApplyUpdate runs the full §4.1 verification algorithm and, if it
// passes, computes the new ClientState/ConsensusState. It is pure: callers
// persist the returned states themselves.
func VerifyAndApplyUpdate(
	cs ClientState,
	trusted ConsensusState,
	update LightClientUpdate,
	nowUnixSeconds uint64,
) (ClientState, ConsensusState, lightclient.UpdateResult, error) {
	var zero lightclient.UpdateResult

	// Step 1.
	if cs.IsFrozen {
		return cs, trusted, zero, ErrClientFrozen
	}

	// Step 2.
	attestedSlot := update.AttestedHeader.Beacon.Slot
	finalizedSlot := update.FinalizedHeader.Beacon.Slot
	if !(update.SignatureSlot > attestedSlot && attestedSlot >= finalizedSlot) {
		return cs, trusted, zero, &InvalidSlotsError{
			SignatureSlot: update.SignatureSlot, AttestedSlot: attestedSlot, FinalizedSlot: finalizedSlot,
		}
	}
	currentSlot := cs.CurrentSlot(nowUnixSeconds)
	if attestedSlot > currentSlot {
		return cs, trusted, zero, &UpdateMoreRecentThanCurrentSlotError{CurrentSlot: currentSlot, UpdateSignatureSlot: attestedSlot}
	}

	// Step 3.
	if err := isValidLightClientHeader(update.AttestedHeader, cs.Fork); err != nil {
		return cs, trusted, zero, fmt.Errorf("attested header: %w", err)
	}
	if err := isValidLightClientHeader(update.FinalizedHeader, cs.Fork); err != nil {
		return cs, trusted, zero, fmt.Errorf("finalized header: %w", err)
	}

	// Step 4.
	participants := CountParticipants(update.SyncAggregate.Bits)
	if !HasSupermajorityParticipation(participants) {
		return cs, trusted, zero, fmt.Errorf("%w: %d of %d", ErrInsufficientSyncCommittee, participants, SyncCommitteeSize)
	}

	// Step 5.
	signaturePeriod := cs.SyncCommitteePeriod(update.SignatureSlot)
	storePeriod := cs.SyncCommitteePeriod(trusted.Slot)
	var activeCommittee [][]byte
	if trusted.NextSyncCommitteePubkeys == nil {
		if signaturePeriod != storePeriod {
			return cs, trusted, zero, fmt.Errorf("%w: signature_period=%d store_period=%d", ErrInvalidSignaturePeriodAbsent, signaturePeriod, storePeriod)
		}
		activeCommittee = trusted.CurrentSyncCommitteePubkeys
	} else {
		if signaturePeriod != storePeriod && signaturePeriod != storePeriod+1 {
			return cs, trusted, zero, fmt.Errorf("%w: signature_period=%d store_period=%d", ErrInvalidSignaturePeriodExists, signaturePeriod, storePeriod)
		}
		if signaturePeriod == storePeriod {
			activeCommittee = trusted.CurrentSyncCommitteePubkeys
		} else {
			activeCommittee = trusted.NextSyncCommitteePubkeys
		}
	}

	// Step 6.
	participantPubkeys := ParticipantPubkeys(update.SyncAggregate.Bits, activeCommittee)
	if len(participantPubkeys) == 0 {
		return cs, trusted, zero, ErrNotEnoughSignatures
	}
	root := signingRoot(update.AttestedHeader.Beacon)
	if err := FastAggregateVerify(participantPubkeys, root, update.SyncAggregate.Signature); err != nil {
		return cs, trusted, zero, err
	}

	// Step 7.
	finalizedLeaf := beaconBlockHeaderRoot(update.FinalizedHeader.Beacon)
	finalityDepth := merkle.Depth(cs.Fork.FinalizedRootGIndex)
	finalityBranch := merkle.NormalizeBranch(update.FinalityBranch, finalityDepth)
	if err := merkle.VerifyBranch(finalizedLeaf, finalityBranch, finalityDepth, cs.Fork.FinalizedRootGIndex, merkle.Root(update.AttestedHeader.Beacon.StateRoot)); err != nil {
		return cs, trusted, zero, fmt.Errorf("finality branch: %w", err)
	}

	// Step 8.
	if update.NextSyncCommittee != nil {
		leaf := syncCommitteeRoot(update.NextSyncCommittee.Pubkeys, update.NextSyncCommittee.AggregatePubkey)
		depth := merkle.Depth(cs.Fork.NextSyncCommitteeGIndex)
		branch := merkle.NormalizeBranch(update.NextSyncCommittee.Branch, depth)
		if err := merkle.VerifyBranch(leaf, branch, depth, cs.Fork.NextSyncCommitteeGIndex, merkle.Root(update.AttestedHeader.Beacon.StateRoot)); err != nil {
			return cs, trusted, zero, fmt.Errorf("next sync committee branch: %w", err)
		}
	}

	// Step 9.
	accountUpdate, err := VerifyAccountProof(update.FinalizedHeader.Execution.StateRoot, cs.IBCContractAddress, update.AccountProof)
	if err != nil {
		return cs, trusted, zero, fmt.Errorf("account proof: %w", err)
	}

	// State transition.
	finalizedPeriod := cs.SyncCommitteePeriod(finalizedSlot)
	newConsensus := trusted

	switch {
	case finalizedPeriod == storePeriod+1 && trusted.NextSyncCommitteePubkeys != nil:
		newConsensus.CurrentSyncCommitteePubkeys = trusted.NextSyncCommitteePubkeys
		newConsensus.CurrentSyncCommitteeAggregatePubkey = trusted.NextSyncCommitteeAggregatePubkey
		if update.NextSyncCommittee != nil {
			newConsensus.NextSyncCommitteePubkeys = update.NextSyncCommittee.Pubkeys
			newConsensus.NextSyncCommitteeAggregatePubkey = update.NextSyncCommittee.AggregatePubkey
		} else {
			newConsensus.NextSyncCommitteePubkeys = nil
			newConsensus.NextSyncCommitteeAggregatePubkey = nil
		}
	case trusted.NextSyncCommitteePubkeys == nil:
		if finalizedPeriod != storePeriod {
			return cs, trusted, zero, fmt.Errorf("%w: finalized_period=%d store_period=%d", ErrInvalidSignaturePeriodAbsent, finalizedPeriod, storePeriod)
		}
		if update.NextSyncCommittee != nil {
			newConsensus.NextSyncCommitteePubkeys = update.NextSyncCommittee.Pubkeys
			newConsensus.NextSyncCommitteeAggregatePubkey = update.NextSyncCommittee.AggregatePubkey
		}
	}

	outcome := lightclient.UpdateResult{Outcome: lightclient.UpdateOutcomeNoOp}
	if finalizedSlot > trusted.Slot {
		newConsensus.Slot = finalizedSlot
		newConsensus.StateRoot = update.FinalizedHeader.Execution.StateRoot
		newConsensus.StorageRoot = accountUpdate.StorageRoot
		newConsensus.Timestamp = cs.GenesisTime + finalizedSlot*cs.SecondsPerSlot
		outcome = lightclient.UpdateResult{Outcome: lightclient.UpdateOutcomeUpdated, NewHeight: types.NewHeight(0, finalizedSlot)}
	}

	newClientState := cs
	if finalizedSlot > cs.LatestSlot {
		newClientState.LatestSlot = finalizedSlot
	}

	return newClientState, newConsensus, outcome, nil
}

// CheckMisbehaviour implements §3.4/§4.1's misbehaviour rule: two
// ConsensusStates independently verified at the same slot with different
// payloads is misbehaviour, and the client must freeze.
func CheckMisbehaviour(existing, incoming ConsensusState) bool {
	if existing.Slot != incoming.Slot {
		return false
	}
	return existing.StateRoot != incoming.StateRoot || existing.StorageRoot != incoming.StorageRoot
}

// Freeze marks a client state frozen in response to detected misbehaviour.
func Freeze(cs ClientState) ClientState {
	cs.IsFrozen = true
	return cs
}
