package ethereumlc

import (
	"errors"
	"fmt"
)

// Sentinel and structured errors, named to match both spec §6.6's
// normative error codes and the original Rust EthereumIBCError variants
// (original_source/packages/ethereum-light-client/src/error.rs).
var (
	ErrClientFrozen                  = errors.New("ClientFrozen")
	ErrEmptyPath                     = errors.New("IBC path is empty")
	ErrStorageProofDecode            = errors.New("unable to decode storage proof")
	ErrNotEnoughSignatures           = errors.New("NotEnoughSignatures")
	ErrFinalizedSlotIsGenesis        = errors.New("finalized slot cannot be the genesis slot")
	ErrExpectedCurrentSyncCommittee  = errors.New("expected current sync committee to be provided since update_period == store_period")
	ErrExpectedNextSyncCommittee     = errors.New("expected next sync committee to be provided since update_period > store_period")
	ErrInsufficientSyncCommittee     = errors.New("InsufficientSyncCommitteeParticipants")
	ErrInvalidSignaturePeriodExists  = errors.New("InvalidSignaturePeriodWhenNextSyncCommitteeExists")
	ErrInvalidSignaturePeriodAbsent  = errors.New("InvalidSignaturePeriodWhenNextSyncCommitteeDoesNotExist")
	ErrNextSyncCommitteeMismatch     = errors.New("NextSyncCommitteeMismatch")
)

// InvalidSlotsError reports a violation of
// signature_slot > attested_slot >= finalized_slot, §4.1 step 2.
type InvalidSlotsError struct {
	SignatureSlot, AttestedSlot, FinalizedSlot uint64
}

func (e *InvalidSlotsError) Error() string {
	return fmt.Sprintf(
		"invalid slots: signature_slot=%d attested_slot=%d finalized_slot=%d, require signature>attested>=finalized",
		e.SignatureSlot, e.AttestedSlot, e.FinalizedSlot,
	)
}

// UpdateMoreRecentThanCurrentSlotError reports an update whose attested
// slot (carried in UpdateSignatureSlot) is ahead of the verifier's notion
// of "now", §4.1 step 2.
type UpdateMoreRecentThanCurrentSlotError struct {
	CurrentSlot, UpdateSignatureSlot uint64
}

func (e *UpdateMoreRecentThanCurrentSlotError) Error() string {
	return fmt.Sprintf("update slot %d is more recent than the calculated current slot %d", e.UpdateSignatureSlot, e.CurrentSlot)
}

// FastAggregateVerifyError wraps a BLS aggregate-signature verification
// failure with the reason.
type FastAggregateVerifyError struct {
	Reason string
}

func (e *FastAggregateVerifyError) Error() string {
	return fmt.Sprintf("fast aggregate verify error: %s", e.Reason)
}
