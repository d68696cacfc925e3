package ethereumlc

import "math/bits"

// SyncCommitteeSize is the fixed size of a beacon sync committee.
const SyncCommitteeSize = 512

// syncCommitteeSupermajorityNumerator/Denominator is the ⅔ supermajority
// the protocol requires of sync-committee participation, §4.1 step 4.
const (
	syncCommitteeSupermajorityNumerator   = 2
	syncCommitteeSupermajorityDenominator = 3
)

// CountParticipants counts the set bits in a SyncAggregate.bits bitfield
// (one bit per committee member, SyncCommitteeSize bits total).
func CountParticipants(bitfield []byte) int {
	count := 0
	for _, b := range bitfield {
		count += bits.OnesCount8(b)
	}
	return count
}

// HasSupermajorityParticipation reports whether the given participant
// count meets the ⅔ supermajority threshold over SyncCommitteeSize, §4.1
// step 4.
func HasSupermajorityParticipation(participants int) bool {
	return participants*syncCommitteeSupermajorityDenominator >= SyncCommitteeSize*syncCommitteeSupermajorityNumerator
}

// ParticipantPubkeys returns the subset of committee pubkeys whose bit is
// set in bitfield, the input FastAggregateVerify needs.
func ParticipantPubkeys(bitfield []byte, committeePubkeys [][]byte) [][]byte {
	out := make([][]byte, 0, len(committeePubkeys))
	for i, pk := range committeePubkeys {
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		if byteIdx >= len(bitfield) {
			break
		}
		if bitfield[byteIdx]&(1<<bitIdx) != 0 {
			out = append(out, pk)
		}
	}
	return out
}
