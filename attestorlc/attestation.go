package attestorlc

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
)

// PacketCompact is the lightweight packet digest an attestor signs over for
// a packet attestation: the hash of the packet's ICS-24 commitment path and
// its commitment hash. Including the path hash gives attestations
// replay-protection without a Merkle proof, grounded on
// original_source/packages/attestor/packet-membership/src/packet_commitments.rs.
type PacketCompact struct {
	Path       common.Hash
	Commitment common.Hash
}

// domain tags the two attested-data shapes §4.3 distinguishes, so the same
// digest can never be replayed across state and packet attestations.
const (
	domainState  byte = 0x01
	domainPacket byte = 0x02
)

// AttestedData is the payload an attestor signs over: either a state
// attestation (height, timestamp) or a packet attestation (height,
// [(path_hash, commitment_hash)]), §4.3.
type AttestedData interface {
	// AttestedHeight is the height this attestation is about.
	AttestedHeight() uint64
	// encode returns the canonical bytes signed over, tagged by domain so
	// the two attestation kinds never collide.
	encode() []byte
}

// StateAttestation attests to a consensus height's timestamp.
type StateAttestation struct {
	Height    uint64
	Timestamp uint64
}

func (s StateAttestation) AttestedHeight() uint64 { return s.Height }

func (s StateAttestation) encode() []byte {
	buf := make([]byte, 1+8+8)
	buf[0] = domainState
	binary.BigEndian.PutUint64(buf[1:9], s.Height)
	binary.BigEndian.PutUint64(buf[9:17], s.Timestamp)
	return buf
}

// PacketAttestation attests to the full set of (path, commitment) pairs
// committed as of a height.
type PacketAttestation struct {
	Height  uint64
	Packets []PacketCompact
}

func (p PacketAttestation) AttestedHeight() uint64 { return p.Height }

func (p PacketAttestation) encode() []byte {
	buf := make([]byte, 0, 1+8+len(p.Packets)*64)
	buf = append(buf, domainPacket)
	var heightBytes [8]byte
	binary.BigEndian.PutUint64(heightBytes[:], p.Height)
	buf = append(buf, heightBytes[:]...)
	for _, pk := range p.Packets {
		buf = append(buf, pk.Path.Bytes()...)
		buf = append(buf, pk.Commitment.Bytes()...)
	}
	return buf
}
