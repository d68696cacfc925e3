package ics24

import (
	"encoding/binary"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/cosmos/solidity-ibc-eureka/types"
)

// Path family tags, §3.3.
const (
	tagCommitment byte = 0x01
	tagReceipt    byte = 0x02
	tagAck        byte = 0x03

	// commitmentVersion prefixes both the packet-commitment and the
	// ack-commitment hash preimages.
	commitmentVersion byte = 0x02
)

// Hash256 is a raw 32-byte SHA-256 digest.
type Hash256 [32]byte

func sha256Sum(parts ...[]byte) Hash256 {
	h := sha256simd.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash256
	h.Sum(out[:0])
	return out
}

func beU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// CommitmentPath returns the ICS-24 path `src_client ‖ 0x01 ‖ seq_be_u64`
// under which the sender records a packet commitment.
func CommitmentPath(sourceClient types.ClientId, sequence uint64) []byte {
	return buildPath(sourceClient, tagCommitment, sequence)
}

// ReceiptPath returns the ICS-24 path `dst_client ‖ 0x02 ‖ seq_be_u64`
// recording exactly-once receipt of a packet.
func ReceiptPath(destClient types.ClientId, sequence uint64) []byte {
	return buildPath(destClient, tagReceipt, sequence)
}

// AckPath returns the ICS-24 path `dst_client ‖ 0x03 ‖ seq_be_u64` recording
// the application acknowledgement commitment.
func AckPath(destClient types.ClientId, sequence uint64) []byte {
	return buildPath(destClient, tagAck, sequence)
}

func buildPath(client types.ClientId, tag byte, sequence uint64) []byte {
	out := make([]byte, 0, len(client)+1+8)
	out = append(out, []byte(client)...)
	out = append(out, tag)
	out = append(out, beU64(sequence)...)
	return out
}

// payloadHash computes sha256(sha256(src_port) ‖ sha256(dst_port) ‖
// sha256(version) ‖ sha256(encoding) ‖ sha256(value)), §3.3.
func payloadHash(p Payload) Hash256 {
	srcPort := sha256Sum([]byte(p.SourcePort))
	dstPort := sha256Sum([]byte(p.DestPort))
	version := sha256Sum([]byte(p.Version))
	encoding := sha256Sum([]byte(p.Encoding))
	value := sha256Sum(p.Value)
	return sha256Sum(srcPort[:], dstPort[:], version[:], encoding[:], value[:])
}

// PacketCommitment computes the commitment hash for a packet:
//
//	sha256(0x02 ‖ sha256(dst_client) ‖ sha256(timeout_be_u64) ‖
//	       sha256(concat(sha256(payload_i))))
//
// §3.3. Payload order is significant and preserved (no re-ordering).
func PacketCommitment(p Packet) Hash256 {
	destClientHash := sha256Sum([]byte(p.DestClient))
	timeoutHash := sha256Sum(beU64(p.TimeoutTimestamp))

	concatenated := make([]byte, 0, len(p.Payloads)*32)
	for _, pl := range p.Payloads {
		ph := payloadHash(pl)
		concatenated = append(concatenated, ph[:]...)
	}
	payloadsHash := sha256Sum(concatenated)

	return sha256Sum([]byte{commitmentVersion}, destClientHash[:], timeoutHash[:], payloadsHash[:])
}

// AckCommitment computes sha256(0x02 ‖ concat(sha256(ack_i))) for a
// non-empty list of application acknowledgements, §3.3.
func AckCommitment(acks [][]byte) Hash256 {
	concatenated := make([]byte, 0, len(acks)*32)
	for _, ack := range acks {
		h := sha256Sum(ack)
		concatenated = append(concatenated, h[:]...)
	}
	return sha256Sum([]byte{commitmentVersion}, concatenated)
}

// universalErrorAckPreimage is the literal the universal error
// acknowledgement hashes, §3.3.
const universalErrorAckPreimage = "UNIVERSAL_ERROR_ACKNOWLEDGEMENT"

// UniversalErrorAcknowledgement is the constant sha256("UNIVERSAL_ERROR_ACKNOWLEDGEMENT").
var UniversalErrorAcknowledgement = sha256Sum([]byte(universalErrorAckPreimage))
