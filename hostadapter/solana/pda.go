// Package solana adapts the router's keyed-record-store abstraction to
// Solana's program-derived-address (PDA) model: every ICS-24 path is
// deterministically mapped to a 32-byte account address under a fixed
// program id, the way the router program itself derives its client,
// sequence, and packet-commitment accounts.
package solana

import (
	"encoding/binary"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
)

// seedPacketRecord is the PDA seed prefix for every ICS-24 path record
// (commitment/receipt/ack); the path itself (already tagged by ics24) is
// appended as the second seed, mirroring RouterPacketCommitmentPDA's
// ("packet_commitment", clientID, sequenceBytes) seed layout collapsed to
// a single path seed since ics24 paths already encode client+tag+sequence.
var seedPacketRecord = []byte("ibc_record")

// Address derives the program-derived address a path's record lives at,
// panicking only on the ed25519-curve-point collision FindProgramAddress
// itself can hit (astronomically unlikely, and the reason Solana programs
// retry with successive bump seeds internally rather than surface it).
func Address(programID solanago.PublicKey, path []byte) solanago.PublicKey {
	addr, _, err := solanago.FindProgramAddress([][]byte{seedPacketRecord, path}, programID)
	if err != nil {
		panic(fmt.Sprintf("solana: failed to derive PDA for path %x: %v", path, err))
	}
	return addr
}

// NextSequenceSendAddress derives the PDA for a client's next-send-sequence
// counter account, mirroring RouterClientSequencePDA's ("client_sequence",
// clientID) seed layout.
func NextSequenceSendAddress(programID solanago.PublicKey, clientID string) solanago.PublicKey {
	addr, _, err := solanago.FindProgramAddress([][]byte{[]byte("client_sequence"), []byte(clientID)}, programID)
	if err != nil {
		panic(fmt.Sprintf("solana: failed to derive client-sequence PDA for %s: %v", clientID, err))
	}
	return addr
}

// ClientAddress derives the PDA a registered light client's state lives
// at, mirroring RouterClientPDA's ("client", clientID) seed layout.
func ClientAddress(programID solanago.PublicKey, clientID string) solanago.PublicKey {
	addr, _, err := solanago.FindProgramAddress([][]byte{[]byte("client"), []byte(clientID)}, programID)
	if err != nil {
		panic(fmt.Sprintf("solana: failed to derive client PDA for %s: %v", clientID, err))
	}
	return addr
}

// PacketCommitmentAddress derives the PDA a packet commitment lives at,
// mirroring RouterPacketCommitmentPDA's ("packet_commitment", clientID,
// sequence_le_u64) seed layout exactly, including Solana's little-endian
// account-seed convention (ICS-24 path hashing elsewhere in this module
// uses big-endian; PDA seeds are a host-local addressing concern, not part
// of the cross-chain-verified commitment, so the two need not agree).
func PacketCommitmentAddress(programID solanago.PublicKey, clientID string, sequence uint64) solanago.PublicKey {
	addr, _, err := solanago.FindProgramAddress(
		[][]byte{[]byte("packet_commitment"), []byte(clientID), leU64(sequence)},
		programID,
	)
	if err != nil {
		panic(fmt.Sprintf("solana: failed to derive packet-commitment PDA for %s seq %d: %v", clientID, sequence, err))
	}
	return addr
}

func leU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
