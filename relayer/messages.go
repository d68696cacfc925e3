package relayer

import (
	"github.com/cosmos/solidity-ibc-eureka/ics24"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

// RecvMessage is the argument set for the counterparty's recv_packet call,
// §4.4.2.
type RecvMessage struct {
	Packet          ics24.Packet
	ProofCommitment []byte
	ProofHeight     types.Height
}

// TimeoutMessage is the argument set for the source chain's timeout_packet
// call, §4.4.4.
type TimeoutMessage struct {
	Packet       ics24.Packet
	ProofTimeout []byte
	ProofHeight  types.Height
}

// AckMessage is the argument set for the source chain's ack_packet call,
// §4.4.3.
type AckMessage struct {
	Packet          ics24.Packet
	Acknowledgement []byte
	ProofAcked      []byte
	ProofHeight     types.Height
}
