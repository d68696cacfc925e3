package router

import "github.com/cosmos/solidity-ibc-eureka/ics24"

// Event is the common envelope for everything the router emits. Event
// names match the Solidity source's ICS26Router events (SendPacket,
// RecvPacket, WriteAcknowledgement, AckPacket, TimeoutPacket) so a relayer
// watching either chain recognizes the same vocabulary.
type Event struct {
	Name   string
	Packet ics24.Packet
	// Acknowledgement is populated for WriteAcknowledgement and AckPacket.
	Acknowledgement []byte
}

const (
	EventSendPacket           = "SendPacket"
	EventRecvPacket           = "RecvPacket"
	EventWriteAcknowledgement = "WriteAcknowledgement"
	EventAckPacket            = "AckPacket"
	EventTimeoutPacket        = "TimeoutPacket"
)

// EventSink receives every event a Router call emits. EventRecorder below
// is the implementation in this module; the relayer package does not
// implement EventSink (relayer.StartEventLoop reads router events from a
// channel instead).
type EventSink interface {
	Emit(Event)
}

// EventRecorder is a trivial EventSink that appends to a slice, used by
// router tests and by any caller that wants to inspect emitted events
// synchronously rather than subscribe to a host's log stream.
type EventRecorder struct {
	Events []Event
}

func (r *EventRecorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}
