// Package router implements the ICS-26 packet router state machine
// described in spec §4.4: send_packet, recv_packet, ack_packet, and
// timeout_packet, each atomic within one call (mirroring the single
// target-chain transaction boundary every host gives these operations).
package router

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cosmos/solidity-ibc-eureka/ics24"
	"github.com/cosmos/solidity-ibc-eureka/lightclient"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

const nextSequenceSendPrefix = "next_seq_send/"

// Router holds every piece of state one chain's ICS-26 deployment owns:
// the commitment/receipt/ack records (keyed by the ics24 paths), the
// per-source-client send sequence counter, the registered light clients,
// and the port -> application bindings.
type Router struct {
	store         lightclient.HostStore
	clients       map[types.ClientId]lightclient.LightClient
	counterparty  map[types.ClientId]types.ClientId
	ports         *PortRegistry
	sink          EventSink
	now           func() time.Time
}

// New constructs a Router. now defaults to time.Now when nil; tests
// typically pass a fixed clock.
func New(store lightclient.HostStore, ports *PortRegistry, sink EventSink, now func() time.Time) *Router {
	if now == nil {
		now = time.Now
	}
	return &Router{
		store:        store,
		clients:      make(map[types.ClientId]lightclient.LightClient),
		counterparty: make(map[types.ClientId]types.ClientId),
		ports:        ports,
		sink:         sink,
		now:          now,
	}
}

// RegisterClient binds a light client implementation to a client id and
// records its counterparty client id, mirroring the Solidity source's
// addClient(clientId, CounterpartyInfo) pairing — ICS-26 Eureka has no
// separate channel handshake; send_packet looks the counterparty up by
// clientId alone.
func (r *Router) RegisterClient(id types.ClientId, counterpartyId types.ClientId, client lightclient.LightClient) {
	r.clients[id] = client
	r.counterparty[id] = counterpartyId
}

func (r *Router) client(id types.ClientId) (lightclient.LightClient, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, &UnknownClientError{ClientId: id}
	}
	return c, nil
}

// requireActive returns ErrClientFrozen/ErrClientNotActive unless the
// client is Active, §4.4.5 ("new proofs against a frozen client error
// ClientFrozen").
func requireActive(client lightclient.LightClient) error {
	switch client.Status() {
	case lightclient.StatusActive:
		return nil
	case lightclient.StatusFrozen:
		return ErrClientFrozen
	default:
		return ErrClientNotActive
	}
}

func (r *Router) emit(name string, packet ics24.Packet, ack []byte) {
	if r.sink == nil {
		return
	}
	r.sink.Emit(Event{Name: name, Packet: packet, Acknowledgement: ack})
}

func nextSequenceSendKey(sourceClient types.ClientId) []byte {
	return append([]byte(nextSequenceSendPrefix), []byte(sourceClient)...)
}

func (r *Router) nextSequenceSend(sourceClient types.ClientId) uint64 {
	key := nextSequenceSendKey(sourceClient)
	raw, ok := r.store.Get(key)
	var seq uint64
	if ok && len(raw) == 8 {
		seq = binary.BigEndian.Uint64(raw)
	}
	seq++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	r.store.Put(key, buf)
	return seq
}

// SendPacket implements §4.4.1. It takes no caller or port argument and
// does not check that the caller is the application registered at each
// payload's SourcePort; the payload ports are only validated as
// identifiers.
func (r *Router) SendPacket(sourceClient types.ClientId, timeoutTimestamp uint64, payloads []ics24.Payload) (uint64, error) {
	client, err := r.client(sourceClient)
	if err != nil {
		return 0, err
	}
	if err := requireActive(client); err != nil {
		return 0, err
	}

	destClient, ok := r.counterparty[sourceClient]
	if !ok {
		return 0, &UnknownClientError{ClientId: sourceClient}
	}

	now := uint64(r.now().Unix())
	packet := ics24.Packet{
		SourceClient:     sourceClient,
		DestClient:       destClient,
		TimeoutTimestamp: timeoutTimestamp,
		Payloads:         payloads,
	}
	if err := packet.ValidateSend(now); err != nil {
		return 0, err
	}

	seq := r.nextSequenceSend(sourceClient)
	packet.Sequence = seq

	commitment := ics24.PacketCommitment(packet)
	path := ics24.CommitmentPath(sourceClient, seq)
	r.store.Put(path, commitment[:])

	r.emit(EventSendPacket, packet, nil)
	return seq, nil
}

// RecvPacket implements §4.4.2: the dest_client is the client the
// *receiving* chain holds for the counterparty (the one whose consensus
// state the commitment is proved against).
func (r *Router) RecvPacket(packet ics24.Packet, proofCommitment []byte, proofHeight types.Height, relayer []byte) error {
	now := uint64(r.now().Unix())
	if packet.TimeoutTimestamp <= now {
		return ErrPacketTimedOut
	}

	client, err := r.client(packet.DestClient)
	if err != nil {
		return err
	}
	if err := requireActive(client); err != nil {
		return err
	}

	receiptPath := ics24.ReceiptPath(packet.DestClient, packet.Sequence)
	if _, exists := r.store.Get(receiptPath); exists {
		// Duplicate recv: idempotent no-op success, §4.4.5 / §8.1.
		return nil
	}

	commitment := ics24.PacketCommitment(packet)
	commitmentPath := ics24.CommitmentPath(packet.SourceClient, packet.Sequence)
	if err := client.VerifyMembership(proofHeight, commitmentPath, commitment[:], proofCommitment); err != nil {
		return fmt.Errorf("%w: %v", ErrMembershipFailed, err)
	}

	r.store.Put(receiptPath, []byte{0x01})

	acks := make([][]byte, 0, len(packet.Payloads))
	for _, payload := range packet.Payloads {
		app, err := r.ports.lookup(types.PortId(payload.DestPort))
		if err != nil {
			return err
		}
		ack, err := app.OnRecvPacket(packet.SourceClient, packet.DestClient, packet.Sequence, payload, relayer)
		if err != nil {
			acks = append(acks, ics24.UniversalErrorAcknowledgement[:])
			continue
		}
		if ack == nil {
			// Async ack: the app will write it later out of band.
			continue
		}
		acks = append(acks, ack)
	}

	r.emit(EventRecvPacket, packet, nil)

	if len(acks) == len(packet.Payloads) {
		ackCommitment := ics24.AckCommitment(acks)
		ackPath := ics24.AckPath(packet.DestClient, packet.Sequence)
		r.store.Put(ackPath, ackCommitment[:])

		flattened := make([]byte, 0)
		for _, a := range acks {
			flattened = append(flattened, a...)
		}
		r.emit(EventWriteAcknowledgement, packet, flattened)
	}

	return nil
}

// AckPacket implements §4.4.3.
func (r *Router) AckPacket(packet ics24.Packet, appAcknowledgement []byte, proofAcked []byte, proofHeight types.Height, relayer []byte) error {
	commitmentPath := ics24.CommitmentPath(packet.SourceClient, packet.Sequence)
	stored, exists := r.store.Get(commitmentPath)
	if !exists {
		// Already acked (or never sent): idempotent no-op, §4.4.3.
		return nil
	}

	computed := ics24.PacketCommitment(packet)
	if !bytes.Equal(stored, computed[:]) {
		return ErrCommitmentMismatch
	}

	client, err := r.client(packet.DestClient)
	if err != nil {
		return err
	}
	if err := requireActive(client); err != nil {
		return err
	}

	ackCommitment := ics24.AckCommitment([][]byte{appAcknowledgement})
	ackPath := ics24.AckPath(packet.DestClient, packet.Sequence)
	if err := client.VerifyMembership(proofHeight, ackPath, ackCommitment[:], proofAcked); err != nil {
		return fmt.Errorf("%w: %v", ErrMembershipFailed, err)
	}

	r.store.Delete(commitmentPath)

	for _, payload := range packet.Payloads {
		app, err := r.ports.lookup(types.PortId(payload.SourcePort))
		if err != nil {
			return err
		}
		if err := app.OnAcknowledgementPacket(packet.SourceClient, packet.DestClient, packet.Sequence, payload, appAcknowledgement, relayer); err != nil {
			return err
		}
	}

	r.emit(EventAckPacket, packet, appAcknowledgement)
	return nil
}

// TimeoutPacket implements §4.4.4.
func (r *Router) TimeoutPacket(packet ics24.Packet, proofTimeout []byte, proofHeight types.Height, relayer []byte) error {
	commitmentPath := ics24.CommitmentPath(packet.SourceClient, packet.Sequence)
	stored, exists := r.store.Get(commitmentPath)
	if !exists {
		return nil
	}

	computed := ics24.PacketCommitment(packet)
	if !bytes.Equal(stored, computed[:]) {
		return ErrCommitmentMismatch
	}

	client, err := r.client(packet.DestClient)
	if err != nil {
		return err
	}
	if err := requireActive(client); err != nil {
		return err
	}

	destTimestamp, err := client.TimestampAtHeight(proofHeight)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConsensusStateNotFound, err)
	}
	if packet.TimeoutTimestamp > destTimestamp/1_000_000_000 {
		return fmt.Errorf("router: packet has not yet timed out at proof height")
	}

	receiptPath := ics24.ReceiptPath(packet.DestClient, packet.Sequence)
	if err := client.VerifyNonMembership(proofHeight, receiptPath, proofTimeout); err != nil {
		return fmt.Errorf("%w: %v", ErrNonMembershipFailed, err)
	}

	r.store.Delete(commitmentPath)

	for _, payload := range packet.Payloads {
		app, err := r.ports.lookup(types.PortId(payload.SourcePort))
		if err != nil {
			return err
		}
		if err := app.OnTimeoutPacket(packet.SourceClient, packet.DestClient, packet.Sequence, payload, relayer); err != nil {
			return err
		}
	}

	r.emit(EventTimeoutPacket, packet, nil)
	return nil
}
