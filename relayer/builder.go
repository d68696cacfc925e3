package relayer

import (
	"context"
	"fmt"
	"time"

	"github.com/cosmos/solidity-ibc-eureka/ics24"
	"github.com/cosmos/solidity-ibc-eureka/router"
)

// Builder turns a router.Event into the next message to submit on the
// appropriate chain, implementing the decision rule in §4.5. It never
// submits anything itself; callers hand the returned message to whatever
// host-specific transaction builder assembles the real call.
type Builder struct {
	// updater advances a client's tracked consensus state to its current
	// head before every proof request, so proof_height always falls within
	// the counterparty's newly extended latest height (§4.5's batching
	// rule). The clientID passed in names the chain whose state is being
	// read, matching the ProofSource convention below.
	updater ClientUpdater
	prover  ProofSource
	now     func() time.Time
}

// NewBuilder constructs a Builder. now defaults to time.Now when nil.
func NewBuilder(updater ClientUpdater, prover ProofSource, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{updater: updater, prover: prover, now: now}
}

// BuildForSendPacket implements the SendPacket branch of §4.5: a timeout
// message if the packet has both expired and the counterparty's tracked
// consensus state has already passed that timestamp, a recv message
// otherwise. Exactly one of the two returned messages is non-nil.
func (b *Builder) BuildForSendPacket(ctx context.Context, evt router.Event) (*RecvMessage, *TimeoutMessage, error) {
	if evt.Name != router.EventSendPacket {
		return nil, nil, fmt.Errorf("relayer: BuildForSendPacket called with %s event", evt.Name)
	}
	packet := evt.Packet

	if uint64(b.now().Unix()) >= packet.TimeoutTimestamp {
		destHeight, err := b.updater.UpdateClient(ctx, packet.DestClient)
		if err != nil {
			return nil, nil, fmt.Errorf("relayer: updating %s: %w", packet.DestClient, err)
		}
		destTimestamp, err := b.prover.ConsensusTimestamp(ctx, packet.DestClient, destHeight)
		if err != nil {
			return nil, nil, fmt.Errorf("relayer: querying %s consensus timestamp: %w", packet.DestClient, err)
		}
		if destTimestamp/1_000_000_000 >= packet.TimeoutTimestamp {
			proof, err := b.prover.ProveNonMembership(ctx, packet.DestClient, ics24.ReceiptPath(packet.DestClient, packet.Sequence), destHeight)
			if err != nil {
				return nil, nil, fmt.Errorf("relayer: proving receipt non-membership: %w", err)
			}
			return nil, &TimeoutMessage{Packet: packet, ProofTimeout: proof, ProofHeight: destHeight}, nil
		}
	}

	sourceHeight, err := b.updater.UpdateClient(ctx, packet.SourceClient)
	if err != nil {
		return nil, nil, fmt.Errorf("relayer: updating %s: %w", packet.SourceClient, err)
	}
	proof, err := b.prover.ProveMembership(
		ctx,
		packet.SourceClient,
		ics24.CommitmentPath(packet.SourceClient, packet.Sequence),
		sourceHeight,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("relayer: proving commitment membership: %w", err)
	}
	return &RecvMessage{Packet: packet, ProofCommitment: proof, ProofHeight: sourceHeight}, nil, nil
}

// BuildForWriteAcknowledgement implements §4.5's WriteAcknowledgement
// branch: an ack message proved against the counterparty's ack path.
func (b *Builder) BuildForWriteAcknowledgement(ctx context.Context, evt router.Event) (*AckMessage, error) {
	if evt.Name != router.EventWriteAcknowledgement {
		return nil, fmt.Errorf("relayer: BuildForWriteAcknowledgement called with %s event", evt.Name)
	}
	packet := evt.Packet

	destHeight, err := b.updater.UpdateClient(ctx, packet.DestClient)
	if err != nil {
		return nil, fmt.Errorf("relayer: updating %s: %w", packet.DestClient, err)
	}
	proof, err := b.prover.ProveMembership(
		ctx,
		packet.DestClient,
		ics24.AckPath(packet.DestClient, packet.Sequence),
		destHeight,
	)
	if err != nil {
		return nil, fmt.Errorf("relayer: proving ack membership: %w", err)
	}
	return &AckMessage{
		Packet:          packet,
		Acknowledgement: evt.Acknowledgement,
		ProofAcked:      proof,
		ProofHeight:     destHeight,
	}, nil
}
