package relayer

import (
	"context"

	"github.com/cosmos/solidity-ibc-eureka/router"
)

// Notification reports the outcome of building a message for one observed
// router event: exactly one of Recv/Timeout/Ack is set on success, or Err
// is set on failure. Events the builder has no follow-up for (RecvPacket,
// AckPacket, TimeoutPacket themselves) never produce a Notification.
type Notification struct {
	SourceEvent router.Event
	Recv        *RecvMessage
	Timeout     *TimeoutMessage
	Ack         *AckMessage
	Err         error
}

// StartEventLoop consumes events as they arrive and dispatches each to the
// builder on its own goroutine, so a slow proof query for one packet never
// blocks the next event from being picked up. It stops accepting new work
// and closes the returned channel once ctx is cancelled or events closes.
func StartEventLoop(ctx context.Context, events <-chan router.Event, builder *Builder) <-chan Notification {
	notifications := make(chan Notification)

	go func() {
		defer close(notifications)

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				go handleEvent(ctx, builder, evt, notifications)
			}
		}
	}()

	return notifications
}

func handleEvent(ctx context.Context, builder *Builder, evt router.Event, out chan<- Notification) {
	switch evt.Name {
	case router.EventSendPacket:
		recv, timeout, err := builder.BuildForSendPacket(ctx, evt)
		if err != nil {
			emit(ctx, out, Notification{SourceEvent: evt, Err: err})
			return
		}
		emit(ctx, out, Notification{SourceEvent: evt, Recv: recv, Timeout: timeout})
	case router.EventWriteAcknowledgement:
		ack, err := builder.BuildForWriteAcknowledgement(ctx, evt)
		if err != nil {
			emit(ctx, out, Notification{SourceEvent: evt, Err: err})
			return
		}
		emit(ctx, out, Notification{SourceEvent: evt, Ack: ack})
	default:
		// RecvPacket, AckPacket, and TimeoutPacket events are the
		// completion of a message this relayer already built; no
		// further action follows from observing them.
	}
}

func emit(ctx context.Context, out chan<- Notification, n Notification) {
	select {
	case <-ctx.Done():
	case out <- n:
	}
}
