// Package ics24 implements the ICS-24 path construction and packet-
// commitment hashing described in spec §3.2-3.3: the wire-level contract
// every light client's membership/non-membership proof is checked against.
package ics24

import (
	"errors"
	"fmt"

	"github.com/cosmos/solidity-ibc-eureka/types"
)

// MaxPayloadValueSize is the practical host cap on a single payload's value,
// §3.2.
const MaxPayloadValueSize = 64 * 1024

// Payload is one application-level data item carried by a Packet.
type Payload struct {
	SourcePort string
	DestPort   string
	Version    string
	Encoding   string
	Value      []byte
}

// Packet is the cross-chain unit of transfer, §3.2.
type Packet struct {
	Sequence         uint64
	SourceClient     types.ClientId
	DestClient       types.ClientId
	TimeoutTimestamp uint64 // unix seconds; normalized to unsigned per §9 Open Questions
	Payloads         []Payload
}

var (
	// ErrEmptyPayloads is returned when a packet carries zero payloads.
	ErrEmptyPayloads = errors.New("packet must carry at least one payload")
	// ErrPayloadTooLarge is returned when a payload value exceeds the host cap.
	ErrPayloadTooLarge = fmt.Errorf("payload value exceeds %d bytes", MaxPayloadValueSize)
	// ErrTimeoutInPast is returned when a packet's timeout is not in the future.
	ErrTimeoutInPast = errors.New("timeout_timestamp must be greater than send time")
)

// ValidateBasic checks the §3.2 packet invariants that don't depend on
// current time (payload count, payload size, id validity). Callers that
// also need the timeout-in-future check should call ValidateSend.
func (p Packet) ValidateBasic() error {
	if err := p.SourceClient.Validate(); err != nil {
		return fmt.Errorf("source client: %w", err)
	}
	if err := p.DestClient.Validate(); err != nil {
		return fmt.Errorf("dest client: %w", err)
	}
	if len(p.Payloads) == 0 {
		return ErrEmptyPayloads
	}
	for i, pl := range p.Payloads {
		if len(pl.Value) > MaxPayloadValueSize {
			return fmt.Errorf("payload %d: %w", i, ErrPayloadTooLarge)
		}
		if err := types.PortId(pl.SourcePort).Validate(); err != nil {
			return fmt.Errorf("payload %d source port: %w", i, err)
		}
		if err := types.PortId(pl.DestPort).Validate(); err != nil {
			return fmt.Errorf("payload %d dest port: %w", i, err)
		}
	}
	return nil
}

// ValidateSend additionally checks that the packet's timeout is strictly
// after now (unix seconds), the send-time invariant from §3.2.
func (p Packet) ValidateSend(now uint64) error {
	if err := p.ValidateBasic(); err != nil {
		return err
	}
	if p.TimeoutTimestamp <= now {
		return ErrTimeoutInPast
	}
	return nil
}
