package tendermintlc

import (
	"encoding/binary"
	"fmt"
	"time"

	ics23 "github.com/cosmos/ics23/go"
	"google.golang.org/protobuf/proto"

	"github.com/cosmos/solidity-ibc-eureka/lightclient"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

var _ lightclient.LightClient = (*Client)(nil)

// Client adapts VerifyAndApplyHeader/VerifyMembership/VerifyNonMembership
// to the lightclient.LightClient capability interface, mirroring
// ethereumlc.Client's shape (§9's tagged-variant dispatch design note).
type Client struct {
	state     ClientState
	consensus map[uint64]ConsensusState
	now       func() time.Time
}

// NewClient constructs a Client seeded with its initial trusted consensus
// state.
func NewClient(state ClientState, initial ConsensusState, now func() time.Time) *Client {
	c := &Client{state: state, consensus: make(map[uint64]ConsensusState), now: now}
	c.consensus[state.LatestHeight.RevisionHeight] = initial
	return c
}

func (c *Client) latest() (ConsensusState, bool) {
	cons, ok := c.consensus[c.state.LatestHeight.RevisionHeight]
	return cons, ok
}

// UpdateClient implements lightclient.LightClient.
func (c *Client) UpdateClient(clientMessage any) (lightclient.UpdateResult, error) {
	header, ok := clientMessage.(Header)
	if !ok {
		return lightclient.UpdateResult{}, fmt.Errorf("tendermintlc: unexpected client message type %T", clientMessage)
	}

	trusted, ok := c.consensus[header.TrustedHeight.RevisionHeight]
	if !ok {
		return lightclient.UpdateResult{}, fmt.Errorf("tendermintlc: no trusted consensus state at height %s", header.TrustedHeight)
	}

	newState, newConsensus, result, err := VerifyAndApplyHeader(c.state, trusted, header, c.now())
	if err != nil {
		return lightclient.UpdateResult{}, err
	}

	newHeight := types.NewHeight(c.state.LatestHeight.RevisionNumber, uint64(header.SignedHeader.Header.Height))
	if existing, ok := c.consensus[newHeight.RevisionHeight]; ok && CheckMisbehaviour(newHeight, newHeight, existing, newConsensus) {
		c.state = Freeze(c.state, newHeight)
		return lightclient.UpdateResult{Outcome: lightclient.UpdateOutcomeMisbehaviour}, nil
	}

	c.state = newState
	c.consensus[newHeight.RevisionHeight] = newConsensus
	return result, nil
}

// VerifyMembership implements lightclient.LightClient.
func (c *Client) VerifyMembership(height types.Height, path []byte, value []byte, proof []byte) error {
	if c.state.IsFrozen {
		return ErrClientFrozen
	}
	cons, ok := c.consensus[height.RevisionHeight]
	if !ok {
		return fmt.Errorf("tendermintlc: no consensus state at height %s", height)
	}
	merkleProof, err := decodeMerkleProof(proof)
	if err != nil {
		return err
	}
	return VerifyMembership(cons.Root, merkleProof, path, value)
}

// VerifyNonMembership implements lightclient.LightClient.
func (c *Client) VerifyNonMembership(height types.Height, path []byte, proof []byte) error {
	if c.state.IsFrozen {
		return ErrClientFrozen
	}
	cons, ok := c.consensus[height.RevisionHeight]
	if !ok {
		return fmt.Errorf("tendermintlc: no consensus state at height %s", height)
	}
	merkleProof, err := decodeMerkleProof(proof)
	if err != nil {
		return err
	}
	return VerifyNonMembership(cons.Root, merkleProof, path)
}

// TimestampAtHeight implements lightclient.LightClient, returning
// nanoseconds, §6.4.
func (c *Client) TimestampAtHeight(height types.Height) (uint64, error) {
	cons, ok := c.consensus[height.RevisionHeight]
	if !ok {
		return 0, fmt.Errorf("tendermintlc: no consensus state at height %s", height)
	}
	return uint64(cons.Timestamp.UnixNano()), nil
}

// Status implements lightclient.LightClient.
func (c *Client) Status() lightclient.Status {
	if c.state.IsFrozen {
		return lightclient.StatusFrozen
	}
	if c.now().Sub(c.mustLatestTimestamp()) >= c.state.TrustingPeriod {
		return lightclient.StatusExpired
	}
	return lightclient.StatusActive
}

func (c *Client) mustLatestTimestamp() time.Time {
	cons, ok := c.latest()
	if !ok {
		return time.Time{}
	}
	return cons.Timestamp
}

// decodeMerkleProof splits a flat length-prefixed blob into the inner and
// outer ics23.CommitmentProof protobuf messages.
func decodeMerkleProof(proof []byte) (MerkleProof, error) {
	parts := make([][]byte, 0, 2)
	for i := 0; i+4 <= len(proof); {
		l := int(binary.BigEndian.Uint32(proof[i : i+4]))
		i += 4
		if i+l > len(proof) {
			return MerkleProof{}, fmt.Errorf("tendermintlc: truncated proof blob")
		}
		parts = append(parts, proof[i:i+l])
		i += l
	}
	if len(parts) != 2 {
		return MerkleProof{}, fmt.Errorf("tendermintlc: expected 2 proof segments, got %d", len(parts))
	}

	var inner, outer ics23.CommitmentProof
	if err := proto.Unmarshal(parts[0], &inner); err != nil {
		return MerkleProof{}, fmt.Errorf("tendermintlc: decoding inner proof: %w", err)
	}
	if err := proto.Unmarshal(parts[1], &outer); err != nil {
		return MerkleProof{}, fmt.Errorf("tendermintlc: decoding outer proof: %w", err)
	}
	return MerkleProof{Inner: &inner, Outer: &outer}, nil
}
