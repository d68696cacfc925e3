package ethereumlc

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/cosmos/solidity-ibc-eureka/lightclient"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

var _ lightclient.LightClient = (*Client)(nil)

// Client adapts the pure VerifyAndApplyUpdate/VerifyAccountProof functions
// to the lightclient.LightClient capability interface the router dispatches
// through, §9's "tagged variants + trait objects" design note.
type Client struct {
	state      ClientState
	consensus  map[uint64]ConsensusState
	nowUnix    func() uint64
}

// NewClient constructs a Client seeded with its initial trusted consensus
// state, as would happen during the (out-of-scope) client-creation
// ceremony.
func NewClient(state ClientState, initial ConsensusState, nowUnix func() uint64) *Client {
	c := &Client{state: state, consensus: make(map[uint64]ConsensusState), nowUnix: nowUnix}
	c.consensus[initial.Slot] = initial
	return c
}

func (c *Client) latest() (ConsensusState, bool) {
	cons, ok := c.consensus[c.state.LatestSlot]
	return cons, ok
}

// UpdateClient implements lightclient.LightClient.
func (c *Client) UpdateClient(clientMessage any) (lightclient.UpdateResult, error) {
	update, ok := clientMessage.(LightClientUpdate)
	if !ok {
		return lightclient.UpdateResult{}, fmt.Errorf("ethereumlc: unexpected client message type %T", clientMessage)
	}

	trusted, ok := c.latest()
	if !ok {
		return lightclient.UpdateResult{}, fmt.Errorf("ethereumlc: no trusted consensus state at slot %d", c.state.LatestSlot)
	}

	newState, newConsensus, result, err := VerifyAndApplyUpdate(c.state, trusted, update, c.nowUnix())
	if err != nil {
		return lightclient.UpdateResult{}, err
	}

	if existing, ok := c.consensus[newConsensus.Slot]; ok && CheckMisbehaviour(existing, newConsensus) {
		c.state = Freeze(c.state)
		return lightclient.UpdateResult{Outcome: lightclient.UpdateOutcomeMisbehaviour}, nil
	}

	c.state = newState
	if result.Outcome == lightclient.UpdateOutcomeUpdated {
		c.consensus[newConsensus.Slot] = newConsensus
	}
	return result, nil
}

// VerifyMembership implements lightclient.LightClient: it checks that
// value is committed under path by proving a storage slot against the
// consensus state's storage root at height.
func (c *Client) VerifyMembership(height types.Height, path []byte, value []byte, proof []byte) error {
	if c.state.IsFrozen {
		return ErrClientFrozen
	}
	cons, ok := c.consensus[height.RevisionHeight]
	if !ok {
		return fmt.Errorf("ethereumlc: no consensus state at height %s", height)
	}
	slot := pathToSlot(path, c.state.IBCCommitmentSlot)
	nodes, err := decodeProofNodes(proof)
	if err != nil {
		return err
	}
	stored, err := VerifyStorageProof(cons.StorageRoot, slot, nodes)
	if err != nil {
		return err
	}
	if string(stored) != string(value) {
		return fmt.Errorf("ethereumlc: stored value %x does not match expected %x", stored, value)
	}
	return nil
}

// VerifyNonMembership implements lightclient.LightClient.
func (c *Client) VerifyNonMembership(height types.Height, path []byte, proof []byte) error {
	if c.state.IsFrozen {
		return ErrClientFrozen
	}
	cons, ok := c.consensus[height.RevisionHeight]
	if !ok {
		return fmt.Errorf("ethereumlc: no consensus state at height %s", height)
	}
	slot := pathToSlot(path, c.state.IBCCommitmentSlot)
	nodes, err := decodeProofNodes(proof)
	if err != nil {
		return err
	}
	stored, err := VerifyStorageProof(cons.StorageRoot, slot, nodes)
	if err != nil {
		return err
	}
	if len(stored) != 0 {
		return fmt.Errorf("ethereumlc: expected no value at path but found %x", stored)
	}
	return nil
}

// TimestampAtHeight implements lightclient.LightClient, returning
// nanoseconds per §6.4.
func (c *Client) TimestampAtHeight(height types.Height) (uint64, error) {
	cons, ok := c.consensus[height.RevisionHeight]
	if !ok {
		return 0, fmt.Errorf("ethereumlc: no consensus state at height %s", height)
	}
	return cons.Timestamp * 1_000_000_000, nil
}

// Status implements lightclient.LightClient.
func (c *Client) Status() lightclient.Status {
	if c.state.IsFrozen {
		return lightclient.StatusFrozen
	}
	return lightclient.StatusActive
}

// pathToSlot maps an ICS-24 path to the EVM storage slot holding its
// commitment value: keccak256(path ‖ ibc_commitment_slot), the standard
// Solidity mapping-slot derivation.
func pathToSlot(path []byte, commitmentSlot common.Hash) common.Hash {
	return common.BytesToHash(crypto.Keccak256(path, commitmentSlot.Bytes()))
}

// decodeProofNodes splits a flat length-prefixed proof blob into the list
// of RLP node byte strings trie.VerifyProof expects.
func decodeProofNodes(proof []byte) ([][]byte, error) {
	var nodes [][]byte
	for i := 0; i+4 <= len(proof); {
		l := int(binary.BigEndian.Uint32(proof[i : i+4]))
		i += 4
		if i+l > len(proof) {
			return nil, fmt.Errorf("ethereumlc: truncated proof blob")
		}
		nodes = append(nodes, proof[i:i+l])
		i += l
	}
	return nodes, nil
}
