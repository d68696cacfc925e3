package attestorlc

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/cosmos/solidity-ibc-eureka/lightclient"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

var _ lightclient.LightClient = (*Client)(nil)

// Client adapts VerifyAndApplyUpdate plus the two attestation stores to the
// lightclient.LightClient capability interface, §4.3. It keeps separate
// stores for state and packet attestations since a single height can carry
// both, mirroring the teacher's per-concern store split.
type Client struct {
	state       ClientState
	stateStore  *AttestationStore
	packetStore *AttestationStore
}

// NewClient constructs a Client whose attestation stores are sized off the
// host chain's block time, per attestation_store.rs's resource policy.
func NewClient(state ClientState, blockTimeMs uint64) *Client {
	return &Client{
		state:       state,
		stateStore:  NewAttestationStore(blockTimeMs),
		packetStore: NewAttestationStore(blockTimeMs),
	}
}

func (c *Client) storeFor(data AttestedData) *AttestationStore {
	switch data.(type) {
	case StateAttestation:
		return c.stateStore
	case PacketAttestation:
		return c.packetStore
	default:
		return nil
	}
}

// UpdateClient implements lightclient.LightClient.
func (c *Client) UpdateClient(clientMessage any) (lightclient.UpdateResult, error) {
	msg, ok := clientMessage.(UpdateMessage)
	if !ok {
		return lightclient.UpdateResult{}, fmt.Errorf("attestorlc: unexpected client message type %T", clientMessage)
	}

	store := c.storeFor(msg.Data)
	if store == nil {
		return lightclient.UpdateResult{}, fmt.Errorf("attestorlc: unsupported attested data type %T", msg.Data)
	}

	newState, err := VerifyAndApplyUpdate(c.state, msg)
	if err != nil {
		return lightclient.UpdateResult{}, err
	}

	height := msg.Data.AttestedHeight()
	if existing, ok := store.at(height); ok {
		if CheckMisbehaviour(existing, msg.Data) {
			c.state = Freeze(c.state)
			return lightclient.UpdateResult{Outcome: lightclient.UpdateOutcomeMisbehaviour}, nil
		}
		return lightclient.UpdateResult{Outcome: lightclient.UpdateOutcomeNoOp}, nil
	}

	store.push(height, msg.Data)
	c.state = newState
	return lightclient.UpdateResult{Outcome: lightclient.UpdateOutcomeUpdated, NewHeight: newState.LatestHeight}, nil
}

// VerifyMembership implements lightclient.LightClient: it checks that
// value (the packet's commitment hash) is present in the packet
// attestation covering height, keyed on (keccak256(path), commitment),
// §4.3.
func (c *Client) VerifyMembership(height types.Height, path []byte, value []byte, _ []byte) error {
	if c.state.IsFrozen {
		return ErrClientFrozen
	}
	data, ok := c.packetStore.latestAtOrAfter(height.RevisionHeight)
	if !ok {
		return ErrUnknownPacketHeight
	}
	pa, ok := data.(PacketAttestation)
	if !ok {
		return fmt.Errorf("attestorlc: attestation at height %d is not a packet attestation", height.RevisionHeight)
	}

	pathHash := crypto.Keccak256Hash(path)
	valueHash := common.BytesToHash(value)
	for _, pk := range pa.Packets {
		if pk.Path == pathHash && pk.Commitment == valueHash {
			return nil
		}
	}
	return fmt.Errorf("attestorlc: no attested commitment for path %x", pathHash)
}

// VerifyNonMembership implements lightclient.LightClient.
func (c *Client) VerifyNonMembership(height types.Height, path []byte, _ []byte) error {
	if c.state.IsFrozen {
		return ErrClientFrozen
	}
	data, ok := c.packetStore.latestAtOrAfter(height.RevisionHeight)
	if !ok {
		return ErrUnknownPacketHeight
	}
	pa, ok := data.(PacketAttestation)
	if !ok {
		return fmt.Errorf("attestorlc: attestation at height %d is not a packet attestation", height.RevisionHeight)
	}

	pathHash := crypto.Keccak256Hash(path)
	for _, pk := range pa.Packets {
		if pk.Path == pathHash {
			return fmt.Errorf("attestorlc: expected no commitment at path %x but one is attested", pathHash)
		}
	}
	return nil
}

// TimestampAtHeight implements lightclient.LightClient, returning
// nanoseconds, §6.4.
func (c *Client) TimestampAtHeight(height types.Height) (uint64, error) {
	data, ok := c.stateStore.at(height.RevisionHeight)
	if !ok {
		return 0, ErrUnknownStateHeight
	}
	sa, ok := data.(StateAttestation)
	if !ok {
		return 0, fmt.Errorf("attestorlc: attestation at height %d is not a state attestation", height.RevisionHeight)
	}
	return sa.Timestamp * 1_000_000_000, nil
}

// Status implements lightclient.LightClient.
func (c *Client) Status() lightclient.Status {
	if c.state.IsFrozen {
		return lightclient.StatusFrozen
	}
	return lightclient.StatusActive
}
