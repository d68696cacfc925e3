package ethereumlc_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/cosmos/solidity-ibc-eureka/ethereumlc"
	"github.com/cosmos/solidity-ibc-eureka/lightclient"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

func TestClientStatusIsActiveWhenNotFrozen(t *testing.T) {
	state := ethereumlc.ClientState{Fork: testFork(), LatestSlot: 10}
	initial := ethereumlc.ConsensusState{Slot: 10, Timestamp: 1_700_000_000}
	client := ethereumlc.NewClient(state, initial, func() uint64 { return 1_700_000_100 })

	require.Equal(t, lightclient.StatusActive, client.Status())
}

func TestClientTimestampAtHeightReturnsNanoseconds(t *testing.T) {
	state := ethereumlc.ClientState{Fork: testFork(), LatestSlot: 10}
	initial := ethereumlc.ConsensusState{Slot: 10, Timestamp: 5}
	client := ethereumlc.NewClient(state, initial, func() uint64 { return 100 })

	ts, err := client.TimestampAtHeight(types.NewHeight(0, 10))
	require.NoError(t, err)
	require.EqualValues(t, 5_000_000_000, ts)
}

func TestClientTimestampAtHeightRejectsUnknownHeight(t *testing.T) {
	state := ethereumlc.ClientState{Fork: testFork(), LatestSlot: 10}
	initial := ethereumlc.ConsensusState{Slot: 10}
	client := ethereumlc.NewClient(state, initial, func() uint64 { return 100 })

	_, err := client.TimestampAtHeight(types.NewHeight(0, 999))
	require.Error(t, err)
}

func TestClientUpdateClientRejectsWrongMessageType(t *testing.T) {
	state := ethereumlc.ClientState{Fork: testFork(), LatestSlot: 10}
	initial := ethereumlc.ConsensusState{Slot: 10}
	client := ethereumlc.NewClient(state, initial, func() uint64 { return 100 })

	_, err := client.UpdateClient("not a LightClientUpdate")
	require.Error(t, err)
}

func TestClientVerifyMembershipRejectsWhenFrozen(t *testing.T) {
	state := ethereumlc.ClientState{Fork: testFork(), LatestSlot: 10, IsFrozen: true}
	initial := ethereumlc.ConsensusState{Slot: 10}
	client := ethereumlc.NewClient(state, initial, func() uint64 { return 100 })

	err := client.VerifyMembership(types.NewHeight(0, 10), []byte("path"), []byte("value"), nil)
	require.ErrorIs(t, err, ethereumlc.ErrClientFrozen)
}

func TestClientVerifyNonMembershipRejectsUnknownHeight(t *testing.T) {
	state := ethereumlc.ClientState{Fork: testFork(), LatestSlot: 10}
	initial := ethereumlc.ConsensusState{Slot: 10, StorageRoot: common.HexToHash("0x01")}
	client := ethereumlc.NewClient(state, initial, func() uint64 { return 100 })

	err := client.VerifyNonMembership(types.NewHeight(0, 999), []byte("path"), nil)
	require.Error(t, err)
}
