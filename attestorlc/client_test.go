package attestorlc_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/cosmos/solidity-ibc-eureka/attestorlc"
	"github.com/cosmos/solidity-ibc-eureka/lightclient"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

func newTestClientState(addrs ...common.Address) attestorlc.ClientState {
	set := make(map[common.Address]struct{}, len(addrs))
	for _, a := range addrs {
		set[a] = struct{}{}
	}
	return attestorlc.ClientState{AttestorAddresses: set, MinRequiredSigs: 1}
}

func TestClientUpdateClientStoresStateAttestation(t *testing.T) {
	sk, addr := genAttestorKey(t)
	client := attestorlc.NewClient(newTestClientState(addr), 9_000)

	data := attestorlc.StateAttestation{Height: 7, Timestamp: 42}
	result, err := client.UpdateClient(attestorlc.UpdateMessage{
		Data:       data,
		Signatures: [][65]byte{sign(t, sk, data)},
	})
	require.NoError(t, err)
	require.Equal(t, lightclient.UpdateOutcomeUpdated, result.Outcome)

	ts, err := client.TimestampAtHeight(types.NewHeight(0, 7))
	require.NoError(t, err)
	require.EqualValues(t, 42_000_000_000, ts)
}

func TestClientUpdateClientRepeatIdenticalHeightIsNoOp(t *testing.T) {
	sk, addr := genAttestorKey(t)
	client := attestorlc.NewClient(newTestClientState(addr), 9_000)

	data := attestorlc.StateAttestation{Height: 7, Timestamp: 42}
	_, err := client.UpdateClient(attestorlc.UpdateMessage{Data: data, Signatures: [][65]byte{sign(t, sk, data)}})
	require.NoError(t, err)

	result, err := client.UpdateClient(attestorlc.UpdateMessage{Data: data, Signatures: [][65]byte{sign(t, sk, data)}})
	require.NoError(t, err)
	require.Equal(t, lightclient.UpdateOutcomeNoOp, result.Outcome)
}

func TestClientUpdateClientConflictingDataAtSameHeightFreezes(t *testing.T) {
	sk, addr := genAttestorKey(t)
	client := attestorlc.NewClient(newTestClientState(addr), 9_000)

	first := attestorlc.StateAttestation{Height: 7, Timestamp: 42}
	_, err := client.UpdateClient(attestorlc.UpdateMessage{Data: first, Signatures: [][65]byte{sign(t, sk, first)}})
	require.NoError(t, err)

	second := attestorlc.StateAttestation{Height: 7, Timestamp: 99}
	result, err := client.UpdateClient(attestorlc.UpdateMessage{Data: second, Signatures: [][65]byte{sign(t, sk, second)}})
	require.NoError(t, err)
	require.Equal(t, lightclient.UpdateOutcomeMisbehaviour, result.Outcome)
	require.Equal(t, lightclient.StatusFrozen, client.Status())
}

func TestClientVerifyMembershipFindsAttestedPacket(t *testing.T) {
	sk, addr := genAttestorKey(t)
	client := attestorlc.NewClient(newTestClientState(addr), 9_000)

	rawPath := []byte("commitments/client-0/1")
	commitment := common.HexToHash("0xbb")
	pathHash := crypto.Keccak256Hash(rawPath)

	data := attestorlc.PacketAttestation{
		Height:  20,
		Packets: []attestorlc.PacketCompact{{Path: pathHash, Commitment: commitment}},
	}
	_, err := client.UpdateClient(attestorlc.UpdateMessage{Data: data, Signatures: [][65]byte{sign(t, sk, data)}})
	require.NoError(t, err)

	err = client.VerifyMembership(types.NewHeight(0, 20), rawPath, commitment.Bytes(), nil)
	require.NoError(t, err)

	err = client.VerifyNonMembership(types.NewHeight(0, 20), rawPath, nil)
	require.Error(t, err)

	err = client.VerifyMembership(types.NewHeight(0, 20), []byte("some-other-path"), commitment.Bytes(), nil)
	require.Error(t, err)

	err = client.VerifyNonMembership(types.NewHeight(0, 20), []byte("some-other-path"), nil)
	require.NoError(t, err)
}
