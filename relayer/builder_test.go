package relayer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/solidity-ibc-eureka/ics24"
	"github.com/cosmos/solidity-ibc-eureka/relayer"
	"github.com/cosmos/solidity-ibc-eureka/router"
	"github.com/cosmos/solidity-ibc-eureka/types"
)

type fakeUpdater struct {
	heights map[types.ClientId]types.Height
}

func (u *fakeUpdater) UpdateClient(_ context.Context, clientID types.ClientId) (types.Height, error) {
	return u.heights[clientID], nil
}

type fakeProver struct {
	timestamps map[types.ClientId]uint64
}

func (p *fakeProver) ConsensusTimestamp(_ context.Context, clientID types.ClientId, _ types.Height) (uint64, error) {
	return p.timestamps[clientID], nil
}

func (p *fakeProver) LatestHeight(_ context.Context, clientID types.ClientId) (types.Height, error) {
	return types.Height{}, nil
}

func (p *fakeProver) ProveMembership(_ context.Context, _ types.ClientId, path []byte, _ types.Height) ([]byte, error) {
	return append([]byte("membership:"), path...), nil
}

func (p *fakeProver) ProveNonMembership(_ context.Context, _ types.ClientId, path []byte, _ types.Height) ([]byte, error) {
	return append([]byte("non-membership:"), path...), nil
}

func samplePacket(timeout uint64) ics24.Packet {
	return ics24.Packet{
		Sequence:         5,
		SourceClient:     "src-0",
		DestClient:       "dst-0",
		TimeoutTimestamp: timeout,
		Payloads: []ics24.Payload{
			{SourcePort: "transfer", DestPort: "transfer", Version: "ics20-1", Encoding: "application/json", Value: []byte("hello")},
		},
	}
}

func TestBuildForSendPacketBuildsRecvWhenNotExpired(t *testing.T) {
	now := func() time.Time { return time.Unix(1_700_000_000, 0) }
	updater := &fakeUpdater{heights: map[types.ClientId]types.Height{"src-0": types.NewHeight(0, 10)}}
	prover := &fakeProver{}

	b := relayer.NewBuilder(updater, prover, now)
	recv, timeout, err := b.BuildForSendPacket(context.Background(), router.Event{
		Name:   router.EventSendPacket,
		Packet: samplePacket(1_700_000_600),
	})
	require.NoError(t, err)
	require.Nil(t, timeout)
	require.NotNil(t, recv)
	require.Equal(t, types.NewHeight(0, 10), recv.ProofHeight)
	require.Equal(t, "membership:"+string(ics24.CommitmentPath("src-0", 5)), string(recv.ProofCommitment))
}

func TestBuildForSendPacketBuildsTimeoutWhenDestConsensusPastTimeout(t *testing.T) {
	now := func() time.Time { return time.Unix(1_700_000_700, 0) }
	updater := &fakeUpdater{heights: map[types.ClientId]types.Height{"dst-0": types.NewHeight(0, 20)}}
	prover := &fakeProver{timestamps: map[types.ClientId]uint64{"dst-0": 1_700_000_650 * 1_000_000_000}}

	b := relayer.NewBuilder(updater, prover, now)
	recv, timeout, err := b.BuildForSendPacket(context.Background(), router.Event{
		Name:   router.EventSendPacket,
		Packet: samplePacket(1_700_000_600),
	})
	require.NoError(t, err)
	require.Nil(t, recv)
	require.NotNil(t, timeout)
	require.Equal(t, types.NewHeight(0, 20), timeout.ProofHeight)
}

func TestBuildForSendPacketBuildsRecvWhenExpiredButDestNotCaughtUp(t *testing.T) {
	now := func() time.Time { return time.Unix(1_700_000_700, 0) }
	updater := &fakeUpdater{heights: map[types.ClientId]types.Height{
		"dst-0": types.NewHeight(0, 20),
		"src-0": types.NewHeight(0, 11),
	}}
	prover := &fakeProver{timestamps: map[types.ClientId]uint64{"dst-0": 1_700_000_500 * 1_000_000_000}}

	b := relayer.NewBuilder(updater, prover, now)
	recv, timeout, err := b.BuildForSendPacket(context.Background(), router.Event{
		Name:   router.EventSendPacket,
		Packet: samplePacket(1_700_000_600),
	})
	require.NoError(t, err)
	require.Nil(t, timeout)
	require.NotNil(t, recv)
}

func TestBuildForWriteAcknowledgement(t *testing.T) {
	updater := &fakeUpdater{heights: map[types.ClientId]types.Height{"dst-0": types.NewHeight(0, 30)}}
	prover := &fakeProver{}

	b := relayer.NewBuilder(updater, prover, nil)
	ack, err := b.BuildForWriteAcknowledgement(context.Background(), router.Event{
		Name:            router.EventWriteAcknowledgement,
		Packet:          samplePacket(1_700_000_600),
		Acknowledgement: []byte{0x01},
	})
	require.NoError(t, err)
	require.Equal(t, types.NewHeight(0, 30), ack.ProofHeight)
	require.Equal(t, []byte{0x01}, ack.Acknowledgement)
}

func TestBuildForSendPacketRejectsWrongEventName(t *testing.T) {
	b := relayer.NewBuilder(&fakeUpdater{}, &fakeProver{}, nil)
	_, _, err := b.BuildForSendPacket(context.Background(), router.Event{Name: router.EventAckPacket})
	require.Error(t, err)
}
