package aggregator_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/cosmos/solidity-ibc-eureka/relayer/aggregator"
)

func genKey(t *testing.T) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey)
}

func sign(t *testing.T, key *ecdsa.PrivateKey, data []byte) [65]byte {
	t.Helper()
	digest := sha256.Sum256(data)
	sig, err := crypto.Sign(digest[:], key)
	require.NoError(t, err)
	var out [65]byte
	copy(out[:], sig)
	return out
}

type fakeClient struct {
	pubkey  common.Address
	entries []aggregator.AttestationEntry
	err     error
}

func (c *fakeClient) GetAttestationsFromHeight(_ context.Context, _ uint64) (common.Address, []aggregator.AttestationEntry, error) {
	if c.err != nil {
		return common.Address{}, nil, c.err
	}
	return c.pubkey, c.entries, nil
}

func TestAggregateReachesQuorumOnMatchingDigest(t *testing.T) {
	data := []byte("attested-state-at-100")

	key1, addr1 := genKey(t)
	key2, addr2 := genKey(t)
	key3, addr3 := genKey(t)

	clients := []aggregator.AttestorClient{
		&fakeClient{pubkey: addr1, entries: []aggregator.AttestationEntry{{Height: 100, Data: data, Signature: sign(t, key1, data)}}},
		&fakeClient{pubkey: addr2, entries: []aggregator.AttestationEntry{{Height: 100, Data: data, Signature: sign(t, key2, data)}}},
		&fakeClient{pubkey: addr3, entries: []aggregator.AttestationEntry{{Height: 100, Data: []byte("diverging-data"), Signature: sign(t, key3, []byte("diverging-data"))}}},
	}

	agg := aggregator.New(clients, aggregator.Config{AttestorQueryTimeoutMs: 1000, QuorumThreshold: 2})
	result, err := agg.Aggregate(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, data, result.Data)
	require.Len(t, result.Signers, 2)
	require.Len(t, result.Signatures, 2)
}

func TestAggregateFailsWhenQuorumNeverReached(t *testing.T) {
	key1, addr1 := genKey(t)
	key2, addr2 := genKey(t)

	clients := []aggregator.AttestorClient{
		&fakeClient{pubkey: addr1, entries: []aggregator.AttestationEntry{{Height: 50, Data: []byte("a"), Signature: sign(t, key1, []byte("a"))}}},
		&fakeClient{pubkey: addr2, entries: []aggregator.AttestationEntry{{Height: 50, Data: []byte("b"), Signature: sign(t, key2, []byte("b"))}}},
	}

	agg := aggregator.New(clients, aggregator.Config{AttestorQueryTimeoutMs: 1000, QuorumThreshold: 2})
	_, err := agg.Aggregate(context.Background(), 50)
	require.ErrorIs(t, err, aggregator.ErrNoQuorum)
}

func TestAggregateToleratesUnreachableAttestor(t *testing.T) {
	data := []byte("attested-state-at-200")
	key1, addr1 := genKey(t)
	key2, addr2 := genKey(t)

	clients := []aggregator.AttestorClient{
		&fakeClient{pubkey: addr1, entries: []aggregator.AttestationEntry{{Height: 200, Data: data, Signature: sign(t, key1, data)}}},
		&fakeClient{pubkey: addr2, entries: []aggregator.AttestationEntry{{Height: 200, Data: data, Signature: sign(t, key2, data)}}},
		&fakeClient{err: context.DeadlineExceeded},
	}

	agg := aggregator.New(clients, aggregator.Config{AttestorQueryTimeoutMs: 1000, QuorumThreshold: 2})
	result, err := agg.Aggregate(context.Background(), 200)
	require.NoError(t, err)
	require.Equal(t, data, result.Data)
}
