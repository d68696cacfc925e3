// Package relayer implements the event-to-message builder described in
// spec §4.5: given a SendPacket or WriteAcknowledgement event observed on
// one chain, it decides which of recv_packet/timeout_packet/ack_packet to
// build on the counterparty and assembles the corresponding membership or
// non-membership proof request. It is host-agnostic; a ProofSource is
// supplied per concrete chain pairing (Ethereum, Solana, Cosmos).
package relayer

import (
	"context"

	"github.com/cosmos/solidity-ibc-eureka/types"
)

// ProofSource is the per-chain query surface the relayer needs beyond the
// router's own light-client interface (§6.4): proof generation is
// host-specific (eth_getProof, an ABCI query, a Solana account read), so it
// is not part of lightclient.LightClient itself.
type ProofSource interface {
	// ConsensusTimestamp returns the timestamp (nanoseconds) the client
	// identified by clientID holds for its counterparty at height, mirroring
	// lightclient.LightClient.TimestampAtHeight but queried from off-chain.
	ConsensusTimestamp(ctx context.Context, clientID types.ClientId, height types.Height) (uint64, error)

	// LatestHeight returns the latest height clientID has a consensus state
	// for, as observed by this source.
	LatestHeight(ctx context.Context, clientID types.ClientId) (types.Height, error)

	// ProveMembership returns a membership proof of path at height, verifiable
	// against the consensus state clientID holds at that height.
	ProveMembership(ctx context.Context, clientID types.ClientId, path []byte, height types.Height) ([]byte, error)

	// ProveNonMembership returns a non-membership proof of path at height.
	ProveNonMembership(ctx context.Context, clientID types.ClientId, path []byte, height types.Height) ([]byte, error)
}

// ClientUpdater issues the update_client call the relayer batches ahead of
// every packet message, so proof_height never exceeds the counterparty's
// newly extended latest height (§4.5).
type ClientUpdater interface {
	// UpdateClient advances clientID's consensus state as far as the source
	// allows and returns the new latest height to use as proof_height.
	UpdateClient(ctx context.Context, clientID types.ClientId) (types.Height, error)
}
