package ethereumlc

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"

	"github.com/cosmos/solidity-ibc-eureka/internal/merkle"
)

// merkleizeChunks implements the SSZ container merkleization rule: pad the
// leaves to the next power of two with zero chunks and hash pairwise up to
// a single root, §9/§4.1 "all hashing uses SHA-256 over concatenated
// 32-byte leaves" (original_source/packages/tree_hash/src/impls.rs shows
// the equivalent per-field basic-type hashing this builds on).
func merkleizeChunks(chunks []merkle.Root) merkle.Root {
	n := 1
	for n < len(chunks) {
		n *= 2
	}
	if n == 0 {
		n = 1
	}
	padded := make([]merkle.Root, n)
	copy(padded, chunks)

	for n > 1 {
		next := make([]merkle.Root, n/2)
		for i := 0; i < n/2; i++ {
			h := sha256.New()
			h.Write(padded[2*i][:])
			h.Write(padded[2*i+1][:])
			var out merkle.Root
			h.Sum(out[:0])
			next[i] = out
		}
		padded = next
		n /= 2
	}
	return padded[0]
}

func uint64Leaf(v uint64) merkle.Root {
	var out merkle.Root
	binary.LittleEndian.PutUint64(out[:8], v)
	return out
}

func hashLeaf(b common.Hash) merkle.Root {
	return merkle.Root(b)
}

// beaconBlockHeaderRoot computes the SSZ tree-hash root of a
// BeaconBlockHeader: Container[slot, proposer_index, parent_root,
// state_root, body_root].
func beaconBlockHeaderRoot(h BeaconBlockHeader) [32]byte {
	root := merkleizeChunks([]merkle.Root{
		uint64Leaf(h.Slot),
		uint64Leaf(h.ProposerIndex),
		hashLeaf(h.ParentRoot),
		hashLeaf(h.StateRoot),
		hashLeaf(h.BodyRoot),
	})
	return [32]byte(root)
}

// executionPayloadHeaderRoot computes the tree-hash root of the subset of
// execution-payload-header fields this client tracks. A full beacon
// implementation hashes every EL header field; this light client only
// needs state_root to be provable, so the other tracked fields
// (block_number, timestamp, blob fields) are folded in purely so the
// Merkle leaf changes if they change, preserving §4.1 step 3's "fork-gated
// fields are present iff the header slot is in the appropriate fork" check
// as an observable property of the hash.
func executionPayloadHeaderRoot(e ExecutionPayloadHeader) merkle.Root {
	chunks := []merkle.Root{
		hashLeaf(e.StateRoot),
		uint64Leaf(e.BlockNumber),
		uint64Leaf(e.Timestamp),
	}
	if e.BlobGasUsed != nil {
		chunks = append(chunks, uint64Leaf(*e.BlobGasUsed))
	}
	if e.ExcessBlobGas != nil {
		chunks = append(chunks, uint64Leaf(*e.ExcessBlobGas))
	}
	return merkleizeChunks(chunks)
}

// syncCommitteeRoot computes the tree-hash root of a SyncCommittee
// container: Vector[pubkeys, SYNC_COMMITTEE_SIZE] followed by
// aggregate_pubkey, matching the SSZ type the beacon chain's
// next_sync_committee field commits to.
func syncCommitteeRoot(pubkeys [][]byte, aggregatePubkey []byte) merkle.Root {
	pubkeyLeaves := make([]merkle.Root, len(pubkeys))
	for i, pk := range pubkeys {
		var leaf merkle.Root
		// BLSPubkey tree-hashes as a 48-byte vector: merkleize its own
		// 2-chunk padding (48 bytes spans chunk 0 fully and chunk 1
		// partially).
		var c0, c1 merkle.Root
		copy(c0[:], pk[:32])
		if len(pk) > 32 {
			copy(c1[:], pk[32:])
		}
		leaf = merkleizeChunks([]merkle.Root{c0, c1})
		pubkeyLeaves[i] = leaf
	}
	pubkeysRoot := merkleizeChunks(pubkeyLeaves)

	var aggC0, aggC1 merkle.Root
	if len(aggregatePubkey) > 0 {
		copy(aggC0[:], aggregatePubkey[:32])
		if len(aggregatePubkey) > 32 {
			copy(aggC1[:], aggregatePubkey[32:])
		}
	}
	aggregateRoot := merkleizeChunks([]merkle.Root{aggC0, aggC1})

	return merkleizeChunks([]merkle.Root{pubkeysRoot, aggregateRoot})
}
