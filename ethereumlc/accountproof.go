package ethereumlc

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	gethtrie "github.com/ethereum/go-ethereum/trie"
)

// AccountUpdate is the result of verifying an account proof: the account's
// storage root as of the proven state root, §4.1 step 9.
type AccountUpdate struct {
	StorageRoot common.Hash
}

// proofDB loads a flat list of RLP-encoded trie nodes into a KeyValueReader
// keyed by keccak256(node), the shape trie.VerifyProof expects.
func proofDB(nodes [][]byte) *memorydb.Database {
	db := memorydb.New()
	for _, node := range nodes {
		key := crypto.Keccak256(node)
		_ = db.Put(key, node)
	}
	return db
}

// VerifyAccountProof verifies a Merkle-Patricia-trie proof that address's
// account RLP is committed under stateRoot, and returns the account's
// storage root, §4.1 step 9 / §9's "RLP/Patricia-trie verification and
// Keccak-256".
func VerifyAccountProof(stateRoot common.Hash, address common.Address, proof [][]byte) (AccountUpdate, error) {
	key := crypto.Keccak256(address.Bytes())

	value, err := gethtrie.VerifyProof(stateRoot, key, proofDB(proof))
	if err != nil {
		return AccountUpdate{}, fmt.Errorf("%w: %v", ErrStorageProofDecode, err)
	}
	if len(value) == 0 {
		return AccountUpdate{}, fmt.Errorf("%w: account does not exist at %s", ErrStorageProofDecode, address)
	}

	var account types.StateAccount
	if err := rlp.DecodeBytes(value, &account); err != nil {
		return AccountUpdate{}, fmt.Errorf("%w: %v", ErrStorageProofDecode, err)
	}

	return AccountUpdate{StorageRoot: account.Root}, nil
}

// VerifyStorageProof verifies that storageValue is committed at
// keccak256(slot) under storageRoot, the per-path membership check the
// router's VerifyMembership/VerifyNonMembership ultimately delegate to for
// an Ethereum-hosted counterparty client.
func VerifyStorageProof(storageRoot common.Hash, slot common.Hash, proof [][]byte) ([]byte, error) {
	key := crypto.Keccak256(slot.Bytes())
	value, err := gethtrie.VerifyProof(storageRoot, key, proofDB(proof))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageProofDecode, err)
	}
	if len(value) == 0 {
		return nil, nil
	}
	var decoded []byte
	if err := rlp.DecodeBytes(value, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageProofDecode, err)
	}
	return decoded, nil
}
