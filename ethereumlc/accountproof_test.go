package ethereumlc_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/cosmos/solidity-ibc-eureka/ethereumlc"
)

func TestVerifyAccountProofRejectsEmptyProof(t *testing.T) {
	root := common.HexToHash("0xaa")
	addr := common.HexToAddress("0xbb")

	_, err := ethereumlc.VerifyAccountProof(root, addr, nil)
	require.ErrorIs(t, err, ethereumlc.ErrStorageProofDecode)
}

func TestVerifyAccountProofRejectsGarbageNodes(t *testing.T) {
	root := common.HexToHash("0xaa")
	addr := common.HexToAddress("0xbb")

	_, err := ethereumlc.VerifyAccountProof(root, addr, [][]byte{[]byte("not-a-trie-node")})
	require.ErrorIs(t, err, ethereumlc.ErrStorageProofDecode)
}

func TestVerifyStorageProofRejectsGarbageNodes(t *testing.T) {
	root := common.HexToHash("0xaa")
	slot := common.HexToHash("0x01")

	_, err := ethereumlc.VerifyStorageProof(root, slot, [][]byte{[]byte("not-a-trie-node")})
	require.ErrorIs(t, err, ethereumlc.ErrStorageProofDecode)
}
