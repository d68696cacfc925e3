// Package merkle verifies SHA-256 Merkle branches against a generalized
// index, the scheme beacon-chain SSZ proofs use (see
// go-ethereum/beacon/merkle for the equivalent binary-tree proof machinery
// this is modeled on).
package merkle

import (
	"errors"
	"fmt"
	"math/bits"

	sha256simd "github.com/minio/sha256-simd"
)

// Root is a 32-byte Merkle root, tree node, or leaf value.
type Root [32]byte

// Branch is the sibling-hash list from a leaf to the root, ordered from the
// leaf's sibling up to the root's sibling (depth entries, one per level).
type Branch []Root

// Depth returns floor(log2(gindex)), the number of levels between the leaf
// at the generalized index gindex and the root (gindex 1).
func Depth(gindex uint64) int {
	if gindex == 0 {
		return 0
	}
	return bits.Len64(gindex) - 1
}

// SubtreeIndex returns gindex mod 2^depth(gindex): the leaf's position
// within its depth-th level, used to choose left/right at each hashing step.
func SubtreeIndex(gindex uint64) uint64 {
	d := Depth(gindex)
	return gindex &^ (^uint64(0) << d)
}

// NormalizeBranch left-pads a branch that is shorter than wantDepth with
// zero roots, the fork-upgrade-compatibility policy from §4.1: older forks
// produce shallower branches for fields that later gained sibling subtrees.
func NormalizeBranch(branch Branch, wantDepth int) Branch {
	if len(branch) >= wantDepth {
		return branch
	}
	out := make(Branch, wantDepth)
	copy(out[wantDepth-len(branch):], branch)
	return out
}

// hashNode computes sha256(left || right).
func hashNode(left, right Root) Root {
	h := sha256simd.New()
	h.Write(left[:])
	h.Write(right[:])
	var out Root
	h.Sum(out[:0])
	return out
}

// VerifyBranch verifies that leaf, combined with branch, hashes up to root
// under the generalized index gindex. depth must equal Depth(gindex); it is
// passed explicitly so callers can verify against a normalized (fork
// upgraded) branch length instead of the leaf's own depth.
func VerifyBranch(leaf Root, branch Branch, depth int, gindex uint64, root Root) error {
	if len(branch) != depth {
		return fmt.Errorf("%w: got %d want %d", ErrBranchLength, len(branch), depth)
	}
	index := SubtreeIndex(gindex)
	node := leaf
	for i := 0; i < depth; i++ {
		sibling := branch[i]
		if (index>>uint(i))&1 == 1 {
			node = hashNode(sibling, node)
		} else {
			node = hashNode(node, sibling)
		}
	}
	if node != root {
		return &InvalidMerkleBranchError{
			Leaf:  leaf,
			Depth: depth,
			Index: gindex,
			Root:  root,
			Found: node,
		}
	}
	return nil
}

// ErrBranchLength is returned when a supplied branch does not have the
// expected number of entries for the target depth.
var ErrBranchLength = errors.New("merkle branch has wrong length")

// InvalidMerkleBranchError mirrors the original Rust InvalidMerkleBranch
// error (packages/ethereum-light-client/src/error.rs): it carries enough
// context to debug a failed proof instead of a bare boolean.
type InvalidMerkleBranchError struct {
	Leaf  Root
	Depth int
	Index uint64
	Root  Root
	Found Root
}

func (e *InvalidMerkleBranchError) Error() string {
	return fmt.Sprintf(
		"invalid merkle branch (leaf: %x, depth: %d, index: %d, root: %x, found: %x)",
		e.Leaf, e.Depth, e.Index, e.Root, e.Found,
	)
}
