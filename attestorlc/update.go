package attestorlc

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/cosmos/solidity-ibc-eureka/types"
)

// ClientState is the attestor light client's per-client configuration,
// §4.3.
type ClientState struct {
	AttestorAddresses map[common.Address]struct{}
	MinRequiredSigs   uint8
	LatestHeight      types.Height
	IsFrozen          bool
}

// UpdateMessage is the client message UpdateClient verifies: attested data
// plus the set of 65-byte ECDSA signatures over it, §4.3.
type UpdateMessage struct {
	Data       AttestedData
	Signatures [][65]byte
}

// recoverSigners recovers the distinct attestor addresses that signed
// digest, matching against cs.AttestorAddresses. It returns an error for
// any signature that fails to recover at all (malformed encoding); a
// signature recovering to an address outside the attestor set is simply
// not counted, not an error, since a malicious relayer could otherwise
// forge bogus signatures to fail the whole batch.
func recoverSigners(cs ClientState, digest [32]byte, signatures [][65]byte) (map[common.Address]struct{}, error) {
	if len(signatures) == 0 {
		return nil, ErrNoSignatures
	}
	signers := make(map[common.Address]struct{})
	for i, sig := range signatures {
		pub, err := crypto.SigToPub(digest[:], normalizeRecoveryID(sig))
		if err != nil {
			return nil, &UnrecoverableSignatureError{Index: i, Err: err}
		}
		addr := crypto.PubkeyToAddress(*pub)
		if _, ok := cs.AttestorAddresses[addr]; ok {
			signers[addr] = struct{}{}
		}
	}
	return signers, nil
}

// normalizeRecoveryID rewrites a 65-byte [R || S || V] signature's V byte
// to the 0/1 recovery id go-ethereum's crypto.SigToPub expects, accepting
// both the 0/1 and 27/28 conventions attestors may use.
func normalizeRecoveryID(sig [65]byte) []byte {
	out := sig
	if out[64] >= 27 {
		out[64] -= 27
	}
	return out[:]
}

// VerifyAndApplyUpdate runs the §4.3 signature-verification algorithm:
// recover each signature's signer over sha256(attested_data), and require
// at least min_required_sigs distinct attestor signers. It is pure and
// does not decide misbehaviour/no-op outcomes, since that requires
// comparing against whatever was already stored at this height — the
// caller (Client) owns the attestation store and makes that call via
// CheckMisbehaviour.
func VerifyAndApplyUpdate(cs ClientState, msg UpdateMessage) (ClientState, error) {
	if cs.IsFrozen {
		return cs, ErrClientFrozen
	}

	digest := sha256.Sum256(msg.Data.encode())
	signers, err := recoverSigners(cs, digest, msg.Signatures)
	if err != nil {
		return cs, err
	}
	if len(signers) < int(cs.MinRequiredSigs) {
		return cs, fmt.Errorf("%w: got %d of %d", ErrNotEnoughSignatures, len(signers), cs.MinRequiredSigs)
	}

	newState := cs
	newHeight := types.NewHeight(cs.LatestHeight.RevisionNumber, msg.Data.AttestedHeight())
	if newHeight.GT(cs.LatestHeight) {
		newState.LatestHeight = newHeight
	}
	return newState, nil
}

// CheckMisbehaviour implements §4.3's misbehaviour rule: two valid updates
// at the same height with different attested data (a different timestamp
// for state attestations, or a different packet set for packet
// attestations) is misbehaviour. Identical attested data at the same
// height is a no-op, not misbehaviour.
func CheckMisbehaviour(existing, incoming AttestedData) bool {
	if existing.AttestedHeight() != incoming.AttestedHeight() {
		return false
	}
	return !bytes.Equal(existing.encode(), incoming.encode())
}

// Freeze marks a client state frozen in response to detected misbehaviour.
func Freeze(cs ClientState) ClientState {
	cs.IsFrozen = true
	return cs
}
