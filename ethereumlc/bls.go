package ethereumlc

import (
	"strconv"

	blst "github.com/supranational/blst/bindings/go"
)

// dst is the BLS signature domain separation tag for the Ethereum beacon
// chain's sync-committee signing scheme (eth2 BLS-SIG-... POP scheme for
// aggregate signatures over G2).
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSZ_RO_POP_")

// FastAggregateVerify verifies that signature is a valid BLS aggregate
// signature by pubkeys over signingRoot, §4.1 step 6. pubkeys are
// 48-byte compressed G1 points; signature is a 96-byte compressed G2 point.
func FastAggregateVerify(pubkeys [][]byte, signingRoot [32]byte, signature []byte) error {
	if len(pubkeys) == 0 {
		return &FastAggregateVerifyError{Reason: "no public keys supplied"}
	}

	pks := make([]*blst.P1Affine, 0, len(pubkeys))
	for i, raw := range pubkeys {
		pk := new(blst.P1Affine).Uncompress(raw)
		if pk == nil {
			return &FastAggregateVerifyError{Reason: "invalid public key at index " + strconv.Itoa(i)}
		}
		pks = append(pks, pk)
	}

	sig := new(blst.P2Affine).Uncompress(signature)
	if sig == nil {
		return &FastAggregateVerifyError{Reason: "invalid signature encoding"}
	}

	if !sig.FastAggregateVerify(true, pks, signingRoot[:], dst) {
		return &FastAggregateVerifyError{Reason: "signature does not verify against aggregated public keys"}
	}
	return nil
}
