// Package aggregator implements the attestor-quorum aggregation described
// in spec §4.5/§5/§6.5: query N attestor endpoints in parallel, bounded to
// a maximum in-flight count, and return the first attested-data digest
// whose signer set reaches the configured quorum threshold.
package aggregator

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/sync/errgroup"
)

// defaultMaxInFlight bounds parallel attestor RPCs, §5 ("bounded
// concurrency (default 10 in-flight) to avoid hammering RPC endpoints").
const defaultMaxInFlight = 10

// AttestationEntry is one signed attestation returned by an attestor,
// §6.5. Data is the attestor's domain-tagged encoding of the attested
// state or packet set; Signature is the 65-byte recoverable secp256k1
// signature over sha256(Data).
type AttestationEntry struct {
	Height    uint64
	Data      []byte
	Signature [65]byte
}

// AttestorClient is the gRPC surface one attestor endpoint exposes, §6.5.
type AttestorClient interface {
	GetAttestationsFromHeight(ctx context.Context, minHeight uint64) (pubkey common.Address, entries []AttestationEntry, err error)
}

// QuorumedAttestation is the result of a successful Aggregate call: the
// attested-data bytes that reached quorum, and the signatures (in arrival
// order) that counted toward it.
type QuorumedAttestation struct {
	Height     uint64
	Data       []byte
	Signatures [][65]byte
	Signers    []common.Address
}

// ErrNoQuorum is returned when every attestor has responded (or the
// bounded fan-out completed) without any digest reaching quorum.
var ErrNoQuorum = fmt.Errorf("aggregator: no attested-data digest reached quorum")

// Aggregator fans a GetAttestationsFromHeight query out to every
// configured attestor endpoint and aggregates their responses into a
// quorumed attestation.
type Aggregator struct {
	clients []AttestorClient
	cfg     Config
}

// New constructs an Aggregator over clients, one per configured attestor
// endpoint.
func New(clients []AttestorClient, cfg Config) *Aggregator {
	return &Aggregator{clients: clients, cfg: cfg}
}

type digestEntry struct {
	data       []byte
	signatures [][65]byte
	signers    map[common.Address]struct{}
}

// Aggregate queries every attestor for attestations at or above minHeight
// and returns the first attested-data digest whose distinct-signer count
// reaches cfg.QuorumThreshold, cancelling any attestors still in flight.
func (a *Aggregator) Aggregate(ctx context.Context, minHeight uint64) (QuorumedAttestation, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan []AttestationEntry, len(a.clients))
	sem := make(chan struct{}, min(defaultMaxInFlight, max(1, len(a.clients))))

	group, gctx := errgroup.WithContext(ctx)
	for _, client := range a.clients {
		client := client
		group.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return nil
			}

			entries, err := a.queryWithRetry(gctx, client, minHeight)
			if err != nil {
				// A single unreachable attestor is a transient condition,
				// not a reason to fail the whole aggregation; quorum may
				// still be reached by the others.
				return nil
			}
			select {
			case results <- entries:
			case <-gctx.Done():
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = group.Wait()
		close(results)
		close(done)
	}()

	digests := make(map[[32]byte]*digestEntry)

	for entries := range results {
		for _, entry := range entries {
			digest := sha256.Sum256(entry.Data)

			de, ok := digests[digest]
			if !ok {
				de = &digestEntry{data: entry.Data, signers: make(map[common.Address]struct{})}
				digests[digest] = de
			}
			addr, err := recoverSigner(digest, entry.Signature)
			if err == nil {
				if _, counted := de.signers[addr]; !counted {
					de.signers[addr] = struct{}{}
					de.signatures = append(de.signatures, entry.Signature)
				}
			}
			reached := len(de.signers) >= a.cfg.QuorumThreshold

			if reached {
				cancel()
				return a.toQuorumed(entry.Height, de), nil
			}
		}
	}

	<-done
	return QuorumedAttestation{}, ErrNoQuorum
}

func (a *Aggregator) toQuorumed(height uint64, de *digestEntry) QuorumedAttestation {
	signers := make([]common.Address, 0, len(de.signers))
	for addr := range de.signers {
		signers = append(signers, addr)
	}
	return QuorumedAttestation{
		Height:     height,
		Data:       de.data,
		Signatures: de.signatures,
		Signers:    signers,
	}
}

func (a *Aggregator) queryWithRetry(ctx context.Context, client AttestorClient, minHeight uint64) ([]AttestationEntry, error) {
	timeout := time.Duration(a.cfg.AttestorQueryTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	var entries []AttestationEntry
	err := retry.Do(
		func() error {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			_, got, err := client.GetAttestationsFromHeight(callCtx, minHeight)
			if err != nil {
				return err
			}
			entries = got
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(25*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
	)
	return entries, err
}

// recoverSigner recovers the ECDSA address that produced sig over digest,
// normalizing both the 0/1 and 27/28 recovery-id conventions an attestor
// may send, mirroring attestorlc's own recovery step.
func recoverSigner(digest [32]byte, sig [65]byte) (common.Address, error) {
	normalized := sig
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pub, err := crypto.SigToPub(digest[:], normalized[:])
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
