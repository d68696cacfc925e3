package solana

import (
	solanago "github.com/gagliardetto/solana-go"

	"github.com/cosmos/solidity-ibc-eureka/hostadapter/memstore"
)

// Store is a lightclient.HostStore for the Solana host. Records are
// logically keyed by their ICS-24 path like every other host adapter;
// Address derives the program-derived address a given path's record would
// live at on-chain, on demand, so a caller building a real transaction
// knows which account to include.
//
// Solana has no native prefix-scan over accounts (each is addressed
// individually by its PDA); IterateByPrefix here is a test/introspection
// convenience backed by the same in-memory map every other host adapter
// uses, standing in for whatever off-chain indexer a production Solana
// deployment would run to reconstruct this view.
type Store struct {
	programID solanago.PublicKey
	backing   *memstore.Store
}

// New returns a Store whose PDAs are derived under programID.
func New(programID solanago.PublicKey) *Store {
	return &Store{programID: programID, backing: memstore.New()}
}

func (s *Store) Get(key []byte) ([]byte, bool) {
	return s.backing.Get(key)
}

func (s *Store) Put(key []byte, value []byte) {
	s.backing.Put(key, value)
}

func (s *Store) Delete(key []byte) {
	s.backing.Delete(key)
}

func (s *Store) IterateByPrefix(prefix []byte, fn func(key, value []byte) bool) {
	s.backing.IterateByPrefix(prefix, fn)
}

// Address returns the program-derived address the given ICS-24 path's
// record lives at under this store's program id.
func (s *Store) Address(path []byte) solanago.PublicKey {
	return Address(s.programID, path)
}
