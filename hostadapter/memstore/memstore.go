// Package memstore is an in-memory lightclient.HostStore, standing in for
// the per-host keyed record store (EVM storage, Solana PDAs, CosmWasm
// state) described in spec §9's "keyed record store with deterministic
// addresses" abstraction. Used directly in unit tests and as the backing
// map the Solana adapter (hostadapter/solana) wraps with its
// program-derived addressing.
package memstore

import (
	"bytes"
	"sort"
	"sync"
)

// Store is a goroutine-safe in-memory key/value store with
// insertion-ordered prefix iteration, matching the host-transaction
// atomicity assumption of §5 (every Put/Get/Delete here is a single
// critical section; there is no cross-key atomicity requirement since the
// router only ever touches its own keys within one call).
type Store struct {
	mu     sync.Mutex
	data   map[string][]byte
	order  []string
	seqNum map[string]int
	next   int
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		data:   make(map[string][]byte),
		seqNum: make(map[string]int),
	}
}

func (s *Store) Get(key []byte) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[string(key)]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

func (s *Store) Put(key []byte, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := string(key)
	if _, exists := s.data[k]; !exists {
		s.order = append(s.order, k)
		s.seqNum[k] = s.next
		s.next++
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.data[k] = v
}

func (s *Store) Delete(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := string(key)
	delete(s.data, k)
	delete(s.seqNum, k)
}

// IterateByPrefix calls fn for every stored key with the given prefix, in
// the order the keys were first inserted, stopping early if fn returns
// false.
func (s *Store) IterateByPrefix(prefix []byte, fn func(key, value []byte) bool) {
	s.mu.Lock()
	type kv struct {
		key []byte
		val []byte
		seq int
	}
	var matches []kv
	for k, v := range s.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			matches = append(matches, kv{key: []byte(k), val: v, seq: s.seqNum[k]})
		}
	}
	s.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].seq < matches[j].seq })
	for _, m := range matches {
		if !fn(m.key, m.val) {
			return
		}
	}
}
