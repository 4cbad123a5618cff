// Package storage persists perft results in BadgerDB so that expensive deep
// counts survive process restarts. Entries are keyed by the position's
// Zobrist hash, which is stable across runs because the key tables are
// seeded deterministically.
package storage

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"

	"github.com/tabiya-engine/tabiya/internal/board"
)

// Store wraps BadgerDB for persistent perft caching.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that is discarded on Close, for tests and
// one-off runs.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// perftKey is the position hash followed by the depth byte.
func perftKey(hash uint64, depth int) []byte {
	key := make([]byte, 9)
	binary.BigEndian.PutUint64(key, hash)
	key[8] = byte(depth)
	return key
}

// LoadPerft returns the cached node count for (hash, depth), if present.
func (s *Store) LoadPerft(hash uint64, depth int) (uint64, bool, error) {
	var nodes uint64
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(hash, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return nil // stale format, treat as a miss
			}
			nodes = binary.BigEndian.Uint64(val)
			found = true
			return nil
		})
	})
	return nodes, found, err
}

// SavePerft records the node count for (hash, depth).
func (s *Store) SavePerft(hash uint64, depth int, nodes uint64) error {
	var val [8]byte
	binary.BigEndian.PutUint64(val[:], nodes)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(hash, depth), val[:])
	})
}

// Perft returns the node count for the position at the given depth, serving
// it from the cache when possible and computing and storing it otherwise.
func (s *Store) Perft(p *board.Position, depth int) (uint64, error) {
	if nodes, ok, err := s.LoadPerft(p.Hash, depth); err != nil || ok {
		return nodes, err
	}
	nodes := p.Perft(depth)
	if err := s.SavePerft(p.Hash, depth, nodes); err != nil {
		return nodes, err
	}
	return nodes, nil
}
