// Package routestore keeps planned and committed routes in a badger database.
//
// Records are stored as JSON under "route/<uuid>". An empty directory opens
// an in-memory database, which is what the server uses unless a data
// directory is configured.
package routestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/katalvlaran/tileroute/infra"
	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/world"
)

var (
	// ErrNotFound indicates no record exists for the id.
	ErrNotFound = errors.New("routestore: route not found")

	// ErrNoID indicates a record without an id.
	ErrNoID = errors.New("routestore: record has no id")

	// ErrNoRoute indicates a record without a route.
	ErrNoRoute = errors.New("routestore: record has no route")
)

const prefix = "route/"

// Record is one stored route with its pricing and construction state.
type Record struct {
	ID        uuid.UUID     `json:"id"`
	Route     *route.Route  `json:"route"`
	Estimate  world.Money   `json:"estimate"`
	Committed bool          `json:"committed"`
	Report    *infra.Report `json:"report,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Store wraps a badger database.
type Store struct {
	db *badger.DB
}

// Open opens the database in dir, or an in-memory one when dir is empty.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("routestore: open %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// New returns a fresh record for r with a new id.
func New(r *route.Route, estimate world.Money) Record {
	now := time.Now().UTC()
	return Record{ID: uuid.New(), Route: r, Estimate: estimate, CreatedAt: now, UpdatedAt: now}
}

func key(id uuid.UUID) []byte { return []byte(prefix + id.String()) }

// Put inserts or replaces rec.
func (s *Store) Put(rec Record) error {
	if rec.ID == uuid.Nil {
		return ErrNoID
	}
	if rec.Route == nil {
		return ErrNoRoute
	}
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("routestore: encode %s: %w", rec.ID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(rec.ID), val)
	})
}

// Get returns the record with id or ErrNotFound.
func (s *Store) Get(id uuid.UUID) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("routestore: get %s: %w", id, err)
	}
	return rec, nil
}

// Update loads the record with id, applies fn and stores the result.
// The whole read-modify-write runs in one transaction.
func (s *Store) Update(id uuid.UUID, fn func(rec *Record) error) (Record, error) {
	var rec Record
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &rec) }); err != nil {
			return err
		}
		if err := fn(&rec); err != nil {
			return err
		}
		rec.UpdatedAt = time.Now().UTC()
		val, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(key(id), val)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Delete removes the record with id. Deleting a missing id is not an error.
func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}

// List returns all records, oldest first.
func (s *Store) List() ([]Record, error) {
	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("routestore: decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
