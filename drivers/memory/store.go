// Package memory provides an in-memory metadata store, serving the tables of a fixture.
package memory

import (
	"context"
	"sync"

	"github.com/birkland/realpath"
	"github.com/birkland/realpath/metadata"
	"github.com/pkg/errors"
)

// Store is a realpath.Querier backed by an in-memory fixture.  It is safe for
// concurrent use.
type Store struct {
	mu      sync.RWMutex
	fixture metadata.Fixture
}

var _ realpath.Querier = (*Store)(nil)

// New creates a store serving the given fixture.  The fixture is not copied,
// and should not be modified by the caller afterwards.
func New(fx *metadata.Fixture) *Store {
	s := &Store{}
	if fx != nil {
		s.fixture = *fx
	}
	return s
}

// Put adds a row to the table addressed by uri
func (s *Store) Put(uri string, row metadata.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixture.Put(uri, row)
}

// Query looks up a single column value of the first row matching q
func (s *Store) Query(ctx context.Context, q realpath.Query) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row, err := s.fixture.Lookup(q.Target.String(), q.Selection, q.Args)
	if err != nil {
		return "", err
	}

	v, ok := row[q.Column]
	if !ok || v == "" {
		return "", errors.Wrapf(realpath.ErrNotFound, "no %s for %s", q.Column, q.Target)
	}
	return v, nil
}
