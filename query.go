package realpath

import (
	"context"

	"github.com/pkg/errors"
)

// Well known metadata columns
const (
	ColumnID          = "_id"
	ColumnData        = "_data"
	ColumnDisplayName = "_display_name"
	ColumnMimeType    = "mime_type"
)

// SelectByID is the selection for a single row, by id
const SelectByID = ColumnID + "=?"

// ErrNotFound is returned by a Querier when no row or no value matches a query
var ErrNotFound = errors.New("not found")

// Query requests a single column value of at most one row of the store
// addressed by Target.  Selection is an optional filter predicate of the form
// "column=? AND column=?", with one Arg per placeholder.
type Query struct {
	Target    Locator
	Column    string
	Selection string
	Args      []string
}

// Querier answers metadata queries against some backing store (a content
// provider, an index, a database).
//
// Implementations must not modify the store, and must release any handle they
// acquire before returning.  When several rows match, the first one is
// used.  An empty result is reported with an error matching ErrNotFound; any
// other error means the store could not be consulted.
type Querier interface {
	Query(ctx context.Context, q Query) (string, error)
}

// QuerierFunc is a function that can be used to satisfy the Querier interface
type QuerierFunc func(ctx context.Context, q Query) (string, error)

// Query invokes the function
func (f QuerierFunc) Query(ctx context.Context, q Query) (string, error) {
	return f(ctx, q)
}
