package metadata

import (
	"fmt"

	"github.com/birkland/realpath"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var validate = validator.New()

// Validate verifies whether a fixture is internally consistent.  All problems
// found are reported, not just the first.
//
// Internally consistent means:
//
// Every table has a URI, and no two tables share one.
//
// Every row has an _id, and no two rows of a table share one.
func (f *Fixture) Validate() error {
	var result *multierror.Error

	if err := validate.Struct(f); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "invalid fixture"))
	}

	tables := make(map[string]bool, len(f.Tables))
	for _, t := range f.Tables {
		if tables[t.URI] {
			result = multierror.Append(result, fmt.Errorf("duplicate table %s", t.URI))
		}
		tables[t.URI] = true

		ids := make(map[string]bool, len(t.Rows))
		for i, row := range t.Rows {
			id := row.ID()
			switch {
			case id == "":
				result = multierror.Append(result, fmt.Errorf("row %d of %s has no %s", i, t.URI, realpath.ColumnID))
			case ids[id]:
				result = multierror.Append(result, fmt.Errorf("duplicate %s %s in %s", realpath.ColumnID, id, t.URI))
			}
			ids[id] = true
		}
	}

	return result.ErrorOrNil()
}
