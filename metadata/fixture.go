package metadata

import (
	"io"
	"strconv"
	"strings"

	"github.com/birkland/realpath"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Row is a single provider row, mapping column names to values
type Row map[string]string

// ID returns the row id (the _id column)
func (r Row) ID() string {
	return r[realpath.ColumnID]
}

// Table is a collection of rows, addressed by a collection locator such as
// content://media/external/images/media
type Table struct {
	URI  string `yaml:"uri" json:"uri" validate:"required,uri"`
	Rows []Row  `yaml:"rows" json:"rows"`
}

// Fixture is a snapshot of provider tables
type Fixture struct {
	Tables []Table `yaml:"tables" json:"tables" validate:"dive"`
}

// Parse parses a byte stream (YAML, or JSON) into a fixture
func Parse(r io.Reader, f *Fixture) error {
	err := yaml.NewDecoder(r).Decode(f)
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "could not decode fixture")
	}
	return nil
}

// Serialize writes the contents of the fixture as YAML
func (f *Fixture) Serialize(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "could not encode fixture")
	}
	return enc.Close()
}

// Table returns the table addressed by uri, or nil if there is none
func (f *Fixture) Table(uri string) *Table {
	for i := range f.Tables {
		if f.Tables[i].URI == uri {
			return &f.Tables[i]
		}
	}
	return nil
}

// Put appends a row to the table addressed by uri, creating the table if
// needed
func (f *Fixture) Put(uri string, row Row) {
	t := f.Table(uri)
	if t == nil {
		f.Tables = append(f.Tables, Table{URI: uri})
		t = &f.Tables[len(f.Tables)-1]
	}
	t.Rows = append(t.Rows, row)
}

// Lookup finds the first row addressed by target that satisfies the given
// selection.
//
// A target equal to a table URI addresses that table.  Otherwise, a target
// ending in a numeric segment addresses the row with that _id in the parent
// table.  Returns realpath.ErrNotFound if no row matches.
func (f *Fixture) Lookup(target, selection string, args []string) (Row, error) {
	sel, err := ParseSelection(selection)
	if err != nil {
		return nil, err
	}

	if t := f.Table(target); t != nil {
		return t.first(sel, args, "")
	}

	parent, id, ok := SplitID(target)
	if ok {
		if t := f.Table(parent); t != nil {
			return t.first(sel, args, id)
		}
	}

	return nil, errors.Wrapf(realpath.ErrNotFound, "no table for %s", target)
}

func (t *Table) first(sel Selection, args []string, id string) (Row, error) {
	for _, row := range t.Rows {
		if id != "" && row.ID() != id {
			continue
		}

		match, err := sel.Match(row, args)
		if err != nil {
			return nil, err
		}
		if match {
			return row, nil
		}
	}

	return nil, errors.Wrapf(realpath.ErrNotFound, "no matching row in %s", t.URI)
}

// SplitID splits a trailing numeric segment off of a target, returning the
// parent and the id.  ok is false if the target does not end in a
// non-negative integer.
func SplitID(target string) (parent, id string, ok bool) {
	i := strings.LastIndex(target, "/")
	if i < 0 {
		return "", "", false
	}

	parent, id = target[:i], target[i+1:]
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", "", false
	}
	return parent, id, true
}
