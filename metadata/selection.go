package metadata

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	conjunction = regexp.MustCompile(`(?i)\s+and\s+`)
	predicate   = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*\?\s*$`)
)

// Selection is a parsed filter predicate: a conjunction of column equality
// tests, each bound to one positional argument.  The empty selection matches
// every row.
type Selection []string

// ParseSelection parses a selection of the form "column=? AND column=?".
// Only equality against placeholders is supported.
func ParseSelection(s string) (Selection, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var sel Selection
	for _, term := range conjunction.Split(s, -1) {
		m := predicate.FindStringSubmatch(term)
		if m == nil {
			return nil, fmt.Errorf("unsupported selection term %q in %q", term, s)
		}
		sel = append(sel, m[1])
	}

	return sel, nil
}

// Columns returns the columns tested by the selection, in order
func (s Selection) Columns() []string {
	return []string(s)
}

// Match reports whether the row satisfies the selection with the given
// arguments.  It is an error for the number of arguments to differ from the
// number of placeholders.
func (s Selection) Match(row Row, args []string) (bool, error) {
	if len(args) != len(s) {
		return false, fmt.Errorf("selection has %d placeholders, but %d arguments were given", len(s), len(args))
	}

	for i, col := range s {
		v, ok := row[col]
		if !ok || v != args[i] {
			return false, nil
		}
	}
	return true, nil
}
