package resolv

import (
	"context"
	"path"
	"strings"

	"github.com/birkland/realpath"
)

// DisplayName returns the name a locator is presented under: the display name
// column for content locators, and the base name of the path for file
// locators.  ok is false if no name could be found.
func DisplayName(ctx context.Context, q realpath.Querier, raw string) (name string, ok bool) {
	loc, err := realpath.Parse(raw)
	if err != nil {
		return "", false
	}

	switch loc.Scheme() {
	case "file":
		if loc.Path() == "" {
			return "", false
		}
		name = path.Base(loc.Path())
		return name, name != "/" && name != "."
	case "content":
		r := Resolver{querier: q, log: nopLogger}
		name, err = r.query(ctx, realpath.Query{
			Target: loc,
			Column: realpath.ColumnDisplayName,
		})
		return name, err == nil
	default:
		return "", false
	}
}

// Extension returns the extension of a file name, without the dot.  Names
// without a dot, or whose only dot is the first character, have none.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}
