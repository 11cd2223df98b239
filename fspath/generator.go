package fspath

import "strings"

// Generator generates a solidus delimited file path from a given name.  The
// resulting paths are used for placing resolved names under a storage root,
// e.g. a display name under the downloads directory.
type Generator interface {
	Generate(string) string
}

// GeneratorFunc is a function that can be used to satisfy the Generator interface
type GeneratorFunc func(string) string

// Generate a path from a given name
func (g GeneratorFunc) Generate(name string) string {
	return g(name)
}

// Under returns a Generator that places names beneath root, separated by a
// single solidus.  An empty name yields the root followed by a solidus.
//
// This is a textual join: the name is not cleaned, so ".." segments are kept
// as given.
func Under(root string) Generator {
	root = strings.TrimRight(root, "/")
	return GeneratorFunc(func(name string) string {
		return root + "/" + strings.TrimLeft(name, "/")
	})
}
