// Package metadata contains facilities for working with provider metadata: tables of rows, addressed by
// collection locator, as a content provider would expose them.
//
// A Fixture is a serializable snapshot of such tables.  Fixtures are produced by indexing a directory
// (drivers/fs), or written by hand as YAML, and are served by the memory and sql drivers.
//
// Lookups follow provider addressing: a target names either a table directly, or a single row of a table
// by appending its numeric id, e.g. content://media/external/images/media/42.
package metadata
