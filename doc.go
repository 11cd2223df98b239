// Package realpath defines an API for turning opaque content locators (URIs handed out by document
// pickers, media and download providers, cloud photo services, or plain file references) into real
// filesystem paths.
//
// Classification and resolution live in the resolv package.  Metadata lookups are performed through a
// Querier, with implementations for in-memory fixtures, indexed directories, and SQLite under drivers/.
package realpath
