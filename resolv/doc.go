// Package resolv provides facilities for classifying content locators and resolving them to real
// filesystem paths.
//
// Classification is a pure function of a locator and the host's document addressing capability.  Each
// category has one resolution strategy; strategies that need provider metadata consult a
// realpath.Querier.  Resolution never fails loudly: any locator, however malformed, yields a Result,
// which either carries a path or an error describing why none could be produced.
package resolv
