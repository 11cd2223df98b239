package resolv

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind describes why a locator could not be resolved
type Kind int

// Kinds of resolution failure
const (
	// Unrecognized locators belong to no known category
	Unrecognized Kind = iota

	// Malformed locators were classified, but do not follow the grammar of their category
	Malformed

	// Unresolvable locators were classified and well formed, but no path could be found
	Unresolvable

	// Unavailable means the metadata store could not be consulted
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case Unrecognized:
		return "unrecognized"
	case Malformed:
		return "malformed"
	case Unresolvable:
		return "unresolvable"
	case Unavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the reason a locator was not resolved
type Error struct {
	Kind    Kind
	Locator string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s locator %q", e.Kind, e.Locator)
	}
	return fmt.Sprintf("%s locator %q: %s", e.Kind, e.Locator, e.Err)
}

// Unwrap returns the underlying error, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a resolution error, and false if err is not one
func KindOf(err error) (Kind, bool) {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind, true
	}
	return 0, false
}

func fail(kind Kind, loc fmt.Stringer, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Locator: loc.String(),
		Err:     errors.Errorf(format, args...),
	}
}
