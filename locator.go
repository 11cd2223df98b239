package realpath

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Locator is an opaque resource reference, such as
// content://com.android.providers.media.documents/document/image%3A42 or
// file:///sdcard/a.jpg.  Locators are values and are never modified after
// construction.
type Locator struct {
	scheme    string
	authority string
	path      string // decoded
	rawPath   string // as it appeared on the wire
}

// Parse parses a raw locator string.  Scheme matching is case insensitive,
// so the scheme is lowercased.
func Parse(raw string) (Locator, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Locator{}, errors.Wrapf(err, "could not parse locator %q", raw)
	}

	loc := Locator{
		scheme:    strings.ToLower(u.Scheme),
		authority: u.Host,
		path:      u.Path,
		rawPath:   u.EscapedPath(),
	}

	// e.g. file:relative/path
	if u.Opaque != "" {
		loc.rawPath = u.Opaque
		loc.path, err = url.PathUnescape(u.Opaque)
		if err != nil {
			return Locator{}, errors.Wrapf(err, "could not decode path of %q", raw)
		}
	}

	return loc, nil
}

// New builds a locator from its parts.  The path is given decoded, and is
// escaped as a whole, so a '/' in path always separates segments.
func New(scheme, authority, path string) Locator {
	return Locator{
		scheme:    strings.ToLower(scheme),
		authority: authority,
		path:      path,
		rawPath:   (&url.URL{Path: path}).EscapedPath(),
	}
}

// DocumentLocator builds a structured-document locator for the given provider
// authority and document id, e.g. content://<authority>/document/<id>.  The id
// is escaped as a single segment.
func DocumentLocator(authority, documentID string) Locator {
	return Locator{
		scheme:    "content",
		authority: authority,
		path:      "/document/" + documentID,
		rawPath:   "/document/" + url.PathEscape(documentID),
	}
}

// Scheme returns the lowercased scheme, e.g. "content" or "file"
func (l Locator) Scheme() string {
	return l.scheme
}

// Authority returns the provider authority, or "" if there is none
func (l Locator) Authority() string {
	return l.authority
}

// Path returns the decoded scheme-specific path
func (l Locator) Path() string {
	return l.path
}

// IsZero reports whether l is the zero Locator
func (l Locator) IsZero() bool {
	return l == Locator{}
}

// Segments returns the decoded path segments.  Empty segments are dropped.
// A segment that cannot be decoded is returned as is.
func (l Locator) Segments() []string {
	var segments []string
	for _, s := range strings.Split(l.rawPath, "/") {
		if s == "" {
			continue
		}
		if decoded, err := url.PathUnescape(s); err == nil {
			s = decoded
		}
		segments = append(segments, s)
	}
	return segments
}

// LastPathSegment returns the final decoded path segment, or "" if the path
// has none
func (l Locator) LastPathSegment() string {
	segments := l.Segments()
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// DocumentID returns the document id of a structured-document locator, or ""
// if l does not follow document addressing.  Both document/<id> and
// tree/<tree id>/document/<id> forms are recognized.
func (l Locator) DocumentID() string {
	segments := l.Segments()
	switch {
	case len(segments) == 2 && segments[0] == "document":
		return segments[1]
	case len(segments) == 4 && segments[0] == "tree" && segments[2] == "document":
		return segments[3]
	default:
		return ""
	}
}

// WithAppendedID returns a copy of l with a numeric id appended as a new path
// segment
func (l Locator) WithAppendedID(id int64) Locator {
	seg := strconv.FormatInt(id, 10)

	appended := l
	appended.path = strings.TrimSuffix(l.path, "/") + "/" + seg
	appended.rawPath = strings.TrimSuffix(l.rawPath, "/") + "/" + seg
	return appended
}

func (l Locator) String() string {
	switch {
	case l.scheme == "":
		return l.rawPath
	case l.authority != "" || strings.HasPrefix(l.rawPath, "/"):
		return l.scheme + "://" + l.authority + l.rawPath
	default:
		return l.scheme + ":" + l.rawPath
	}
}
