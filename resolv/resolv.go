package resolv

import (
	"context"
	"fmt"

	"github.com/birkland/realpath"
	"github.com/birkland/realpath/fspath"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

var nopLogger = hclog.NewNullLogger()

// Result is the outcome of resolving a single locator.  Either Path is set,
// or Err describes why it is not.
//
// Remote is set when Path is a reference understood only by a remote
// provider (cloud photos), rather than a filesystem path.
type Result struct {
	Locator        realpath.Locator
	Classification realpath.Classification
	Path           string
	Remote         bool
	Err            error
}

// OK returns true if the locator resolved to a path
func (r Result) OK() bool {
	return r.Err == nil && r.Path != ""
}

// Resolver resolves locators to real paths.  It holds no state between calls,
// and is safe for concurrent use as long as its Querier is.
type Resolver struct {
	cfg         Config
	querier     realpath.Querier
	log         hclog.Logger
	primary     fspath.Generator
	downloads   fspath.Generator
	secondary   fspath.Generator
	collections map[realpath.MediaKind]realpath.Locator
	public      realpath.Locator
}

// NewResolver creates a resolver with the given config, consulting q for
// provider metadata
func NewResolver(cfg Config, q realpath.Querier) (*Resolver, error) {
	if q == nil {
		return nil, fmt.Errorf("no querier given")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Resolver{
		cfg:         cfg,
		querier:     q,
		log:         cfg.Logger,
		primary:     fspath.Under(cfg.PrimaryRoot),
		downloads:   fspath.Under(cfg.DownloadsRoot),
		secondary:   fspath.Under(cfg.SecondaryPrefix),
		collections: make(map[realpath.MediaKind]realpath.Locator, 3),
	}
	if r.log == nil {
		r.log = nopLogger
	}

	for kind, raw := range map[realpath.MediaKind]string{
		realpath.Image: cfg.Collections.Images,
		realpath.Video: cfg.Collections.Video,
		realpath.Audio: cfg.Collections.Audio,
	} {
		loc, err := realpath.Parse(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "bad %s collection", kind)
		}
		r.collections[kind] = loc
	}

	public, err := realpath.Parse(cfg.Collections.PublicDownloads)
	if err != nil {
		return nil, errors.Wrap(err, "bad public downloads collection")
	}
	r.public = public

	return r, nil
}

// Classify assigns a locator to a provider category, per the resolver's
// authorities and document addressing capability
func (r *Resolver) Classify(loc realpath.Locator) realpath.Classification {
	return r.cfg.Authorities.Classify(loc, r.cfg.Documents)
}

// Resolve parses and resolves a raw locator string.  It never panics, and
// never returns a partial path.
func (r *Resolver) Resolve(ctx context.Context, raw string) Result {
	loc, err := realpath.Parse(raw)
	if err != nil {
		res := Result{Err: &Error{Kind: Malformed, Locator: raw, Err: err}}
		r.logUnresolved(res)
		return res
	}

	return r.ResolveLocator(ctx, loc)
}

// ResolveLocator resolves a locator to a real path
func (r *Resolver) ResolveLocator(ctx context.Context, loc realpath.Locator) Result {
	res := Result{
		Locator:        loc,
		Classification: r.Classify(loc),
	}

	strategy, ok := strategies[res.Classification.Category]
	if !ok {
		strategy = unrecognized
	}

	res.Path, res.Err = strategy(ctx, r, loc, res.Classification)
	if res.Err == nil && res.Path == "" {
		res.Err = fail(Unresolvable, loc, "%s strategy produced no path", res.Classification)
	}
	if res.Err != nil {
		res.Path = ""
		r.logUnresolved(res)
		return res
	}

	res.Remote = res.Classification.Category == realpath.CloudPhotos
	r.log.Trace("resolved", "locator", loc.String(), "category", res.Classification.String(), "path", res.Path)
	return res
}

func (r *Resolver) logUnresolved(res Result) {
	kind, _ := KindOf(res.Err)
	r.log.Debug("unresolved locator",
		"category", res.Classification.String(),
		"kind", kind.String(),
		"error", res.Err)
}

// query consults the querier for a single value.  An empty value, or any
// failure of the querier (including a panic), is reported as an *Error of kind
// Unresolvable or Unavailable.
func (r *Resolver) query(ctx context.Context, q realpath.Query) (v string, err error) {
	defer func() {
		if p := recover(); p != nil {
			v, err = "", fail(Unavailable, q.Target, "querier panicked: %v", p)
		}
	}()

	r.log.Trace("query", "target", q.Target.String(), "column", q.Column, "selection", q.Selection, "args", q.Args)

	v, err = r.querier.Query(ctx, q)
	switch {
	case errors.Is(err, realpath.ErrNotFound):
		return "", &Error{Kind: Unresolvable, Locator: q.Target.String(), Err: err}
	case err != nil:
		r.log.Debug("query failed", "target", q.Target.String(), "column", q.Column, "error", err)
		return "", &Error{Kind: Unavailable, Locator: q.Target.String(), Err: err}
	case v == "":
		return "", fail(Unresolvable, q.Target, "empty %s", q.Column)
	}

	return v, nil
}
