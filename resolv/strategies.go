package resolv

import (
	"context"
	"strconv"
	"strings"

	"github.com/birkland/realpath"
)

// A strategy resolves a locator of one category
type strategy func(ctx context.Context, r *Resolver, loc realpath.Locator, class realpath.Classification) (string, error)

var strategies = map[realpath.Category]strategy{
	realpath.Unrecognized:            unrecognized,
	realpath.PlainFile:               plainFile,
	realpath.ExternalStorageDocument: externalStorage,
	realpath.DownloadsDocument:       downloads,
	realpath.MediaDocument:           media,
	realpath.CloudPhotos:             cloudPhotos,
	realpath.GenericContent:          genericContent,
}

func unrecognized(_ context.Context, _ *Resolver, loc realpath.Locator, _ realpath.Classification) (string, error) {
	return "", fail(Unrecognized, loc, "no provider category")
}

// The path of a file locator is already a filesystem path
func plainFile(_ context.Context, _ *Resolver, loc realpath.Locator, _ realpath.Classification) (string, error) {
	if loc.Path() == "" {
		return "", fail(Malformed, loc, "empty file path")
	}
	return loc.Path(), nil
}

// External storage document ids are <volume>:<relative path>.  The primary
// volume maps under the primary root; any other volume (an SD card) maps
// textually under the secondary prefix.
func externalStorage(_ context.Context, r *Resolver, loc realpath.Locator, _ realpath.Classification) (string, error) {
	docID := loc.DocumentID()

	volume, rel, ok := splitDocumentID(docID)
	if !ok || volume == "" {
		return "", fail(Malformed, loc, "document id %q is not <volume>:<path>", docID)
	}

	if strings.EqualFold(volume, r.cfg.PrimaryVolume) {
		return r.primary.Generate(rel), nil
	}

	return r.secondary.Generate(strings.ReplaceAll(docID, ":", "/")), nil
}

// Downloads are first looked up by display name, placed under the downloads
// root.  Failing that, the numeric document id addresses a row of the public
// downloads collection.
func downloads(ctx context.Context, r *Resolver, loc realpath.Locator, _ realpath.Classification) (string, error) {
	name, err := r.query(ctx, realpath.Query{
		Target: loc,
		Column: realpath.ColumnDisplayName,
	})
	if err == nil {
		return r.downloads.Generate(name), nil
	}

	docID := loc.DocumentID()
	id, perr := strconv.ParseInt(docID, 10, 64)
	if perr != nil || id < 0 {
		return "", fail(Malformed, loc, "no display name (%v), and document id %q is not numeric", err, docID)
	}

	return dataColumn(ctx, r, r.public.WithAppendedID(id), "", nil)
}

// Media document ids are <kind>:<row id>.  The row is looked up in the
// collection of its kind.
func media(ctx context.Context, r *Resolver, loc realpath.Locator, class realpath.Classification) (string, error) {
	docID := loc.DocumentID()

	_, rowID, ok := splitDocumentID(docID)
	if !ok {
		return "", fail(Malformed, loc, "document id %q is not <kind>:<id>", docID)
	}
	if _, err := strconv.ParseInt(rowID, 10, 64); err != nil {
		return "", fail(Malformed, loc, "row id %q of %s is not numeric", rowID, docID)
	}

	collection, ok := r.collections[class.Media]
	if !ok {
		return "", fail(Unrecognized, loc, "no collection for media kind %q", class.Media)
	}

	return dataColumn(ctx, r, collection, realpath.SelectByID, []string{rowID})
}

// Cloud photos have no local path; the last path segment is the provider's
// own reference
func cloudPhotos(_ context.Context, _ *Resolver, loc realpath.Locator, _ realpath.Classification) (string, error) {
	seg := loc.LastPathSegment()
	if seg == "" {
		return "", fail(Malformed, loc, "no path segment")
	}
	return seg, nil
}

func genericContent(ctx context.Context, r *Resolver, loc realpath.Locator, _ realpath.Classification) (string, error) {
	return dataColumn(ctx, r, loc, "", nil)
}

func dataColumn(ctx context.Context, r *Resolver, target realpath.Locator, selection string, args []string) (string, error) {
	return r.query(ctx, realpath.Query{
		Target:    target,
		Column:    realpath.ColumnData,
		Selection: selection,
		Args:      args,
	})
}
