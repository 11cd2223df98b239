package fs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/birkland/realpath"
	"github.com/birkland/realpath/fspath"
	"github.com/birkland/realpath/metadata"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

const (
	dontGoDeeper = true
	goDeeper     = false
)

type mediaType struct {
	kind realpath.MediaKind
	mime string
}

var mediaTypes = map[string]mediaType{
	".jpg":  {realpath.Image, "image/jpeg"},
	".jpeg": {realpath.Image, "image/jpeg"},
	".png":  {realpath.Image, "image/png"},
	".gif":  {realpath.Image, "image/gif"},
	".webp": {realpath.Image, "image/webp"},
	".heic": {realpath.Image, "image/heic"},
	".bmp":  {realpath.Image, "image/bmp"},
	".mp4":  {realpath.Video, "video/mp4"},
	".mkv":  {realpath.Video, "video/x-matroska"},
	".webm": {realpath.Video, "video/webm"},
	".3gp":  {realpath.Video, "video/3gpp"},
	".mov":  {realpath.Video, "video/quicktime"},
	".mp3":  {realpath.Audio, "audio/mpeg"},
	".m4a":  {realpath.Audio, "audio/mp4"},
	".ogg":  {realpath.Audio, "audio/ogg"},
	".wav":  {realpath.Audio, "audio/wav"},
	".flac": {realpath.Audio, "audio/flac"},
	".aac":  {realpath.Audio, "audio/aac"},
}

var collections = map[realpath.MediaKind]string{
	realpath.Image: realpath.ImagesCollection.String(),
	realpath.Video: realpath.VideoCollection.String(),
	realpath.Audio: realpath.AudioCollection.String(),
}

// Index walks the configured directory, and builds provider tables describing
// its regular files:
//
// every file gets a row in the files collection;
//
// images, video and audio (by extension) also get a row in their media collection;
//
// files under the downloads directory also get a row in the public downloads
// collection, and a downloads document row carrying only its display name.
//
// Hidden directories are skipped.  Files are visited in lexical order, and
// numbered from 1, so the same tree always produces the same ids.
func Index(cfg Config) (*metadata.Fixture, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	fx := &metadata.Fixture{}
	storage := fspath.Under(cfg.StorageRoot)
	downloads := filepath.ToSlash(cfg.DownloadsDir) + "/"
	var next int64 = 1

	err = fsWalk(cfg.Root, func(ospath string, e *godirwalk.Dirent) (bool, error) {
		if ospath == cfg.Root {
			return goDeeper, nil
		}

		if e.IsDir() {
			if strings.HasPrefix(e.Name(), ".") {
				return dontGoDeeper, nil
			}
			return goDeeper, nil
		}

		// We don't care about anything that isn't a regular file
		if !e.IsRegular() {
			return dontGoDeeper, nil
		}

		rel := strings.TrimPrefix(filepath.ToSlash(strings.TrimPrefix(ospath, cfg.Root)), "/")
		id := strconv.FormatInt(next, 10)
		next++

		row := metadata.Row{
			realpath.ColumnID:          id,
			realpath.ColumnData:        storage.Generate(rel),
			realpath.ColumnDisplayName: e.Name(),
		}

		mt, isMedia := mediaTypes[strings.ToLower(filepath.Ext(e.Name()))]
		if isMedia {
			row[realpath.ColumnMimeType] = mt.mime
		}

		fx.Put(realpath.FilesCollection.String(), row)

		if isMedia {
			fx.Put(collections[mt.kind], copyRow(row))
		}

		if strings.HasPrefix(rel, downloads) {
			fx.Put(realpath.PublicDownloadsCollection.String(), copyRow(row))
			fx.Put(realpath.DownloadsDocuments.String(), metadata.Row{
				realpath.ColumnID:          id,
				realpath.ColumnDisplayName: e.Name(),
			})
		}

		return dontGoDeeper, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error indexing %s", cfg.Root)
	}

	return fx, nil
}

func copyRow(row metadata.Row) metadata.Row {
	c := make(metadata.Row, len(row))
	for k, v := range row {
		c[k] = v
	}
	return c
}

type skip struct {
	action godirwalk.ErrorAction
}

func (skip) Error() string {
	return "node is skipped"
}

// Callback to be invoked each time a fs entry is encountered.
// Returns a Boolean indicating whether the current fs entry should be a
// considered a terminal (leaf) node.  If true, any children will not be
// walked.  Any error will terminate a walk entirely.
type fsCallback func(ospath string, e *godirwalk.Dirent) (terminal bool, err error)

func fsWalk(dir string, f fsCallback) error {

	if _, err := os.Stat(dir); err != nil {
		return errors.Wrapf(err, "error walking directory %s", dir)
	}

	return godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(ospath string, dirent *godirwalk.Dirent) error {
			terminal, err := f(ospath, dirent)
			if err != nil {
				return errors.Wrap(err, "terminating walk due to error")
			}
			if terminal && dirent.IsDir() {
				return skip{godirwalk.SkipNode}
			}
			return nil
		},
		ErrorCallback: func(ospath string, err error) godirwalk.ErrorAction {
			s, skip := errors.Cause(err).(skip)
			if skip {
				return s.action
			}

			return godirwalk.Halt
		},
		Unsorted:            false,
		FollowSymbolicLinks: false,
	},
	)
}
