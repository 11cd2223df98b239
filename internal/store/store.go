// Package store opens a metadata store from a path on the command line,
// choosing a driver by the kind of path it is.
package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/birkland/realpath"
	"github.com/birkland/realpath/drivers/db"
	"github.com/birkland/realpath/drivers/fs"
	"github.com/birkland/realpath/drivers/memory"
	"github.com/pkg/errors"
)

// Kind is the kind of a store path
type Kind int

// Store kinds
const (
	Unknown   Kind = iota
	Fixture        // YAML or JSON fixture, served from memory
	Database       // SQLite database
	Directory      // local directory, indexed on open
)

func (k Kind) String() string {
	switch k {
	case Fixture:
		return "fixture"
	case Database:
		return "database"
	case Directory:
		return "directory"
	default:
		return "unknown"
	}
}

// KindOf determines the kind of store at the given path.  Directories are
// recognized by stat, everything else by extension.
func KindOf(path string) Kind {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return Directory
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return Fixture
	case ".db", ".sqlite", ".sqlite3":
		return Database
	default:
		return Unknown
	}
}

// Options control how a store is opened
type Options struct {
	StorageRoot  string // device-visible path of an indexed directory
	DownloadsDir string // downloads directory of an indexed directory
}

// Store is an open metadata store
type Store struct {
	realpath.Querier
	Kind  Kind
	close func() error
}

// Close releases the store
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

var _ io.Closer = (*Store)(nil)

// Open opens the store at the given path
func Open(path string, opts Options) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("no metadata store given")
	}

	switch kind := KindOf(path); kind {
	case Directory:
		d, err := fs.NewDriver(fs.Config{
			Root:         path,
			StorageRoot:  opts.StorageRoot,
			DownloadsDir: opts.DownloadsDir,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "could not index %s", path)
		}
		return &Store{Querier: d, Kind: kind}, nil

	case Fixture:
		fx, err := fs.ReadFixture(path)
		if err != nil {
			return nil, err
		}
		if err := fx.Validate(); err != nil {
			return nil, errors.Wrapf(err, "bad fixture %s", path)
		}
		return &Store{Querier: memory.New(fx), Kind: kind}, nil

	case Database:
		// sqlite would create a missing file
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "could not open database %s", path)
		}
		s, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		return &Store{Querier: s, Kind: kind, close: s.Close}, nil

	default:
		return nil, fmt.Errorf("unknown kind of metadata store %s", path)
	}
}

// Create writes an index to a new fixture or database at path
func Create(ctx context.Context, path string, d *fs.Driver) error {
	switch KindOf(path) {
	case Fixture:
		return fs.WriteFixture(path, d.Fixture())
	case Database:
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("database %s already exists", path)
		}

		s, err := db.Open(path)
		if err != nil {
			return err
		}
		defer s.Close()

		return s.Import(ctx, d.Fixture())
	default:
		return fmt.Errorf("cannot write an index to %s, expected a .yaml, .json, .db or .sqlite file", path)
	}
}
