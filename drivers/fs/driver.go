package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/birkland/realpath"
	"github.com/birkland/realpath/drivers/memory"
	"github.com/birkland/realpath/metadata"
	"github.com/pkg/errors"
)

// Driver serves metadata about the files of a local directory, laid out like
// the shared storage of a device.  The directory is indexed once, when the
// driver is created.
type Driver struct {
	*memory.Store
	fixture *metadata.Fixture
}

// Config encapsulates a filesystem driver config.
//
// StorageRoot is the path the indexed directory is visible as to clients; it is
// the prefix of every _data value.  If not provided, the absolute path of Root
// is used, so that resolved paths point at the indexed files themselves.
type Config struct {
	Root         string // directory to index
	StorageRoot  string // path of Root, as reported in _data
	DownloadsDir string // directory under Root holding downloads, "Download" by default
}

// NewDriver indexes the given directory, and returns a driver answering
// queries about its content.
func NewDriver(cfg Config) (*Driver, error) {
	fx, err := Index(cfg)
	if err != nil {
		return nil, err
	}

	return &Driver{
		Store:   memory.New(fx),
		fixture: fx,
	}, nil
}

// Fixture returns the index built by the driver
func (d *Driver) Fixture() *metadata.Fixture {
	return d.fixture
}

func (cfg Config) withDefaults() (Config, error) {
	if cfg.Root == "" {
		return cfg, fmt.Errorf("no directory to index given")
	}

	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return cfg, errors.Wrapf(err, "could not calculate absolute path of %s", cfg.Root)
	}
	cfg.Root = abs

	dir, err := os.Stat(cfg.Root)
	if err != nil {
		return cfg, errors.Wrapf(err, "could not stat %s", cfg.Root)
	}
	if !dir.IsDir() {
		return cfg, fmt.Errorf("%s is not a directory", cfg.Root)
	}

	if cfg.StorageRoot == "" {
		cfg.StorageRoot = filepath.ToSlash(cfg.Root)
	}
	if cfg.DownloadsDir == "" {
		cfg.DownloadsDir = filepath.Base(realpath.DownloadsRoot)
	}

	return cfg, nil
}
