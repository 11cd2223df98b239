package main

import (
	"context"
	"fmt"
	"os"

	"github.com/birkland/realpath/drivers/fs"
	"github.com/birkland/realpath/internal/store"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var indexOpts = struct {
	out       string
	downloads string
}{}

var index cli.Command = cli.Command{
	Name:  "index",
	Usage: "Index a directory into a metadata store",
	Description: `Given a directory laid out like the shared storage of a device, 
	build the media, downloads and files tables a device would have for it.

	The tables are written to the file named by --out: a .yaml or .json 
	fixture, or a new .db or .sqlite database.  Without --out, a YAML 
	fixture is printed to stdout.

	Paths in the tables are those of the files on the device, i.e. under 
	--storage-root, for example

	  realpath --storage-root /storage/emulated/0 index -o phone.db ./backup`,
	ArgsUsage: "dir",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "out, o",
			Usage:       "File to write the index to",
			Destination: &indexOpts.out,
		},
		cli.StringFlag{
			Name:        "downloads",
			Usage:       "Downloads directory, relative to dir",
			Value:       "Download",
			Destination: &indexOpts.downloads,
		},
	},
	Action: func(c *cli.Context) error {
		return indexAction(c.Args())
	},
}

func indexAction(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("index takes exactly one directory")
	}

	log, err := newLogger()
	if err != nil {
		return err
	}

	d, err := fs.NewDriver(fs.Config{
		Root:         args[0],
		StorageRoot:  mainOpts.storageRoot,
		DownloadsDir: indexOpts.downloads,
	})
	if err != nil {
		return errors.Wrapf(err, "could not index %s", args[0])
	}

	fx := d.Fixture()
	for _, t := range fx.Tables {
		log.Info("indexed", "table", t.URI, "rows", len(t.Rows))
	}

	if indexOpts.out == "" {
		return fx.Serialize(os.Stdout)
	}

	return store.Create(context.Background(), indexOpts.out, d)
}
