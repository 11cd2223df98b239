package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/birkland/realpath/internal/store"
	"github.com/birkland/realpath/resolv"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var mainOpts = struct {
	config      string
	store       string
	documents   bool
	logLevel    string
	storageRoot string
}{}

func main() {
	app := cli.NewApp()
	app.Name = "realpath"
	app.Usage = "Resolve Android resource locators to real filesystem paths"
	app.EnableBashCompletion = true
	app.Commands = []cli.Command{
		resolve,
		classify,
		name,
		index,
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "YAML resolver config (roots, authorities, collections)",
			EnvVar:      "REALPATH_CONFIG",
			Destination: &mainOpts.config,
		},
		cli.StringFlag{
			Name:        "store, s",
			Usage:       "Metadata store (.yaml or .json fixture, .db or .sqlite database, or a directory to index)",
			EnvVar:      "REALPATH_STORE",
			Destination: &mainOpts.store,
		},
		cli.BoolTFlag{
			Name:        "documents, d",
			Usage:       "Whether the device supports document addressing",
			EnvVar:      "REALPATH_DOCUMENTS",
			Destination: &mainOpts.documents,
		},
		cli.StringFlag{
			Name:        "storage-root",
			Usage:       "Device path of an indexed directory (default: its absolute path)",
			EnvVar:      "REALPATH_STORAGE_ROOT",
			Destination: &mainOpts.storageRoot,
		},
		cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (trace, debug, info, warn, error)",
			Value:       "warn",
			EnvVar:      "REALPATH_LOG_LEVEL",
			Destination: &mainOpts.logLevel,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func newLogger() (hclog.Logger, error) {
	level := hclog.LevelFromString(mainOpts.logLevel)
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("unknown log level %q", mainOpts.logLevel)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "realpath",
		Level:  level,
		Output: os.Stderr,
	}), nil
}

func loadConfig(c *cli.Context) (cfg resolv.Config, err error) {
	cfg = resolv.DefaultConfig()

	if mainOpts.config != "" {
		file, err := os.Open(mainOpts.config)
		if err != nil {
			return cfg, errors.Wrapf(err, "could not open config %s", mainOpts.config)
		}
		defer file.Close()

		cfg, err = resolv.LoadConfig(file)
		if err != nil {
			return cfg, errors.Wrapf(err, "could not load config %s", mainOpts.config)
		}
	}

	// The flag only overrides the config file when given
	if c.GlobalIsSet("documents") {
		cfg.Documents = mainOpts.documents
	}

	cfg.Logger, err = newLogger()
	return cfg, err
}

func openStore() (*store.Store, error) {
	return store.Open(mainOpts.store, store.Options{
		StorageRoot: mainOpts.storageRoot,
	})
}

func newResolver(c *cli.Context) (*resolv.Resolver, *store.Store, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	cfg.Logger.Debug("opened metadata store", "path", mainOpts.store, "kind", s.Kind.String())

	r, err := resolv.NewResolver(cfg, s)
	if err != nil {
		_ = s.Close()
		return nil, nil, err
	}

	return r, s, nil
}

// locators returns the command arguments, or the lines of stdin if there are
// none
func locators(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	return readLines(os.Stdin)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}

	return lines, errors.Wrap(scanner.Err(), "could not read locators")
}
