package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
)

var resolveOpts = struct {
	workers int
}{}

var resolve cli.Command = cli.Command{
	Name:  "resolve",
	Usage: "Resolve locators to real filesystem paths",
	Description: `Given a list of locators (or, with no arguments, one per line on 
	stdin), print each locator followed by a tab and its real path.  Locators 
	that cannot be resolved are printed with a path of -.

	For example, with a device's media tables exported to a fixture,

	  realpath -s media.yaml resolve content://com.android.providers.media.documents/document/image%3A42

	Locators are resolved in parallel, but printed in the order given.  If 
	any locator is unresolved, the exit status is non-zero.  Use 
	--log-level debug to see why.`,
	ArgsUsage: "[ locator ] ...",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:        "workers, w",
			Usage:       "Maximum number of locators resolved at once (0 for no limit)",
			Value:       8,
			Destination: &resolveOpts.workers,
		},
	},

	Action: func(c *cli.Context) error {
		return resolveAction(c, c.Args())
	},
}

func resolveAction(c *cli.Context, args []string) error {
	raws, err := locators(args)
	if err != nil {
		return err
	}

	r, s, err := newResolver(c)
	if err != nil {
		return err
	}
	defer s.Close()

	var unresolved int
	for i, res := range r.ResolveAll(context.Background(), raws, resolveOpts.workers) {
		path := res.Path
		if !res.OK() {
			path = "-"
			unresolved++
		}
		fmt.Printf("%s\t%s\n", raws[i], path)
	}

	if unresolved > 0 {
		return fmt.Errorf("%d of %d locators could not be resolved", unresolved, len(raws))
	}
	return nil
}
