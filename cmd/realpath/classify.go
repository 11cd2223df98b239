package main

import (
	"fmt"

	"github.com/birkland/realpath"
	"github.com/urfave/cli"
)

var classify cli.Command = cli.Command{
	Name:  "classify",
	Usage: "Show the provider category of locators",
	Description: `Given a list of locators (or, with no arguments, one per line on 
	stdin), print each locator followed by a tab and its category, e.g. 
	media/image or external-storage.  No metadata store is consulted.`,
	ArgsUsage: "[ locator ] ...",
	Action: func(c *cli.Context) error {
		return classifyAction(c, c.Args())
	},
}

func classifyAction(c *cli.Context, args []string) error {
	raws, err := locators(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	for _, raw := range raws {
		category := realpath.Classification{}.String()
		if loc, err := realpath.Parse(raw); err == nil {
			category = cfg.Authorities.Classify(loc, cfg.Documents).String()
		}
		fmt.Printf("%s\t%s\n", raw, category)
	}

	return nil
}
