package main

import (
	"context"
	"fmt"

	"github.com/birkland/realpath/resolv"
	"github.com/urfave/cli"
)

var name cli.Command = cli.Command{
	Name:  "name",
	Usage: "Show the display names of locators",
	Description: `Given a list of locators (or, with no arguments, one per line on 
	stdin), print each locator followed by a tab, its display name, another 
	tab and the name's extension.  Names that cannot be found are printed 
	as -.`,
	ArgsUsage: "[ locator ] ...",
	Action: func(c *cli.Context) error {
		return nameAction(c.Args())
	},
}

func nameAction(args []string) error {
	raws, err := locators(args)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, raw := range raws {
		name, ok := resolv.DisplayName(context.Background(), s, raw)
		if !ok {
			fmt.Printf("%s\t-\t-\n", raw)
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", raw, name, resolv.Extension(name))
	}

	return nil
}
