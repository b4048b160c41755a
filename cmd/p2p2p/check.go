package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	p2p2p "github.com/alnah/go-p2p2p"
)

// Exit codes specific to check.
const (
	checkVisible = ExitSuccess
	checkHidden  = ExitGeneral
)

// runCheckCmd reports whether the export action applies to a document.
// Editors call it on every focus change to toggle their export button.
func runCheckCmd(args []string, env *Environment) int {
	flags, positional, err := parseCheckFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	if len(positional) > 1 {
		fmt.Fprintln(env.Stderr, "check takes at most one file")
		return ExitUsage
	}

	// No file means no active document.
	var doc *p2p2p.Document
	if len(positional) == 1 {
		doc = &p2p2p.Document{
			Path:       positional[0],
			LanguageID: flags.languageID,
			Untitled:   flags.untitled,
		}
	}

	visible := p2p2p.ShowExportAction(doc)
	if !flags.quiet {
		if visible {
			fmt.Fprintln(env.Stdout, "visible")
		} else {
			fmt.Fprintln(env.Stdout, "hidden")
		}
	}

	if visible {
		return checkVisible
	}
	return checkHidden
}
