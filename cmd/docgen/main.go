// Command docgen generates the CLI reference from the thinkthread command
// definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/thinkthread/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "thinkthread",
		Usage:     "A terminal client for the ThinkThread social network",
		UsageText: "thinkthread [global options] command [command options]",
		Description: `thinkthread browses and posts to a ThinkThread server from the terminal.

Run 'thinkthread' with no arguments to open the interactive feed.
Run 'thinkthread login' to get a session token for one-shot commands.`,
		Flags: commands.GlobalFlags(flags),
	}

	tuiCmd := commands.NewTuiCmd(flags)
	root.Flags = append(root.Flags, tuiCmd.Flags()...)
	root = commands.RegisterAll(root, flags)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %v\n", filepath.Dir(outPath), err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
