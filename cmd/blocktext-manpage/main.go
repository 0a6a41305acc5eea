// Command blocktext-manpage writes the blocktext man page to stdout, or one
// page per command into the directory given as its argument.
package main

import (
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/blocktext/internal/cli"
	"github.com/arthur-debert/blocktext/internal/version"
)

func main() {
	root := cli.NewRootCmd()
	header := &doc.GenManHeader{
		Title:   "BLOCKTEXT",
		Section: "1",
		Source:  "blocktext " + version.Version,
		Manual:  "blocktext manual",
	}

	var err error
	if len(os.Args) > 1 {
		if err = os.MkdirAll(os.Args[1], 0755); err == nil {
			err = doc.GenManTree(root, header, os.Args[1])
		}
	} else {
		err = doc.GenMan(root, header, os.Stdout)
	}
	if err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
