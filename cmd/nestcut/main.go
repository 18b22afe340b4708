// Command nestcut is the headless CLI entry point for the stock-cutting
// optimizer: load a project, run the search, write reports.
package main

import (
	"os"

	"github.com/piwi3910/nestcut/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
