// Command remap lowers async functions in Babel AST documents to generators.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/remap/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
