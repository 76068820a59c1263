package main

import (
	"fmt"
	"os"

	"github.com/danmuck/smcctl/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "smcctl: %s\n", cli.DescribeError(err))
		os.Exit(1)
	}
}
