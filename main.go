package main

import (
	"fmt"
	"os"

	"github.com/idelchi/extstat/internal/cli"
)

// version is set via ldflags at build time.
var version = "dev" //nolint:gochecknoglobals // Set by the build system

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "extstat: %v\n", err)

		os.Exit(1)
	}
}
