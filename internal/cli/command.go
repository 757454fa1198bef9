// Package cli implements the extstat command-line interface.
package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/pflag"

	"github.com/idelchi/extstat/internal/extstat"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

func help() {
	//nolint:forbidigo // Help output to console
	fmt.Println(heredoc.Doc(`
		extstat analyzes file types and sizes in a folder.

		Usage:

			extstat [flags] <path>

		Positional Arguments:
		  path                   Directory to analyze. Required.

		Files are grouped by extension within folder buckets: each file's
		containing directory, relative to the scanned path and truncated to
		--depth segments. Files with no '.' in their name are grouped under
		their full filename. The '.git' directory is always skipped.

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var options extstat.Options

	pflag.IntVarP(&options.Depth, "depth", "d", extstat.DefaultDepth,
		"Depth to limit the folder path in the report")
	pflag.IntVarP(&options.TopN, "top-n", "n", extstat.DefaultTopN,
		"Number of largest files to display per file type")
	pflag.StringSliceVarP(&options.Excludes, "exclude", "e", []string{},
		"Additional directory names to skip (e.g., node_modules)")
	pflag.StringVarP(&options.Output, "output", "o", "text", "Output format: text or json")
	pflag.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	pflag.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	return c.run(options, pflag.Args())
}

// run validates parsed options and dispatches the scan. Split from Execute
// so it can be driven without the global flag set.
func (c CLI) run(options extstat.Options, args []string) error {
	allowedOutputs := []string{"text", "json"}

	if options.Version {
		//nolint:forbidigo // Version output to console
		fmt.Println(c.version)

		return nil
	}

	if !slices.Contains(allowedOutputs, options.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	if options.Depth < 0 {
		return errors.New("depth cannot be negative")
	}

	if len(args) == 0 {
		return errors.New("missing required argument: path of the folder to analyze")
	}

	options.Path = args[0]

	return logic(options)
}
