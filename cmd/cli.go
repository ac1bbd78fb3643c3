package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/viant/mcp-registry/mcp"
)

// stdout receives command output; logs go to stderr.
var stdout io.Writer = os.Stdout

// Run is the entry point for the CLI. It exits the process with status 1 when
// the command fails.
func Run(args []string) {
	if err := Execute(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// RunWithOptions runs the CLI over a service built with opts, letting a
// program embed its own handler classes and hooks.
func RunWithOptions(args []string, opts ...mcp.Option) {
	svcOptions = opts
	Run(args)
}

// Execute parses args and runs the selected sub-command.
func Execute(args []string) error {
	// Make config path discoverable by sub-commands via the global singleton.
	setConfigPath(extractConfigPath(args))
	defer shutdownService()

	opts := &Options{}
	opts.Init(firstCommand(args))

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs(args)
	return err
}

// firstCommand returns the first argument that is not the config option.
func firstCommand(args []string) string {
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "-f" || a == "--config":
			i++
		case strings.HasPrefix(a, "-"):
		default:
			return a
		}
	}
	return ""
}

// extractConfigPath searches the raw argument list for the -f/--config option
// before the full flags parsing is performed so that sub-commands can load the
// config early from a deterministic location.
func extractConfigPath(args []string) string {
	for i, a := range args {
		switch a {
		case "-f", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		default:
			if strings.HasPrefix(a, "--config=") {
				return strings.TrimPrefix(a, "--config=")
			}
		}
	}
	return ""
}
