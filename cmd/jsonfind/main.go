// Package main implements the jsonfind CLI and MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(
		ctx,
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonfind",
		Short: "Find dot-path properties in JSON documents",
		Long: `jsonfind locates every occurrence of a dot-separated property path
in the JSON documents of a workspace. A path may start matching at any
object in a document, and arrays of objects are stepped through
without consuming a path segment.

Results can be printed, emitted as JSON, or served to MCP clients.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Settings file (default: .jsonfind.yml discovered from the workspace root upwards)")
	flags.StringSlice("include", nil, "Only search documents matching these globs")
	flags.StringSlice("exclude", nil, "Skip documents matching these globs")
	flags.Int("workers", 0, "Documents searched in parallel (default: number of CPUs)")
	flags.BoolP("verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newFindCmd(), newServeCmd(), newConfigCmd())
	return cmd
}
