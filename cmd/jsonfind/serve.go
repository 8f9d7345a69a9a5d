package main

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/taigrr/jsonfind/internal/filesystem"
	"github.com/taigrr/jsonfind/internal/search"
)

var (
	fileSystem    *filesystem.Service
	searchService *search.Service
	defaultLimit  = search.DefaultLimit
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve dot-path search over MCP on stdio",
		Long: `serve runs a Model Context Protocol (MCP) server on stdin/stdout
that lets any MCP-compatible client find dot-path properties in the
JSON documents under root and read the documents around a match.`,
		Example: `jsonfind serve ~/projects/api`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	root, err := rootArg(args, 0)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cmd, root)
	if err != nil {
		return err
	}

	fileSystem = ws.files
	searchService = ws.search
	if ws.settings.Limit > 0 {
		defaultLimit = ws.settings.Limit
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "jsonfind",
		Version: version,
	}, nil)

	registerTools(server)

	ws.logger.Debug("serving workspace", "root", root)
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}
