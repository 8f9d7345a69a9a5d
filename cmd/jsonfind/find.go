package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taigrr/jsonfind/internal/types"
)

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <dot-path> [root]",
		Short: "Print every occurrence of a dot-path",
		Example: `jsonfind find dependencies.react
jsonfind find spec.containers.image ./deploy
jsonfind find name --file package.json --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runFind,
	}

	flags := cmd.Flags()
	flags.String("file", "", "Only search this document (relative to the root)")
	flags.Int("limit", 50, "Maximum results to print")
	flags.Int("offset", 0, "Skip the first N results")
	flags.Bool("json", false, "Print the result as JSON")

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	root, err := rootArg(args, 1)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cmd, root)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	document, _ := flags.GetString("file")
	offset, _ := flags.GetInt("offset")
	asJSON, _ := flags.GetBool("json")

	result, err := ws.search.Find(cmd.Context(), types.FindParams{
		Query:    args[0],
		Document: document,
		Limit:    ws.settings.Limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	writeMatches(cmd.OutOrStdout(), result.Matches)

	shown := offset + len(result.Matches)
	if result.Total > shown {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d more results, use --offset %d to continue\n", result.Total-shown, shown)
	}
	if result.Cancelled {
		fmt.Fprintf(cmd.ErrOrStderr(), "search cancelled after %d of %d documents\n", result.Searched, result.Documents)
	}
	return nil
}

// writeMatches prints one "document:line:column  path = display" line per match.
func writeMatches(w io.Writer, matches []types.FindMatch) {
	for _, m := range matches {
		fmt.Fprintf(w, "%s:%d:%d  %s = %s\n", m.Document, m.Line, m.Column, m.Path, m.Display)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
