package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taigrr/jsonfind/internal/pathfilter"
	"github.com/taigrr/jsonfind/internal/types"
)

func handleFind(ctx context.Context, req *mcp.CallToolRequest, input FindInput) (*mcp.CallToolResult, FindOutput, error) {
	query := strings.TrimSpace(input.Path)
	if query == "" {
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, fmt.Errorf("path cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	offset := max(input.Offset, 0)

	result, err := searchService.Find(ctx, types.FindParams{
		Query:    query,
		Document: strings.TrimSpace(input.Document),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, FindOutput{}, err
	}

	return nil, FindOutput{
		Results:   result.Matches,
		Total:     result.Total,
		HasMore:   result.Total > offset+len(result.Matches),
		Cancelled: result.Cancelled,
	}, nil
}

func handleDocuments(ctx context.Context, req *mcp.CallToolRequest, input DocumentsInput) (*mcp.CallToolResult, DocumentsOutput, error) {
	paths, err := fileSystem.ListDocuments(ctx)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, DocumentsOutput{}, err
	}

	if pattern := strings.TrimSpace(input.Pattern); pattern != "" {
		re, err := pathfilter.Compile(pattern)
		if err != nil {
			return &mcp.CallToolResult{IsError: true}, DocumentsOutput{}, fmt.Errorf("invalid pattern: %w", err)
		}
		filtered := paths[:0]
		for _, p := range paths {
			if re.MatchString(p) {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	documents := make([]types.DocumentInfo, 0, len(paths))
	for _, p := range paths {
		info, err := fileSystem.DocumentInfo(p)
		if err != nil {
			// Removed between listing and stat.
			continue
		}
		documents = append(documents, info)
	}

	return nil, DocumentsOutput{
		Documents: documents,
		Total:     len(documents),
	}, nil
}

func handleRead(ctx context.Context, req *mcp.CallToolRequest, input ReadInput) (*mcp.CallToolResult, ReadOutput, error) {
	path := strings.TrimSpace(input.Path)
	content, err := fileSystem.ReadDocument(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ReadOutput{}, err
	}

	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	offset := max(input.Offset, 0)
	if offset >= totalLines {
		return nil, ReadOutput{
			Content:    "",
			TotalLines: totalLines,
			Truncated:  true,
		}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = totalLines
	}

	endIdx := offset + limit
	truncated := false
	if endIdx >= totalLines {
		endIdx = totalLines
	} else {
		truncated = true
	}

	return nil, ReadOutput{
		Content:    strings.Join(lines[offset:endIdx], "\n"),
		TotalLines: totalLines,
		Truncated:  truncated,
	}, nil
}
