package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taigrr/jsonfind/internal/types"
)

type (
	// FindInput contains parameters for a dot-path search.
	FindInput struct {
		Path     string `json:"path" jsonschema:"Dot-separated property path, e.g. spec.containers.image"`
		Document string `json:"document,omitempty" jsonschema:"Only search this document (relative to the workspace root)"`
		Limit    int    `json:"limit,omitempty" jsonschema:"Maximum results (default: 50, max: 500)"`
		Offset   int    `json:"offset,omitempty" jsonschema:"Skip first N results for pagination (default: 0)"`
	}

	// FindOutput contains search results.
	FindOutput struct {
		Results   []types.FindMatch `json:"results"`
		Total     int               `json:"total"`
		HasMore   bool              `json:"hasMore,omitempty"`
		Cancelled bool              `json:"cancelled,omitempty"`
	}

	// DocumentsInput contains parameters for listing documents.
	DocumentsInput struct {
		Pattern string `json:"pattern,omitempty" jsonschema:"Optional glob to filter document paths, e.g. config/**"`
	}

	// DocumentsOutput lists the searchable documents.
	DocumentsOutput = types.DocumentListing

	// ReadInput contains parameters for reading a document.
	ReadInput struct {
		Path   string `json:"path" jsonschema:"Path to the document relative to the workspace root"`
		Offset int    `json:"offset,omitempty" jsonschema:"Line offset to start reading from (default: 0)"`
		Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of lines to return (default: all)"`
	}

	// ReadOutput contains the result of reading a document.
	ReadOutput struct {
		Content    string `json:"content"`
		TotalLines int    `json:"totalLines"`
		Truncated  bool   `json:"truncated,omitempty"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find",
		Description: "Find every occurrence of a dot-separated property path in the workspace's JSON documents. The path may start at any object, and arrays of objects are stepped through automatically. Returns each match with its document, line, column and value.",
	}, handleFind)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "documents",
		Description: "List the searchable JSON documents in the workspace with their size and modification time.",
	}, handleDocuments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read",
		Description: "Read a JSON document from the workspace. Supports pagination with offset/limit lines, e.g. to show the lines around a match.",
	}, handleRead)
}
