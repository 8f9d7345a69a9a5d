// Package types defines the data structures shared by the search host,
// the CLI and the MCP server.
package types

type (
	// DocumentInfo contains metadata about a searchable document.
	DocumentInfo struct {
		Path     string `json:"path"`
		Size     int64  `json:"size"`
		Modified int64  `json:"modified"` // timestamp in milliseconds
	}

	// DocumentListing contains the searchable documents of a workspace.
	DocumentListing struct {
		Documents []DocumentInfo `json:"documents"`
		Total     int            `json:"total"`
	}

	// PathFilterConfig contains configuration for the path filter.
	PathFilterConfig struct {
		IgnoredPatterns   []string `json:"ignoredPatterns" yaml:"exclude,omitempty"`
		IncludedPatterns  []string `json:"includedPatterns" yaml:"include,omitempty"`
		AllowedExtensions []string `json:"allowedExtensions" yaml:"extensions,omitempty"`
	}
)
