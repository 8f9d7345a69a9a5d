package types

type (
	// FindParams contains parameters for a dot-path search across documents.
	FindParams struct {
		Query    string `json:"query"`
		Document string `json:"document,omitempty"` // restrict the search to one document
		Limit    int    `json:"limit,omitempty"`
		Offset   int    `json:"offset,omitempty"`
	}

	// FindMatch is a single located property, ready for presentation.
	FindMatch struct {
		Document string  `json:"document"`
		Path     string  `json:"path"`
		Offset   int     `json:"offset"`
		Line     int     `json:"line"`
		Column   int     `json:"column"`
		Value    *string `json:"value"`
		Display  string  `json:"display"`
		Kind     string  `json:"kind"`
		URI      string  `json:"uri,omitempty"`
	}

	// FindResult contains the deduplicated matches of a search.
	FindResult struct {
		Matches   []FindMatch `json:"matches"`
		Total     int         `json:"total"`     // matches after deduplication, before paging
		Documents int         `json:"documents"` // documents considered
		Searched  int         `json:"searched"`  // documents actually matched against
		Cancelled bool        `json:"cancelled,omitempty"`
	}
)
