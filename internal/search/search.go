// Package search runs dot-path queries across the documents of a workspace.
package search

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/jsonfind/internal/filesystem"
	"github.com/taigrr/jsonfind/internal/jsonnode"
	"github.com/taigrr/jsonfind/internal/matcher"
	"github.com/taigrr/jsonfind/internal/types"
	"github.com/taigrr/jsonfind/internal/uri"
)

const (
	DefaultLimit        = 50
	MaxLimit            = 500
	DefaultDisplayWidth = 50
)

// DocumentProvider supplies the documents a search runs against.
type DocumentProvider interface {
	ListDocuments(ctx context.Context) ([]string, error)
	LoadDocument(path string) (filesystem.Document, error)
	Root() string
}

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Workers      int
	DisplayWidth int
	Logger       *slog.Logger
}

// Service provides search functionality for a workspace.
type Service struct {
	provider     DocumentProvider
	workers      int
	displayWidth int
	logger       *slog.Logger
}

// New creates a new search Service.
func New(provider DocumentProvider, opts Options) *Service {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	displayWidth := opts.DisplayWidth
	if displayWidth <= 0 {
		displayWidth = DefaultDisplayWidth
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider:     provider,
		workers:      workers,
		displayWidth: displayWidth,
		logger:       logger.With("component", "search"),
	}
}

// documentPass holds the output of matching one document.
type documentPass struct {
	skipped  bool
	searched bool
	source   []byte
	results  []matcher.MatchResult
}

// Find locates every occurrence of params.Query across the workspace, or in
// params.Document when set. Documents are matched in parallel and merged in
// document order before deduplication. When ctx is cancelled, documents not
// yet started are skipped and the partial result is returned with
// Cancelled set.
func (s *Service) Find(ctx context.Context, params types.FindParams) (types.FindResult, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return types.FindResult{}, &SearchError{Message: "Search query cannot be empty"}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	offset := max(params.Offset, 0)

	result := types.FindResult{Matches: []types.FindMatch{}}

	var documents []string
	if params.Document != "" {
		documents = []string{params.Document}
	} else {
		var err error
		documents, err = s.provider.ListDocuments(ctx)
		if err != nil {
			if ctx.Err() != nil {
				result.Cancelled = true
				return result, nil
			}
			return types.FindResult{}, err
		}
	}
	result.Documents = len(documents)

	segments := matcher.SplitPath(query)
	if len(segments) == 0 {
		return result, nil
	}

	started := time.Now()
	passes := make([]documentPass, len(documents))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, path := range documents {
		g.Go(func() error {
			if ctx.Err() != nil {
				passes[i].skipped = true
				return nil
			}

			doc, err := s.provider.LoadDocument(path)
			if err != nil {
				// A single requested document is an error, a bad file in a
				// workspace scan is not.
				if params.Document != "" {
					return err
				}
				s.logger.Warn("skipping document", "document", path, "error", err)
				return nil
			}

			passes[i] = documentPass{
				searched: true,
				source:   doc.Source,
				results:  matcher.MatchSegments(doc.Root, doc.Path, query, segments),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.FindResult{}, err
	}

	// Merge in document order so output does not depend on scheduling.
	sources := make(map[string][]byte, len(passes))
	var merged []matcher.MatchResult
	for _, pass := range passes {
		if pass.skipped {
			result.Cancelled = true
		}
		if !pass.searched {
			continue
		}
		result.Searched++
		for _, r := range pass.results {
			sources[r.DocumentID] = pass.source
		}
		merged = append(merged, pass.results...)
	}
	merged = matcher.Dedupe(merged)

	result.Total = len(merged)

	s.logger.Debug("search finished",
		"query", query,
		"documents", result.Documents,
		"searched", result.Searched,
		"matches", result.Total,
		"cancelled", result.Cancelled,
		"elapsed", time.Since(started),
	)

	if offset >= len(merged) {
		return result, nil
	}
	endIdx := min(offset+limit, len(merged))

	for _, r := range merged[offset:endIdx] {
		result.Matches = append(result.Matches, s.present(r, sources[r.DocumentID]))
	}

	return result, nil
}

// present turns a match record into its display form.
func (s *Service) present(r matcher.MatchResult, source []byte) types.FindMatch {
	line, column := jsonnode.Position(source, r.Offset)

	var kind string
	if r.Node != nil {
		kind = r.Node.Kind().String()
	}

	return types.FindMatch{
		Document: r.DocumentID,
		Path:     r.FullPath,
		Offset:   r.Offset,
		Line:     line,
		Column:   column,
		Value:    r.Value,
		Display:  Display(r.Value, s.displayWidth),
		Kind:     kind,
		URI:      uri.GenerateFileURI(s.provider.Root(), r.DocumentID, line),
	}
}

// Display renders a normalized value for presentation, cut to width
// characters. The absent value renders as "null".
func Display(value *string, width int) string {
	if value == nil {
		return "null"
	}
	return matcher.Truncate(*value, width)
}

// SearchError represents a search error.
type SearchError struct {
	Message string
}

func (e *SearchError) Error() string {
	return e.Message
}
