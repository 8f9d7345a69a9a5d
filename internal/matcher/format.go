package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/taigrr/jsonfind/internal/jsonnode"
)

// MaxValueLength is the number of characters kept by FormatValue before
// the value is cut and suffixed with "...".
const MaxValueLength = 100

// FormatValue normalizes a matched value for display. Quoted strings lose
// one quote on each side, long values are truncated. A nil node yields nil.
func FormatValue(n jsonnode.Node) *string {
	if n == nil {
		return nil
	}

	raw := n.Raw()
	var text string
	switch {
	case len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`):
		text = raw[1 : len(raw)-1]
	case utf8.RuneCountInString(raw) > MaxValueLength:
		text = Truncate(raw, MaxValueLength)
	default:
		text = raw
	}
	return &text
}

// Truncate cuts s to limit runes and appends "..." when anything was cut.
func Truncate(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

type dedupeKey struct {
	documentID string
	offset     int
}

// Dedupe removes results that point at the same (document, offset) pair.
// The first occurrence keeps its position.
func Dedupe(results []MatchResult) []MatchResult {
	if len(results) == 0 {
		return results
	}

	seen := make(map[dedupeKey]struct{}, len(results))
	unique := make([]MatchResult, 0, len(results))
	for _, r := range results {
		key := dedupeKey{documentID: r.DocumentID, offset: r.Offset}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}
