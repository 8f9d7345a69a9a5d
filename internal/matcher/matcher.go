// Package matcher resolves dot-separated property paths against JSON trees.
//
// A path may start matching at any object in the tree, not only at the
// root, and arrays are stepped through without consuming a path segment.
package matcher

import (
	"strings"

	"github.com/taigrr/jsonfind/internal/jsonnode"
)

// MatchResult is one located occurrence of a path.
type MatchResult struct {
	DocumentID string
	// Node is the value of the matched property.
	Node jsonnode.Node
	// FullPath echoes the searched path, not the location of the match.
	FullPath string
	// Offset is the byte offset of the matched property's key.
	Offset int
	// Value is the normalized value text; nil means the property had no value.
	Value *string
}

// SplitPath splits a dot-path into its segments. Empty segments are dropped.
func SplitPath(path string) []string {
	var segments []string
	for seg := range strings.SplitSeq(path, ".") {
		if seg == "" {
			continue
		}
		segments = append(segments, seg)
	}
	return segments
}

// Match returns every occurrence of path in document, in traversal order.
// Results are not deduplicated; see Dedupe.
func Match(document jsonnode.Node, documentID, path string) []MatchResult {
	return MatchSegments(document, documentID, path, SplitPath(path))
}

// MatchSegments is Match with a pre-split path. fullPath is echoed into each result.
func MatchSegments(document jsonnode.Node, documentID, fullPath string, segments []string) []MatchResult {
	if document == nil || len(segments) == 0 {
		return nil
	}

	p := &matchPass{
		documentID: documentID,
		fullPath:   fullPath,
		segments:   segments,
	}

	switch root := document.(type) {
	case *jsonnode.Object:
		p.visitObject(root, 0)
	case *jsonnode.Array:
		p.visitArray(root)
	}

	return p.results
}

// matchPass owns the accumulator for a single document traversal.
type matchPass struct {
	documentID string
	fullPath   string
	segments   []string
	results    []MatchResult
}

func (p *matchPass) visitObject(obj *jsonnode.Object, index int) {
	p.continuePath(obj, index)
	p.rescanFromHere(obj)
}

// visitArray restarts the path at every object element.
func (p *matchPass) visitArray(arr *jsonnode.Array) {
	for obj := range arr.Objects() {
		p.visitObject(obj, 0)
	}
}

// continuePath resolves segments[index] as a direct key of obj and moves
// downward through the remaining segments.
func (p *matchPass) continuePath(obj *jsonnode.Object, index int) {
	member, ok := obj.Lookup(p.segments[index])
	if !ok {
		return
	}

	if index == len(p.segments)-1 {
		p.emit(member)
		return
	}

	switch child := member.Value.(type) {
	case *jsonnode.Object:
		p.visitObject(child, index+1)
	case *jsonnode.Array:
		for obj := range child.Objects() {
			p.visitObject(obj, index+1)
		}
	}
}

// rescanFromHere attempts the whole path again under every container member
// of obj, whatever continuePath found.
func (p *matchPass) rescanFromHere(obj *jsonnode.Object) {
	for _, member := range obj.Members {
		switch child := member.Value.(type) {
		case *jsonnode.Object:
			p.visitObject(child, 0)
		case *jsonnode.Array:
			p.visitArray(child)
		}
	}
}

func (p *matchPass) emit(member jsonnode.Member) {
	p.results = append(p.results, MatchResult{
		DocumentID: p.documentID,
		Node:       member.Value,
		FullPath:   p.fullPath,
		Offset:     member.KeySpan.Start,
		Value:      FormatValue(member.Value),
	})
}
