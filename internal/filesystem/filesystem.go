// Package filesystem provides access to the JSON documents of a workspace.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/taigrr/jsonfind/internal/jsonnode"
	"github.com/taigrr/jsonfind/internal/pathfilter"
	"github.com/taigrr/jsonfind/internal/types"
)

var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("document not found")
	ErrIsDirectory  = errors.New("path is a directory")
)

// Document is a parsed JSON document and the text it was parsed from.
type Document struct {
	Path   string
	Source []byte
	Root   jsonnode.Node
}

// Service provides document access for a workspace.
type Service struct {
	fs         billy.Filesystem
	pathFilter *pathfilter.PathFilter
	logger     *slog.Logger
}

// New creates a Service over an arbitrary billy filesystem.
func New(bfs billy.Filesystem, pf *pathfilter.PathFilter, logger *slog.Logger) *Service {
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fs:         bfs,
		pathFilter: pf,
		logger:     logger.With("component", "filesystem"),
	}
}

// NewOS creates a Service rooted at a directory on disk.
func NewOS(rootPath string, pf *pathfilter.PathFilter, logger *slog.Logger) *Service {
	absPath, _ := filepath.Abs(rootPath)
	return New(osfs.New(absPath), pf, logger)
}

// Root returns the workspace root.
func (s *Service) Root() string {
	return s.fs.Root()
}

// ResolvePath normalizes a workspace-relative path and rejects paths that
// escape the workspace.
func (s *Service) ResolvePath(relativePath string) (string, error) {
	normalizedPath := strings.TrimSpace(relativePath)
	normalizedPath = strings.ReplaceAll(normalizedPath, "\\", "/")
	normalizedPath = strings.TrimPrefix(normalizedPath, "/")

	cleaned := path.Clean(normalizedPath)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}

	return cleaned, nil
}

// ListDocuments returns every allowed document path, sorted.
// The walk stops early when ctx is cancelled.
func (s *Service) ListDocuments(ctx context.Context) ([]string, error) {
	var documents []string

	err := util.Walk(s.fs, ".", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			s.logger.Debug("skipping unreadable path", "path", p, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relativePath := filepath.ToSlash(p)
		if relativePath == "." {
			return nil
		}

		if info.IsDir() {
			if s.pathFilter.IsIgnoredDir(relativePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode().IsRegular() && s.pathFilter.IsAllowed(relativePath) {
			documents = append(documents, relativePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	sort.Strings(documents)
	return documents, nil
}

// LoadDocument reads and parses a document.
func (s *Service) LoadDocument(p string) (Document, error) {
	relativePath, content, err := s.read(p)
	if err != nil {
		return Document{}, err
	}

	root, err := jsonnode.Parse(content)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse %s: %w", relativePath, err)
	}

	return Document{
		Path:   relativePath,
		Source: content,
		Root:   root,
	}, nil
}

// ReadDocument returns the raw text of a document.
func (s *Service) ReadDocument(p string) (string, error) {
	_, content, err := s.read(p)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// DocumentInfo returns metadata about a document.
func (s *Service) DocumentInfo(p string) (types.DocumentInfo, error) {
	relativePath, info, err := s.stat(p)
	if err != nil {
		return types.DocumentInfo{}, err
	}
	return types.DocumentInfo{
		Path:     relativePath,
		Size:     info.Size(),
		Modified: info.ModTime().UnixMilli(),
	}, nil
}

func (s *Service) stat(p string) (string, os.FileInfo, error) {
	relativePath, err := s.ResolvePath(p)
	if err != nil {
		return "", nil, err
	}

	if !s.pathFilter.IsAllowed(relativePath) {
		return "", nil, fmt.Errorf("%w: %s", ErrAccessDenied, p)
	}

	info, err := s.fs.Stat(relativePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", nil, fmt.Errorf("permission denied: %s", p)
		}
		return "", nil, fmt.Errorf("failed to stat %s: %w", p, err)
	}

	if info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrIsDirectory, p)
	}

	return relativePath, info, nil
}

func (s *Service) read(p string) (string, []byte, error) {
	relativePath, _, err := s.stat(p)
	if err != nil {
		return "", nil, err
	}

	content, err := util.ReadFile(s.fs, relativePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", p, err)
	}

	return relativePath, content, nil
}
