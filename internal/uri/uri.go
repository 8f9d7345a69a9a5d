// Package uri provides file URI generation for navigating to matches.
package uri

import (
	"net/url"
	"strconv"
	"strings"
)

// GenerateFileURI generates a file URI for a document inside rootPath.
// A positive line adds a "#L<line>" fragment understood by most editors.
func GenerateFileURI(rootPath, docPath string, line int) string {
	cleanPath := strings.ReplaceAll(docPath, "\\", "/")
	cleanPath = strings.TrimPrefix(cleanPath, "/")

	cleanRoot := strings.ReplaceAll(rootPath, "\\", "/")
	cleanRoot = strings.TrimSuffix(cleanRoot, "/")

	absolutePath := cleanRoot + "/" + cleanPath

	// URI encode the path, but keep slashes as slashes
	parts := strings.Split(absolutePath, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	encodedPath := strings.Join(parts, "/")

	// Remove leading slash since we add file:/// prefix
	encodedPath = strings.TrimPrefix(encodedPath, "/")

	uri := "file:///" + encodedPath
	if line > 0 {
		uri += "#L" + strconv.Itoa(line)
	}
	return uri
}
