// Package pathfilter decides which workspace paths are searchable documents.
package pathfilter

import (
	"regexp"
	"slices"
	"strings"

	"github.com/taigrr/jsonfind/internal/types"
)

var extensionPattern = regexp.MustCompile("^[a-zA-Z0-9]+$")

// PathFilter filters allowed paths and file types.
type PathFilter struct {
	ignoredPatterns   []string
	includedPatterns  []string
	allowedExtensions []string

	// compiled is filled once in New and only read afterwards, so a
	// PathFilter is safe for concurrent use.
	compiled map[string]*regexp.Regexp
}

// New creates a new PathFilter with the given configuration.
func New(config *types.PathFilterConfig) *PathFilter {
	pf := &PathFilter{
		ignoredPatterns: []string{
			"**/.git/**",
			"**/node_modules/**",
			"**/.idea/**",
			"**/.vscode/**",
			"**/.DS_Store",
		},
		allowedExtensions: []string{
			".json",
		},
	}

	if config != nil {
		pf.ignoredPatterns = append(pf.ignoredPatterns, config.IgnoredPatterns...)
		pf.includedPatterns = append(pf.includedPatterns, config.IncludedPatterns...)
		// Configured extensions replace the default rather than extend it.
		if len(config.AllowedExtensions) > 0 {
			pf.allowedExtensions = slices.Clone(config.AllowedExtensions)
		}
	}

	pf.compiled = make(map[string]*regexp.Regexp)
	for _, pattern := range slices.Concat(pf.ignoredPatterns, pf.includedPatterns) {
		if _, ok := pf.compiled[pattern]; ok {
			continue
		}
		// Compile cannot fail on an escaped pattern; a nil entry never matches.
		re, _ := Compile(pattern)
		pf.compiled[pattern] = re
	}

	return pf
}

// Compile converts a glob pattern to an anchored regular expression.
// "**" matches anything, "*" a run of non-slash characters and "?" a single
// non-slash character. A leading "**/" also matches at the root.
func Compile(pattern string) (*regexp.Regexp, error) {
	// Normalize pattern path separators (Windows compatibility)
	normalizedPattern := strings.ReplaceAll(pattern, "\\", "/")

	// Escape all regex special chars first
	regexPattern := regexp.QuoteMeta(normalizedPattern)

	// Convert glob patterns (unescape the escaped versions)
	regexPattern = strings.ReplaceAll(regexPattern, `\*\*/`, "(?:.*/)?")
	regexPattern = strings.ReplaceAll(regexPattern, `\*\*`, ".*")
	regexPattern = strings.ReplaceAll(regexPattern, `\*`, "[^/]*")
	regexPattern = strings.ReplaceAll(regexPattern, `\?`, "[^/]")

	return regexp.Compile("^" + regexPattern + "$")
}

func (pf *PathFilter) globMatch(pattern, path string) bool {
	re, ok := pf.compiled[pattern]
	if !ok || re == nil {
		return false
	}
	return re.MatchString(path)
}

// IsAllowed checks if a path is allowed based on the filter rules.
func (pf *PathFilter) IsAllowed(path string) bool {
	normalizedPath := normalize(path)

	for _, pattern := range pf.ignoredPatterns {
		if pf.globMatch(pattern, normalizedPath) {
			return false
		}
	}

	if !pf.isFile(normalizedPath) {
		return true
	}

	if len(pf.includedPatterns) > 0 {
		included := false
		for _, pattern := range pf.includedPatterns {
			if pf.globMatch(pattern, normalizedPath) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	lowerPath := strings.ToLower(normalizedPath)
	for _, ext := range pf.allowedExtensions {
		if strings.HasSuffix(lowerPath, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// IsIgnoredDir reports whether everything below dir is excluded, so a walk
// can skip the directory without visiting its entries.
func (pf *PathFilter) IsIgnoredDir(dir string) bool {
	normalizedDir := strings.TrimSuffix(normalize(dir), "/") + "/"
	for _, pattern := range pf.ignoredPatterns {
		if pf.globMatch(pattern, normalizedDir) {
			return true
		}
	}
	return false
}

// isFile determines if a path represents a file (has a valid extension).
func (pf *PathFilter) isFile(path string) bool {
	// Paths ending with '/' are always directories
	if strings.HasSuffix(path, "/") {
		return false
	}

	lastComponent := path
	if i := strings.LastIndex(path, "/"); i != -1 {
		lastComponent = path[i+1:]
	}

	lastDotIndex := strings.LastIndex(lastComponent, ".")
	if lastDotIndex == -1 || lastDotIndex == 0 {
		// No dot, or dot at the start (like .gitignore)
		return false
	}

	extension := lastComponent[lastDotIndex+1:]
	if len(extension) < 1 || len(extension) > 10 {
		return false
	}

	return extensionPattern.MatchString(extension)
}

// FilterPaths filters a slice of paths to only include allowed ones.
func (pf *PathFilter) FilterPaths(paths []string) []string {
	var allowed []string
	for _, path := range paths {
		if pf.IsAllowed(path) {
			allowed = append(allowed, path)
		}
	}
	return allowed
}

func normalize(path string) string {
	normalizedPath := strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(normalizedPath, "./")
}
