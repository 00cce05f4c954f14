// Package pathclassifier classifies absolute filesystem paths into
// {system, third-party, generated, project} and applies glob include/exclude
// filters on project-relative paths.
package pathclassifier

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/buildcheck/domain"
)

// Classifier classifies paths deterministically from path text alone; it
// never opens a file.
type Classifier struct {
	projectRoot       string
	buildDirectory    string
	systemPrefixes    []string
	thirdPartyMarkers []string
	generatedSuffixes []string
}

// New creates a Classifier rooted at projectRoot, with paths under
// buildDirectory treated as generated.
func New(projectRoot, buildDirectory string) *Classifier {
	return &Classifier{
		projectRoot:       filepath.Clean(projectRoot),
		buildDirectory:    filepath.Clean(buildDirectory),
		systemPrefixes:    domain.DefaultSystemPrefixes(),
		thirdPartyMarkers: domain.DefaultThirdPartyPrefixes(),
		generatedSuffixes: domain.DefaultGeneratedSuffixes(),
	}
}

// WithSystemPrefixes overrides the default system include roots.
func (c *Classifier) WithSystemPrefixes(prefixes []string) *Classifier {
	c.systemPrefixes = prefixes
	return c
}

// WithThirdPartyMarkers overrides the default third-party path markers.
func (c *Classifier) WithThirdPartyMarkers(markers []string) *Classifier {
	c.thirdPartyMarkers = markers
	return c
}

// IsSystem is the hot path, inlined into scanner-output parsing: it answers
// "is this a system header" without computing the full classification.
func (c *Classifier) IsSystem(path string) bool {
	for _, prefix := range c.systemPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Classify returns the FileType of an absolute path.
func (c *Classifier) Classify(path string) domain.FileType {
	if c.IsSystem(path) {
		return domain.FileTypeSystem
	}
	for _, marker := range c.thirdPartyMarkers {
		if strings.Contains(path, marker) {
			return domain.FileTypeThirdParty
		}
	}
	if c.buildDirectory != "" && strings.HasPrefix(path, c.buildDirectory) {
		return domain.FileTypeGenerated
	}
	for _, suffix := range c.generatedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return domain.FileTypeGenerated
		}
	}
	return domain.FileTypeProject
}

// RelativeToProject returns path relative to the project root; if path does
// not lie under the root it is returned unchanged.
func (c *Classifier) RelativeToProject(path string) string {
	rel, err := filepath.Rel(c.projectRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// FilterResult reports which glob patterns matched nothing, per §4.1's
// non-fatal "pattern matched zero headers" warning.
type FilterResult struct {
	Kept           []string
	EmptyPatterns  []string
}

// ApplyFilters applies an include pattern (intersection) then each exclude
// pattern in order, over project-relative paths. headers is the absolute
// path set; relative paths are computed via RelativeToProject for matching
// but the returned Kept slice preserves the original absolute paths.
func (c *Classifier) ApplyFilters(headers []string, includePattern string, excludePatterns []string) FilterResult {
	kept := headers
	var emptyPatterns []string

	if includePattern != "" {
		matched := c.matchAll(kept, includePattern)
		if len(matched) == 0 {
			emptyPatterns = append(emptyPatterns, includePattern)
		}
		kept = matched
	}

	for _, pattern := range excludePatterns {
		before := len(kept)
		kept = c.excludeAll(kept, pattern)
		if before > 0 && len(kept) == before {
			emptyPatterns = append(emptyPatterns, pattern)
		}
	}

	return FilterResult{Kept: kept, EmptyPatterns: emptyPatterns}
}

func (c *Classifier) matchAll(paths []string, pattern string) []string {
	var out []string
	for _, p := range paths {
		rel := c.RelativeToProject(p)
		if matched, _ := doublestar.Match(pattern, rel); matched {
			out = append(out, p)
			continue
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(p)); matched {
			out = append(out, p)
		}
	}
	return out
}

func (c *Classifier) excludeAll(paths []string, pattern string) []string {
	var out []string
	for _, p := range paths {
		rel := c.RelativeToProject(p)
		matched, _ := doublestar.Match(pattern, rel)
		if !matched {
			matched, _ = doublestar.Match(pattern, filepath.Base(p))
		}
		if !matched {
			out = append(out, p)
		}
	}
	return out
}

// IsHeaderExtension reports whether path has a recognized header suffix.
func IsHeaderExtension(path string) bool {
	for _, ext := range []string{".h", ".hpp", ".hh", ".hxx", ".inl"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// IsSourceExtension reports whether path has a recognized C/C++ translation
// unit extension.
func IsSourceExtension(path string) bool {
	for _, ext := range []string{".c", ".cc", ".cpp", ".cxx"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
