// Package vcsgraph reconstructs a baseline include graph from VCS history
// and computes per-header change frequency, so a diff can compare the
// working tree against a prior commit without a separately saved snapshot.
package vcsgraph

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/scanner"
)

// Service reconstructs baselines and change frequencies against git
// repositories; each call opens the repository at the root it is given.
type Service struct{}

// NewService constructs a vcsgraph.Service. go-git repositories are opened
// per call since callers may target different repo roots across a
// process's lifetime.
func NewService() *Service { return &Service{} }

func (s *Service) open(repoRoot string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(repoRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("%s is not a git repository", repoRoot), err)
	}
	return repo, nil
}

// CommitHash returns the commit hash HEAD points at in the repository at
// repoRoot.
func (s *Service) CommitHash(ctx context.Context, repoRoot string) (string, error) {
	repo, err := s.open(repoRoot)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", domain.NewAnalysisError("failed to resolve HEAD", err)
	}
	return head.Hash().String(), nil
}

// ReconstructBaseline rebuilds the include graph as it existed at ref by
// starting from the working-tree scan result, dropping headers added since
// ref, restoring headers deleted since ref (re-parsed from the ref blob),
// and re-parsing headers modified since ref from their ref content —
// mirroring the original tool's four-step working-tree-to-baseline
// transform. Only project headers (""-style includes) are considered;
// system includes are skipped, matching the original's scope.
func (s *Service) ReconstructBaseline(ctx context.Context, repoRoot, ref string, working *domain.ScanResult) (*domain.ScanResult, error) {
	repo, err := s.open(repoRoot)
	if err != nil {
		return nil, err
	}
	commitHash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("invalid git reference: %s", ref), err)
	}
	commit, err := repo.CommitObject(*commitHash)
	if err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("failed to load commit %s", ref), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, domain.NewAnalysisError("failed to read commit tree", err)
	}

	headersInRef := make(map[string]bool)
	err = tree.Files().ForEach(func(f *object.File) error {
		if isHeaderPath(f.Name) {
			headersInRef[f.Name] = true
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewAnalysisError("failed to enumerate commit tree", err)
	}

	baselineHeaders := make(map[string]bool, len(working.AllHeaders))
	baselineGraph := make(map[string][]string, len(working.AllHeaders))
	for _, h := range working.AllHeaders {
		baselineHeaders[h] = true
		baselineGraph[h] = append([]string(nil), working.IncludeGraph[h]...)
	}

	for h := range baselineHeaders {
		rel, relErr := filepath.Rel(repoRoot, h)
		if relErr != nil || !headersInRef[filepath.ToSlash(rel)] {
			delete(baselineHeaders, h)
			delete(baselineGraph, h)
			for other, deps := range baselineGraph {
				baselineGraph[other] = remove(deps, h)
			}
		}
	}

	knownHeaders := make([]string, 0, len(working.AllHeaders))
	knownHeaders = append(knownHeaders, working.AllHeaders...)

	for refPath := range headersInRef {
		abs := filepath.Join(repoRoot, filepath.FromSlash(refPath))
		if baselineHeaders[abs] {
			continue
		}
		content, readErr := readBlob(tree, refPath)
		if readErr != nil {
			continue
		}
		baselineHeaders[abs] = true
		baselineGraph[abs] = resolveAgainst(scanner.ExtractIncludeOperands(content), knownHeaders, abs)
	}

	for h := range baselineHeaders {
		rel, relErr := filepath.Rel(repoRoot, h)
		if relErr != nil {
			continue
		}
		slashRel := filepath.ToSlash(rel)
		if !headersInRef[slashRel] {
			continue
		}
		content, readErr := readBlob(tree, slashRel)
		if readErr != nil {
			continue
		}
		baselineGraph[h] = resolveAgainst(scanner.ExtractIncludeOperands(content), knownHeaders, h)
	}

	headers := make([]string, 0, len(baselineHeaders))
	for h := range baselineHeaders {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	fileTypes := make(map[string]domain.FileType, len(headers))
	for _, h := range headers {
		if ft, ok := working.FileTypes[h]; ok {
			fileTypes[h] = ft
		} else {
			fileTypes[h] = domain.FileTypeProject
		}
	}

	return &domain.ScanResult{
		IncludeGraph: baselineGraph,
		AllHeaders:   headers,
		SourceToDeps: working.SourceToDeps,
		FileTypes:    fileTypes,
	}, nil
}

// ChangeFrequency counts, for each path, how many of the last commitWindow
// commits touched it — a volatile, high-fan-in header is the worst
// combination for rebuild cost.
func (s *Service) ChangeFrequency(ctx context.Context, repoRoot string, paths []string, commitWindow int) (map[string]int, error) {
	counts := make(map[string]int, len(paths))
	for _, p := range paths {
		counts[p] = 0
	}
	if len(paths) == 0 {
		return counts, nil
	}

	repo, err := s.open(repoRoot)
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, domain.NewAnalysisError("failed to resolve HEAD", err)
	}
	commitIter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, domain.NewAnalysisError("failed to read commit history", err)
	}

	relOf := make(map[string]string, len(paths))
	for _, p := range paths {
		if rel, relErr := filepath.Rel(repoRoot, p); relErr == nil {
			relOf[filepath.ToSlash(rel)] = p
		}
	}

	seen := 0
	var prev *object.Commit
	err = commitIter.ForEach(func(c *object.Commit) error {
		if commitWindow > 0 && seen >= commitWindow {
			return fmt.Errorf("stop")
		}
		seen++
		if prev != nil {
			patch, patchErr := prev.Patch(c)
			if patchErr == nil {
				for _, fp := range patch.Stats() {
					if orig, ok := relOf[fp.Name]; ok {
						counts[orig]++
					}
				}
			}
		}
		prev = c
		return nil
	})
	if err != nil && err.Error() != "stop" {
		return nil, domain.NewAnalysisError("failed to walk commit history", err)
	}
	return counts, nil
}

func isHeaderPath(name string) bool {
	for _, ext := range []string{".h", ".hpp", ".hh", ".hxx", ".inl"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func readBlob(tree *object.Tree, path string) ([]byte, error) {
	f, err := tree.File(path)
	if err != nil {
		return nil, err
	}
	r, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func remove(items []string, target string) []string {
	out := items[:0]
	for _, i := range items {
		if i != target {
			out = append(out, i)
		}
	}
	return out
}

func resolveAgainst(operands []string, knownHeaders []string, self string) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, op := range operands {
		for _, h := range knownHeaders {
			if h == self {
				continue
			}
			if strings.HasSuffix(h, "/"+op) || h == op {
				if !seen[h] {
					seen[h] = true
					deps = append(deps, h)
				}
				break
			}
		}
	}
	sort.Strings(deps)
	return deps
}
