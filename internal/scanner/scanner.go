// Package scanner invokes the external compiler dependency scanner over a
// filtered compilation database, parses its makefile-format output into a
// per-source transitive dependency set, and resolves direct #include
// relationships by scanning each project header's source text.
package scanner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ludo-technologies/buildcheck/domain"
	"github.com/ludo-technologies/buildcheck/internal/compiledb"
	"github.com/ludo-technologies/buildcheck/internal/pathclassifier"
)

// Candidates lists scanner executable names tried, in order; the first that
// responds to --version wins.
var Candidates = domain.DefaultScannerCandidates()

// Find locates the first responsive scanner candidate.
func Find(ctx context.Context) (string, string, error) {
	for _, name := range Candidates {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		out, err := exec.CommandContext(cctx, path, "--version").Output()
		cancel()
		if err != nil {
			continue
		}
		return name, firstLine(string(out)), nil
	}
	return "", "", domain.NewAnalysisError(
		fmt.Sprintf("no dependency scanner found; tried: %s", strings.Join(Candidates, ", ")), nil)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

// Options configures a scan run.
type Options struct {
	BuildDirectory    string
	IncludeThirdParty bool
	TimeoutSeconds    int
	Classifier        *pathclassifier.Classifier
}

// Run performs the full L2 pipeline: load the compile database, invoke the
// scanner, parse its output, and resolve direct includes.
func Run(ctx context.Context, opts Options) (*domain.ScanResult, error) {
	start := time.Now()

	entries, err := compiledb.Load(ctx, opts.BuildDirectory)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &domain.ScanResult{
			IncludeGraph: map[string][]string{},
			AllHeaders:   nil,
			SourceToDeps: map[string][]string{},
			FileTypes:    map[string]domain.FileType{},
		}, nil
	}

	scannerName, _, err := Find(ctx)
	if err != nil {
		return nil, err
	}

	timeout := opts.TimeoutSeconds
	if timeout <= 0 {
		timeout = domain.DefaultScannerTimeoutSeconds
	}

	cctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	dbPath := filepath.Join(opts.BuildDirectory, "compile_commands.json")
	jobs := runtime.NumCPU()
	cmd := exec.CommandContext(cctx, scannerName,
		"-compilation-database="+dbPath, "-format=make", "-j", strconv.Itoa(jobs))
	cmd.Dir = opts.BuildDirectory

	out, err := cmd.Output()
	if cctx.Err() != nil {
		return nil, domain.NewTimeoutError(
			fmt.Sprintf("dependency scanner timed out after %ds", timeout), cctx.Err())
	}
	var failed []string
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			failed = splitLines(string(exitErr.Stderr))
		} else {
			return nil, domain.NewAnalysisError("dependency scanner failed to start", err)
		}
	}

	sourceToDeps, allHeaders := ParseMakeOutput(string(out))
	if len(sourceToDeps) == 0 && len(failed) > 0 {
		return nil, domain.NewAnalysisError(
			fmt.Sprintf("dependency scanner produced no usable output (%d entries failed)", len(failed)), nil)
	}

	classifier := opts.Classifier
	if classifier == nil {
		classifier = pathclassifier.New(opts.BuildDirectory, opts.BuildDirectory)
	}

	fileTypes := make(map[string]domain.FileType, len(allHeaders))
	var retained []string
	for h := range allHeaders {
		ft := classifier.Classify(h)
		if ft == domain.FileTypeSystem {
			continue
		}
		if ft == domain.FileTypeThirdParty && !opts.IncludeThirdParty {
			continue
		}
		fileTypes[h] = ft
		retained = append(retained, h)
	}
	sort.Strings(retained)

	includeGraph := resolveDirectIncludes(retained, sourceToDeps)

	sortedSourceToDeps := make(map[string][]string, len(sourceToDeps))
	for src, deps := range sourceToDeps {
		var kept []string
		for _, d := range deps {
			if _, ok := fileTypes[d]; ok {
				kept = append(kept, d)
			}
		}
		sortedSourceToDeps[src] = kept
	}

	return &domain.ScanResult{
		IncludeGraph:    includeGraph,
		AllHeaders:      retained,
		SourceToDeps:    sortedSourceToDeps,
		FileTypes:       fileTypes,
		ScanTimeSeconds: time.Since(start).Seconds(),
		FailedEntries:   failed,
	}, nil
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// ParseMakeOutput parses clang-scan-deps-style makefile output: one target
// line (ending without a trailing backslash) per translation unit, where
// the first token after the colon is the source and the rest are the
// transitive dependency list.
func ParseMakeOutput(output string) (sourceToDeps map[string][]string, allHeaders map[string]struct{}) {
	sourceToDeps = make(map[string][]string)
	allHeaders = make(map[string]struct{})

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var current []string
	flush := func() {
		if len(current) < 2 {
			current = nil
			return
		}
		source := current[1]
		var deps []string
		for _, d := range current[2:] {
			if d == "" {
				continue
			}
			deps = append(deps, d)
			allHeaders[d] = struct{}{}
		}
		sourceToDeps[source] = deps
		current = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		isTarget := !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t")
		if isTarget && len(current) > 0 {
			flush()
		}
		trimmed = strings.TrimSuffix(trimmed, "\\")
		trimmed = strings.TrimSpace(trimmed)
		tokens := strings.Fields(trimmed)
		for i, tok := range tokens {
			if i == 0 {
				tok = strings.TrimSuffix(tok, ":")
			}
			current = append(current, tok)
		}
	}
	flush()
	return sourceToDeps, allHeaders
}

var includeDirective = regexp.MustCompile(`^\s*#\s*include\s*["<]([^">]+)[">]`)

// ExtractIncludeOperands returns the raw #include operands found in a
// header's source text, one per directive, in file order.
func ExtractIncludeOperands(content []byte) []string {
	var operands []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if m := includeDirective.FindSubmatch(scanner.Bytes()); m != nil {
			operands = append(operands, string(m[1]))
		}
	}
	return operands
}

// resolveDirectIncludes builds the direct include_graph (§4.3 step 5): for
// each project header appearing as a dependency of some source, its source
// text is read from disk (it must exist, since it was retained as a known
// header) and each #include operand is resolved to a full path by exact
// suffix match, then unambiguous basename match, else dropped.
func resolveDirectIncludes(headers []string, sourceToDeps map[string][]string) map[string][]string {
	basenameIndex := make(map[string][]string, len(headers))
	for _, h := range headers {
		base := filepath.Base(h)
		basenameIndex[base] = append(basenameIndex[base], h)
	}

	type job struct{ header string }
	jobs := make(chan job, len(headers))
	for _, h := range headers {
		jobs <- job{header: h}
	}
	close(jobs)

	results := make(map[string][]string, len(headers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				deps := resolveOneHeader(j.header, headers, basenameIndex)
				mu.Lock()
				results[j.header] = deps
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return results
}

func resolveOneHeader(header string, knownHeaders []string, basenameIndex map[string][]string) []string {
	content, err := readFileFunc(header)
	if err != nil {
		return nil
	}
	operands := ExtractIncludeOperands(content)
	seen := make(map[string]struct{}, len(operands))
	var deps []string
	for _, op := range operands {
		resolved, ok := resolveOperand(op, knownHeaders, basenameIndex)
		if !ok || resolved == header {
			continue
		}
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		deps = append(deps, resolved)
	}
	sort.Strings(deps)
	return deps
}

func resolveOperand(operand string, knownHeaders []string, basenameIndex map[string][]string) (string, bool) {
	var suffixMatch string
	suffixMatches := 0
	for _, h := range knownHeaders {
		if strings.HasSuffix(h, "/"+operand) || h == operand {
			suffixMatch = h
			suffixMatches++
		}
	}
	if suffixMatches == 1 {
		return suffixMatch, true
	}
	if candidates, ok := basenameIndex[filepath.Base(operand)]; ok && len(candidates) == 1 {
		return candidates[0], true
	}
	return "", false
}

// readFileFunc is a var so tests can stub filesystem access without a real
// header tree on disk.
var readFileFunc = defaultReadFile
