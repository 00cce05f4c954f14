// Package compiledb loads, regenerates and caches a filtered
// compile_commands.json for a ninja build directory.
package compiledb

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ludo-technologies/buildcheck/domain"
)

// Entry is one compile command, as read from compile_commands.json.
type Entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	Output    string   `json:"output,omitempty"`
}

// ToolCandidates lists the build-tool executable names tried, in order, to
// regenerate compile_commands.json.
var ToolCandidates = domain.DefaultBuildToolCandidates()

// Load returns the filtered compile database for buildDir: only entries
// whose command contains a -c flag, a recognized compiler, and a recognized
// C/C++ source extension. Generates compile_commands.json via the build
// tool's compdb query when missing, and invalidates the on-disk filtered
// cache when build.ninja is newer.
func Load(ctx context.Context, buildDir string) ([]Entry, error) {
	ninjaPath := filepath.Join(buildDir, "build.ninja")
	ninjaInfo, err := os.Stat(ninjaPath)
	if err != nil {
		return nil, domain.NewInvalidInputError("build directory has no build.ninja: "+buildDir, err)
	}

	dbPath := filepath.Join(buildDir, "compile_commands.json")
	dbInfo, err := os.Stat(dbPath)
	if err != nil || ninjaInfo.ModTime().After(dbInfo.ModTime()) {
		if err := regenerate(ctx, buildDir); err != nil {
			return nil, err
		}
		dbInfo, err = os.Stat(dbPath)
		if err != nil {
			return nil, domain.NewAnalysisError("compile_commands.json missing after regeneration", err)
		}
	}

	cachePath := filteredCachePath(buildDir)
	if cacheInfo, err := os.Stat(cachePath); err == nil && cacheIsFresh(cacheInfo, dbInfo, ninjaInfo) {
		if entries, err := readEntries(cachePath); err == nil {
			return entries, nil
		}
	}

	raw, err := readEntries(dbPath)
	if err != nil {
		return nil, domain.NewParseError(dbPath, err)
	}

	filtered := filterCCompileEntries(raw)
	if err := writeCache(cachePath, filtered); err != nil {
		return nil, err
	}
	return filtered, nil
}

// cacheIsFresh guards the mtime comparison against clock skew per the source
// pattern strategy: the cache is stale whenever either source is strictly
// newer, or ties it on mtime but differs in size.
func cacheIsFresh(cache, db, ninja os.FileInfo) bool {
	if db.ModTime().After(cache.ModTime()) || ninja.ModTime().After(cache.ModTime()) {
		return false
	}
	if db.ModTime().Equal(cache.ModTime()) && db.Size() != cache.Size() {
		return false
	}
	return true
}

func filteredCachePath(buildDir string) string {
	return filepath.Join(buildDir, ".buildcheck_compiledb_cache.json")
}

func readEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func writeCache(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return domain.NewOutputError("failed to marshal filtered compile database", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.NewOutputError("failed to write filtered compile database cache", err)
	}
	return nil
}

// regenerate invokes the build tool's compdb query in buildDir, trying each
// candidate name in ToolCandidates in order.
func regenerate(ctx context.Context, buildDir string) error {
	var lastErr error
	for _, name := range ToolCandidates {
		path, err := exec.LookPath(name)
		if err != nil {
			lastErr = err
			continue
		}

		cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		cmd := exec.CommandContext(cctx, path, "-t", "compdb")
		cmd.Dir = buildDir
		out, err := cmd.Output()
		if err != nil {
			lastErr = err
			continue
		}

		outPath := filepath.Join(buildDir, "compile_commands.json")
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return domain.NewOutputError("failed to write compile_commands.json", err)
		}
		return nil
	}
	return domain.NewAnalysisError("no build tool found; tried: "+strings.Join(ToolCandidates, ", "), lastErr)
}

var recognizedCompilers = []string{"cc", "c++", "gcc", "g++", "clang", "clang++"}

func filterCCompileEntries(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if !hasSourceExtension(e.File) {
			continue
		}
		cmdline := e.Command
		if cmdline == "" {
			cmdline = strings.Join(e.Arguments, " ")
		}
		if !strings.Contains(cmdline, " -c ") && !strings.HasSuffix(cmdline, " -c") {
			continue
		}
		if !containsRecognizedCompiler(cmdline) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func containsRecognizedCompiler(cmdline string) bool {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return false
	}
	base := filepath.Base(fields[0])
	for _, c := range recognizedCompilers {
		if base == c || strings.HasPrefix(base, c+"-") {
			return true
		}
	}
	return false
}

func hasSourceExtension(path string) bool {
	for _, ext := range domain.DefaultSourceExtensions() {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
