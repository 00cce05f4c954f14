package service

import (
	"testing"
)

func TestFileReader_GlobstarPatterns(t *testing.T) {
	fr := NewFileReader()

	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		// Basic globstar patterns
		{
			name:     "directory with globstar matches files in subdirs",
			pattern:  "engine/cli/**",
			path:     "engine/cli/main.cpp",
			expected: true,
		},
		{
			name:     "directory with globstar matches files in nested subdirs",
			pattern:  "engine/cli/**",
			path:     "engine/cli/subdir/file.cpp",
			expected: true,
		},
		{
			name:     "directory with globstar doesn't match outside directory",
			pattern:  "engine/cli/**",
			path:     "other/dir/file.cpp",
			expected: false,
		},
		{
			name:     "globstar with suffix matches anywhere",
			pattern:  "**/test.cpp",
			path:     "deep/nested/test.cpp",
			expected: true,
		},
		{
			name:     "globstar with suffix matches at root",
			pattern:  "**/test.cpp",
			path:     "test.cpp",
			expected: true,
		},
		// Test the actual default config patterns
		{
			name:     "build directory exclusion",
			pattern:  "build/**",
			path:     "build/obj/engine/module.o",
			expected: true,
		},
		{
			name:     "cmake-build-debug directory exclusion",
			pattern:  "cmake-build-debug/**",
			path:     "src/cmake-build-debug/module.cpp",
			expected: true,
		},
		{
			name:     "bazel-out directory exclusion",
			pattern:  "bazel-out/**",
			path:     "bazel-out/k8-fastbuild/bin/app.cpp",
			expected: true,
		},
		{
			name:     "bazel-bin directory exclusion",
			pattern:  "bazel-bin/**",
			path:     "bazel-bin/pkg/generated.h",
			expected: true,
		},
		{
			name:     "vs build directory variants",
			pattern:  ".vs/**",
			path:     ".vs/project/config.obj",
			expected: true,
		},
		// Regular patterns (should still work)
		{
			name:     "simple wildcard pattern",
			pattern:  "test_*.cpp",
			path:     "test_example.cpp",
			expected: true,
		},
		{
			name:     "simple wildcard pattern no match",
			pattern:  "test_*.cpp",
			path:     "example_test.cpp",
			expected: false,
		},
		{
			name:     "directory pattern without globstar",
			pattern:  "engine/cli/*.cpp",
			path:     "engine/cli/main.cpp",
			expected: true,
		},
		{
			name:     "directory pattern without globstar doesn't match subdirs",
			pattern:  "engine/cli/*.cpp",
			path:     "engine/cli/subdir/file.cpp",
			expected: false,
		},
		// Edge cases
		{
			name:     "globstar at end matches directory itself",
			pattern:  "build/**",
			path:     "build",
			expected: true,
		},
		{
			name:     "nested globstar pattern (realistic use case)",
			pattern:  "cmake-build-debug/**",
			path:     "/home/user/project/src/cmake-build-debug/module.o",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fr.matchesPattern(tt.pattern, tt.path)
			if result != tt.expected {
				t.Errorf("matchesPattern(%q, %q) = %v, expected %v", tt.pattern, tt.path, result, tt.expected)
			}
		})
	}
}

func TestFileReader_ShouldIncludeFile_ExcludePatterns(t *testing.T) {
	fr := NewFileReader()

	excludePatterns := []string{
		"test_*.cpp",
		"*_test.cpp",
		"engine/cli/**",
		"build/**",
	}

	tests := []struct {
		name     string
		path     string
		expected bool // true = should include, false = should exclude
	}{
		{
			name:     "normal file should be included",
			path:     "src/main.cpp",
			expected: true,
		},
		{
			name:     "test file should be excluded",
			path:     "test_example.cpp",
			expected: false,
		},
		{
			name:     "another test file should be excluded",
			path:     "example_test.cpp",
			expected: false,
		},
		{
			name:     "file in engine/cli should be excluded",
			path:     "engine/cli/main.cpp",
			expected: false,
		},
		{
			name:     "file in engine/cli subdir should be excluded",
			path:     "engine/cli/commands/run.cpp",
			expected: false,
		},
		{
			name:     "file in build should be excluded",
			path:     "build/obj/engine/module.cpp",
			expected: false,
		},
		{
			name:     "file outside excluded paths should be included",
			path:     "engine/core/main.cpp",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fr.shouldIncludeFile(tt.path, []string{"*.cpp"}, excludePatterns)
			if result != tt.expected {
				if tt.expected {
					t.Errorf("shouldIncludeFile(%q) = false, expected true (file should be included)", tt.path)
				} else {
					t.Errorf("shouldIncludeFile(%q) = true, expected false (file should be excluded)", tt.path)
				}
			}
		})
	}
}
