package app

import "github.com/ludo-technologies/buildcheck/domain"

// ResolveFilePaths resolves file paths for analysis.
// If all paths are already files (not directories), returns them directly.
// Otherwise, collects C/C++ source files from the provided paths using the
// specified filters.
//
// Parameters:
//   - fileReader: The file reader abstraction for file operations
//   - paths: The input paths to resolve (can be files or directories)
//   - recursive: Whether to recursively collect files from subdirectories
//   - includePatterns: Glob patterns for files to include
//   - excludePatterns: Glob patterns for files to exclude
//   - validateSourceFile: If true, also validates paths are C/C++ source
//     files (stricter check)
//
// Returns:
//   - []string: List of resolved file paths
//   - error: Any error encountered during resolution
//
// This function optimizes the case where an analyze use case pre-collects
// files and passes them to individual analysis use cases, avoiding
// redundant file collection.
func ResolveFilePaths(
	fileReader domain.FileReader,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
	validateSourceFile bool,
) ([]string, error) {
	// Check if all paths are already files (not directories)
	allFiles := true
	for _, path := range paths {
		if validateSourceFile && !fileReader.IsValidSourceFile(path) {
			allFiles = false
			break
		}

		// Check if file exists (FileExists returns true only for files, not directories)
		exists, err := fileReader.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	// If all paths are already files, no need to collect again
	if allFiles {
		return paths, nil
	}

	files, err := fileReader.CollectSourceFiles(
		paths,
		recursive,
		includePatterns,
		excludePatterns,
	)
	if err != nil {
		return nil, err
	}

	return files, nil
}
