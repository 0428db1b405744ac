package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/goalpace/internal/source"
	"github.com/theirongolddev/goalpace/internal/store"
)

// ImportResult extends LoadResult with incremental-import bookkeeping.
type ImportResult struct {
	LoadResult
	Unchanged int // files whose mtime and size match the last import
	Reparsed  int
	Removed   int // tracked files under dir that no longer exist
}

// ImportLogs syncs the entry logs under dir into st. Files whose mtime and
// size match the last import are skipped unless full is set. A changed file
// replaces every entry previously imported from it.
func ImportLogs(ctx context.Context, dir string, st *store.Store, full bool, progressFn ProgressFunc) (*ImportResult, error) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	tracked, err := st.TrackedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading file tracker: %w", err)
	}

	result := &ImportResult{LoadResult: LoadResult{TotalFiles: len(files)}}

	// Diff: partition into changed and unchanged
	var toReparse []source.DiscoveredFile
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		seen[f.Path] = struct{}{}
		info, err := os.Stat(f.Path)
		if err != nil {
			result.FileErrors++
			continue
		}
		prev, ok := tracked[f.Path]
		if !full && ok && prev.MtimeNs == info.ModTime().UnixNano() && prev.SizeBytes == info.Size() {
			result.Unchanged++
			continue
		}
		toReparse = append(toReparse, f)
	}
	result.Reparsed = len(toReparse)

	if len(toReparse) > 0 {
		results := parseAll(toReparse, result.Unchanged, result.TotalFiles, progressFn)
		for i, pr := range results {
			if pr.Err != nil {
				result.FileErrors++
				continue
			}
			info, err := os.Stat(toReparse[i].Path)
			if err != nil {
				result.FileErrors++
				continue
			}
			if err := st.ReplaceFileEntries(ctx, toReparse[i].Path, pr.Entries, info.ModTime().UnixNano(), info.Size()); err != nil {
				return result, fmt.Errorf("importing %s: %w", toReparse[i].Path, err)
			}
			result.ParsedFiles++
			result.ParseErrors += pr.ParseErrors
			result.Entries = append(result.Entries, pr.Entries...)
		}
	}

	for path := range tracked {
		if _, ok := seen[path]; ok || !within(dir, path) {
			continue
		}
		if err := st.ForgetFile(ctx, path); err != nil {
			return result, fmt.Errorf("forgetting %s: %w", path, err)
		}
		result.Removed++
	}

	return result, nil
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
