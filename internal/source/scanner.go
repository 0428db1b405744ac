package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir walks dir and returns every CSV and JSONL log beneath it, sorted by
// path. Hidden directories are skipped. A missing dir yields no files.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		if df, ok := classify(dir); ok {
			return []DiscoveredFile{df}, nil
		}
		return nil, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if df, ok := classify(path); ok {
			files = append(files, df)
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func classify(path string) (DiscoveredFile, bool) {
	df := DiscoveredFile{Path: path}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		df.Format = FormatCSV
	case ".jsonl", ".ndjson":
		df.Format = FormatJSONL
	default:
		return df, false
	}
	return df, true
}
