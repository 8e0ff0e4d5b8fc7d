// Package scan discovers media files under one or more source roots.
package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Options controls which files a scan reports.
type Options struct {
	// MaxDepth limits recursion below the root (-1 = unlimited, 0 = no
	// recursion).
	MaxDepth int

	// Extensions is the case-insensitive allow-list of file extensions.
	Extensions []string

	// Filter, when set, is an extra predicate applied to every candidate
	// path (relative to the scan root). Files it rejects are dropped.
	Filter func(path string) bool
}

// DefaultOptions returns unlimited recursion over the default media
// extensions.
func DefaultOptions() Options {
	return Options{
		MaxDepth:   -1,
		Extensions: DefaultExtensions(),
	}
}

// DefaultExtensions lists the media file types handled by default.
func DefaultExtensions() []string {
	return []string{
		".jpg", ".jpeg", ".gif", ".png", ".webp", ".raw", ".mp4", ".mkv",
	}
}

// Record describes one discovered file.
type Record struct {
	Path          string    `json:"path"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	ModTime       time.Time `json:"mod_time"`
}

// Scan returns the paths of all matching files under root, relative to root
// and sorted lexicographically.
func Scan(fsys fs.FS, root string, opts Options) ([]string, error) {
	records, err := ScanRecords(fsys, root, opts)
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(records))
	for _, r := range records {
		matches = append(matches, r.Path)
	}
	return matches, nil
}

// ScanRecords returns a Record per matching file under root.
func ScanRecords(fsys fs.FS, root string, opts Options) ([]Record, error) {
	if opts.MaxDepth < -1 {
		return nil, fs.ErrInvalid
	}

	allowed := normalizeExts(opts.Extensions)

	var matches []Record

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if opts.MaxDepth >= 0 {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return relErr
				}
				if rel == "." {
					return nil
				}
				if depth(rel) > opts.MaxDepth {
					return fs.SkipDir
				}
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		if opts.MaxDepth >= 0 && depth(rel) > opts.MaxDepth {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(rel))
		if !allowed[ext] {
			return nil
		}
		if opts.Filter != nil && !opts.Filter(rel) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}

		matches = append(matches, Record{
			Path:          filepath.ToSlash(rel),
			FileSizeBytes: info.Size(),
			ModTime:       info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Path < matches[j].Path
	})
	return matches, nil
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}

func depth(rel string) int {
	rel = filepath.Clean(rel)
	if rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/")
}
