// Package plan computes collision-free destination paths for a batch of
// files, optionally classified into date-based folders.
package plan

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samuelSanchezDev/picture-sorter/pkg/datename"
)

// Operation represents a planned copy from source to destination.
type Operation struct {
	SourcePath      string
	DestinationPath string
}

// NameGroup is a set of source paths sharing one terminal filename, in the
// order they were encountered.
type NameGroup []string

// DefaultSuffix separates a renamed file's stem from its collision index.
const DefaultSuffix = "_#"

// NoDateKey is the bucket for files whose name yields no date.
const NoDateKey = "no-date"

// SplitByName partitions files by exact terminal filename.
//
// Files whose name is unique in the batch come back in the first slice,
// untouched. Files sharing a name come back grouped, one NameGroup per
// distinct name. First-seen order is preserved for names and for members
// within a group.
func SplitByName(files []string) (unique []string, colliding []NameGroup) {
	var names []string
	groups := make(map[string]NameGroup)
	for _, f := range files {
		name := filepath.Base(f)
		if _, seen := groups[name]; !seen {
			names = append(names, name)
		}
		groups[name] = append(groups[name], f)
	}

	for _, name := range names {
		g := groups[name]
		if len(g) == 1 {
			unique = append(unique, g[0])
		} else {
			colliding = append(colliding, g)
		}
	}
	return unique, colliding
}

// numberedNames generates size names of the form stem+suffix+index+ext with
// indices 1..size, zero-padded to the width of size (photo_#003.jpg).
func numberedNames(stem, ext, suffix string, size int) []string {
	width := len(strconv.Itoa(size))
	names := make([]string, 0, size)
	for i := 1; i <= size; i++ {
		names = append(names, fmt.Sprintf("%s%s%0*d%s", stem, suffix, width, i, ext))
	}
	return names
}

// Plan maps every file to a destination under destRoot.
//
// Unique names pass through unchanged; colliding names are renamed with
// numbered suffixes in input order. The returned destinations are pairwise
// distinct. An empty suffix selects DefaultSuffix. Plan performs no I/O.
func Plan(files []string, destRoot, suffix string) []Operation {
	if suffix == "" {
		suffix = DefaultSuffix
	}

	unique, colliding := SplitByName(files)
	ops := make([]Operation, 0, len(files))

	for _, src := range unique {
		ops = append(ops, Operation{
			SourcePath:      src,
			DestinationPath: filepath.Join(destRoot, filepath.Base(src)),
		})
	}

	for _, group := range colliding {
		base := filepath.Base(group[0])
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		names := numberedNames(stem, ext, suffix, len(group))
		for i, src := range group {
			ops = append(ops, Operation{
				SourcePath:      src,
				DestinationPath: filepath.Join(destRoot, names[i]),
			})
		}
	}

	return ops
}

// Depth is the level of date-based folder nesting.
type Depth int

const (
	DepthNone  Depth = iota // everything directly under the output root
	DepthYear               // YYYY/
	DepthMonth              // YYYY/MM - Mon/
	DepthDay                // YYYY/MM - Mon/DD - Day/
)

// layout returns the time format for a depth. Each level nests the previous.
func (d Depth) layout() string {
	switch d {
	case DepthYear:
		return "2006"
	case DepthMonth:
		return "2006/01 - Jan"
	case DepthDay:
		return "2006/01 - Jan/02 - Mon"
	}
	return ""
}

// Bucket is an ordered set of files sharing one date key.
type Bucket struct {
	Key   string
	Files []string
}

// BucketByDate partitions files by the date extracted from their filenames,
// formatted at the given depth. Files without an extractable date land in
// the NoDateKey bucket. Buckets appear in first-seen key order, files in
// input order. A nil parser chain selects datename.Parsers().
func BucketByDate(files []string, depth Depth, parsers []datename.Parser) []Bucket {
	if parsers == nil {
		parsers = datename.Parsers()
	}
	layout := depth.layout()

	var keys []string
	byKey := make(map[string][]string)
	for _, f := range files {
		key := NoDateKey
		if t, ok := datename.ExtractWith(parsers, filepath.Base(f)); ok {
			key = t.Format(layout)
		}
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], f)
	}

	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, Bucket{Key: key, Files: byKey[key]})
	}
	return buckets
}

// PlanBuckets plans all files under outDir at the given depth.
//
// DepthNone skips date classification entirely and plans the whole batch in
// one invocation. Other depths plan each date bucket under its own subtree,
// so name collisions are resolved per bucket.
func PlanBuckets(files []string, outDir string, depth Depth, suffix string) []Operation {
	if depth == DepthNone {
		return Plan(files, outDir, suffix)
	}

	var ops []Operation
	for _, b := range BucketByDate(files, depth, nil) {
		root := filepath.Join(outDir, filepath.FromSlash(b.Key))
		ops = append(ops, Plan(b.Files, root, suffix)...)
	}
	return ops
}
