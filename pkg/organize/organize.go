// Package organize runs the full pipeline: discover media files, drop exact
// duplicates, plan date-classified destinations and copy (or archive) the
// result.
package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"

	"github.com/samuelSanchezDev/picture-sorter/pkg/archive"
	"github.com/samuelSanchezDev/picture-sorter/pkg/config"
	"github.com/samuelSanchezDev/picture-sorter/pkg/copy"
	"github.com/samuelSanchezDev/picture-sorter/pkg/dedup"
	"github.com/samuelSanchezDev/picture-sorter/pkg/plan"
	"github.com/samuelSanchezDev/picture-sorter/pkg/scan"
)

// Result summarizes a completed run.
type Result struct {
	Found   int    // media files discovered across all inputs
	Unique  int    // files left after deduplication
	Copied  int    // files placed at their destination
	Bytes   int64  // total size of the discovered files
	Archive string // archive path, empty when no archive was requested
}

func (r *Result) String() string {
	s := fmt.Sprintf("organized %d of %d files (%s scanned, %d unique)",
		r.Copied, r.Found, humanize.IBytes(uint64(r.Bytes)), r.Unique)
	if r.Archive != "" {
		s += fmt.Sprintf(", archived to %s", r.Archive)
	}
	return s
}

// Run executes the pipeline described by cfg.
//
// The run either completes fully or aborts before any destination content is
// at risk: validation and hashing failures happen before the first copy, and
// a copy failure stops the batch with the offending path. Staging used for
// archive runs is always removed.
func Run(cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	alg, err := dedup.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	var format archive.Format
	if cfg.Compress != "" {
		format, err = archive.ParseFormat(cfg.Compress)
		if err != nil {
			return nil, err
		}
	}

	files, totalBytes, err := discover(cfg)
	if err != nil {
		return nil, err
	}
	glog.Infof("total found: %d media files (%s)", len(files), humanize.IBytes(uint64(totalBytes)))

	unique, err := dedup.Deduplicate(files, dedup.Options{Algorithm: alg, Workers: cfg.Workers})
	if err != nil {
		return nil, err
	}
	glog.Infof("unique files: %d", len(unique))

	res := &Result{Found: len(files), Unique: len(unique), Bytes: totalBytes}

	outRoot := cfg.Output
	if format != "" {
		// Archive runs copy into a throwaway staging tree first. The
		// staging dir lives beside the output so the final archive and
		// the staged files share a filesystem.
		parent := filepath.Dir(cfg.Output)
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("create output parent %s: %w", parent, err)
		}
		staging, err := os.MkdirTemp(parent, ".picture-sorter-")
		if err != nil {
			return nil, fmt.Errorf("create staging directory: %w", err)
		}
		defer func() {
			if rmErr := os.RemoveAll(staging); rmErr != nil {
				glog.Warningf("remove staging directory %q: %v", staging, rmErr)
			}
		}()
		outRoot = staging
	}

	ops := plan.PlanBuckets(unique, outRoot, depthOf(cfg.Depth), cfg.RenameSuffix)
	if glog.V(1) {
		for _, op := range ops {
			glog.Infof("src: %s dst: %s", op.SourcePath, op.DestinationPath)
		}
	}

	glog.Infof("copying %d files to %q", len(ops), outRoot)
	if err := copy.Execute(ops, copy.Options{}); err != nil {
		return nil, err
	}
	res.Copied = len(ops)

	if format != "" {
		stem := strings.TrimRight(cfg.Output, string(filepath.Separator))
		glog.Infof("compressing %q into %q", outRoot, stem+format.Ext())
		archivePath, err := archive.Create(outRoot, stem, format)
		if err != nil {
			return nil, err
		}
		res.Archive = archivePath
	}

	glog.Infof("%s", res)
	return res, nil
}

// discover lists matching media files under every input root, returning
// absolute-ish paths (joined onto the configured roots) and the total size.
func discover(cfg *config.Config) ([]string, int64, error) {
	opts := scan.DefaultOptions()
	if len(cfg.Extensions) > 0 {
		opts.Extensions = cfg.Extensions
	}

	var (
		files []string
		total int64
	)
	for _, dir := range cfg.Inputs {
		glog.Infof("listing media files in directory %q", dir)
		records, err := scan.ScanRecords(os.DirFS(dir), ".", opts)
		if err != nil {
			return nil, 0, fmt.Errorf("scan %s: %w", dir, err)
		}
		glog.Infof("found %d files", len(records))

		for _, r := range records {
			files = append(files, filepath.Join(dir, filepath.FromSlash(r.Path)))
			total += r.FileSizeBytes
		}
	}
	return files, total, nil
}

func depthOf(d config.Depth) plan.Depth {
	switch d {
	case config.DepthYear:
		return plan.DepthYear
	case config.DepthMonth:
		return plan.DepthMonth
	case config.DepthDay:
		return plan.DepthDay
	}
	return plan.DepthNone
}
