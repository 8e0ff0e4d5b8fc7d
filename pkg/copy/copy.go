// Package copy executes planned placements on the filesystem.
package copy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samuelSanchezDev/picture-sorter/pkg/plan"
)

// ErrDestinationExists is returned when a planned destination is already
// occupied and overwriting is disabled.
var ErrDestinationExists = errors.New("destination file already exists")

// Options configures the copy behavior.
type Options struct {
	// Overwrite allows replacing existing destination files. Off by
	// default: a pre-existing destination aborts the run rather than
	// being silently clobbered.
	Overwrite bool
}

// Execute copies each planned operation in order, creating intermediate
// destination directories as needed.
//
// Execution stops at the first failure; the error identifies the offending
// paths. Operations before the failure remain on disk.
func Execute(operations []plan.Operation, opts Options) error {
	for _, op := range operations {
		destDir := filepath.Dir(op.DestinationPath)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", destDir, err)
		}

		if err := copyFile(op.SourcePath, op.DestinationPath, opts.Overwrite); err != nil {
			return fmt.Errorf("copy %s to %s: %w", op.SourcePath, op.DestinationPath, err)
		}
	}
	return nil
}

// copyFile copies a single file from src to dst.
// If allowOverwrite is true, existing files will be overwritten.
func copyFile(src, dst string, allowOverwrite bool) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer srcFile.Close()

	// Get source file info for permissions
	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE
	if !allowOverwrite {
		flags |= os.O_EXCL
	} else {
		flags |= os.O_TRUNC
	}

	dstFile, err := os.OpenFile(dst, flags, srcInfo.Mode())
	if err != nil {
		if os.IsExist(err) {
			return ErrDestinationExists
		}
		return fmt.Errorf("create destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		// Try to clean up partial file on error (only if we created it)
		if !allowOverwrite {
			_ = os.Remove(dst)
		}
		return fmt.Errorf("copy content: %w", err)
	}

	// Ensure data is written to disk
	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	return nil
}
