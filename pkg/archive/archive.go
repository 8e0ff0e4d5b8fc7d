// Package archive bundles a directory tree into a single compressed archive.
//
// The supported formats mirror the classic shutil.make_archive set: zip, tar
// and gzip/bzip2/xz compressed tar.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"
	"github.com/ulikunitz/xz"
)

// Format names an archive output format.
type Format string

const (
	Zip   Format = "zip"
	Tar   Format = "tar"
	GzTar Format = "gztar"
	BzTar Format = "bztar"
	XzTar Format = "xztar"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Zip, Tar, GzTar, BzTar, XzTar:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported archive format %q (use zip, tar, gztar, bztar or xztar)", s)
}

// Ext returns the filename extension for the format, dot included.
func (f Format) Ext() string {
	switch f {
	case Zip:
		return ".zip"
	case Tar:
		return ".tar"
	case GzTar:
		return ".tar.gz"
	case BzTar:
		return ".tar.bz2"
	case XzTar:
		return ".tar.xz"
	}
	return ""
}

// Create archives the tree rooted at srcDir into dest + format extension and
// returns the archive path. Entries are stored relative to srcDir. A failed
// run removes the partial archive.
func Create(srcDir, dest string, format Format) (string, error) {
	out := dest + format.Ext()

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create archive %s: %w", out, err)
	}

	if format == Zip {
		err = writeZip(f, srcDir)
	} else {
		err = writeTar(f, srcDir, format)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(out)
		return "", fmt.Errorf("archive %s: %w", srcDir, err)
	}
	return out, nil
}

func writeZip(w io.Writer, srcDir string) error {
	zw := zip.NewWriter(w)
	err := walkFiles(srcDir, func(rel string, info fs.FileInfo, r io.Reader) error {
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = rel
		header.Method = zip.Deflate

		entry, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		_, err = io.Copy(entry, r)
		return err
	})
	if err != nil {
		return err
	}
	return zw.Close()
}

func writeTar(w io.Writer, srcDir string, format Format) error {
	var compressor io.WriteCloser
	switch format {
	case GzTar:
		compressor = gzip.NewWriter(w)
	case BzTar:
		bw, err := bzip2.NewWriter(w, nil)
		if err != nil {
			return err
		}
		compressor = bw
	case XzTar:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return err
		}
		compressor = xw
	}

	target := w
	if compressor != nil {
		target = compressor
	}

	tw := tar.NewWriter(target)
	err := walkFiles(srcDir, func(rel string, info fs.FileInfo, r io.Reader) error {
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = rel

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		_, err = io.Copy(tw, r)
		return err
	})
	if err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	if compressor != nil {
		return compressor.Close()
	}
	return nil
}

// walkFiles visits every regular file under srcDir in walk order, handing the
// callback a slash-separated relative path and an open reader.
func walkFiles(srcDir string, fn func(rel string, info fs.FileInfo, r io.Reader) error) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		return fn(filepath.ToSlash(rel), info, f)
	})
}
