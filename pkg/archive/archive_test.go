package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func stageTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "2023", "04 - Apr"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		filepath.Join(dir, "top.jpg"):                       "top",
		filepath.Join(dir, "2023", "04 - Apr", "photo.jpg"): "nested",
	}
	for path, data := range files {
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}

func TestCreate_Zip(t *testing.T) {
	src := stageTree(t)
	dest := filepath.Join(t.TempDir(), "out")

	got, err := Create(src, dest, Zip)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got != dest+".zip" {
		t.Fatalf("archive path = %q, want %q", got, dest+".zip")
	}

	r, err := zip.OpenReader(got)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer r.Close()

	entries := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		entries[f.Name] = string(data)
	}

	want := map[string]string{
		"top.jpg":                 "top",
		"2023/04 - Apr/photo.jpg": "nested",
	}
	for name, data := range want {
		if entries[name] != data {
			t.Fatalf("entry %q = %q, want %q (all: %#v)", name, entries[name], data, entries)
		}
	}
}

func TestCreate_GzTar(t *testing.T) {
	src := stageTree(t)
	dest := filepath.Join(t.TempDir(), "out")

	got, err := Create(src, dest, GzTar)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got != dest+".tar.gz" {
		t.Fatalf("archive path = %q, want %q", got, dest+".tar.gz")
	}

	f, err := os.Open(got)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer gz.Close()

	entries := make(map[string]string)
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar next: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("tar read %s: %v", header.Name, err)
		}
		entries[header.Name] = string(data)
	}

	if entries["top.jpg"] != "top" {
		t.Fatalf("missing top.jpg entry, got %#v", entries)
	}
	if entries["2023/04 - Apr/photo.jpg"] != "nested" {
		t.Fatalf("missing nested entry, got %#v", entries)
	}
}

func TestCreate_AllTarFormatsProduceFiles(t *testing.T) {
	src := stageTree(t)

	for _, format := range []Format{Tar, BzTar, XzTar} {
		t.Run(string(format), func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "out")
			got, err := Create(src, dest, format)
			if err != nil {
				t.Fatalf("Create(%s): %v", format, err)
			}
			info, err := os.Stat(got)
			if err != nil {
				t.Fatalf("stat archive: %v", err)
			}
			if info.Size() == 0 {
				t.Fatalf("archive %s is empty", got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"zip", "tar", "gztar", "bztar", "xztar"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q): %v", valid, err)
		}
	}
	if _, err := ParseFormat("rar"); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}

func TestFormatExt(t *testing.T) {
	testCases := map[Format]string{
		Zip:   ".zip",
		Tar:   ".tar",
		GzTar: ".tar.gz",
		BzTar: ".tar.bz2",
		XzTar: ".tar.xz",
	}
	for format, want := range testCases {
		if got := format.Ext(); got != want {
			t.Errorf("%s.Ext() = %q, want %q", format, got, want)
		}
	}
}
