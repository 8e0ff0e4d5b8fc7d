package scan

import (
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

func TestScan_MaxDepth(t *testing.T) {
	fsys := fstest.MapFS{
		"root/a.jpg":            &fstest.MapFile{Data: []byte("a")},
		"root/b.MP4":            &fstest.MapFile{Data: []byte("b")},
		"root/c.txt":            &fstest.MapFile{Data: []byte("c")},
		"root/sub/d.png":        &fstest.MapFile{Data: []byte("d")},
		"root/sub/nested/e.mkv": &fstest.MapFile{Data: []byte("e")},
	}

	testCases := []struct {
		name     string
		maxDepth int
		want     []string
	}{
		{
			name:     "depth 0 includes only top-level",
			maxDepth: 0,
			want:     []string{"a.jpg", "b.MP4"},
		},
		{
			name:     "depth 1 includes one subdirectory",
			maxDepth: 1,
			want:     []string{"a.jpg", "b.MP4", "sub/d.png"},
		},
		{
			name:     "depth 2 includes nested subdirectories",
			maxDepth: 2,
			want:     []string{"a.jpg", "b.MP4", "sub/d.png", "sub/nested/e.mkv"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.MaxDepth = tc.maxDepth

			got, err := Scan(fsys, "root", opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected result\n got: %#v\nwant: %#v", got, tc.want)
			}
		})
	}
}

func TestScan_IgnoresNonMedia(t *testing.T) {
	fsys := fstest.MapFS{
		"root/a.txt": &fstest.MapFile{Data: []byte("a")},
		"root/b.xmp": &fstest.MapFile{Data: []byte("b")},
	}

	opts := DefaultOptions()
	got, err := Scan(fsys, "root", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("expected no media files, got %#v", got)
	}
}

func TestScan_FilterPredicate(t *testing.T) {
	fsys := fstest.MapFS{
		"root/keep.jpg": &fstest.MapFile{Data: []byte("a")},
		"root/drop.jpg": &fstest.MapFile{Data: []byte("b")},
	}

	opts := DefaultOptions()
	opts.Filter = func(path string) bool {
		return !strings.HasPrefix(path, "drop")
	}

	got, err := Scan(fsys, "root", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"keep.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected result\n got: %#v\nwant: %#v", got, want)
	}
}

func TestScan_CustomExtensions(t *testing.T) {
	fsys := fstest.MapFS{
		"root/a.cr2": &fstest.MapFile{Data: []byte("a")},
		"root/b.jpg": &fstest.MapFile{Data: []byte("b")},
	}

	opts := DefaultOptions()
	opts.Extensions = []string{"CR2"} // no dot, upper case

	got, err := Scan(fsys, "root", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a.cr2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected result\n got: %#v\nwant: %#v", got, want)
	}
}

func TestScan_InvalidMaxDepth(t *testing.T) {
	fsys := fstest.MapFS{}

	opts := DefaultOptions()
	opts.MaxDepth = -2

	_, err := Scan(fsys, "root", opts)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestScanRecords_ReportsSizes(t *testing.T) {
	fsys := fstest.MapFS{
		"root/a.jpg": &fstest.MapFile{Data: []byte("abcd")},
	}

	records, err := ScanRecords(fsys, "root", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].FileSizeBytes != 4 {
		t.Fatalf("expected size 4, got %d", records[0].FileSizeBytes)
	}
}
