// Package metapack extracts the two XML schema documents from a META
// frame's body, a zip archive supplied by the framed-file reader.
package metapack

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Extract opens body as a zip archive and returns the contents of its first
// two entries in directory-sorted order: Schema A first, Schema B second.
//
// archive/zip is stdlib rather than a third-party library because nothing
// in the retrieved corpus supplies a zip reader with a meaningfully
// different API; DESIGN.md records this as a deliberate stdlib choice.
func Extract(body []byte) (schemaA, schemaB []byte, err error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, nil, fmt.Errorf("metapack: opening archive: %w", err)
	}

	files := append([]*zip.File(nil), zr.File...)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	if len(files) < 2 {
		return nil, nil, fmt.Errorf("metapack: expected 2 schema entries, got %d", len(files))
	}

	a, err := readEntry(files[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := readEntry(files[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("metapack: opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("metapack: reading %s: %w", f.Name, err)
	}
	return data, nil
}
