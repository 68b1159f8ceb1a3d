// Package changeset reads a CHANGE_SET frame body: an optionally
// gzip-compressed, length-delimited sequence of individual changes, each a
// (path, payload) pair.
package changeset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Change is one decoded (class name, payload) pair ready for the core
// decoder.
type Change struct {
	ClassName string
	Payload   []byte
}

// Read parses a CHANGE_SET frame body into its changes. If compressed is
// set, body is inflated with gzip first.
//
// github.com/klauspost/compress/gzip is a drop-in, faster implementation of
// compress/gzip; it is already an indirect dependency of the retrieved
// reference backend for exactly this purpose.
func Read(body []byte, compressed bool) ([]Change, error) {
	if compressed {
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("changeset: opening gzip body: %w", err)
		}
		defer zr.Close()
		inflated, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("changeset: inflating body: %w", err)
		}
		body = inflated
	}

	r := bytes.NewReader(body)

	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("changeset: reading change count: %w", err)
	}

	changes := make([]Change, 0, count)
	for i := uint32(0); i < count; i++ {
		path, err := readLenPrefixed(r)
		if err != nil {
			return nil, fmt.Errorf("changeset: reading path %d: %w", i, err)
		}
		payload, err := readLenPrefixed(r)
		if err != nil {
			return nil, fmt.Errorf("changeset: reading payload %d: %w", i, err)
		}
		changes = append(changes, Change{
			ClassName: ExtractClassName(string(path)),
			Payload:   payload,
		})
	}

	return changes, nil
}

func readLenPrefixed(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ExtractClassName derives the class name from a change's path: the
// substring between the last '/' and the last '-', exclusive, per spec.md
// §6.
func ExtractClassName(path string) string {
	start := strings.LastIndexByte(path, '/') + 1
	end := strings.LastIndexByte(path, '-')
	if end < 0 || end < start {
		return path[start:]
	}
	return path[start:end]
}
