// Package frame reads the outer framed change-log file: a sequence of
// magic-delimited records, each either a META frame (the schema archive) or
// a CHANGE_SET frame (a batch of changes). Framing itself is deliberately
// out of scope for the schema-directed decoder core (spec.md §1); this
// package is the concrete external collaborator that supplies it bytes.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic is the 12-byte sequence that precedes every frame.
var Magic = [12]byte{0xe9, 0x11, 0x00, 0xa8, 0x43, 0xa0, 0x41, 0x2d, 0x94, 0xb3, 0x06, 0xda}

// Kind distinguishes the two frame types the change-log format carries.
type Kind uint8

const (
	KindMeta      Kind = 0
	KindChangeSet Kind = 1
)

// Frame is one decoded record from the framed file.
type Frame struct {
	Kind       Kind
	Compressed bool
	Body       []byte
}

// Reader reads successive frames from an underlying stream.
type Reader struct {
	r io.Reader
}

// NewReader wraps r as a frame Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next reads the next frame, or io.EOF once the stream is exhausted between
// frames.
func (fr *Reader) Next() (*Frame, error) {
	var magic [12]byte
	if _, err := io.ReadFull(fr.r, magic[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("frame: reading magic: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("frame: bad magic %x", magic)
	}

	var header [6]byte
	if _, err := io.ReadFull(fr.r, header[:]); err != nil {
		return nil, fmt.Errorf("frame: reading header: %w", err)
	}
	kind := Kind(header[0])
	compressed := header[1] != 0
	bodyLen := binary.BigEndian.Uint32(header[2:6])

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(fr.r, body); err != nil {
		return nil, fmt.Errorf("frame: reading body: %w", err)
	}

	return &Frame{Kind: kind, Compressed: compressed, Body: body}, nil
}
