// Package wire implements the byte-level decoding primitives the core
// decoder drives: varints, fixed-64 values, and tags, over a borrowed byte
// buffer with a mutable cursor.
//
// Reader never copies the input; ReadBytes returns a sub-slice of the
// original buffer, and Sub returns a new Reader over such a sub-slice.
package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/oss-tools/xcdecode/internal/xcerr"
)

// Type is a wire type as carried in a tag's low three bits.
type Type uint8

// The wire types the core recognizes. I32 and Unknown are never decoded
// successfully; they exist so callers can report which unsupported type
// they saw.
const (
	Varint  Type = 0
	I64     Type = 1
	Len     Type = 2
	I32     Type = 5
	Unknown Type = 7
)

// Reader decodes values from a borrowed byte buffer starting at a cursor.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Done reports whether the cursor has reached the end of the buffer.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// DecodeTag reads a tag: the low three bits of the first byte are the wire
// type, the rest (plus any continuation bytes) are the field number.
func (r *Reader) DecodeTag() (Type, uint64, error) {
	num, typ, n := protowire.ConsumeTag(r.buf[r.pos:])
	if n < 0 {
		return 0, 0, xcerr.NewTruncatedBuffer()
	}
	r.pos += n
	return Type(typ), uint64(num), nil
}

// DecodeVarint reads a base-128 varint: each byte contributes its low seven
// bits, and the top bit signals whether another byte follows.
func (r *Reader) DecodeVarint() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.pos:])
	if n < 0 {
		return 0, xcerr.NewTruncatedBuffer()
	}
	r.pos += n
	return v, nil
}

// DecodeFixed64 reads eight bytes and assembles them little-endian.
func (r *Reader) DecodeFixed64() (uint64, error) {
	v, n := protowire.ConsumeFixed64(r.buf[r.pos:])
	if n < 0 {
		return 0, xcerr.NewTruncatedBuffer()
	}
	r.pos += n
	return v, nil
}

// ReadBytes returns a borrowed slice of the next n bytes and advances the
// cursor past them.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, xcerr.NewTruncatedBuffer()
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Sub returns a fresh Reader scoped to exactly the next n bytes, advancing
// this reader's cursor past them. Used to bound recursive or packed decodes
// to a LEN-delimited payload without risking a read past its end.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return NewReader(b), nil
}
