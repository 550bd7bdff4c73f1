// Package cursor provides a little-endian reader over an in-memory buffer.
//
// A Cursor keeps the first out-of-range error it hits. After that every read
// returns a zero value, so a decoder can read a run of fields and check Err
// once at the end of the block.
package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a read or seek goes past the buffer.
var ErrOutOfRange = errors.New("cursor: out of range")

// Cursor reads fixed-width little-endian values from a byte slice.
type Cursor struct {
	buf []byte
	off int
	err error
}

// New returns a cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// At returns a cursor positioned at off. An invalid offset is reported by Err.
func At(buf []byte, off int) *Cursor {
	c := New(buf)
	c.Seek(off)
	return c
}

// Err reports the first out-of-range access, if any.
func (c *Cursor) Err() error { return c.err }

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.off }

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.off >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.off
}

// take returns the next n bytes and advances, or records an error.
func (c *Cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || c.off > len(c.buf)-n {
		c.err = fmt.Errorf("%w: %d bytes at offset %d (len %d)", ErrOutOfRange, n, c.off, len(c.buf))
		return nil
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b
}

// Seek moves the read position to an absolute offset.
func (c *Cursor) Seek(off int) {
	if c.err != nil {
		return
	}
	if off < 0 || off > len(c.buf) {
		c.err = fmt.Errorf("%w: seek to %d (len %d)", ErrOutOfRange, off, len(c.buf))
		return
	}
	c.off = off
}

// Skip advances past n opaque bytes.
func (c *Cursor) Skip(n int) {
	c.take(n)
}

// Bytes returns the next n bytes. The slice aliases the buffer.
func (c *Cursor) Bytes(n int) []byte {
	return c.take(n)
}

// U8 reads one byte.
func (c *Cursor) U8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// I32 reads a little-endian int32.
func (c *Cursor) I32() int32 {
	return int32(c.U32())
}

// U64 reads a little-endian uint64.
func (c *Cursor) U64() uint64 {
	b := c.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// U32s reads n consecutive uint32 values.
func (c *Cursor) U32s(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = c.U32()
	}
	return out
}

// UTF16 reads n bytes and decodes them as a NUL-terminated UTF-16LE string.
func (c *Cursor) UTF16(n int) string {
	b := c.take(n)
	if b == nil {
		return ""
	}
	return DecodeUTF16(b)
}
