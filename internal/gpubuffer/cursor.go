package gpubuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCursorOverflow is returned when a write would run past the mapped region.
var ErrCursorOverflow = errors.New("gpubuffer: write past end of mapped region")

// Cursor is a bounds-checked write position inside a mapped buffer.
type Cursor struct {
	buf []byte
	off int
}

// Offset is the number of bytes written so far.
func (c *Cursor) Offset() int { return c.off }

// Remaining is the number of bytes still available.
func (c *Cursor) Remaining() int { return len(c.buf) - c.off }

// Write copies p at the cursor and returns the offset it was written at.
func (c *Cursor) Write(p []byte) (int, error) {
	if len(p) > c.Remaining() {
		return c.off, fmt.Errorf("%w: need %d bytes, have %d", ErrCursorOverflow, len(p), c.Remaining())
	}
	at := c.off
	copy(c.buf[at:], p)
	c.off += len(p)
	return at, nil
}

// WriteUint32s writes values in little-endian order.
func (c *Cursor) WriteUint32s(values []uint32) (int, error) {
	n := 4 * len(values)
	if n > c.Remaining() {
		return c.off, fmt.Errorf("%w: need %d bytes, have %d", ErrCursorOverflow, n, c.Remaining())
	}
	at := c.off
	for i, v := range values {
		binary.LittleEndian.PutUint32(c.buf[at+4*i:], v)
	}
	c.off += n
	return at, nil
}

// Seek moves the cursor to an absolute offset within the mapped region.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.buf) {
		return fmt.Errorf("%w: seek to %d of %d", ErrCursorOverflow, off, len(c.buf))
	}
	c.off = off
	return nil
}
