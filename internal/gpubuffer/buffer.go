package gpubuffer

import (
	"errors"
	"fmt"

	"LightGrid/internal/logger"

	"go.uber.org/zap"
)

// Usage tells the backend how the shading pass binds a buffer.
type Usage int

const (
	UsageStorage Usage = iota
	UsageUniform
)

func (u Usage) String() string {
	switch u {
	case UsageStorage:
		return "storage"
	case UsageUniform:
		return "uniform"
	default:
		return fmt.Sprintf("Usage(%d)", int(u))
	}
}

var (
	// ErrAllocation is returned when the backing storage cannot grow.
	ErrAllocation = errors.New("gpubuffer: allocation failed")
	// ErrMapped is returned when a buffer is mapped twice or resized while mapped.
	ErrMapped = errors.New("gpubuffer: buffer is mapped")
	// ErrNotMapped is returned by Unmap on a buffer that is not mapped.
	ErrNotMapped = errors.New("gpubuffer: buffer is not mapped")
)

// Storage is the device-side allocation behind a Buffer.
type Storage interface {
	// Resize reallocates the store to hold capacity bytes. Previous contents
	// need not survive. On error the previous allocation must stay valid.
	Resize(capacity int) error
	// Upload copies data to the start of the store.
	Upload(data []byte) error
	Release()
}

// Allocator creates Storage for a named buffer.
type Allocator interface {
	NewStorage(name string, usage Usage) (Storage, error)
}

// Buffer is a growable GPU buffer with a host-visible mirror. Capacity only
// grows; each Unmap uploads just the bytes written (the logical size).
type Buffer struct {
	name    string
	usage   Usage
	stride  int
	storage Storage

	host    []byte
	logical int
	mapped  bool
	uploads int
}

// New creates an empty buffer. stride is the size of one element in bytes.
func New(alloc Allocator, name string, usage Usage, stride int) (*Buffer, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("gpubuffer: %s: invalid stride %d", name, stride)
	}
	storage, err := alloc.NewStorage(name, usage)
	if err != nil {
		return nil, fmt.Errorf("gpubuffer: %s: %w", name, err)
	}
	return &Buffer{
		name:    name,
		usage:   usage,
		stride:  stride,
		storage: storage,
	}, nil
}

func (b *Buffer) Name() string     { return b.name }
func (b *Buffer) Usage() Usage     { return b.usage }
func (b *Buffer) Stride() int      { return b.stride }
func (b *Buffer) Capacity() int    { return len(b.host) }
func (b *Buffer) LogicalSize() int { return b.logical }

// Uploads returns how many times Unmap pushed data to the storage.
func (b *Buffer) Uploads() int { return b.uploads }

// Bytes returns the host mirror of the last upload.
func (b *Buffer) Bytes() []byte { return b.host[:b.logical] }

// Storage returns the backend allocation, for binding.
func (b *Buffer) Storage() Storage { return b.storage }

// Reserve makes sure the buffer can hold size bytes. Growth at least doubles
// the capacity. A failed grow leaves the buffer exactly as it was.
func (b *Buffer) Reserve(size int) error {
	if b.mapped {
		return ErrMapped
	}
	if size <= len(b.host) {
		return nil
	}

	newCap := 2 * len(b.host)
	if newCap < size {
		newCap = size
	}
	if err := b.storage.Resize(newCap); err != nil {
		return fmt.Errorf("gpubuffer: %s: grow to %d bytes: %w", b.name, newCap, err)
	}

	host := make([]byte, newCap)
	copy(host, b.host[:b.logical])
	b.host = host

	// The new store starts empty; restore the last upload so readers of the
	// device copy keep seeing the previous frame until the next Unmap.
	if b.logical > 0 {
		if err := b.storage.Upload(host[:b.logical]); err != nil {
			return fmt.Errorf("gpubuffer: %s: restore %d bytes after grow: %w", b.name, b.logical, err)
		}
	}

	logger.Log.Debug("Buffer grown",
		zap.String("buffer", b.name),
		zap.Stringer("usage", b.usage),
		zap.Int("capacity", newCap))
	return nil
}

// Map returns a cursor over the whole capacity. The buffer must be unmapped
// before it can be resized or mapped again.
func (b *Buffer) Map() (*Cursor, error) {
	if b.mapped {
		return nil, ErrMapped
	}
	b.mapped = true
	return &Cursor{buf: b.host}, nil
}

// Unmap uploads the bytes written through c and records them as the logical size.
// If the upload fails the previous logical size is kept.
func (b *Buffer) Unmap(c *Cursor) error {
	if !b.mapped {
		return ErrNotMapped
	}
	b.mapped = false

	n := c.Offset()
	if err := b.storage.Upload(b.host[:n]); err != nil {
		return fmt.Errorf("gpubuffer: %s: upload %d bytes: %w", b.name, n, err)
	}
	b.logical = n
	b.uploads++
	return nil
}

// Abort unmaps without uploading. Storage and logical size keep the previous frame.
func (b *Buffer) Abort() {
	b.mapped = false
}

// Write reserves, maps, writes data and unmaps in one step.
func (b *Buffer) Write(data []byte) error {
	if err := b.Reserve(len(data)); err != nil {
		return err
	}
	c, err := b.Map()
	if err != nil {
		return err
	}
	if _, err := c.Write(data); err != nil {
		b.Abort()
		return err
	}
	return b.Unmap(c)
}

// Clear drops the logical contents without touching the storage, so an empty
// frame advertises zero elements. Capacity is kept.
func (b *Buffer) Clear() error {
	if b.mapped {
		return ErrMapped
	}
	b.logical = 0
	return nil
}

// Release frees the backend storage.
func (b *Buffer) Release() {
	b.storage.Release()
	b.host = nil
	b.logical = 0
}
