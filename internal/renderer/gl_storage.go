package renderer

import (
	"fmt"

	"LightGrid/internal/gpubuffer"
	"LightGrid/internal/logger"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"
)

// GLAllocator creates OpenGL buffer objects for gpubuffer.Buffer. Storage
// buffers become SSBOs, uniform buffers UBOs. A current GL 4.3 context is required.
type GLAllocator struct{}

func glTarget(usage gpubuffer.Usage) uint32 {
	if usage == gpubuffer.UsageUniform {
		return gl.UNIFORM_BUFFER
	}
	return gl.SHADER_STORAGE_BUFFER
}

func (GLAllocator) NewStorage(name string, usage gpubuffer.Usage) (gpubuffer.Storage, error) {
	return &GLStorage{name: name, target: glTarget(usage)}, nil
}

// GLStorage is one GL buffer object. The object is created on the first Resize.
type GLStorage struct {
	name     string
	target   uint32
	id       uint32
	capacity int
}

func (s *GLStorage) ID() uint32 {
	return s.id
}

// Resize allocates a fresh buffer object so the old one survives a failure.
func (s *GLStorage) Resize(capacity int) error {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return fmt.Errorf("%s: glGenBuffers: %w", s.name, gpubuffer.ErrAllocation)
	}
	gl.BindBuffer(s.target, id)
	gl.BufferData(s.target, capacity, nil, gl.DYNAMIC_DRAW)
	glErr := gl.GetError()
	gl.BindBuffer(s.target, 0)

	switch glErr {
	case gl.NO_ERROR:
	case gl.OUT_OF_MEMORY:
		gl.DeleteBuffers(1, &id)
		logger.Log.Warn("GL buffer allocation failed", zap.String("buffer", s.name), zap.Int("bytes", capacity))
		return gpubuffer.ErrAllocation
	default:
		gl.DeleteBuffers(1, &id)
		return fmt.Errorf("%s: glBufferData error 0x%x", s.name, glErr)
	}

	if s.id != 0 {
		gl.DeleteBuffers(1, &s.id)
	}
	s.id = id
	s.capacity = capacity
	return nil
}

func (s *GLStorage) Upload(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if len(data) > s.capacity {
		return fmt.Errorf("%s: upload of %d bytes exceeds capacity %d", s.name, len(data), s.capacity)
	}
	gl.BindBuffer(s.target, s.id)
	gl.BufferSubData(s.target, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(s.target, 0)
	return nil
}

// Bind attaches the buffer to an indexed binding point of its target.
func (s *GLStorage) Bind(index uint32) {
	gl.BindBufferBase(s.target, index, s.id)
}

func (s *GLStorage) Release() {
	if s.id != 0 {
		gl.DeleteBuffers(1, &s.id)
		s.id = 0
	}
	s.capacity = 0
}

// BindBuffer binds a gpubuffer.Buffer backed by GLStorage. It reports false for other storages.
func BindBuffer(b *gpubuffer.Buffer, index uint32) bool {
	s, ok := b.Storage().(*GLStorage)
	if !ok {
		return false
	}
	s.Bind(index)
	return true
}
