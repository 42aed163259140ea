package gpubuffer

import "sync"

// HostAllocator hands out storage in plain host memory. It backs headless runs
// and tests. A positive Limit caps the total bytes it will hold, which makes
// allocation failures reproducible.
type HostAllocator struct {
	Limit int

	mu    sync.Mutex
	inUse int
}

func NewHostAllocator(limit int) *HostAllocator {
	return &HostAllocator{Limit: limit}
}

func (a *HostAllocator) NewStorage(name string, usage Usage) (Storage, error) {
	return &HostStorage{alloc: a, name: name, usage: usage}, nil
}

// InUse returns the bytes currently held by all storages of this allocator.
func (a *HostAllocator) InUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}

func (a *HostAllocator) swap(oldSize, newSize int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Limit > 0 && a.inUse-oldSize+newSize > a.Limit {
		return false
	}
	a.inUse += newSize - oldSize
	return true
}

// HostStorage is a Storage living in a byte slice.
type HostStorage struct {
	alloc *HostAllocator
	name  string
	usage Usage
	data  []byte
}

func (s *HostStorage) Resize(capacity int) error {
	if !s.alloc.swap(len(s.data), capacity) {
		return ErrAllocation
	}
	s.data = make([]byte, capacity)
	return nil
}

func (s *HostStorage) Upload(data []byte) error {
	if len(data) > len(s.data) {
		return ErrAllocation
	}
	copy(s.data, data)
	return nil
}

func (s *HostStorage) Release() {
	s.alloc.swap(len(s.data), 0)
	s.data = nil
}

// Data returns the device-side contents.
func (s *HostStorage) Data() []byte { return s.data }
