package gpubuffer

import (
	"sync"

	"LightGrid/internal/logger"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
)

// VulkanUsageFlags maps a Usage to the buffer usage bits a Vulkan backend
// needs. Buffers are always filled by transfer from a staging copy.
func VulkanUsageFlags(u Usage) vk.BufferUsageFlags {
	flags := vk.BufferUsageTransferDstBit
	switch u {
	case UsageUniform:
		flags |= vk.BufferUsageUniformBufferBit
	default:
		flags |= vk.BufferUsageStorageBufferBit
	}
	return vk.BufferUsageFlags(flags)
}

func bufferCreateInfo(size int, u Usage) vk.BufferCreateInfo {
	return vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       VulkanUsageFlags(u),
		SharingMode: vk.SharingModeExclusive,
	}
}

// VulkanAllocator hands out storage that keeps its bytes in host staging
// memory and records the device buffer a Vulkan backend creates on every
// resize. It lets headless runs size and inspect a Vulkan frame without a device.
type VulkanAllocator struct {
	staging *HostAllocator

	mu       sync.Mutex
	storages []*VulkanStorage
}

// NewVulkanAllocator caps staging memory at limit bytes when limit is positive.
func NewVulkanAllocator(limit int) *VulkanAllocator {
	return &VulkanAllocator{staging: NewHostAllocator(limit)}
}

func (a *VulkanAllocator) NewStorage(name string, usage Usage) (Storage, error) {
	host, err := a.staging.NewStorage(name, usage)
	if err != nil {
		return nil, err
	}
	s := &VulkanStorage{HostStorage: host.(*HostStorage), name: name, usage: usage}
	a.mu.Lock()
	a.storages = append(a.storages, s)
	a.mu.Unlock()
	return s, nil
}

// Storages returns every storage created so far, in creation order.
func (a *VulkanAllocator) Storages() []*VulkanStorage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*VulkanStorage(nil), a.storages...)
}

// InUse returns the staging bytes held by all storages.
func (a *VulkanAllocator) InUse() int {
	return a.staging.InUse()
}

// VulkanStorage is staging memory plus the create info of its device buffer.
type VulkanStorage struct {
	*HostStorage
	name       string
	usage      Usage
	createInfo vk.BufferCreateInfo
	creates    int
}

// Resize grows the staging copy first; the device buffer is only described
// once staging succeeded, so a failure keeps the previous create info.
func (s *VulkanStorage) Resize(capacity int) error {
	if err := s.HostStorage.Resize(capacity); err != nil {
		return err
	}
	s.createInfo = bufferCreateInfo(capacity, s.usage)
	s.creates++
	logger.Log.Debug("Vulkan buffer recreated",
		zap.String("buffer", s.name),
		zap.Uint64("size", uint64(s.createInfo.Size)),
		zap.Uint32("usage", uint32(s.createInfo.Usage)))
	return nil
}

func (s *VulkanStorage) Name() string                    { return s.name }
func (s *VulkanStorage) CreateInfo() vk.BufferCreateInfo { return s.createInfo }

// Creates counts the device buffers created for this storage.
func (s *VulkanStorage) Creates() int { return s.creates }
