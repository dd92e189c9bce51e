package go_symcrypt

import (
	"sync"
	"sync/atomic"
)

// MetricsCollector receives transform activity counters. Attach one with
// SymmetricAlgorithm.SetMetrics to feed Prometheus, StatsD or a log.
//
// All methods must be safe for concurrent use and non-blocking.
type MetricsCollector interface {
	// IncrementTransform counts a transform created for algorithm.
	IncrementTransform(algorithm string, dir Direction)

	// AddBytesTransformed adds to the input bytes consumed by algorithm.
	AddBytesTransformed(algorithm string, bytes uint64)

	// IncrementError counts a failed TransformBlock or TransformFinalBlock.
	IncrementError(algorithm, operation string)
}

// noopMetrics is used when no collector is attached.
type noopMetrics struct{}

func (noopMetrics) IncrementTransform(string, Direction) {}
func (noopMetrics) AddBytesTransformed(string, uint64) {}
func (noopMetrics) IncrementError(string, string) {}

// InMemoryMetrics is a MetricsCollector kept in process memory. Suitable for
// tests and for applications that poll their own counters. The zero value is
// ready to use.
type InMemoryMetrics struct {
	encryptors uint64
	decryptors uint64
	bytes      uint64

	mu          sync.RWMutex
	byAlgorithm map[string]uint64
	bytesBy     map[string]uint64
	errors      map[string]uint64
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	m := &InMemoryMetrics{}
	m.initMaps()
	return m
}

// initMaps allocates missing maps. Callers hold mu.
func (m *InMemoryMetrics) initMaps() {
	if m.byAlgorithm == nil {
		m.byAlgorithm = make(map[string]uint64)
	}
	if m.bytesBy == nil {
		m.bytesBy = make(map[string]uint64)
	}
	if m.errors == nil {
		m.errors = make(map[string]uint64)
	}
}

// IncrementTransform counts a new encryptor or decryptor.
func (m *InMemoryMetrics) IncrementTransform(algorithm string, dir Direction) {
	if dir == Decrypt {
		atomic.AddUint64(&m.decryptors, 1)
	} else {
		atomic.AddUint64(&m.encryptors, 1)
	}
	m.mu.Lock()
	m.initMaps()
	m.byAlgorithm[algorithm]++
	m.mu.Unlock()
}

// AddBytesTransformed adds to the processed byte total and to the total for
// algorithm.
func (m *InMemoryMetrics) AddBytesTransformed(algorithm string, bytes uint64) {
	atomic.AddUint64(&m.bytes, bytes)
	m.mu.Lock()
	m.initMaps()
	m.bytesBy[algorithm] += bytes
	m.mu.Unlock()
}

// IncrementError counts an error under "algorithm.operation".
func (m *InMemoryMetrics) IncrementError(algorithm, operation string) {
	m.mu.Lock()
	m.initMaps()
	m.errors[algorithm+"."+operation]++
	m.mu.Unlock()
}

// Encryptors returns the number of encrypting transforms created.
func (m *InMemoryMetrics) Encryptors() uint64 {
	return atomic.LoadUint64(&m.encryptors)
}

// Decryptors returns the number of decrypting transforms created.
func (m *InMemoryMetrics) Decryptors() uint64 {
	return atomic.LoadUint64(&m.decryptors)
}

// BytesTransformed returns the total input bytes processed.
func (m *InMemoryMetrics) BytesTransformed() uint64 {
	return atomic.LoadUint64(&m.bytes)
}

// BytesTransformedBy returns the input bytes processed by algorithm.
func (m *InMemoryMetrics) BytesTransformedBy(algorithm string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bytesBy[algorithm]
}

// Transforms returns the number of transforms created for algorithm.
func (m *InMemoryMetrics) Transforms(algorithm string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byAlgorithm[algorithm]
}

// Errors returns the error count for one algorithm and operation.
func (m *InMemoryMetrics) Errors(algorithm, operation string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[algorithm+"."+operation]
}

// AllErrors returns a copy of all error counts keyed by "algorithm.operation".
func (m *InMemoryMetrics) AllErrors() map[string]uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]uint64, len(m.errors))
	for k, v := range m.errors {
		result[k] = v
	}
	return result
}

// Reset clears all counters. Useful for testing.
func (m *InMemoryMetrics) Reset() {
	atomic.StoreUint64(&m.encryptors, 0)
	atomic.StoreUint64(&m.decryptors, 0)
	atomic.StoreUint64(&m.bytes, 0)

	m.mu.Lock()
	m.byAlgorithm = nil
	m.bytesBy = nil
	m.errors = nil
	m.initMaps()
	m.mu.Unlock()
}
