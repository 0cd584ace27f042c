package vault

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// MemoryVault is an in-memory implementation of the Vault interface.
// It stores all archives in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryVault struct {
	name     string
	archives map[string][]byte // listName -> archive
	versions map[string]int64  // listName -> version
	mu       sync.RWMutex
}

// NewMemoryVault creates a new in-memory vault with the given name.
func NewMemoryVault(name string) *MemoryVault {
	return &MemoryVault{
		name:     name,
		archives: make(map[string][]byte),
		versions: make(map[string]int64),
	}
}

// PutArchive stores an archive for the named list.
func (m *MemoryVault) PutArchive(listName string, r io.Reader, size int64, version int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.archives[listName] = data
	m.versions[listName] = version
	return nil
}

// GetArchive retrieves the archive for the named list.
func (m *MemoryVault) GetArchive(listName string, w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.archives[listName]
	if !ok {
		return fmt.Errorf("archive not found for list: %s", listName)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}

// ArchiveVersion returns the version of the stored archive for a list.
// Returns 0 if no archive has been stored.
func (m *MemoryVault) ArchiveVersion(listName string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.versions[listName], nil
}

// ValidateSetup always succeeds for in-memory vault.
func (m *MemoryVault) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryVault implements the Vault interface
var _ Vault = (*MemoryVault)(nil)
