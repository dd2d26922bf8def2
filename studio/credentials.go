package studio

import "sync"

// CredentialStore holds the API key used for generation.
type CredentialStore interface {
	Credential() string
	SetCredential(key string)

	// ClearCredential forgets the key, after the service rejected it.
	ClearCredential()
}

// MemoryCredentials is a CredentialStore kept in memory.
// The zero value is empty and ready to use.
type MemoryCredentials struct {
	mu  sync.RWMutex
	key string
}

// NewMemoryCredentials returns a store holding key.
func NewMemoryCredentials(key string) *MemoryCredentials {
	return &MemoryCredentials{key: key}
}

func (m *MemoryCredentials) Credential() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key
}

func (m *MemoryCredentials) SetCredential(key string) {
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
}

func (m *MemoryCredentials) ClearCredential() {
	m.SetCredential("")
}
