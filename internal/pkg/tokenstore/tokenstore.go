// Package tokenstore persists the signed-in session between launches.
package tokenstore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
)

var (
	ErrEmpty   = errors.New("no stored session")
	ErrCorrupt = errors.New("stored session cannot be read")
)

// Record is the persisted session.
type Record struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

type Store interface {
	// Load returns ErrEmpty when nothing is stored.
	Load() (Record, error)
	Save(rec Record) error
	Clear() error
}

// Memory keeps the record for the life of the process.
type Memory struct {
	mu  sync.Mutex
	rec *Record
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return Record{}, ErrEmpty
	}
	return *m.rec, nil
}

func (m *Memory) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = &rec
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}

const (
	keySize   = 32
	nonceSize = 24
	keyInfo   = "smart-attendance token-store v1"
)

// File seals the record with nacl/secretbox under a key derived from a
// secret with HKDF-SHA256.
type File struct {
	mu   sync.Mutex
	path string
	key  [keySize]byte
}

func NewFile(path, secret string) (*File, error) {
	if path == "" {
		return nil, errors.New("token store path is required")
	}
	if secret == "" {
		return nil, errors.New("token store secret is required")
	}

	f := &File{path: path}
	h := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(h, f.key[:]); err != nil {
		return nil, fmt.Errorf("derive token store key: %w", err)
	}
	return f, nil
}

func (f *File) Load() (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sealed, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrEmpty
	}
	if err != nil {
		return Record{}, fmt.Errorf("read token store: %w", err)
	}
	if len(sealed) < nonceSize {
		return Record{}, ErrCorrupt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &f.key)
	if !ok {
		return Record{}, ErrCorrupt
	}

	var rec Record
	if err := json.Unmarshal(plain, &rec); err != nil {
		return Record{}, ErrCorrupt
	}
	return rec, nil
}

func (f *File) Save(rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	plain, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &f.key)

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token store dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return fmt.Errorf("write token store: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token store: %w", err)
	}
	return nil
}
