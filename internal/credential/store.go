package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNotFound  = errors.New("credential not found")
	ErrDuplicate = errors.New("credential already exists")
	ErrDecrypt   = errors.New("failed to decrypt vault (wrong password?)")
	ErrInvalid   = errors.New("credential needs a name, provider and key")
)

type vaultFile struct {
	Version int       `json:"version"`
	KDF     kdfParams `json:"kdf"`
	Salt    []byte    `json:"salt"`
	Data    []byte    `json:"data"`
}

// FileStore is a Vault persisted as AES-256-GCM ciphertext under an
// Argon2id-derived key.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	kdf   kdfParams
	salt  []byte
	key   []byte
	creds map[string]Credential
}

// OpenFileStore opens the vault at path, creating an empty one when the
// file does not exist.
func OpenFileStore(path string, password []byte) (*FileStore, error) {
	s := &FileStore{path: path, creds: make(map[string]Credential)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		salt, err := randomBytes(saltLen)
		if err != nil {
			return nil, err
		}
		s.kdf = defaultKDF
		s.salt = salt
		s.key = s.kdf.derive(password, salt)
		return s, s.save()
	}
	if err != nil {
		return nil, err
	}

	var vf vaultFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("corrupt vault: %w", err)
	}
	if vf.KDF.Time == 0 {
		vf.KDF = defaultKDF
	}
	s.kdf = vf.KDF
	s.salt = vf.Salt
	s.key = s.kdf.derive(password, vf.Salt)

	plaintext, err := open(s.key, vf.Data)
	if err != nil {
		return nil, ErrDecrypt
	}
	if err := json.Unmarshal(plaintext, &s.creds); err != nil {
		return nil, fmt.Errorf("corrupt vault data: %w", err)
	}
	return s, nil
}

// save writes the vault through a temp file so a crash never leaves a
// truncated vault behind.
func (s *FileStore) save() error {
	plaintext, err := json.Marshal(s.creds)
	if err != nil {
		return err
	}
	sealed, err := seal(s.key, plaintext)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(vaultFile{Version: 1, KDF: s.kdf, Salt: s.salt, Data: sealed}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// List returns masked summaries sorted by name.
func (s *FileStore) List() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.creds))
	for _, c := range s.creds {
		out = append(out, c.Summarize())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the named credential.
func (s *FileStore) Get(name string) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.creds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return &c, nil
}

// Add stores a new credential.
func (s *FileStore) Add(c Credential) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.Name == "" || c.Provider == "" || c.APIKey == "" {
		return ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.creds[c.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, c.Name)
	}
	s.creds[c.Name] = c
	return s.save()
}

// Remove deletes the named credential.
func (s *FileStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.creds[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(s.creds, name)
	return s.save()
}

// LookupKey returns the API key of the first credential for provider, or
// the value of env when the vault has none.
func LookupKey(v Vault, provider, env string) string {
	if v != nil {
		if c, err := v.Get(provider); err == nil {
			return c.APIKey
		}
		if list, err := v.List(); err == nil {
			for _, sum := range list {
				if sum.Provider != provider {
					continue
				}
				if c, err := v.Get(sum.Name); err == nil {
					return c.APIKey
				}
			}
		}
	}
	return os.Getenv(env)
}
