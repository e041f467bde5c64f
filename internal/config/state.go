package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// State is the view restored on the next start.
type State struct {
	Symbol string `toml:"symbol"`
	Range  string `toml:"range"`
}

// StateStore persists State as TOML. It satisfies chart.Persister.
type StateStore struct {
	mu   sync.Mutex
	path string
}

func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Load returns the stored state, or the zero State when none was saved.
func (s *StateStore) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *StateStore) load() (State, error) {
	var st State
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	err = toml.Unmarshal(data, &st)
	return st, err
}

// SaveRange records the selected range key.
func (s *StateStore) SaveRange(key string) error {
	return s.update(func(st *State) { st.Range = key })
}

// SaveSymbol records the displayed symbol.
func (s *StateStore) SaveSymbol(symbol string) error {
	return s.update(func(st *State) { st.Symbol = symbol })
}

func (s *StateStore) update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.load()
	if err != nil {
		st = State{}
	}
	fn(&st)
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(st)
}
