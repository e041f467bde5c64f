package credential

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestVault(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.enc")
	v, err := OpenFileStore(path, []byte("test-master-password"))
	if err != nil {
		t.Fatalf("OpenFileStore() error: %v", err)
	}
	return v, path
}

func TestVaultAddAndGet(t *testing.T) {
	v, _ := newTestVault(t)
	if err := v.Add(Credential{Name: "eodhd", Provider: "EODHD ", APIKey: " abc123 "}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	got, err := v.Get("eodhd")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.APIKey != "abc123" || got.Provider != "eodhd" {
		t.Errorf("expected trimmed credential, got %+v", got)
	}
}

func TestVaultRejects(t *testing.T) {
	v, _ := newTestVault(t)
	if err := v.Add(Credential{Name: "x", Provider: "eodhd"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	v.Add(Credential{Name: "x", Provider: "eodhd", APIKey: "k"})
	if err := v.Add(Credential{Name: "x", Provider: "eodhd", APIKey: "k2"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if err := v.Remove("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVaultListIsSortedAndMasked(t *testing.T) {
	v, _ := newTestVault(t)
	v.Add(Credential{Name: "work", Provider: "eodhd", APIKey: "secret-key-9876"})
	v.Add(Credential{Name: "home", Provider: "eodhd", APIKey: "xyz"})

	list, err := v.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "home" || list[1].Name != "work" {
		t.Fatalf("expected sorted summaries, got %+v", list)
	}
	if list[1].Key != "***********9876" {
		t.Errorf("unexpected mask %q", list[1].Key)
	}
	if list[0].Key != "***" {
		t.Errorf("short keys should be fully masked, got %q", list[0].Key)
	}
}

func TestVaultPersistence(t *testing.T) {
	v, path := newTestVault(t)
	v.Add(Credential{Name: "eodhd", Provider: "eodhd", APIKey: "persisted"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "persisted") {
		t.Error("vault file contains plaintext key")
	}

	reopened, err := OpenFileStore(path, []byte("test-master-password"))
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, err := reopened.Get("eodhd")
	if err != nil || got.APIKey != "persisted" {
		t.Errorf("expected persisted key, got %v, %v", got, err)
	}

	if _, err := OpenFileStore(path, []byte("wrong")); !errors.Is(err, ErrDecrypt) {
		t.Errorf("expected ErrDecrypt, got %v", err)
	}
}

func TestLookupKey(t *testing.T) {
	v, _ := newTestVault(t)
	t.Setenv("TEST_EODHD_KEY", "from-env")
	if got := LookupKey(v, "eodhd", "TEST_EODHD_KEY"); got != "from-env" {
		t.Errorf("expected env fallback, got %q", got)
	}
	v.Add(Credential{Name: "personal", Provider: "eodhd", APIKey: "from-vault"})
	if got := LookupKey(v, "eodhd", "TEST_EODHD_KEY"); got != "from-vault" {
		t.Errorf("expected vault key, got %q", got)
	}
	if got := LookupKey(nil, "eodhd", "TEST_EODHD_KEY"); got != "from-env" {
		t.Errorf("expected env with nil vault, got %q", got)
	}
}
