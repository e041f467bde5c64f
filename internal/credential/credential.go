// Package credential keeps provider API keys in an encrypted vault file.
package credential

import "strings"

// Credential is an API key for one market data provider.
type Credential struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
}

// Summary is a Credential with the key masked.
type Summary struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Key      string `json:"key"`
}

// Summarize masks all but the last four characters of the key.
func (c Credential) Summarize() Summary {
	return Summary{Name: c.Name, Provider: c.Provider, Key: Mask(c.APIKey)}
}

// Mask hides a secret for display.
func Mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// Vault stores credentials by name.
type Vault interface {
	List() ([]Summary, error)
	Get(name string) (*Credential, error)
	Add(c Credential) error
	Remove(name string) error
}
