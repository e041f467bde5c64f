// Package watchlist loads the symbols offered by the TUI symbol switcher.
package watchlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var ErrDuplicate = errors.New("symbol already in watchlist")

// Entry is one watched symbol. Currency overrides the configured default
// for value labels.
type Entry struct {
	Symbol   string `toml:"symbol"`
	Label    string `toml:"label,omitempty"`
	Currency string `toml:"currency,omitempty"`
}

// Title returns the label, or the symbol when no label is set.
func (e Entry) Title() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Symbol
}

type Watchlist struct {
	Symbols []Entry `toml:"symbols"`
}

// Default is written on first use.
func Default() *Watchlist {
	return &Watchlist{Symbols: []Entry{
		{Symbol: "AAPL", Label: "Apple"},
		{Symbol: "MSFT", Label: "Microsoft"},
		{Symbol: "SPY", Label: "S&P 500 ETF"},
		{Symbol: "BTC-USD", Label: "Bitcoin"},
	}}
}

// Load reads the watchlist at path. A missing file yields Default. Symbols
// are upper-cased and blank or repeated entries dropped.
func Load(path string) (*Watchlist, error) {
	var wl Watchlist
	if _, err := toml.DecodeFile(path, &wl); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	seen := make(map[string]bool, len(wl.Symbols))
	out := wl.Symbols[:0]
	for _, e := range wl.Symbols {
		e.Symbol = strings.ToUpper(strings.TrimSpace(e.Symbol))
		e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))
		if e.Symbol == "" || seen[e.Symbol] {
			continue
		}
		seen[e.Symbol] = true
		out = append(out, e)
	}
	wl.Symbols = out
	return &wl, nil
}

// Save writes wl to path.
func Save(wl *Watchlist, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(wl)
}

// Find returns the entry for symbol.
func (wl *Watchlist) Find(symbol string) (Entry, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, e := range wl.Symbols {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return Entry{}, false
}

// Add appends e unless its symbol is already present.
func (wl *Watchlist) Add(e Entry) error {
	e.Symbol = strings.ToUpper(strings.TrimSpace(e.Symbol))
	if _, ok := wl.Find(e.Symbol); ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, e.Symbol)
	}
	wl.Symbols = append(wl.Symbols, e)
	return nil
}
