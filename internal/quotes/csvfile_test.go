package quotes

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tonhe/pricescope/internal/chart"
)

func TestReadCSV(t *testing.T) {
	in := `time,close
# comment
2024-03-01T14:30:00Z,10
2024-03-01 15:30:00,11
1709310600,12
garbage,13
2024-03-02,not-a-number
2024-03-02,14
`
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 samples, got %d: %v", len(got), got)
	}
	want := []float64{10, 11, 12, 14}
	for i, s := range got {
		if s.Value != want[i] {
			t.Errorf("sample %d: expected %f, got %f", i, want[i], s.Value)
		}
	}
}

func TestCSVFileFetch(t *testing.T) {
	dir := t.TempDir()
	body := "2024-01-01,1\n2024-02-15,2\n2024-03-01,3\n"
	if err := os.WriteFile(filepath.Join(dir, "ACME.csv"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	p := NewCSVFile(dir)

	r, _ := chart.LookupRange("1m")
	s, err := p.Fetch(context.Background(), "acme", r)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 samples inside one month, got %d", s.Len())
	}

	r, _ = chart.LookupRange("1y")
	s, err = p.Fetch(context.Background(), "ACME", r)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 samples inside one year, got %d", s.Len())
	}
}

func TestCSVFileMissing(t *testing.T) {
	r, _ := chart.LookupRange("1m")
	_, err := NewCSVFile(t.TempDir()).Fetch(context.Background(), "NONE", r)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}
