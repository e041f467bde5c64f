package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tonhe/pricescope/internal/chart"
)

// SheetName is the worksheet holding the exported samples.
const SheetName = "Series"

// XLSX writes a workbook with one row per sample: time, value and the
// change from the first sample in percent. A summary block sits beside
// the table.
func XLSX(w io.Writer, symbol string, r chart.NamedRange, s *chart.Series) error {
	if s.Empty() {
		return ErrNothingToExport
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	timeStyle, err := f.NewStyle(&excelize.Style{NumFmt: 22})
	if err != nil {
		return err
	}
	pctStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, h := range []string{"Time", "Value", "Change"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}
	f.SetCellStyle(SheetName, "A1", "C1", boldStyle)

	first := s.First().Value
	samples := s.Samples()
	for i, smp := range samples {
		row := i + 2
		f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), smp.Time.UTC())
		f.SetCellValue(SheetName, fmt.Sprintf("B%d", row), smp.Value)
		if first != 0 {
			f.SetCellValue(SheetName, fmt.Sprintf("C%d", row), (smp.Value-first)/first)
		}
	}
	last := len(samples) + 1
	f.SetCellStyle(SheetName, "A2", fmt.Sprintf("A%d", last), timeStyle)
	f.SetCellStyle(SheetName, "C2", fmt.Sprintf("C%d", last), pctStyle)
	f.SetColWidth(SheetName, "A", "A", 20)

	summary := [][2]any{
		{"Symbol", symbol},
		{"Range", r.Label},
		{"First", s.First().Value},
		{"Last", s.Last().Value},
		{"Min", s.Min()},
		{"Max", s.Max()},
		{"Change", chart.FormatChange(s.Change())},
	}
	for i, kv := range summary {
		f.SetCellValue(SheetName, fmt.Sprintf("E%d", i+1), kv[0])
		f.SetCellValue(SheetName, fmt.Sprintf("F%d", i+1), kv[1])
	}
	f.SetCellStyle(SheetName, "E1", fmt.Sprintf("E%d", len(summary)), boldStyle)

	_, err = f.WriteTo(w)
	return err
}
