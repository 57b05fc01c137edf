package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"callsheet/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName       = "Contacts"
	DefaultFileName = "call-updates.xlsx"
	ContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var Header = []string{"Name", "Phone", "Status", "Remark"}

var columnWidths = []float64{28, 20, 14, 48}

// FileName derives the download name from the imported file, e.g.
// "leads.xlsx" becomes "leads-updated.xlsx".
func FileName(source string) string {
	base := filepath.Base(strings.TrimSpace(source))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return DefaultFileName
	}
	return base + "-updated.xlsx"
}

// Workbook renders contacts, in order, into a single-sheet xlsx file.
func Workbook(contacts []models.Contact) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return nil, fmt.Errorf("failed to create text style: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, c := range contacts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{c.Name, c.Phone, c.Status.Label(), c.Remark}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if len(contacts) > 0 {
		last := fmt.Sprintf("B%d", len(contacts)+1)
		if err := f.SetCellStyle(SheetName, "B2", last, textStyle); err != nil {
			return nil, fmt.Errorf("failed to style phone column: %w", err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
