package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var ErrNoSheet = errors.New("workbook has no sheets")

// DecodeWorkbook reads the first sheet of an OOXML workbook (.xlsx, .xlsm).
// Legacy binary .xls files are not supported and fail to open.
// Row 1 supplies the column names; every following row becomes a Row, blank
// rows included, so a row's index maps back to its sheet position. Empty cells
// are left out.
func DecodeWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %q: %w", sheets[0], err)
	}
	if len(raw) == 0 {
		return []Row{}, nil
	}

	header := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, values := range raw[1:] {
		row := make(Row, 0, len(header))
		for col, name := range header {
			if name == "" || col >= len(values) || values[col] == "" {
				continue
			}
			row = append(row, Cell{Name: name, Value: values[col]})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
