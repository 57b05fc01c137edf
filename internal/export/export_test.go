package export

import (
	"bytes"
	"testing"

	"callsheet/internal/importer"
	"callsheet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "call-updates.xlsx", FileName(""))
	assert.Equal(t, "leads-updated.xlsx", FileName("leads.xlsx"))
	assert.Equal(t, "q3 leads-updated.xlsx", FileName("q3 leads.xls"))
	assert.Equal(t, "batch.v2-updated.xlsx", FileName("batch.v2.xlsx"))
	assert.Equal(t, "leads-updated.xlsx", FileName("/tmp/uploads/leads.xlsx"))
}

func TestWorkbook_Layout(t *testing.T) {
	contacts := []models.Contact{
		{ID: "1", Name: "Alice", Phone: "+15550100", Status: models.StatusInProgress, Remark: "call at 5"},
		{ID: "2", Name: "Bob", Phone: "5550200", Status: models.StatusNoAnswer},
	}

	data, err := Workbook(contacts)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"Alice", "+15550100", "In Progress", "call at 5"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 3)
	assert.Equal(t, []string{"Bob", "5550200", "No Answer"}, rows[2][:3])
}

func TestWorkbook_Empty(t *testing.T) {
	data, err := Workbook(nil)
	require.NoError(t, err)

	rows, err := importer.DecodeWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWorkbook_RoundTrip(t *testing.T) {
	original := []models.Contact{
		{ID: "1", Name: "Alice", Phone: "+15550100", Status: models.StatusCompleted, Remark: "closed deal, send invoice"},
		{ID: "2", Name: "Bob", Phone: "5550200", Status: models.StatusInProgress},
		{ID: "3", Name: "Carol", Phone: "5550300", Status: models.StatusNoAnswer, Remark: "try again"},
		{ID: "4", Name: "Dave", Phone: "0044123", Status: models.StatusPending},
	}

	data, err := Workbook(original)
	require.NoError(t, err)
	rows, err := importer.DecodeWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	back := importer.ImportRows(rows, nil)

	require.Len(t, back, len(original))
	for i := range original {
		assert.Equal(t, original[i].Name, back[i].Name)
		assert.Equal(t, original[i].Phone, back[i].Phone)
		assert.Equal(t, original[i].Status, back[i].Status)
		assert.Equal(t, original[i].Remark, back[i].Remark)
		assert.Equal(t, i+2, back[i].RowNumber)
	}
}
