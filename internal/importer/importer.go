package importer

import (
	"fmt"
	"strings"

	"callsheet/internal/models"

	"github.com/google/uuid"
)

// Column synonyms, highest priority first.
var (
	PhoneColumns  = []string{"phone", "phone number", "mobile", "contact", "number"}
	NameColumns   = []string{"name", "customer", "contact name", "full name"}
	RemarkColumns = []string{"remark", "remarks", "notes", "note"}
	StatusColumns = []string{"status", "call status"}
)

// NewID returns a random contact identifier.
func NewID() string {
	return uuid.NewString()
}

// ImportRows maps sheet rows to contacts. Rows without a usable phone number
// are skipped but still count toward the row numbering, so RowNumber always
// points at the source spreadsheet row (header on row 1).
func ImportRows(rows []Row, newID func() string) []models.Contact {
	if newID == nil {
		newID = NewID
	}

	contacts := make([]models.Contact, 0, len(rows))
	for i, row := range rows {
		phone := NormalizePhone(Extract(row, PhoneColumns, ""))
		if phone == "" {
			continue
		}

		name := Extract(row, NameColumns, "")
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Contact %d", i+1)
		}

		contacts = append(contacts, models.Contact{
			ID:        newID(),
			Name:      name,
			Phone:     phone,
			Remark:    Extract(row, RemarkColumns, ""),
			Status:    models.ParseStatus(Extract(row, StatusColumns, string(models.StatusPending))),
			RowNumber: i + 2,
		})
	}
	return contacts
}
