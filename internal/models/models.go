package models

import (
	"strings"
	"time"
)

// Status is the call state of a Contact. Only the four constants below are
// valid; use ParseStatus to turn outside input into one.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusNoAnswer   Status = "no-answer"
)

// Statuses lists every valid Status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusNoAnswer}

var statusLabels = map[Status]string{
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusNoAnswer:   "No Answer",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable name written to exported sheets.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusPending]
}

// ParseStatus matches raw case-insensitively against status tokens and labels.
// Anything unrecognised becomes StatusPending.
func ParseStatus(raw string) Status {
	s, ok := LookupStatus(raw)
	if !ok {
		return StatusPending
	}
	return s
}

// LookupStatus is ParseStatus without the default.
func LookupStatus(raw string) (Status, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range Statuses {
		if v == string(s) || v == strings.ToLower(statusLabels[s]) {
			return s, true
		}
	}
	return "", false
}

// Contact is one call-queue entry.
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"` // digits and an optional leading +, never empty
	Remark    string `json:"remark"`
	Status    Status `json:"status"`
	RowNumber int    `json:"rowNumber"`
}

func (c Contact) DialURI() string {
	return "tel:" + c.Phone
}

// Snapshot is the unit of persistence.
type Snapshot struct {
	Contacts []Contact `json:"contacts"`
	FileName string    `json:"fileName"`
}

type StatusCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	NoAnswer   int `json:"no_answer"`
}

func (c *StatusCounts) Add(s Status) {
	c.Total++
	switch s {
	case StatusInProgress:
		c.InProgress++
	case StatusCompleted:
		c.Completed++
	case StatusNoAnswer:
		c.NoAnswer++
	default:
		c.Pending++
	}
}

// SnapshotRecord stores one serialized Snapshot under a namespaced key.
type SnapshotRecord struct {
	Key       string    `gorm:"column:snapshot_key;primaryKey;type:varchar(255)" json:"key"`
	Payload   string    `gorm:"type:text" json:"payload"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SnapshotRecord) TableName() string {
	return "workspace_snapshots"
}
