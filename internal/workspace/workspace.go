// Package workspace holds the in-memory call list. It is the single source of
// truth; persistence and live updates subscribe to its changes.
package workspace

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"callsheet/internal/importer"
	"callsheet/internal/models"
)

// FilterAll disables status filtering in Filter.
const FilterAll = "all"

// Listener receives the workspace state after every mutation. Listeners run
// while the workspace is locked and must not call back into it.
type Listener func(models.Snapshot)

// ContactPatch carries the fields to merge in Update. Nil fields are untouched.
type ContactPatch struct {
	Name   *string
	Phone  *string
	Remark *string
	Status *models.Status
}

type Workspace struct {
	mu        sync.RWMutex
	contacts  []models.Contact
	fileName  string
	listeners []Listener
	importing atomic.Bool
	newID     func() string
}

func New() *Workspace {
	return &Workspace{newID: importer.NewID}
}

// Subscribe registers l for change notifications.
func (w *Workspace) Subscribe(l Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, l)
}

// Restore loads a saved snapshot without notifying listeners.
func (w *Workspace) Restore(s models.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contacts = append([]models.Contact(nil), s.Contacts...)
	w.fileName = s.FileName
}

// Import replaces the whole list and the source file name.
func (w *Workspace) Import(contacts []models.Contact, fileName string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contacts = append([]models.Contact(nil), contacts...)
	w.fileName = fileName
	w.notify()
}

// AddManual puts a new pending contact at the head of the list. It is a no-op
// returning false when phone has no digits.
func (w *Workspace) AddManual(name, phone, remark string) (models.Contact, bool) {
	phone = importer.NormalizePhone(phone)
	if phone == "" {
		return models.Contact{}, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	count := len(w.contacts)
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Contact %d", count+1)
	}
	c := models.Contact{
		ID:        w.newID(),
		Name:      name,
		Phone:     phone,
		Remark:    remark,
		Status:    models.StatusPending,
		RowNumber: count + 1,
	}

	next := make([]models.Contact, 0, count+1)
	next = append(next, c)
	next = append(next, w.contacts...)
	w.contacts = next
	w.notify()
	return c, true
}

// Update merges patch into the contact with the given id. A phone that
// normalizes to nothing and an invalid status are ignored.
func (w *Workspace) Update(id string, patch ContactPatch) (models.Contact, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(id)
	if i < 0 {
		return models.Contact{}, false
	}

	c := w.contacts[i]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Phone != nil {
		if phone := importer.NormalizePhone(*patch.Phone); phone != "" {
			c.Phone = phone
		}
	}
	if patch.Remark != nil {
		c.Remark = *patch.Remark
	}
	if patch.Status != nil && patch.Status.Valid() {
		c.Status = *patch.Status
	}

	next := append([]models.Contact(nil), w.contacts...)
	next[i] = c
	w.contacts = next
	w.notify()
	return c, true
}

func (w *Workspace) Remove(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]models.Contact, 0, len(w.contacts)-1)
	next = append(next, w.contacts[:i]...)
	next = append(next, w.contacts[i+1:]...)
	w.contacts = next
	w.notify()
	return true
}

// Reset empties the list and forgets the file name.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.contacts = nil
	w.fileName = ""
	w.notify()
}

func (w *Workspace) Get(id string) (models.Contact, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if i := w.indexOf(id); i >= 0 {
		return w.contacts[i], true
	}
	return models.Contact{}, false
}

func (w *Workspace) Snapshot() models.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := w.snapshot()
	s.Contacts = append([]models.Contact{}, s.Contacts...)
	return s
}

func (w *Workspace) FileName() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fileName
}

// Filter returns the contacts matching statusFilter ("all" or a status token)
// and search, in list order. A blank search matches everything; otherwise the
// name must contain it case-insensitively, or the phone must contain its
// digits and '+'.
func (w *Workspace) Filter(statusFilter, search string) []models.Contact {
	w.mu.RLock()
	defer w.mu.RUnlock()

	search = strings.TrimSpace(search)
	term := strings.ToLower(search)
	phoneTerm := importer.NormalizePhone(search)

	out := make([]models.Contact, 0, len(w.contacts))
	for _, c := range w.contacts {
		if statusFilter != FilterAll && statusFilter != "" && string(c.Status) != statusFilter {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			(phoneTerm == "" || !strings.Contains(c.Phone, phoneTerm)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (w *Workspace) Counts() models.StatusCounts {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var counts models.StatusCounts
	for _, c := range w.contacts {
		counts.Add(c.Status)
	}
	return counts
}

// BeginImport claims the single import slot. It returns false while another
// import is still running; callers must pair a true result with EndImport.
func (w *Workspace) BeginImport() bool {
	return w.importing.CompareAndSwap(false, true)
}

func (w *Workspace) EndImport() {
	w.importing.Store(false)
}

func (w *Workspace) Importing() bool {
	return w.importing.Load()
}

func (w *Workspace) indexOf(id string) int {
	for i, c := range w.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) snapshot() models.Snapshot {
	contacts := w.contacts
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return models.Snapshot{Contacts: contacts, FileName: w.fileName}
}

// notify must be called with mu held. The contacts slice is never mutated in
// place, so handing it to listeners is safe.
func (w *Workspace) notify() {
	s := w.snapshot()
	for _, l := range w.listeners {
		l(s)
	}
}
