package workspace

import (
	"fmt"
	"sync"
	"testing"

	"callsheet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorkspace() *Workspace {
	w := New()
	n := 0
	w.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return w
}

func seed() []models.Contact {
	return []models.Contact{
		{ID: "a", Name: "Alice", Phone: "5550100", Status: models.StatusPending, RowNumber: 2},
		{ID: "b", Name: "Bob", Phone: "+15550200", Status: models.StatusCompleted, RowNumber: 3},
		{ID: "c", Name: "Carol", Phone: "5550300", Status: models.StatusNoAnswer, RowNumber: 4},
		{ID: "d", Name: "Dave", Phone: "5550400", Status: models.StatusCompleted, RowNumber: 5},
	}
}

func ptr[T any](v T) *T { return &v }

func TestAddManual_Scenario(t *testing.T) {
	w := newTestWorkspace()

	c, ok := w.AddManual("", "+1 (555) 999-0000", "call back later")

	require.True(t, ok)
	want := models.Contact{ID: "id-1", Name: "Contact 1", Phone: "+15559990000", Remark: "call back later", Status: models.StatusPending, RowNumber: 1}
	assert.Equal(t, want, c)
	assert.Equal(t, []models.Contact{want}, w.Snapshot().Contacts)
}

func TestAddManual_PrependsAndNumbers(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "leads.xlsx")

	c, ok := w.AddManual("  Eve ", "555 0500", "")

	require.True(t, ok)
	assert.Equal(t, "Eve", c.Name)
	assert.Equal(t, 5, c.RowNumber)
	contacts := w.Snapshot().Contacts
	require.Len(t, contacts, 5)
	assert.Equal(t, c.ID, contacts[0].ID)
	assert.Equal(t, "a", contacts[1].ID)
}

func TestAddManual_EmptyPhoneIsNoop(t *testing.T) {
	w := newTestWorkspace()
	calls := 0
	w.Subscribe(func(models.Snapshot) { calls++ })

	_, ok := w.AddManual("Nobody", "ext.", "")

	assert.False(t, ok)
	assert.Empty(t, w.Snapshot().Contacts)
	assert.Zero(t, calls)
}

func TestImport_ReplacesList(t *testing.T) {
	w := newTestWorkspace()
	w.AddManual("Old", "123", "")

	w.Import(seed()[:2], "new.xlsx")

	s := w.Snapshot()
	assert.Equal(t, "new.xlsx", s.FileName)
	assert.Equal(t, seed()[:2], s.Contacts)
}

func TestUpdate(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "leads.xlsx")

	c, ok := w.Update("a", ContactPatch{Status: ptr(models.StatusInProgress), Remark: ptr("voicemail")})

	require.True(t, ok)
	assert.Equal(t, models.StatusInProgress, c.Status)
	assert.Equal(t, "voicemail", c.Remark)
	assert.Equal(t, "Alice", c.Name)
	got, _ := w.Get("a")
	assert.Equal(t, c, got)
}

func TestUpdate_KeepsInvariants(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "")

	c, ok := w.Update("b", ContactPatch{Phone: ptr("n/a"), Status: ptr(models.Status("done"))})

	require.True(t, ok)
	assert.Equal(t, "+15550200", c.Phone)
	assert.Equal(t, models.StatusCompleted, c.Status)

	c, _ = w.Update("b", ContactPatch{Phone: ptr("(555) 0299")})
	assert.Equal(t, "5550299", c.Phone)
}

func TestUpdate_UnknownIDLeavesListUnchanged(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "leads.xlsx")
	before := w.Snapshot()
	calls := 0
	w.Subscribe(func(models.Snapshot) { calls++ })

	_, ok := w.Update("missing", ContactPatch{Remark: ptr("x")})

	assert.False(t, ok)
	assert.Equal(t, before, w.Snapshot())
	assert.Zero(t, calls)
}

func TestRemove(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "")

	assert.True(t, w.Remove("b"))
	assert.False(t, w.Remove("b"))

	contacts := w.Snapshot().Contacts
	require.Len(t, contacts, 3)
	assert.Equal(t, []string{"a", "c", "d"}, []string{contacts[0].ID, contacts[1].ID, contacts[2].ID})
}

func TestReset(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "leads.xlsx")
	var last models.Snapshot
	w.Subscribe(func(s models.Snapshot) { last = s })

	w.Reset()

	assert.Empty(t, w.Snapshot().Contacts)
	assert.Empty(t, w.FileName())
	assert.Empty(t, last.Contacts)
	assert.Empty(t, last.FileName)
}

func TestFilter_ByStatusPreservesOrder(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "")

	got := w.Filter("completed", "")

	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
	assert.Len(t, w.Filter(FilterAll, ""), 4)
	assert.Empty(t, w.Filter("in-progress", ""))
}

func TestFilter_Search(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "")

	byName := w.Filter(FilterAll, "aLi")
	require.Len(t, byName, 1)
	assert.Equal(t, "a", byName[0].ID)

	byPhone := w.Filter(FilterAll, "555-03")
	require.Len(t, byPhone, 1)
	assert.Equal(t, "c", byPhone[0].ID)

	assert.Len(t, w.Filter(FilterAll, "+1"), 1)
	assert.Empty(t, w.Filter(FilterAll, "zed"))
	assert.Len(t, w.Filter(FilterAll, "   "), 4)
	assert.Len(t, w.Filter("completed", "5550"), 2)
}

func TestCounts(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "")

	assert.Equal(t, models.StatusCounts{Total: 4, Pending: 1, Completed: 2, NoAnswer: 1}, w.Counts())
}

func TestSnapshotIsACopy(t *testing.T) {
	w := newTestWorkspace()
	w.Import(seed(), "")

	s := w.Snapshot()
	s.Contacts[0].Name = "mutated"

	got, _ := w.Get("a")
	assert.Equal(t, "Alice", got.Name)
}

func TestRestoreDoesNotNotify(t *testing.T) {
	w := newTestWorkspace()
	calls := 0
	w.Subscribe(func(models.Snapshot) { calls++ })

	w.Restore(models.Snapshot{Contacts: seed(), FileName: "saved.xlsx"})

	assert.Zero(t, calls)
	assert.Equal(t, "saved.xlsx", w.FileName())
	assert.Len(t, w.Snapshot().Contacts, 4)
}

func TestImportGuard(t *testing.T) {
	w := New()

	require.True(t, w.BeginImport())
	assert.True(t, w.Importing())
	assert.False(t, w.BeginImport())
	w.EndImport()
	assert.True(t, w.BeginImport())
	w.EndImport()
}

func TestConcurrentMutationsKeepIDsUnique(t *testing.T) {
	w := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, ok := w.AddManual("", fmt.Sprintf("555%04d", i), "")
			if ok {
				w.Update(c.ID, ContactPatch{Status: ptr(models.StatusCompleted)})
			}
			_ = w.Filter(FilterAll, "555")
		}(i)
	}
	wg.Wait()

	contacts := w.Snapshot().Contacts
	require.Len(t, contacts, 20)
	seen := map[string]bool{}
	for _, c := range contacts {
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
	assert.Equal(t, 20, w.Counts().Completed)
}
