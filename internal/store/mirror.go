package store

import (
	"context"
	"errors"
	"time"

	"callsheet/internal/importer"
	"callsheet/internal/models"
	"callsheet/internal/workspace"

	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// Mirror copies every workspace change into a SnapshotStore. Failures are
// logged and dropped; the in-memory workspace stays authoritative.
type Mirror struct {
	store  SnapshotStore
	logger *zap.Logger
}

func NewMirror(s SnapshotStore, logger *zap.Logger) *Mirror {
	return &Mirror{store: s, logger: logger}
}

// Attach restores the saved session into ws and then subscribes to it.
func (m *Mirror) Attach(ctx context.Context, ws *workspace.Workspace) {
	m.Restore(ctx, ws)
	ws.Subscribe(m.Persist)
}

// Restore loads the stored snapshot into ws. A corrupt snapshot is deleted and
// the workspace starts empty.
func (m *Mirror) Restore(ctx context.Context, ws *workspace.Workspace) {
	snap, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, ErrCorruptSnapshot):
		m.logger.Warn("Discarding corrupt workspace snapshot", zap.Error(err))
		if err := m.store.Clear(ctx); err != nil {
			m.logger.Error("Failed to clear corrupt snapshot", zap.Error(err))
		}
		return
	case err != nil:
		m.logger.Error("Failed to load workspace snapshot", zap.Error(err))
		return
	case snap == nil:
		return
	}

	contacts := usableContacts(snap.Contacts)
	if len(contacts) == 0 {
		m.logger.Warn("Discarding workspace snapshot without usable contacts",
			zap.Int("stored", len(snap.Contacts)))
		if err := m.store.Clear(ctx); err != nil {
			m.logger.Error("Failed to clear unusable snapshot", zap.Error(err))
		}
		return
	}
	if dropped := len(snap.Contacts) - len(contacts); dropped > 0 {
		m.logger.Warn("Dropped invalid contacts from snapshot", zap.Int("dropped", dropped))
	}

	ws.Restore(models.Snapshot{Contacts: contacts, FileName: snap.FileName})
	m.logger.Info("Workspace restored",
		zap.Int("contacts", len(contacts)),
		zap.String("file_name", snap.FileName))
}

// usableContacts re-applies the Contact invariants to stored data: phones are
// normalized and must be non-empty, ids must be present and unique, and
// statuses are coerced into the closed set.
func usableContacts(stored []models.Contact) []models.Contact {
	seen := make(map[string]bool, len(stored))
	out := make([]models.Contact, 0, len(stored))
	for _, c := range stored {
		c.Phone = importer.NormalizePhone(c.Phone)
		if c.Phone == "" || c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		c.Status = models.ParseStatus(string(c.Status))
		out = append(out, c)
	}
	return out
}

// Persist is a workspace.Listener.
func (m *Mirror) Persist(snap models.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if len(snap.Contacts) == 0 {
		if err := m.store.Clear(ctx); err != nil {
			m.logger.Error("Failed to clear workspace snapshot", zap.Error(err))
		}
		return
	}
	if err := m.store.Save(ctx, snap); err != nil {
		m.logger.Error("Failed to save workspace snapshot",
			zap.Int("contacts", len(snap.Contacts)), zap.Error(err))
	}
}
