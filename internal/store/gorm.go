package store

import (
	"context"
	"errors"

	"callsheet/internal/database"
	"callsheet/internal/models"

	"gorm.io/gorm"
)

// GormStore keeps the snapshot as a row of workspace_snapshots.
type GormStore struct {
	db  *gorm.DB
	key string
}

func NewGormStore(db *gorm.DB, key string) *GormStore {
	return &GormStore{db: db, key: key}
}

func (s *GormStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var rec models.SnapshotRecord
	err := s.db.WithContext(ctx).Where("snapshot_key = ?", s.key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(rec.Payload)
}

func (s *GormStore) Save(ctx context.Context, snap models.Snapshot) error {
	payload, err := encode(snap)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(&models.SnapshotRecord{Key: s.key, Payload: payload}).Error
}

func (s *GormStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("snapshot_key = ?", s.key).Delete(&models.SnapshotRecord{}).Error
}

func (s *GormStore) Close() error {
	return database.Close(s.db)
}
