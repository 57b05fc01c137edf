// Package store persists workspace snapshots so a session survives restarts.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"callsheet/internal/config"
	"callsheet/internal/database"
	"callsheet/internal/models"

	"github.com/go-redis/redis/v8"
)

var ErrCorruptSnapshot = errors.New("stored snapshot is corrupt")

// SnapshotStore keeps at most one snapshot. Load returns nil, nil when nothing
// is stored.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, s models.Snapshot) error
	Clear(ctx context.Context) error
	Close() error
}

// Open builds the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (SnapshotStore, error) {
	switch cfg.StoreDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(client, cfg.StorageKey), nil
	default:
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db, cfg.StorageKey), nil
	}
}

func encode(s models.Snapshot) (string, error) {
	if s.Contacts == nil {
		s.Contacts = []models.Contact{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return string(b), nil
}

func decode(payload string) (*models.Snapshot, error) {
	var s models.Snapshot
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &s, nil
}
