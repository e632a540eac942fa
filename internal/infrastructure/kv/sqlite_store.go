package kv

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/infrastructure/persistence/sqlite/model"
	"feedbackdesk/internal/ports"
)

type SQLiteStore struct {
	db *gorm.DB
}

var _ ports.StateStore = (*SQLiteStore)(nil)

func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return nil, false, err
	}

	var row model.StateKV
	if err := s.db.WithContext(ctx).Where("key = ?", trimmedKey).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, errs.Wrapf(err, "query state key %q", trimmedKey)
	}

	return []byte(row.Value), true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	row := model.StateKV{
		Key:       trimmedKey,
		Value:     string(value),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      row.Value,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrapf(err, "upsert state key %q", trimmedKey)
	}

	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Where("key = ?", trimmedKey).Delete(&model.StateKV{}).Error; err != nil {
		return errs.Wrapf(err, "delete state key %q", trimmedKey)
	}
	return nil
}

func checkKey(ctx context.Context, key string) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}

	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return "", errors.New("key is required")
	}
	return trimmedKey, nil
}
