package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sitecms/internal/db"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// singletonDocument stores at most one document of type T under a fixed key.
//
// The unique index on site_documents.key is what prevents duplicate rows when
// several writers race on first access; creation uses ON CONFLICT DO NOTHING
// and then re-reads whichever row won. singleflight additionally collapses
// concurrent first reads within this process into one query.
type singletonDocument[T any] struct {
	db       *gorm.DB
	key      string
	defaults func() T
	group    singleflight.Group
}

func newSingletonDocument[T any](gdb *gorm.DB, key string, defaults func() T) *singletonDocument[T] {
	return &singletonDocument[T]{db: gdb, key: key, defaults: defaults}
}

// get returns the stored document, persisting the default one if none exists.
func (s *singletonDocument[T]) get(ctx context.Context) (T, error) {
	detached := context.WithoutCancel(ctx)
	raw, err, _ := s.group.Do(s.key, func() (any, error) {
		return s.loadOrCreate(detached)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return s.decode(raw.([]byte))
}

// update applies mutate to the current document (or the default one) and
// upserts the result. mutate may reject the change by returning an error.
func (s *singletonDocument[T]) update(ctx context.Context, mutate func(doc *T) error) (T, error) {
	var saved T

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc := s.defaults()

		var record db.SiteDocument
		err := tx.Where("key = ?", s.key).First(&record).Error
		switch {
		case err == nil:
			decoded, decodeErr := s.decode(record.Data)
			if decodeErr != nil {
				return decodeErr
			}
			doc = decoded
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return storageError("load "+s.key, err)
		}

		if err := mutate(&doc); err != nil {
			return err
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode %s: %w", s.key, err)
		}

		if err := upsertDocument(tx, s.key, data); err != nil {
			return err
		}

		saved = doc
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return saved, nil
}

func (s *singletonDocument[T]) loadOrCreate(ctx context.Context) ([]byte, error) {
	var record db.SiteDocument
	err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&record).Error
	if err == nil {
		return record.Data, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError("load "+s.key, err)
	}

	data, err := json.Marshal(s.defaults())
	if err != nil {
		return nil, fmt.Errorf("encode default %s: %w", s.key, err)
	}

	created := db.SiteDocument{Key: s.key, Data: datatypes.JSON(data)}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&created).Error; err != nil {
		return nil, storageError("create "+s.key, err)
	}

	var stored db.SiteDocument
	if err := s.db.WithContext(ctx).Where("key = ?", s.key).First(&stored).Error; err != nil {
		return nil, storageError("reload "+s.key, err)
	}
	return stored.Data, nil
}

func (s *singletonDocument[T]) decode(raw []byte) (T, error) {
	doc := s.defaults()
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return doc, nil
}

func upsertDocument(tx *gorm.DB, key string, data []byte) error {
	record := db.SiteDocument{Key: key, Data: datatypes.JSON(data)}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"data":       datatypes.JSON(data),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&record).Error; err != nil {
		return storageError("upsert "+key, err)
	}
	return nil
}
