package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"brandbase/internal/events"

	"gorm.io/gorm"
)

// SingletonService handles one-per-user rows (brand profile, AI settings):
// writes are upserts, so calling create twice can never produce a second row.
type SingletonService[T any] interface {
	Get(ctx context.Context, userID string) (*T, error)
	Upsert(ctx context.Context, userID string, entity *T) (*T, error)
}

type SingletonServiceImpl[T any] struct {
	db        *gorm.DB
	modelType T
}

func NewSingletonService[T any](db *gorm.DB, modelType T) SingletonService[T] {
	return &SingletonServiceImpl[T]{db: db, modelType: modelType}
}

// Get returns the user's row, or ErrNotFound when none exists yet.
func (s *SingletonServiceImpl[T]) Get(ctx context.Context, userID string) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// Upsert creates the row on first write and patches it afterwards. The
// unique index on user_id backs the at-most-one-row invariant.
func (s *SingletonServiceImpl[T]) Upsert(ctx context.Context, userID string, entity *T) (*T, error) {
	reflect.ValueOf(entity).Elem().FieldByName("UserID").SetString(userID)

	existing, err := s.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
			return nil, err
		}
		events.Emit(fmt.Sprintf("%s.created", GormTableName(s.db, s.modelType)), entity)
		return entity, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(existing).
		Omit("id", "user_id", "created_at").
		Updates(entity).Error; err != nil {
		return nil, err
	}

	updated, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	events.Emit(fmt.Sprintf("%s.updated", GormTableName(s.db, s.modelType)), updated)
	return updated, nil
}
