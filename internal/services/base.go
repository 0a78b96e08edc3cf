package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"brandbase/internal/events"

	"gorm.io/gorm"
)

// ErrNotFound covers both a genuinely missing row and a row owned by someone
// else. Handlers map it to 404 so callers cannot probe for other users' ids.
var ErrNotFound = errors.New("not found")

// OwnedService defines CRUD over a single owned table. Every query is scoped
// to the caller's user id; there is no way to reach another user's rows
// through this interface.
type OwnedService[T any] interface {
	List(ctx context.Context, userID string, filters map[string]interface{}, search string) ([]T, error)
	Get(ctx context.Context, userID, id string) (*T, error)
	Create(ctx context.Context, userID string, entity *T) error
	Update(ctx context.Context, userID, id string, entity *T) (*T, error)
	Delete(ctx context.Context, userID, id string) error
}

// OwnedServiceImpl implements OwnedService on gorm.
type OwnedServiceImpl[T any] struct {
	db        *gorm.DB
	modelType T

	// SearchColumns enables case-insensitive substring search on List.
	SearchColumns []string
	// DeactivateOnDelete flips is_active to false instead of removing the
	// row (vouchers only).
	DeactivateOnDelete bool
}

func GormTableName(db *gorm.DB, v any) string {
	structName := reflect.TypeOf(v).Name()
	return db.NamingStrategy.TableName(structName)
}

// NewOwnedService creates a new owner-scoped service
func NewOwnedService[T any](db *gorm.DB, modelType T) *OwnedServiceImpl[T] {
	return &OwnedServiceImpl[T]{
		db:        db,
		modelType: modelType,
	}
}

func (s *OwnedServiceImpl[T]) scoped(ctx context.Context, userID string) *gorm.DB {
	return s.db.WithContext(ctx).Model(new(T)).Where("user_id = ?", userID)
}

func (s *OwnedServiceImpl[T]) List(ctx context.Context, userID string, filters map[string]interface{}, search string) ([]T, error) {
	query := s.scoped(ctx, userID)

	for column, value := range filters {
		query = query.Where(column+" = ?", value)
	}

	if search != "" && len(s.SearchColumns) > 0 {
		pattern := "%" + search + "%"
		clause := ""
		args := make([]interface{}, 0, len(s.SearchColumns))
		for i, column := range s.SearchColumns {
			if i > 0 {
				clause += " OR "
			}
			clause += fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", column)
			args = append(args, pattern)
		}
		query = query.Where(clause, args...)
	}

	entities := make([]T, 0)
	if err := query.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *OwnedServiceImpl[T]) Get(ctx context.Context, userID, id string) (*T, error) {
	var entity T
	if err := s.scoped(ctx, userID).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (s *OwnedServiceImpl[T]) Create(ctx context.Context, userID string, entity *T) error {
	// Force ownership regardless of what the request body claimed.
	reflect.ValueOf(entity).Elem().FieldByName("UserID").SetString(userID)

	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return err
	}

	events.Emit(fmt.Sprintf("%s.created", GormTableName(s.db, s.modelType)), entity)
	return nil
}

func (s *OwnedServiceImpl[T]) Update(ctx context.Context, userID, id string, entity *T) (*T, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(existing).
		Omit("id", "user_id", "created_at").
		Where("id = ? AND user_id = ?", id, userID).
		Updates(entity).Error; err != nil {
		return nil, err
	}

	updated, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	events.Emit(fmt.Sprintf("%s.updated", GormTableName(s.db, s.modelType)), updated)
	return updated, nil
}

func (s *OwnedServiceImpl[T]) Delete(ctx context.Context, userID, id string) error {
	if s.DeactivateOnDelete {
		result := s.scoped(ctx, userID).Where("id = ?", id).Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
	} else {
		result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
	}

	events.Emit(fmt.Sprintf("%s.deleted", GormTableName(s.db, s.modelType)), id)
	return nil
}
