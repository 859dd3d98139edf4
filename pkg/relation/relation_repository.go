package relation

import (
	"context"
	"time"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RelationRepository interface {
		Add(ctx context.Context, kind domain.RelationKind, actorID, targetID uuid.UUID) error
		Remove(ctx context.Context, kind domain.RelationKind, actorID, targetID uuid.UUID) (int64, error)
		ListTargetIDs(ctx context.Context, kind domain.RelationKind, actorID uuid.UUID, page, limit int) ([]uuid.UUID, error)
	}

	relationRepository struct {
		db *gorm.DB
	}
)

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

// Uniqueness of (actor, target) pairs is enforced by the composite unique
// indexes on the relation tables, so concurrent Adds of the same pair
// serialize in the database and exactly one wins.
func (r *relationRepository) Add(ctx context.Context, kind domain.RelationKind, actorID, targetID uuid.UUID) error {
	row := newRow(kind, actorID, targetID)
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *relationRepository) Remove(ctx context.Context, kind domain.RelationKind, actorID, targetID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND "+targetColumn(kind)+" = ?", actorID, targetID).
		Delete(model(kind))
	return result.RowsAffected, result.Error
}

// ListTargetIDs returns targets in insertion order, which keeps pagination
// stable across calls.
func (r *relationRepository) ListTargetIDs(ctx context.Context, kind domain.RelationKind, actorID uuid.UUID, page, limit int) ([]uuid.UUID, error) {
	query := r.db.WithContext(ctx).
		Model(model(kind)).
		Where("user_id = ?", actorID).
		Order("created_at asc")

	if limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var ids []uuid.UUID
	if err := query.Pluck(targetColumn(kind), &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func newRow(kind domain.RelationKind, actorID, targetID uuid.UUID) interface{} {
	now := time.Now()
	switch kind {
	case domain.RelationShoppingCart:
		return &entities.ShoppingCart{ID: uuid.New(), UserID: actorID, RecipeID: targetID, CreatedAt: now}
	case domain.RelationSubscription:
		return &entities.Subscription{ID: uuid.New(), UserID: actorID, AuthorID: targetID, CreatedAt: now}
	default:
		return &entities.Favorite{ID: uuid.New(), UserID: actorID, RecipeID: targetID, CreatedAt: now}
	}
}

func model(kind domain.RelationKind) interface{} {
	switch kind {
	case domain.RelationShoppingCart:
		return &entities.ShoppingCart{}
	case domain.RelationSubscription:
		return &entities.Subscription{}
	default:
		return &entities.Favorite{}
	}
}

func targetColumn(kind domain.RelationKind) string {
	if kind == domain.RelationSubscription {
		return "author_id"
	}
	return "recipe_id"
}
