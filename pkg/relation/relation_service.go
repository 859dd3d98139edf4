package relation

import (
	"context"
	"errors"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/pkg/recipe"
	"github.com/foodgram-app/foodgram-backend/pkg/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// RelationService is the shared ledger behind favorites, shopping carts
	// and subscriptions. Callers pick the relation with a RelationKind.
	RelationService interface {
		Add(ctx context.Context, kind domain.RelationKind, actorID, targetID string) error
		Remove(ctx context.Context, kind domain.RelationKind, actorID, targetID string) error
		ListTargets(ctx context.Context, kind domain.RelationKind, actorID string, page, limit int) ([]string, error)
	}

	relationService struct {
		relationRepository RelationRepository
		recipeRepository   recipe.RecipeRepository
		userRepository     user.UserRepository
	}
)

func NewRelationService(
	relationRepository RelationRepository,
	recipeRepository recipe.RecipeRepository,
	userRepository user.UserRepository,
) RelationService {
	return &relationService{
		relationRepository: relationRepository,
		recipeRepository:   recipeRepository,
		userRepository:     userRepository,
	}
}

func (s *relationService) Add(ctx context.Context, kind domain.RelationKind, actorID, targetID string) error {
	actorUUID, targetUUID, err := parsePair(actorID, targetID)
	if err != nil {
		return err
	}

	if kind == domain.RelationSubscription && actorUUID == targetUUID {
		return domain.NewValidationError("subscription", "cannot subscribe to yourself")
	}

	if err := s.checkTargetExists(ctx, kind, targetID); err != nil {
		return err
	}

	if err := s.relationRepository.Add(ctx, kind, actorUUID, targetUUID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return kind.AlreadyExistsError()
		}
		return domain.StorageError(err)
	}
	return nil
}

// Remove deletes the pair or reports it missing. Absence is surfaced, never
// retried; the caller decides whether that is an error.
func (s *relationService) Remove(ctx context.Context, kind domain.RelationKind, actorID, targetID string) error {
	actorUUID, targetUUID, err := parsePair(actorID, targetID)
	if err != nil {
		return err
	}

	affected, err := s.relationRepository.Remove(ctx, kind, actorUUID, targetUUID)
	if err != nil {
		return domain.StorageError(err)
	}
	if affected == 0 {
		return kind.NotFoundError()
	}
	return nil
}

func (s *relationService) ListTargets(ctx context.Context, kind domain.RelationKind, actorID string, page, limit int) ([]string, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	ids, err := s.relationRepository.ListTargetIDs(ctx, kind, actorUUID, page, limit)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.String())
	}
	return result, nil
}

func (s *relationService) checkTargetExists(ctx context.Context, kind domain.RelationKind, targetID string) error {
	if kind == domain.RelationSubscription {
		if _, err := s.userRepository.GetUserByID(ctx, targetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return domain.StorageError(err)
		}
		return nil
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return domain.StorageError(err)
	}
	return nil
}

func parsePair(actorID, targetID string) (uuid.UUID, uuid.UUID, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	return actorUUID, targetUUID, nil
}
