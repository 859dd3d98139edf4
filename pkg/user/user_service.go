package user

import (
	"context"
	"errors"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/foodgram-app/foodgram-backend/pkg/recipe"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		GetByID(ctx context.Context, id string) (domain.User, error)
		GetUsers(ctx context.Context, page, limit int) ([]domain.User, int64, error)
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscribedAuthor, int64, error)
		DeleteUser(ctx context.Context, id string) error
	}

	userService struct {
		userRepository   UserRepository
		recipeRepository recipe.RecipeRepository
	}
)

func NewUserService(userRepository UserRepository, recipeRepository recipe.RecipeRepository) UserService {
	return &userService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, domain.StorageError(err)
	}
	return toDomain(user), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, domain.StorageError(err)
	}

	result := make([]domain.User, 0, len(users))
	for _, user := range users {
		result = append(result, toDomain(user))
	}
	return result, count, nil
}

// GetSubscriptions lists followed authors in subscription order, each with
// their most recent recipes (capped at recipesLimit) and full recipe count.
func (s *userService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.SubscribedAuthor, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	authors, count, err := s.userRepository.GetSubscribedAuthors(ctx, userUUID, page, limit)
	if err != nil {
		return nil, 0, domain.StorageError(err)
	}

	result := make([]domain.SubscribedAuthor, 0, len(authors))
	for _, author := range authors {
		recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, author.ID, recipesLimit)
		if err != nil {
			return nil, 0, domain.StorageError(err)
		}
		recipesCount, err := s.recipeRepository.CountRecipesByAuthor(ctx, author.ID)
		if err != nil {
			return nil, 0, domain.StorageError(err)
		}

		entry := domain.SubscribedAuthor{
			User:         toDomain(author),
			Recipes:      make([]domain.Recipe, 0, len(recipes)),
			RecipesCount: recipesCount,
		}
		for _, r := range recipes {
			entry.Recipes = append(entry.Recipes, domain.Recipe{
				ID:          r.ID.String(),
				AuthorID:    r.AuthorID.String(),
				Name:        r.Name,
				Text:        r.Text,
				ImageURL:    r.ImageURL,
				CookingTime: r.CookingTime,
				CreatedAt:   r.CreatedAt,
			})
		}
		result = append(result, entry)
	}

	return result, count, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return domain.StorageError(err)
	}

	if err := s.userRepository.DeleteUser(ctx, user.ID); err != nil {
		return domain.StorageError(err)
	}
	return nil
}

func toDomain(user *entities.User) domain.User {
	return domain.User{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
	}
}
