package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/foodgram-app/foodgram-backend/pkg/ingredient"
	"github.com/foodgram-app/foodgram-backend/pkg/tag"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		Create(ctx context.Context, req domain.SaveRecipeRequest, authorID string) (domain.RecipeDetail, error)
		Update(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, editorID string) (domain.RecipeDetail, error)
		Delete(ctx context.Context, recipeID, editorID string) error
		GetByID(ctx context.Context, recipeID string) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]domain.RecipeDetail, int64, error)
		GetLink(ctx context.Context, recipeID, baseURL string) (string, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		tagRepository        tag.TagRepository
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	tagRepository tag.TagRepository,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		tagRepository:        tagRepository,
	}
}

func (s *recipeService) Create(ctx context.Context, req domain.SaveRecipeRequest, authorID string) (domain.RecipeDetail, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	if err := validateSaveRequest(req); err != nil {
		return domain.RecipeDetail{}, err
	}

	lines, tagLinks, err := s.resolveReferences(ctx, req)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	now := time.Now()
	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		CookingTime: req.CookingTime,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	attachChildren(recipe, lines, tagLinks)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, domain.StorageError(err)
	}

	return s.GetByID(ctx, recipe.ID.String())
}

func (s *recipeService) Update(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, editorID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, domain.StorageError(err)
	}

	if recipe.AuthorID.String() != editorID {
		return domain.RecipeDetail{}, domain.ErrNotRecipeAuthor
	}

	if err := validateSaveRequest(req); err != nil {
		return domain.RecipeDetail{}, err
	}

	lines, tagLinks, err := s.resolveReferences(ctx, req)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.ImageURL = req.ImageURL
	recipe.CookingTime = req.CookingTime
	recipe.UpdatedAt = time.Now()
	recipe.Author = nil
	attachChildren(recipe, lines, tagLinks)

	if err := s.recipeRepository.ReplaceRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, domain.StorageError(err)
	}

	return s.GetByID(ctx, recipeID)
}

func (s *recipeService) Delete(ctx context.Context, recipeID, editorID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return domain.StorageError(err)
	}

	if recipe.AuthorID.String() != editorID {
		return domain.ErrNotRecipeAuthor
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		return domain.StorageError(err)
	}
	return nil
}

func (s *recipeService) GetByID(ctx context.Context, recipeID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, domain.StorageError(err)
	}
	return toDetail(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int) ([]domain.RecipeDetail, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, domain.StorageError(err)
	}

	result := make([]domain.RecipeDetail, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toDetail(recipe))
	}
	return result, count, nil
}

func (s *recipeService) GetLink(ctx context.Context, recipeID, baseURL string) (string, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", domain.StorageError(err)
	}
	return fmt.Sprintf("%s/recipes/%s", baseURL, recipe.ID), nil
}

// validateSaveRequest enforces the aggregate invariants: at least one line,
// no duplicate ingredient, every amount positive, cooking time at least one
// minute. All violations are reported together, field-keyed.
func validateSaveRequest(req domain.SaveRecipeRequest) error {
	verr := &domain.ValidationError{}

	if req.CookingTime < 1 {
		verr.Add("cooking_time", "must be at least 1 minute")
	}
	if len(req.Ingredients) == 0 {
		verr.Add("ingredients", "at least one ingredient is required")
	}

	seen := make(map[string]bool, len(req.Ingredients))
	for i, line := range req.Ingredients {
		if !line.Amount.IsPositive() {
			verr.Add(fmt.Sprintf("ingredients[%d].amount", i), "must be greater than zero")
		}
		if seen[line.IngredientID] {
			verr.Add(fmt.Sprintf("ingredients[%d].ingredient_id", i), "duplicate ingredient in recipe")
		}
		seen[line.IngredientID] = true
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// resolveReferences checks that every ingredient and tag the request points
// at exists and builds the child rows.
func (s *recipeService) resolveReferences(ctx context.Context, req domain.SaveRecipeRequest) ([]entities.RecipeIngredient, []entities.RecipeTag, error) {
	ingredientIDs := make([]uuid.UUID, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		id, err := uuid.Parse(line.IngredientID)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		ingredientIDs = append(ingredientIDs, id)
	}

	found, err := s.ingredientRepository.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, domain.StorageError(err)
	}
	if len(found) != len(ingredientIDs) {
		return nil, nil, domain.ErrIngredientNotFound
	}

	lines := make([]entities.RecipeIngredient, 0, len(req.Ingredients))
	for i, line := range req.Ingredients {
		lines = append(lines, entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredientIDs[i],
			Amount:       line.Amount,
		})
	}

	tagIDs := make([]uuid.UUID, 0, len(req.TagIDs))
	for _, raw := range req.TagIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, domain.ErrParseUUID
		}
		tagIDs = append(tagIDs, id)
	}

	tagLinks := make([]entities.RecipeTag, 0, len(tagIDs))
	if len(tagIDs) > 0 {
		tags, err := s.tagRepository.GetTagsByIDs(ctx, tagIDs)
		if err != nil {
			return nil, nil, domain.StorageError(err)
		}
		if len(tags) != len(tagIDs) {
			return nil, nil, domain.ErrTagNotFound
		}
		for _, id := range tagIDs {
			tagLinks = append(tagLinks, entities.RecipeTag{ID: uuid.New(), TagID: id})
		}
	}

	return lines, tagLinks, nil
}

func attachChildren(recipe *entities.Recipe, lines []entities.RecipeIngredient, tagLinks []entities.RecipeTag) {
	for i := range lines {
		lines[i].RecipeID = recipe.ID
		lines[i].Ingredient = nil
	}
	for i := range tagLinks {
		tagLinks[i].RecipeID = recipe.ID
		tagLinks[i].Tag = nil
	}
	recipe.Ingredients = lines
	recipe.Tags = tagLinks
}

func toDetail(recipe *entities.Recipe) domain.RecipeDetail {
	detail := domain.RecipeDetail{
		Recipe: domain.Recipe{
			ID:          recipe.ID.String(),
			AuthorID:    recipe.AuthorID.String(),
			Name:        recipe.Name,
			Text:        recipe.Text,
			ImageURL:    recipe.ImageURL,
			CookingTime: recipe.CookingTime,
			CreatedAt:   recipe.CreatedAt,
		},
		Tags:        make([]domain.Tag, 0, len(recipe.Tags)),
		Ingredients: make([]domain.RecipeIngredientLine, 0, len(recipe.Ingredients)),
	}

	for _, link := range recipe.Tags {
		if link.Tag == nil {
			continue
		}
		detail.Tags = append(detail.Tags, domain.Tag{
			ID:   link.Tag.ID.String(),
			Name: link.Tag.Name,
			Slug: link.Tag.Slug,
		})
	}

	for _, line := range recipe.Ingredients {
		out := domain.RecipeIngredientLine{
			IngredientID: line.IngredientID.String(),
			Amount:       line.Amount,
		}
		if line.Ingredient != nil {
			out.Name = line.Ingredient.Name
			out.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		detail.Ingredients = append(detail.Ingredients, out)
	}

	return detail
}
