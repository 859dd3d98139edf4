package recipe_test

import (
	"context"
	"testing"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/foodgram-app/foodgram-backend/internal/testutil"
	"github.com/foodgram-app/foodgram-backend/pkg/ingredient"
	"github.com/foodgram-app/foodgram-backend/pkg/recipe"
	"github.com/foodgram-app/foodgram-backend/pkg/tag"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecipeService(db *gorm.DB) recipe.RecipeService {
	return recipe.NewRecipeService(
		recipe.NewRecipeRepository(db),
		ingredient.NewIngredientRepository(db),
		tag.NewTagRepository(db),
	)
}

func saveRequest(lines ...domain.RecipeIngredientRequest) domain.SaveRecipeRequest {
	return domain.SaveRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Ingredients: lines,
	}
}

func TestCreateRecipeRejectsEmptyLineSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	service := newRecipeService(db)

	_, err := service.Create(context.Background(), saveRequest(), author.ID.String())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients")
}

func TestCreateRecipeRejectsNonPositiveAmount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: flour.ID.String(),
		Amount:       decimal.Zero,
	})

	_, err := service.Create(context.Background(), req, author.ID.String())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients[0].amount")
}

func TestCreateRecipeRejectsDuplicateIngredient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newRecipeService(db)

	req := saveRequest(
		domain.RecipeIngredientRequest{IngredientID: flour.ID.String(), Amount: decimal.NewFromInt(100)},
		domain.RecipeIngredientRequest{IngredientID: flour.ID.String(), Amount: decimal.NewFromInt(200)},
	)

	_, err := service.Create(context.Background(), req, author.ID.String())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients[1].ingredient_id")
}

func TestCreateRecipeRejectsShortCookingTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: flour.ID.String(),
		Amount:       decimal.NewFromInt(100),
	})
	req.CookingTime = 0

	_, err := service.Create(context.Background(), req, author.ID.String())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "cooking_time")
}

func TestCreateRecipeRejectsUnknownIngredient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: uuid.NewString(),
		Amount:       decimal.NewFromInt(100),
	})

	_, err := service.Create(context.Background(), req, author.ID.String())
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestCreateRecipePersistsLinesAndTags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	milk := testutil.CreateIngredient(t, db, "milk", "ml")
	breakfast := testutil.CreateTag(t, db, "Breakfast", "breakfast")
	service := newRecipeService(db)

	req := saveRequest(
		domain.RecipeIngredientRequest{IngredientID: flour.ID.String(), Amount: decimal.NewFromInt(200)},
		domain.RecipeIngredientRequest{IngredientID: milk.ID.String(), Amount: decimal.NewFromInt(300)},
	)
	req.TagIDs = []string{breakfast.ID.String()}

	created, err := service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)
	assert.Equal(t, author.ID.String(), created.AuthorID)
	require.Len(t, created.Ingredients, 2)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "breakfast", created.Tags[0].Slug)

	detail, err := service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", detail.Name)
	require.Len(t, detail.Ingredients, 2)
}

func TestUpdateRequiresAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	stranger := testutil.CreateUser(t, db, "bob")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: flour.ID.String(),
		Amount:       decimal.NewFromInt(200),
	})
	created, err := service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)

	req.Name = "Hijacked"
	_, err = service.Update(context.Background(), created.ID, req, stranger.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)

	// The recipe must be unchanged after the rejected update.
	detail, err := service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", detail.Name)
}

func TestUpdateReplacesLineSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	sugar := testutil.CreateIngredient(t, db, "sugar", "g")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: flour.ID.String(),
		Amount:       decimal.NewFromInt(200),
	})
	created, err := service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)

	updateReq := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: sugar.ID.String(),
		Amount:       decimal.NewFromInt(50),
	})
	updateReq.Name = "Sweet pancakes"

	updated, err := service.Update(context.Background(), created.ID, updateReq, author.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Sweet pancakes", updated.Name)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, sugar.ID.String(), updated.Ingredients[0].IngredientID)

	var lineCount int64
	require.NoError(t, db.Model(&entities.RecipeIngredient{}).Count(&lineCount).Error)
	assert.EqualValues(t, 1, lineCount)
}

func TestDeleteRequiresAuthor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	stranger := testutil.CreateUser(t, db, "bob")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: flour.ID.String(),
		Amount:       decimal.NewFromInt(200),
	})
	created, err := service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)

	err = service.Delete(context.Background(), created.ID, stranger.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotRecipeAuthor)

	_, err = service.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestDeleteCascadesLinesAndRelations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	fan := testutil.CreateUser(t, db, "bob")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: flour.ID.String(),
		Amount:       decimal.NewFromInt(200),
	})
	created, err := service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)

	recipeID := uuid.MustParse(created.ID)
	require.NoError(t, db.Create(&entities.Favorite{ID: uuid.New(), UserID: fan.ID, RecipeID: recipeID}).Error)
	require.NoError(t, db.Create(&entities.ShoppingCart{ID: uuid.New(), UserID: fan.ID, RecipeID: recipeID}).Error)

	require.NoError(t, service.Delete(context.Background(), created.ID, author.ID.String()))

	_, err = service.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	var lines, favorites, carts int64
	require.NoError(t, db.Model(&entities.RecipeIngredient{}).Where("recipe_id = ?", recipeID).Count(&lines).Error)
	require.NoError(t, db.Model(&entities.Favorite{}).Where("recipe_id = ?", recipeID).Count(&favorites).Error)
	require.NoError(t, db.Model(&entities.ShoppingCart{}).Where("recipe_id = ?", recipeID).Count(&carts).Error)
	assert.Zero(t, lines)
	assert.Zero(t, favorites)
	assert.Zero(t, carts)
}

func TestGetRecipesFilterByFavorites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	fan := testutil.CreateUser(t, db, "bob")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: flour.ID.String(),
		Amount:       decimal.NewFromInt(200),
	})
	first, err := service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)

	req.Name = "Waffles"
	_, err = service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)

	require.NoError(t, db.Create(&entities.Favorite{
		ID:       uuid.New(),
		UserID:   fan.ID,
		RecipeID: uuid.MustParse(first.ID),
	}).Error)

	recipes, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{
		FavoritedBy: fan.ID.String(),
	}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, recipes, 1)
	assert.Equal(t, first.ID, recipes[0].ID)
}

func TestGetRecipesFilterByTagAndCart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "alice")
	shopper := testutil.CreateUser(t, db, "bob")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	breakfast := testutil.CreateTag(t, db, "Breakfast", "breakfast")
	service := newRecipeService(db)

	req := saveRequest(domain.RecipeIngredientRequest{
		IngredientID: flour.ID.String(),
		Amount:       decimal.NewFromInt(200),
	})
	req.TagIDs = []string{breakfast.ID.String()}
	tagged, err := service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)

	req.Name = "Waffles"
	req.TagIDs = nil
	plain, err := service.Create(context.Background(), req, author.ID.String())
	require.NoError(t, err)

	require.NoError(t, db.Create(&entities.ShoppingCart{
		ID:       uuid.New(),
		UserID:   shopper.ID,
		RecipeID: uuid.MustParse(plain.ID),
	}).Error)

	recipes, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{
		TagSlug: "breakfast",
	}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, recipes, 1)
	assert.Equal(t, tagged.ID, recipes[0].ID)

	recipes, count, err = service.GetRecipes(context.Background(), domain.RecipeFilter{
		InCartOf: shopper.ID.String(),
	}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.Len(t, recipes, 1)
	assert.Equal(t, plain.ID, recipes[0].ID)
}
