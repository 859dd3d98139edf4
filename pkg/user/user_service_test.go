package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/foodgram-app/foodgram-backend/internal/testutil"
	"github.com/foodgram-app/foodgram-backend/pkg/recipe"
	"github.com/foodgram-app/foodgram-backend/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) user.UserService {
	return user.NewUserService(user.NewUserRepository(db), recipe.NewRecipeRepository(db))
}

func createRecipeWithLine(t *testing.T, db *gorm.DB, author *entities.User, name string, ing *entities.Ingredient) *entities.Recipe {
	t.Helper()

	now := time.Now()
	r := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        name,
		Text:        "text",
		CookingTime: 5,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, db.Create(r).Error)
	require.NoError(t, db.Create(&entities.RecipeIngredient{
		ID:           uuid.New(),
		RecipeID:     r.ID,
		IngredientID: ing.ID,
		Amount:       decimal.NewFromInt(100),
	}).Error)
	return r
}

func TestGetByIDUnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := newUserService(db)

	_, err := service.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetSubscriptionsWithRecipePreview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newUserService(db)

	for i := 0; i < 5; i++ {
		createRecipeWithLine(t, db, bob, "Bob dish", flour)
	}
	createRecipeWithLine(t, db, carol, "Carol dish", flour)

	// alice follows carol first, then bob; listing keeps that order.
	base := time.Now()
	require.NoError(t, db.Create(&entities.Subscription{
		ID: uuid.New(), UserID: alice.ID, AuthorID: carol.ID, CreatedAt: base,
	}).Error)
	require.NoError(t, db.Create(&entities.Subscription{
		ID: uuid.New(), UserID: alice.ID, AuthorID: bob.ID, CreatedAt: base.Add(time.Second),
	}).Error)

	authors, count, err := service.GetSubscriptions(context.Background(), alice.ID.String(), 1, 20, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, authors, 2)

	assert.Equal(t, "carol", authors[0].Username)
	assert.EqualValues(t, 1, authors[0].RecipesCount)
	assert.Len(t, authors[0].Recipes, 1)

	assert.Equal(t, "bob", authors[1].Username)
	assert.EqualValues(t, 5, authors[1].RecipesCount)
	assert.Len(t, authors[1].Recipes, 3)
}

func TestDeleteUserCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	service := newUserService(db)

	aliceDish := createRecipeWithLine(t, db, alice, "Alice dish", flour)
	bobDish := createRecipeWithLine(t, db, bob, "Bob dish", flour)

	// Relations pointing both ways: alice's own rows and rows held by
	// others against alice's content must all go.
	require.NoError(t, db.Create(&entities.Favorite{ID: uuid.New(), UserID: alice.ID, RecipeID: bobDish.ID}).Error)
	require.NoError(t, db.Create(&entities.Favorite{ID: uuid.New(), UserID: bob.ID, RecipeID: aliceDish.ID}).Error)
	require.NoError(t, db.Create(&entities.ShoppingCart{ID: uuid.New(), UserID: bob.ID, RecipeID: aliceDish.ID}).Error)
	require.NoError(t, db.Create(&entities.Subscription{ID: uuid.New(), UserID: alice.ID, AuthorID: bob.ID}).Error)
	require.NoError(t, db.Create(&entities.Subscription{ID: uuid.New(), UserID: bob.ID, AuthorID: alice.ID}).Error)

	require.NoError(t, service.DeleteUser(context.Background(), alice.ID.String()))

	_, err := service.GetByID(context.Background(), alice.ID.String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	var recipes, lines, favorites, carts, subscriptions int64
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&entities.RecipeIngredient{}).Count(&lines).Error)
	require.NoError(t, db.Model(&entities.Favorite{}).Count(&favorites).Error)
	require.NoError(t, db.Model(&entities.ShoppingCart{}).Count(&carts).Error)
	require.NoError(t, db.Model(&entities.Subscription{}).Count(&subscriptions).Error)

	// Only bob's recipe and its line survive.
	assert.EqualValues(t, 1, recipes)
	assert.EqualValues(t, 1, lines)
	assert.Zero(t, favorites)
	assert.Zero(t, carts)
	assert.Zero(t, subscriptions)
}

func TestGetUsersOrderedByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateUser(t, db, "zoe")
	testutil.CreateUser(t, db, "adam")
	testutil.CreateUser(t, db, "mia")
	service := newUserService(db)

	users, count, err := service.GetUsers(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, users, 3)
	assert.Equal(t, "adam", users[0].Username)
	assert.Equal(t, "mia", users[1].Username)
	assert.Equal(t, "zoe", users[2].Username)
}
