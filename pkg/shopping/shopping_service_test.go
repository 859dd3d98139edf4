package shopping_test

import (
	"context"
	"testing"
	"time"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/foodgram-app/foodgram-backend/internal/testutil"
	"github.com/foodgram-app/foodgram-backend/pkg/shopping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type cartFixture struct {
	db      *gorm.DB
	user    *entities.User
	service shopping.ShoppingService
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	return &cartFixture{
		db:      db,
		user:    testutil.CreateUser(t, db, "alice"),
		service: shopping.NewShoppingService(shopping.NewShoppingRepository(db)),
	}
}

// addCartRecipe creates a recipe from (ingredient, amount) pairs and puts it
// in the given user's cart.
func (f *cartFixture) addCartRecipe(t *testing.T, owner *entities.User, name string, lines map[*entities.Ingredient]string) {
	t.Helper()

	now := time.Now()
	r := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    owner.ID,
		Name:        name,
		Text:        "text",
		CookingTime: 5,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, f.db.Create(r).Error)

	for ing, amount := range lines {
		require.NoError(t, f.db.Create(&entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     r.ID,
			IngredientID: ing.ID,
			Amount:       decimal.RequireFromString(amount),
		}).Error)
	}

	require.NoError(t, f.db.Create(&entities.ShoppingCart{
		ID:       uuid.New(),
		UserID:   owner.ID,
		RecipeID: r.ID,
	}).Error)
}

func TestAggregateMergesByNameAndUnit(t *testing.T) {
	f := newCartFixture(t)
	flour := testutil.CreateIngredient(t, f.db, "flour", "g")
	salt := testutil.CreateIngredient(t, f.db, "salt", "g")
	sugar := testutil.CreateIngredient(t, f.db, "sugar", "g")

	f.addCartRecipe(t, f.user, "Recipe A", map[*entities.Ingredient]string{
		flour: "200",
		salt:  "5",
	})
	f.addCartRecipe(t, f.user, "Recipe B", map[*entities.Ingredient]string{
		flour: "300",
		sugar: "50",
	})

	items, err := f.service.Aggregate(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "flour", items[0].Name)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "salt", items[1].Name)
	assert.True(t, items[1].Amount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "sugar", items[2].Name)
	assert.True(t, items[2].Amount.Equal(decimal.NewFromInt(50)))
}

func TestAggregateKeepsDifferentUnitsApart(t *testing.T) {
	f := newCartFixture(t)
	flourG := testutil.CreateIngredient(t, f.db, "flour", "g")
	flourCup := testutil.CreateIngredient(t, f.db, "flour", "cup")

	f.addCartRecipe(t, f.user, "Recipe A", map[*entities.Ingredient]string{
		flourG:   "100",
		flourCup: "2",
	})

	items, err := f.service.Aggregate(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "cup", items[0].MeasurementUnit)
	assert.Equal(t, "g", items[1].MeasurementUnit)
}

func TestAggregateEmptyCart(t *testing.T) {
	f := newCartFixture(t)

	items, err := f.service.Aggregate(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAggregateExactDecimalSum(t *testing.T) {
	f := newCartFixture(t)
	vanilla := testutil.CreateIngredient(t, f.db, "vanilla", "tsp")

	f.addCartRecipe(t, f.user, "Recipe A", map[*entities.Ingredient]string{vanilla: "0.1"})
	f.addCartRecipe(t, f.user, "Recipe B", map[*entities.Ingredient]string{vanilla: "0.2"})

	items, err := f.service.Aggregate(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(decimal.RequireFromString("0.3")),
		"got %s", items[0].Amount)
}

func TestAggregateIsDeterministic(t *testing.T) {
	f := newCartFixture(t)
	names := []string{"zucchini", "apple", "Milk", "banana", "milk"}
	for _, name := range names {
		ing := testutil.CreateIngredient(t, f.db, name, "g")
		f.addCartRecipe(t, f.user, "Recipe "+name, map[*entities.Ingredient]string{ing: "10"})
	}

	first, err := f.service.Aggregate(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	second, err := f.service.Aggregate(context.Background(), f.user.ID.String())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "apple", first[0].Name)
	assert.Equal(t, "zucchini", first[len(first)-1].Name)
}

func TestAggregateIgnoresOtherUsersCarts(t *testing.T) {
	f := newCartFixture(t)
	bob := testutil.CreateUser(t, f.db, "bob")
	flour := testutil.CreateIngredient(t, f.db, "flour", "g")

	f.addCartRecipe(t, f.user, "Alice dish", map[*entities.Ingredient]string{flour: "100"})
	f.addCartRecipe(t, bob, "Bob dish", map[*entities.Ingredient]string{flour: "900"})

	items, err := f.service.Aggregate(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestRenderTextFormat(t *testing.T) {
	f := newCartFixture(t)

	text := f.service.RenderText([]domain.ShoppingItem{
		{Name: "flour", MeasurementUnit: "g", Amount: decimal.NewFromInt(500)},
		{Name: "vanilla", MeasurementUnit: "tsp", Amount: decimal.RequireFromString("0.5")},
	})

	assert.Equal(t, "Shopping list:\n\nflour (g) - 500\nvanilla (tsp) - 0.5\n", text)
}
