package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/foodgram-app/foodgram-backend/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens a fresh in-memory database, named after the test so
// parallel packages never share state, and migrates the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Ingredient{},
		&entities.Tag{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeTag{},
		&entities.Favorite{},
		&entities.ShoppingCart{},
		&entities.Subscription{},
	))

	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()

	now := time.Now()
	user := &entities.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()

	now := time.Now()
	ingredient := &entities.Ingredient{
		ID:              uuid.New(),
		Name:            name,
		MeasurementUnit: unit,
		Timestamp:       entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func CreateTag(t *testing.T, db *gorm.DB, name, slug string) *entities.Tag {
	t.Helper()

	now := time.Now()
	tag := &entities.Tag{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, db.Create(tag).Error)
	return tag
}
