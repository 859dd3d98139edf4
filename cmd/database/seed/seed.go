package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/foodgram-app/foodgram-backend/cmd/config"
	migration "github.com/foodgram-app/foodgram-backend/cmd/database/migrate"
	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/foodgram-app/foodgram-backend/internal/utils"
	"github.com/foodgram-app/foodgram-backend/pkg/ingredient"
)

// Loads the ingredient catalog from a JSON file into the database. Safe to
// run repeatedly: existing (name, unit) pairs are skipped and the whole load
// is one transaction.
func main() {
	utils.LoadConfig()

	path := utils.GetConfig("INGREDIENTS_FILE")
	if path == "" {
		path = "data/ingredients.json"
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read ingredients file: %v", err)
	}

	var records []domain.IngredientRecord
	if err := json.Unmarshal(file, &records); err != nil {
		log.Fatalf("failed to parse ingredients file: %v", err)
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	service := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db))
	inserted, err := service.BulkLoad(context.Background(), records)
	if err != nil {
		log.Fatalf("failed to load ingredients: %v", err)
	}

	fmt.Printf("Ingredients loaded successfully (%d new of %d)\n", inserted, len(records))
}
