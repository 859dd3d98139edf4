package config

import (
	"os"
	"time"

	"github.com/foodgram-app/foodgram-backend/internal/api/handlers"
	"github.com/foodgram-app/foodgram-backend/internal/api/routes"
	"github.com/foodgram-app/foodgram-backend/internal/middleware"
	"github.com/foodgram-app/foodgram-backend/internal/utils"
	"github.com/foodgram-app/foodgram-backend/pkg/ingredient"
	"github.com/foodgram-app/foodgram-backend/pkg/jwt"
	"github.com/foodgram-app/foodgram-backend/pkg/recipe"
	"github.com/foodgram-app/foodgram-backend/pkg/relation"
	"github.com/foodgram-app/foodgram-backend/pkg/shopping"
	"github.com/foodgram-app/foodgram-backend/pkg/tag"
	"github.com/foodgram-app/foodgram-backend/pkg/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Repository
	userRepository := user.NewUserRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	tagRepository := tag.NewTagRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	relationRepository := relation.NewRelationRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	tagService := tag.NewTagService(tagRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, ingredientRepository, tagRepository)
	relationService := relation.NewRelationService(relationRepository, recipeRepository, userRepository)
	shoppingService := shopping.NewShoppingService(shoppingRepository)
	userService := user.NewUserService(userRepository, recipeRepository)

	// Handler
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	tagHandler := handlers.NewTagHandler(tagService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, relationService, shoppingService, validator)
	userHandler := handlers.NewUserHandler(userService, relationService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		IngredientHandler: ingredientHandler,
		TagHandler:        tagHandler,
		RecipeHandler:     recipeHandler,
		UserHandler:       userHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
