package config

import (
	"os"
	"strconv"
	"time"

	"recipe-radar/internal/api/handlers"
	"recipe-radar/internal/api/routes"
	"recipe-radar/internal/middleware"
	"recipe-radar/internal/utils"
	"recipe-radar/internal/utils/logger"
	"recipe-radar/internal/utils/storage"
	"recipe-radar/pkg/catalog"
	"recipe-radar/pkg/ingredientcache"
	"recipe-radar/pkg/provider"
	"recipe-radar/pkg/recipe"
	"recipe-radar/pkg/search"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	zapLog, err := logger.New(utils.GetConfig("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	// setting up logging and limiter
	err = os.MkdirAll("./logs", os.ModePerm)
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
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// External collaborators
	searchProvider := provider.NewSearchProvider(
		utils.GetConfig("SEARCH_PROVIDER_URL"),
		utils.GetConfig("SEARCH_PROVIDER_KEY"),
	)
	investigator := provider.NewPageInvestigator()
	resolver := provider.NewProductResolver(utils.GetConfig("RESOLVER_URL"))
	images := provider.NewImageDownloader()

	// Repository
	catalogRepository := catalog.NewCatalogRepository(db)
	cacheRepository := ingredientcache.NewCacheRepository(db)
	searchRepository := search.NewSearchRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	catalogService := catalog.NewCatalogService(
		catalogRepository,
		s3,
		images,
		zapLog,
		utils.GetConfig("STORE_NAME"),
		configInt("IMPORT_BATCH_SIZE", catalog.DefaultBatchSize),
	)
	cacheService := ingredientcache.NewCacheService(cacheRepository, resolver, zapLog)
	recipeService := recipe.NewRecipeService(recipeRepository, zapLog)
	searchService := search.NewSearchService(
		searchRepository,
		recipeRepository,
		recipeService,
		cacheService,
		searchProvider,
		investigator,
		zapLog,
		configInt("SEARCH_WORKERS", search.DefaultWorkers),
		configInt("SEARCH_MIN_RECIPES", search.DefaultMinRecipes),
	)

	// Handler
	catalogHandler := handlers.NewCatalogHandler(catalogService, validator)
	searchHandler := handlers.NewSearchHandler(searchService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		CatalogHandler: catalogHandler,
		SearchHandler:  searchHandler,
		RecipeHandler:  recipeHandler,
		Middleware:     middlewares,
	}
	routesConfig.Setup()
	return app, nil
}

func configInt(key string, fallback int) int {
	value, err := strconv.Atoi(utils.GetConfig(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
