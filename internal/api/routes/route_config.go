package routes

import (
	"recipe-radar/internal/api/handlers"
	"recipe-radar/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	CatalogHandler handlers.CatalogHandler
	SearchHandler  handlers.SearchHandler
	RecipeHandler  handlers.RecipeHandler
	Middleware     middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Catalog()
	c.Searches()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) Catalog() {
	catalog := c.App.Group("/api/v1/catalog")
	{
		catalog.Post("/categories/sync", c.CatalogHandler.SyncCategories)
		catalog.Post("/import", c.CatalogHandler.ImportFeed)
		catalog.Get("/products/:id", c.CatalogHandler.GetProduct)
		catalog.Get("/annotations/pending", c.CatalogHandler.GetPendingAnnotations)
		catalog.Post("/annotations/:id/complete", c.CatalogHandler.CompleteAnnotation)
	}
}

func (c *Config) Searches() {
	searches := c.App.Group("/api/v1/searches")
	{
		searches.Post("", c.SearchHandler.SubmitSearch)
		searches.Get("", c.SearchHandler.GetSearchesNeedingAttention)
		searches.Post("/:id/run", c.SearchHandler.RunSearch)
		searches.Post("/:id/cancel", c.SearchHandler.CancelSearch)
		searches.Get("/:id", c.SearchHandler.GetSearchProgress)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
