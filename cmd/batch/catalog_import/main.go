package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"

	"recipe-radar/cmd/config"
	migration "recipe-radar/cmd/database/migrate"
	"recipe-radar/domain"
	"recipe-radar/internal/utils"
	"recipe-radar/internal/utils/logger"
	"recipe-radar/internal/utils/storage"
	"recipe-radar/pkg/catalog"
	"recipe-radar/pkg/provider"
)

// feedFile is the on-disk shape of one vendor dump: the category tree
// plus the product records, exported in a single JSON document.
type feedFile struct {
	Categories []domain.VendorCategory `json:"categories"`
	Products   []domain.VendorProduct  `json:"products"`
}

func main() {
	feedPath := flag.String("feed", "", "path to the vendor feed JSON file")
	flag.Parse()
	if *feedPath == "" {
		log.Fatal("usage: catalog_import -feed <feed.json>")
	}

	utils.LoadConfig()

	raw, err := os.ReadFile(*feedPath)
	if err != nil {
		log.Fatalf("Failed to read feed file: %v", err)
	}
	var feed feedFile
	if err := json.Unmarshal(raw, &feed); err != nil {
		log.Fatalf("Failed to parse feed file: %v", err)
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	zapLog, err := logger.New(utils.GetConfig("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Failed to setup logger: %v", err)
	}

	batchSize, err := strconv.Atoi(utils.GetConfig("IMPORT_BATCH_SIZE"))
	if err != nil || batchSize <= 0 {
		batchSize = catalog.DefaultBatchSize
	}
	catalogService := catalog.NewCatalogService(
		catalog.NewCatalogRepository(db),
		storage.NewAwsS3(),
		provider.NewImageDownloader(),
		zapLog,
		utils.GetConfig("STORE_NAME"),
		batchSize,
	)

	ctx := context.Background()

	if len(feed.Categories) > 0 {
		synced, err := catalogService.SyncCategories(ctx, domain.SyncCategoriesRequest{
			Categories: feed.Categories,
		})
		if err != nil {
			log.Fatalf("Failed to sync categories: %v", err)
		}
		log.Printf("Synced %d store categories", synced)
	}

	result, err := catalogService.ImportFeed(ctx, domain.ImportFeedRequest{
		Products: feed.Products,
	})
	if err != nil {
		log.Fatalf("Failed to import feed: %v", err)
	}
	log.Printf(
		"Import complete: processed=%d skipped=%d failed=%d",
		result.ProcessedCount, result.SkippedCount, result.FailedCount,
	)
}
