package migration

import (
	"fmt"
	"log"

	"recipe-radar/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.StoreCategory{}); err != nil {
		log.Fatalf("Error migrating store category database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Product{}); err != nil {
		log.Fatalf("Error migrating product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PendingAnnotation{}); err != nil {
		log.Fatalf("Error migrating pending annotation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.IngredientCache{}); err != nil {
		log.Fatalf("Error migrating ingredient cache database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.SearchHistory{}); err != nil {
		log.Fatalf("Error migrating search history database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CandidateURL{}); err != nil {
		log.Fatalf("Error migrating candidate url database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe ingredient database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
