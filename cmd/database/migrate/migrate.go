package migration

import (
	"fmt"
	"log"

	"github.com/Denyusha/Food-Donation-updated/entities"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Setup PostgreSQL extensions for geographical calculations
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"earthdistance\" CASCADE;")
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"cube\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Badge{}); err != nil {
		log.Fatalf("Error migrating badge database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Donation{}); err != nil {
		log.Fatalf("Error migrating donation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DonationImage{}); err != nil {
		log.Fatalf("Error migrating donation image database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Feedback{}); err != nil {
		log.Fatalf("Error migrating feedback database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Notification{}); err != nil {
		log.Fatalf("Error migrating notification database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
