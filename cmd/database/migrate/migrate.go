package migration

import (
	"fmt"
	"log"

	"freshkeep/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []interface{}{
		&entities.User{},
		&entities.Transaction{},
		&entities.Product{},
		&entities.ReceiptScan{},
		&entities.Notification{},
		&entities.Recipe{},
		&entities.RecipeFavorite{},
		&entities.RecipeHistory{},
		&entities.WeeklyMenuEntry{},
		&entities.ShoppingListItem{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating database: %v", err)
			return err
		}
	}

	// Backstop for the unread-notification dedup guard: at most one
	// unread notification per (user, product, type) even under
	// concurrent inserts.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_notifications_unread_dedup
		ON notifications (user_id, product_id, type)
		WHERE is_read = false;`)

	fmt.Println("Database migration complete")
	return nil
}
