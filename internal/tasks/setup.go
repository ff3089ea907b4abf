package tasks

import (
	"log"

	"github.com/tasknest/TN-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_tasknest"); err != nil {
		log.Fatal("Failed to ensure schema app_tasknest: ", err)
	}

	if err := db.DB.AutoMigrate(&Task{}); err != nil {
		log.Fatal("Failed to auto-migrate tasks table: ", err)
	}
}
