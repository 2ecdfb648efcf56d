package db

import (
	"github.com/jambohub/jambohub/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(path string) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})

	if err != nil {
		return err
	}

	// Single-writer embedded store; WAL keeps readers unblocked during
	// message writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-20000",
	}

	for _, pragma := range pragmas {
		if err := DB.Exec(pragma).Error; err != nil {
			return err
		}
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Unit{},
		&models.Channel{},
		&models.Message{},
		&models.InfoCard{},
		&models.PushSubscription{},
		&models.VapidKey{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_messages_channel_created ON messages(channel_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",
	}

	for _, index := range indexes {
		if err := DB.Exec(index).Error; err != nil {
			return err
		}
	}

	return nil
}
