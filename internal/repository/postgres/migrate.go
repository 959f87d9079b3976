package postgres

import (
	"dog_walking/internal/model"

	"gorm.io/gorm"
)

// Migrate создает или изменяет таблицы всех моделей.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Client{},
		&model.Dog{},
		&model.Walk{},
		&model.User{},
	)
}
