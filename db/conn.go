// Package db opens the metadata database
package db

import (
	"fmt"

	"bitwise74/ingest-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("database.type") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("database.dsn"))
	default:
		dialector = sqlite.Open(viper.GetString("database.path"))
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(model.StoredFile{}, model.UploadRecord{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
