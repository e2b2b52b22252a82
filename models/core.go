package models

import (
	"log"
	"os"
	"path/filepath"

	"github.com/duraiaravindh/parcel-landscore/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// StateDB is the sqlite side database holding per-viewer state
// (saved viewports, selected id mirror, overlay toggles, entered flag).
var StateDB *gorm.DB

func InitDB() {
	var dialector gorm.Dialector
	switch config.Driver {
	case "mysql":
		dialector = mysql.Open(config.DSN)
	case "sqlite":
		dialector = sqlite.Open(config.Dbname)
	default:
		dialector = postgres.Open(config.DSN)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	DB.NamingStrategy = schema.NamingStrategy{
		SingularTable: true,
	}

	if err := migrateAllTables(DB); err != nil {
		log.Printf("Failed to migrate tables: %v", err)
	}
}

// InitStateDB opens the viewer-state sqlite database under the download dir.
func InitStateDB() error {
	StoragePath := config.Download + "/State"
	DBFileName := "viewer.db"
	if err := os.MkdirAll(StoragePath, os.ModePerm); err != nil {
		log.Printf("Failed to create state dir: %v", err)
		return err
	}

	dbPath := filepath.Join(StoragePath, DBFileName)

	var err error
	StateDB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to open state database: %v", err)
		return err
	}

	if err := StateDB.AutoMigrate(&SavedViewport{}, &SelectedState{}, &OverlayLayer{}, &ViewerFlag{}); err != nil {
		log.Printf("Failed to migrate state tables: %v", err)
		return err
	}

	return nil
}

func migrateAllTables(db *gorm.DB) error {
	models := []interface{}{
		&Parcel{},
		&LandSegment{},
		&Improvement{},
	}

	return db.AutoMigrate(models...)
}
