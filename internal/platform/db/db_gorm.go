// Package db opens the gorm database connection for the service.
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"record_backend/internal/config"
	"record_backend/internal/feature/records/domain/entity"
)

// OpenDB connects to the configured datastore, retrying for up to a minute
// before giving up. TranslateError is enabled so unique-constraint failures
// surface as gorm.ErrDuplicatedKey on every driver.
func OpenDB(cfg config.Database) *gorm.DB {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		log.Fatalf("DB config invalid: %v", err)
	}

	var db *gorm.DB
	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(&entity.Record{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// dialectorFor maps the configured driver name to a gorm dialector.
func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
