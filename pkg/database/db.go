package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open picks a dialector from the URL scheme. Accepted forms are
// sqlite://<path>, postgres://... and postgresql://...
func Open(dburl string) (*gorm.DB, error) {
	var dial gorm.Dialector

	isSqlite := false
	inMemory := false
	openConns := 20
	switch {
	case strings.HasPrefix(dburl, "sqlite://"):
		path := strings.TrimPrefix(dburl, "sqlite://")
		inMemory = strings.Contains(path, ":memory:")
		if !inMemory {
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return nil, err
			}
		}
		dial = sqlite.Open(path)
		openConns = 1
		isSqlite = true
	case strings.HasPrefix(dburl, "postgresql://"), strings.HasPrefix(dburl, "postgres://"):
		dial = postgres.Open(dburl)
	default:
		return nil, fmt.Errorf("unsupported or unrecognized DATABASE_URL value")
	}

	db, err := gorm.Open(dial, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 slogGorm.New(slogGorm.WithLogger(slog.Default())),
	})
	if err != nil {
		return nil, err
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxIdleConns(openConns)
	sqldb.SetMaxOpenConns(openConns)
	if inMemory {
		// an in-memory database lives exactly as long as its connection
		sqldb.SetConnMaxIdleTime(0)
		sqldb.SetConnMaxLifetime(0)
	} else {
		sqldb.SetConnMaxIdleTime(time.Hour)
	}

	if isSqlite {
		if err := db.Exec("PRAGMA foreign_keys = ON;").Error; err != nil {
			return nil, err
		}
		if !inMemory {
			if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
				return nil, err
			}
			if err := db.Exec("PRAGMA synchronous=normal;").Error; err != nil {
				return nil, err
			}
		}
	}

	return db, nil
}
