// Package store implements the FlightStore persistence boundary on SQLite
// via GORM, using the pure-Go driver (no CGO). This file contains database
// bootstrapping and schema migration helpers.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flight-data/flight-schedule-collector/internal/domain"
	"github.com/flight-data/flight-schedule-collector/internal/infrastructure/logger"
)

// Open opens (or creates) the SQLite database and applies PRAGMAs and pool
// limits. The store is written by a single process, but WAL plus a busy
// timeout keeps concurrent readers (the search API) safe.
func Open(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist instead of a
	// cryptic sqlite "out of memory (14)".
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the flights table, including the unique
// index over the identity tuple.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Flight{})
}

// Connect opens the database, migrates the schema, and probes it with a row
// count so a broken store fails the run up front. It returns the store and a
// close function that must run on every exit path. All failures are wrapped
// in ErrStoreUnavailable.
func Connect(path string, log *logger.Logger) (*Store, func() error, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open %s: %v", domain.ErrStoreUnavailable, path, err)
	}

	closeFn := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	if err := AutoMigrate(db); err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("%w: migrate: %v", domain.ErrStoreUnavailable, err)
	}

	s := New(db)
	count, err := s.Count(context.Background())
	if err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("%w: probe: %v", domain.ErrStoreUnavailable, err)
	}

	log.Info().Str("path", path).Int64("flights", count).Msg("Store connected")
	return s, closeFn, nil
}
