package storage

import (
	"database/sql"
	"fmt"

	"github.com/loganlanou/laserwood/storage/db"
	_ "github.com/mattn/go-sqlite3"
)

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB() (*sql.DB, *db.Queries, func(), error) {
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open test database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	database.SetMaxOpenConns(1)

	if err := migrate(database); err != nil {
		database.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		database.Close()
	}

	return database, db.New(database), cleanup, nil
}

// NewTestLedger returns a WebhookLedger over a fresh in-memory database.
func NewTestLedger() (*WebhookLedger, func(), error) {
	_, queries, cleanup, err := NewTestDB()
	if err != nil {
		return nil, nil, err
	}
	return NewWebhookLedger(queries), cleanup, nil
}

// NewTestStorage wraps a fresh in-memory database in a Storage.
func NewTestStorage() (*Storage, func(), error) {
	database, queries, cleanup, err := NewTestDB()
	if err != nil {
		return nil, nil, err
	}
	return &Storage{db: database, Queries: queries}, cleanup, nil
}
