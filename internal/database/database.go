// Package database is the SQLite implementation of the repository's store
// contract. The repository treats it as an opaque collaborator; everything
// schema-shaped lives here.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

func Initialize(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			password TEXT NOT NULL,
			streak INTEGER NOT NULL DEFAULT 0,
			last_login TEXT NOT NULL DEFAULT '',
			dark_mode BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS clothing_items (
			username TEXT NOT NULL,
			id INTEGER NOT NULL,
			category TEXT NOT NULL,
			color TEXT NOT NULL,
			image BLOB,
			pant_length REAL NOT NULL DEFAULT 0,
			pant_waist TEXT NOT NULL DEFAULT '',
			top_sleeve_type TEXT NOT NULL DEFAULT '',
			top_neckline TEXT NOT NULL DEFAULT '',
			jacket_waterproof BOOLEAN NOT NULL DEFAULT FALSE,
			shoe_size REAL NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			PRIMARY KEY (username, id),
			FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS item_materials (
			username TEXT NOT NULL,
			item_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			material TEXT NOT NULL,
			PRIMARY KEY (username, item_id, position),
			FOREIGN KEY (username, item_id) REFERENCES clothing_items(username, id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS outfits (
			username TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			season TEXT NOT NULL,
			date_added TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (username, id),
			FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS outfit_items (
			username TEXT NOT NULL,
			outfit_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			item_id INTEGER NOT NULL,
			PRIMARY KEY (username, outfit_id, position),
			FOREIGN KEY (username, outfit_id) REFERENCES outfits(username, id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS outfit_layout (
			username TEXT NOT NULL,
			outfit_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			item_id INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			PRIMARY KEY (username, outfit_id, position),
			FOREIGN KEY (username, outfit_id) REFERENCES outfits(username, id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clothing_items_username ON clothing_items(username)`,
		`CREATE INDEX IF NOT EXISTS idx_item_materials_item ON item_materials(username, item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_outfits_username ON outfits(username)`,
		`CREATE INDEX IF NOT EXISTS idx_outfit_items_outfit ON outfit_items(username, outfit_id)`,
		`CREATE INDEX IF NOT EXISTS idx_outfit_layout_outfit ON outfit_layout(username, outfit_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// Store adapts the SQLite database to the repository's store contract.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}
