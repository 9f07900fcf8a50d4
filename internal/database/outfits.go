package database

import (
	"database/sql"
	"fmt"

	"dressdiary/internal/models"
)

// PutOutfit inserts or replaces by outfit id, keeping the original position
// on replace. Item references and layout rows are rewritten in order so the
// persisted representation matches the in-memory one exactly.
func (s *Store) PutOutfit(username string, outfit models.Outfit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRow(
		`SELECT position FROM outfits WHERE username = ? AND id = ?`,
		username, outfit.ID,
	).Scan(&position)

	switch {
	case err == sql.ErrNoRows:
		err = tx.QueryRow(
			`SELECT COALESCE(MAX(position), 0) + 1 FROM outfits WHERE username = ?`,
			username,
		).Scan(&position)
		if err != nil {
			return fmt.Errorf("failed to compute outfit position: %w", err)
		}

		_, err = tx.Exec(
			`INSERT INTO outfits (username, id, name, season, date_added, position) VALUES (?, ?, ?, ?, ?, ?)`,
			username, outfit.ID, outfit.Name, outfit.Season, outfit.DateAdded, position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert outfit: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to query outfit: %w", err)
	default:
		_, err = tx.Exec(
			`UPDATE outfits SET name = ?, season = ?, date_added = ? WHERE username = ? AND id = ?`,
			outfit.Name, outfit.Season, outfit.DateAdded, username, outfit.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update outfit: %w", err)
		}
	}

	if _, err = tx.Exec(`DELETE FROM outfit_items WHERE username = ? AND outfit_id = ?`, username, outfit.ID); err != nil {
		return fmt.Errorf("failed to clear outfit items: %w", err)
	}
	for i, itemID := range outfit.ItemIDs {
		_, err = tx.Exec(
			`INSERT INTO outfit_items (username, outfit_id, position, item_id) VALUES (?, ?, ?, ?)`,
			username, outfit.ID, i, itemID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert outfit item: %w", err)
		}
	}

	if _, err = tx.Exec(`DELETE FROM outfit_layout WHERE username = ? AND outfit_id = ?`, username, outfit.ID); err != nil {
		return fmt.Errorf("failed to clear outfit layout: %w", err)
	}
	for i, entry := range outfit.Layout {
		_, err = tx.Exec(
			`INSERT INTO outfit_layout (username, outfit_id, position, item_id, x, y) VALUES (?, ?, ?, ?, ?, ?)`,
			username, outfit.ID, i, entry.ItemID, entry.X, entry.Y,
		)
		if err != nil {
			return fmt.Errorf("failed to insert layout entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit outfit: %w", err)
	}
	return nil
}

func (s *Store) DeleteOutfit(username string, outfitID string) error {
	_, err := s.db.Exec(
		`DELETE FROM outfits WHERE username = ? AND id = ?`,
		username, outfitID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete outfit: %w", err)
	}
	return nil
}

func (s *Store) loadOutfits(username string) ([]models.Outfit, error) {
	query := `
		SELECT id, name, season, date_added
		FROM outfits
		WHERE username = ?
		ORDER BY position
	`

	rows, err := s.db.Query(query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query outfits: %w", err)
	}
	defer rows.Close()

	var outfits []models.Outfit
	for rows.Next() {
		var outfit models.Outfit
		err := rows.Scan(
			&outfit.ID,
			&outfit.Name,
			&outfit.Season,
			&outfit.DateAdded,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outfit: %w", err)
		}
		outfits = append(outfits, outfit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outfits: %w", err)
	}

	for i := range outfits {
		itemIDs, err := s.loadOutfitItems(username, outfits[i].ID)
		if err != nil {
			return nil, err
		}
		outfits[i].ItemIDs = itemIDs

		layout, err := s.loadOutfitLayout(username, outfits[i].ID)
		if err != nil {
			return nil, err
		}
		outfits[i].Layout = layout
	}

	return outfits, nil
}

func (s *Store) loadOutfitItems(username, outfitID string) ([]int, error) {
	rows, err := s.db.Query(
		`SELECT item_id FROM outfit_items WHERE username = ? AND outfit_id = ? ORDER BY position`,
		username, outfitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query outfit items: %w", err)
	}
	defer rows.Close()

	var itemIDs []int
	for rows.Next() {
		var itemID int
		if err := rows.Scan(&itemID); err != nil {
			return nil, fmt.Errorf("failed to scan outfit item: %w", err)
		}
		itemIDs = append(itemIDs, itemID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outfit items: %w", err)
	}

	return itemIDs, nil
}

func (s *Store) loadOutfitLayout(username, outfitID string) ([]models.LayoutEntry, error) {
	rows, err := s.db.Query(
		`SELECT item_id, x, y FROM outfit_layout WHERE username = ? AND outfit_id = ? ORDER BY position`,
		username, outfitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query outfit layout: %w", err)
	}
	defer rows.Close()

	var layout []models.LayoutEntry
	for rows.Next() {
		var entry models.LayoutEntry
		if err := rows.Scan(&entry.ItemID, &entry.X, &entry.Y); err != nil {
			return nil, fmt.Errorf("failed to scan layout entry: %w", err)
		}
		layout = append(layout, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outfit layout: %w", err)
	}

	return layout, nil
}
