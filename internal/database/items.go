package database

import (
	"database/sql"
	"fmt"

	"dressdiary/internal/models"
)

// PutClothingItem inserts or replaces by item id. Replacing keeps the
// item's original position so insertion order survives a reload; material
// rows are rewritten to preserve their order exactly.
func (s *Store) PutClothingItem(username string, item models.ClothingItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRow(
		`SELECT position FROM clothing_items WHERE username = ? AND id = ?`,
		username, item.ID,
	).Scan(&position)

	switch {
	case err == sql.ErrNoRows:
		err = tx.QueryRow(
			`SELECT COALESCE(MAX(position), 0) + 1 FROM clothing_items WHERE username = ?`,
			username,
		).Scan(&position)
		if err != nil {
			return fmt.Errorf("failed to compute item position: %w", err)
		}

		query := `
			INSERT INTO clothing_items (username, id, category, color, image, pant_length, pant_waist,
			                            top_sleeve_type, top_neckline, jacket_waterproof, shoe_size, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = tx.Exec(query, username, item.ID, string(item.Category), item.Color, item.Image,
			item.Length, item.Waist, item.SleeveType, item.Neckline, item.Waterproof, item.Size, position)
		if err != nil {
			return fmt.Errorf("failed to insert clothing item: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to query clothing item: %w", err)
	default:
		query := `
			UPDATE clothing_items
			SET category = ?, color = ?, image = ?, pant_length = ?, pant_waist = ?,
			    top_sleeve_type = ?, top_neckline = ?, jacket_waterproof = ?, shoe_size = ?
			WHERE username = ? AND id = ?
		`
		_, err = tx.Exec(query, string(item.Category), item.Color, item.Image,
			item.Length, item.Waist, item.SleeveType, item.Neckline, item.Waterproof, item.Size,
			username, item.ID)
		if err != nil {
			return fmt.Errorf("failed to update clothing item: %w", err)
		}
	}

	if _, err = tx.Exec(`DELETE FROM item_materials WHERE username = ? AND item_id = ?`, username, item.ID); err != nil {
		return fmt.Errorf("failed to clear materials: %w", err)
	}
	for i, material := range item.Materials {
		_, err = tx.Exec(
			`INSERT INTO item_materials (username, item_id, position, material) VALUES (?, ?, ?, ?)`,
			username, item.ID, i, material,
		)
		if err != nil {
			return fmt.Errorf("failed to insert material: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clothing item: %w", err)
	}
	return nil
}

func (s *Store) DeleteClothingItem(username string, itemID int) error {
	_, err := s.db.Exec(
		`DELETE FROM clothing_items WHERE username = ? AND id = ?`,
		username, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete clothing item: %w", err)
	}
	return nil
}

func (s *Store) loadClothingItems(username string) ([]models.ClothingItem, error) {
	query := `
		SELECT id, category, color, image, pant_length, pant_waist,
		       top_sleeve_type, top_neckline, jacket_waterproof, shoe_size
		FROM clothing_items
		WHERE username = ?
		ORDER BY position
	`

	rows, err := s.db.Query(query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query clothing items: %w", err)
	}
	defer rows.Close()

	var items []models.ClothingItem
	for rows.Next() {
		var item models.ClothingItem
		var category string

		err := rows.Scan(
			&item.ID,
			&category,
			&item.Color,
			&item.Image,
			&item.Length,
			&item.Waist,
			&item.SleeveType,
			&item.Neckline,
			&item.Waterproof,
			&item.Size,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clothing item: %w", err)
		}

		item.Category = models.Category(category)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clothing items: %w", err)
	}

	for i := range items {
		materials, err := s.loadMaterials(username, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Materials = materials
	}

	return items, nil
}

func (s *Store) loadMaterials(username string, itemID int) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT material FROM item_materials WHERE username = ? AND item_id = ? ORDER BY position`,
		username, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var materials []string
	for rows.Next() {
		var material string
		if err := rows.Scan(&material); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, material)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating materials: %w", err)
	}

	return materials, nil
}
