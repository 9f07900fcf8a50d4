package database

import (
	"database/sql"
	"fmt"

	"dressdiary/internal/models"
)

func (s *Store) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (username, name, password, streak, last_login, dark_mode)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, user.Username, user.Name, user.Password, user.Streak, user.LastLogin, user.DarkMode)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *Store) UpdateUserMeta(username, lastLogin string, streak int, darkMode bool) error {
	query := `
		UPDATE users
		SET last_login = ?, streak = ?, dark_mode = ?
		WHERE username = ?
	`

	result, err := s.db.Exec(query, lastLogin, streak, darkMode, username)
	if err != nil {
		return fmt.Errorf("failed to update user meta: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// LoadUsers returns every stored account with collections populated, in
// creation order.
func (s *Store) LoadUsers() ([]*models.User, error) {
	query := `
		SELECT username, name, password, streak, last_login, dark_mode
		FROM users
		ORDER BY rowid
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.Username,
			&user.Name,
			&user.Password,
			&user.Streak,
			&user.LastLogin,
			&user.DarkMode,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	for _, user := range users {
		if err := s.loadCollections(user); err != nil {
			return nil, err
		}
	}

	return users, nil
}

func (s *Store) LoadUser(username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT username, name, password, streak, last_login, dark_mode
		FROM users
		WHERE username = ?
	`

	err := s.db.QueryRow(query, username).Scan(
		&user.Username,
		&user.Name,
		&user.Password,
		&user.Streak,
		&user.LastLogin,
		&user.DarkMode,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := s.loadCollections(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Store) loadCollections(user *models.User) error {
	items, err := s.loadClothingItems(user.Username)
	if err != nil {
		return err
	}
	user.ClothingItems = items

	outfits, err := s.loadOutfits(user.Username)
	if err != nil {
		return err
	}
	user.Outfits = outfits

	return nil
}
