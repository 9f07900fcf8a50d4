package repository

import (
	"dressdiary/internal/models"
)

// Store is the narrow CRUD contract the repository uses to talk to whatever
// concretely persists rows. The backend is opaque: the repository never
// assumes durability or transaction semantics beyond "a nil error means the
// write took". A nil Store leaves the repository purely in-memory.
type Store interface {
	// LoadUsers returns every stored user, collections populated, in
	// creation order.
	LoadUsers() ([]*models.User, error)

	// LoadUser returns one stored user with collections populated, or an
	// error if the store has no such username.
	LoadUser(username string) (*models.User, error)

	CreateUser(user *models.User) error

	// UpdateUserMeta persists the mutable account fields (last login,
	// streak, dark mode) for an existing user.
	UpdateUserMeta(username, lastLogin string, streak int, darkMode bool) error

	// PutClothingItem inserts or replaces by item id.
	PutClothingItem(username string, item models.ClothingItem) error

	DeleteClothingItem(username string, itemID int) error

	// PutOutfit inserts or replaces by outfit id.
	PutOutfit(username string, outfit models.Outfit) error

	DeleteOutfit(username string, outfitID string) error

	Close() error
}
