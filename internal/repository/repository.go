// Package repository owns every User, ClothingItem and Outfit in the
// process. All mutations and queries pass through one Repository instance;
// the instance is constructed and handed to callers rather than reached
// through a global, so tests build isolated copies.
package repository

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"dressdiary/internal/dateutil"
	"dressdiary/internal/models"
)

// Repository is safe for concurrent callers: one mutex serializes every
// read-then-write so replace-by-id and id generation are observed as atomic.
// Change notifications run after the lock is released so a listener may
// re-enter the repository.
type Repository struct {
	mu         sync.Mutex
	users      map[string]*models.User
	order      []string // usernames in creation order
	nextItemID int
	store      Store

	itemsChanged   func()
	outfitsChanged func()
}

// New builds a repository over the given store, loading all users into
// memory and seeding the item id counter above the highest id observed.
// A nil store yields a purely in-memory repository.
func New(store Store) (*Repository, error) {
	r := &Repository{
		users:      make(map[string]*models.User),
		nextItemID: 1,
		store:      store,
	}

	if store != nil {
		users, err := store.LoadUsers()
		if err != nil {
			return nil, fmt.Errorf("failed to load users: %w", err)
		}
		for _, u := range users {
			r.users[u.Username] = u
			r.order = append(r.order, u.Username)
			for _, item := range u.ClothingItems {
				if item.ID >= r.nextItemID {
					r.nextItemID = item.ID + 1
				}
			}
		}
	}

	return r, nil
}

// SetItemsChangedCallback registers the single items observer. Passing nil
// unregisters it.
func (r *Repository) SetItemsChangedCallback(cb func()) {
	r.mu.Lock()
	r.itemsChanged = cb
	r.mu.Unlock()
}

// SetOutfitsChangedCallback registers the single outfits observer.
func (r *Repository) SetOutfitsChangedCallback(cb func()) {
	r.mu.Lock()
	r.outfitsChanged = cb
	r.mu.Unlock()
}

// CreateUser registers a new account with zero streak, no recorded login,
// light theme and empty collections.
func (r *Repository) CreateUser(username, name, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[username]; exists {
		return ErrAlreadyExists
	}

	user := models.NewUser(username, name, password)
	if r.store != nil {
		if err := r.store.CreateUser(user); err != nil {
			return fmt.Errorf("failed to persist user: %w", err)
		}
	}

	r.users[username] = user
	r.order = append(r.order, username)
	return nil
}

// LoginUser checks the credential by exact match and returns a snapshot of
// the account. It never updates login metadata; callers record the login
// explicitly so the operation stays idempotent.
func (r *Repository) LoginUser(username, password string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok || user.Password != password {
		return nil, ErrAuthFailure
	}
	return user.Clone(), nil
}

// GetUser returns a snapshot of the account.
func (r *Repository) GetUser(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return user.Clone(), nil
}

// UpdateLoginMeta sets the last-login date and streak exactly as given.
// The streak rule itself (increment, reset, no-op) is the access layer's
// policy; this is only the storage mechanism. A non-empty date must parse
// as DD-MM-YYYY.
func (r *Repository) UpdateLoginMeta(username, date string, streak int) error {
	if date != "" {
		if _, err := dateutil.Parse(date); err != nil {
			return fmt.Errorf("%w: bad login date: %v", ErrInvalidArgument, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return ErrNotFound
	}

	if streak < 0 {
		streak = 0
	}
	if r.store != nil {
		if err := r.store.UpdateUserMeta(username, date, streak, user.DarkMode); err != nil {
			return fmt.Errorf("failed to persist login meta: %w", err)
		}
	}

	user.LastLogin = date
	user.SetStreak(streak)
	return nil
}

// SetDarkMode stores the theme preference.
func (r *Repository) SetDarkMode(username string, dark bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return ErrNotFound
	}

	if r.store != nil {
		if err := r.store.UpdateUserMeta(username, user.LastLogin, user.Streak, dark); err != nil {
			return fmt.Errorf("failed to persist theme: %w", err)
		}
	}

	user.DarkMode = dark
	return nil
}

// GetClothingItems returns the user's items in insertion order.
func (r *Repository) GetClothingItems(username string) ([]models.ClothingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}

	items := make([]models.ClothingItem, len(user.ClothingItems))
	for i := range user.ClothingItems {
		items[i] = user.ClothingItems[i].Clone()
	}
	return items, nil
}

// GetClothingItemsCount returns how many items the user owns.
func (r *Repository) GetClothingItemsCount(username string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return 0, ErrNotFound
	}
	return len(user.ClothingItems), nil
}

// SaveClothingItem replaces the item with the same id in place, or appends
// when the id is new. The items observer fires once after the change
// commits.
func (r *Repository) SaveClothingItem(username string, item models.ClothingItem) error {
	r.mu.Lock()

	user, ok := r.users[username]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}

	if r.store != nil {
		if err := r.store.PutClothingItem(username, item); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("failed to persist clothing item: %w", err)
		}
	}

	replaced := false
	for i := range user.ClothingItems {
		if user.ClothingItems[i].ID == item.ID {
			user.ClothingItems[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		user.AddClothingItem(item)
	}

	// Items saved with caller-chosen ids must not collide with generated ones.
	if item.ID >= r.nextItemID {
		r.nextItemID = item.ID + 1
	}

	cb := r.itemsChanged
	r.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

// DeleteClothingItem removes the item by id. Outfits referencing the id are
// left untouched; the dangling reference is tolerated by design. The items
// observer fires once on success only.
func (r *Repository) DeleteClothingItem(username string, itemID int) error {
	r.mu.Lock()

	user, ok := r.users[username]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}

	index := -1
	for i := range user.ClothingItems {
		if user.ClothingItems[i].ID == itemID {
			index = i
			break
		}
	}
	if index < 0 {
		r.mu.Unlock()
		return ErrItemNotFound
	}

	if r.store != nil {
		if err := r.store.DeleteClothingItem(username, itemID); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("failed to delete clothing item: %w", err)
		}
	}

	user.ClothingItems = append(user.ClothingItems[:index], user.ClothingItems[index+1:]...)

	cb := r.itemsChanged
	r.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

// GetOutfits returns the user's outfits in insertion order.
func (r *Repository) GetOutfits(username string) ([]models.Outfit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}

	outfits := make([]models.Outfit, len(user.Outfits))
	for i := range user.Outfits {
		outfits[i] = user.Outfits[i].Clone()
	}
	return outfits, nil
}

// GetOutfitCount returns how many outfits the user owns.
func (r *Repository) GetOutfitCount(username string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return 0, ErrNotFound
	}
	return len(user.Outfits), nil
}

// SaveOutfit replaces the outfit with the same id, or appends when the id
// is new. The DateAdded field must parse; a malformed date blocks the save
// rather than being accepted as "no date". The outfits observer fires once
// after the change commits.
func (r *Repository) SaveOutfit(username string, outfit models.Outfit) error {
	if _, err := dateutil.Parse(outfit.DateAdded); err != nil {
		return fmt.Errorf("%w: bad dateAdded: %v", ErrInvalidArgument, err)
	}

	r.mu.Lock()

	user, ok := r.users[username]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}

	if r.store != nil {
		if err := r.store.PutOutfit(username, outfit); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("failed to persist outfit: %w", err)
		}
	}

	replaced := false
	for i := range user.Outfits {
		if user.Outfits[i].ID == outfit.ID {
			user.Outfits[i] = outfit
			replaced = true
			break
		}
	}
	if !replaced {
		user.AddOutfit(outfit)
	}

	cb := r.outfitsChanged
	r.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

// DeleteOutfit removes the outfit by id. The outfits observer fires once on
// success only.
func (r *Repository) DeleteOutfit(username string, outfitID string) error {
	r.mu.Lock()

	user, ok := r.users[username]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}

	index := -1
	for i := range user.Outfits {
		if user.Outfits[i].ID == outfitID {
			index = i
			break
		}
	}
	if index < 0 {
		r.mu.Unlock()
		return ErrOutfitNotFound
	}

	if r.store != nil {
		if err := r.store.DeleteOutfit(username, outfitID); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("failed to delete outfit: %w", err)
		}
	}

	user.Outfits = append(user.Outfits[:index], user.Outfits[index+1:]...)

	cb := r.outfitsChanged
	r.mu.Unlock()

	if cb != nil {
		cb()
	}
	return nil
}

// GetTodaySuggestion picks the first outfit, in insertion order, whose
// season matches today's. Seasons follow the meteorological months
// (Dec-Feb winter, Mar-May spring, Jun-Aug summer, Sep-Nov fall) and labels
// compare case-insensitively. Returns nil when nothing matches or the user
// has no outfits; never mutates.
func (r *Repository) GetTodaySuggestion(username string) (*models.Outfit, error) {
	today, err := dateutil.Parse(dateutil.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to parse today's date: %w", err)
	}
	season := seasonForMonth(today.Month)

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}

	for i := range user.Outfits {
		if strings.EqualFold(user.Outfits[i].Season, season) {
			match := user.Outfits[i].Clone()
			return &match, nil
		}
	}
	return nil, nil
}

// GenerateNextClothingItemID returns a process-wide monotonically
// increasing id, never reused even after deletions.
func (r *Repository) GenerateNextClothingItemID() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextItemID
	r.nextItemID++
	return id
}

// GenerateNextOutfitID returns a collision-free textual id.
func (r *Repository) GenerateNextOutfitID() string {
	return uuid.New().String()
}

// RecoverUser re-reads one user from the store into memory, e.g. after a
// cold start when only the username survived on the client. Already-loaded
// users are returned as-is.
func (r *Repository) RecoverUser(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[username]; ok {
		return user.Clone(), nil
	}
	if r.store == nil {
		return nil, ErrNotFound
	}

	user, err := r.store.LoadUser(username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	r.users[username] = user
	r.order = append(r.order, username)
	for _, item := range user.ClothingItems {
		if item.ID >= r.nextItemID {
			r.nextItemID = item.ID + 1
		}
	}
	return user.Clone(), nil
}

// Usernames returns every registered username in creation order.
func (r *Repository) Usernames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

func seasonForMonth(month int) string {
	switch month {
	case 12, 1, 2:
		return "winter"
	case 3, 4, 5:
		return "spring"
	case 6, 7, 8:
		return "summer"
	default:
		return "fall"
	}
}
