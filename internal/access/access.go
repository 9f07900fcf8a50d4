// Package access is the only surface the presentation layer may call. It
// wraps the repository with the pieces that are policy rather than storage:
// the login-streak rule, login throttling and the simple filters.
package access

import (
	"errors"
	"fmt"
	"strings"

	"dressdiary/internal/dateutil"
	"dressdiary/internal/logger"
	"dressdiary/internal/models"
	"dressdiary/internal/repository"
)

// ErrRateLimited indicates a temporary login lock after too many attempts.
var ErrRateLimited = errors.New("too many login attempts")

// Wardrobe is the access-layer contract.
type Wardrobe interface {
	CreateUser(username, name, password string) error
	Login(username, password string) (*models.User, error)
	RecordLogin(username string) (int, error)
	UpdateLoginMeta(username, date string, streak int) error
	SetDarkMode(username string, dark bool) error
	RecoverUser(username string) (*models.User, error)

	GetClothingItems(username string) ([]models.ClothingItem, error)
	GetClothingItemsCount(username string) (int, error)
	SaveClothingItem(username string, item models.ClothingItem) error
	DeleteClothingItem(username string, itemID int) error
	FilterItemsByColor(username, color string) ([]models.ClothingItem, error)

	GetOutfits(username string) ([]models.Outfit, error)
	GetOutfitCount(username string) (int, error)
	SaveOutfit(username string, outfit models.Outfit) error
	DeleteOutfit(username string, outfitID string) error
	FilterOutfitsBySeason(username, season string) ([]models.Outfit, error)

	GetTodaySuggestion(username string) (*models.Outfit, error)

	GenerateNextClothingItemID() int
	GenerateNextOutfitID() string
}

// Service implements Wardrobe over one repository instance.
type Service struct {
	repo     *repository.Repository
	throttle *loginThrottle
}

// NewService builds the access layer. Throttling is disabled when
// skipThrottle is true (development mode).
func NewService(repo *repository.Repository, skipThrottle bool) *Service {
	return &Service{
		repo:     repo,
		throttle: newLoginThrottle(skipThrottle),
	}
}

func (s *Service) CreateUser(username, name, password string) error {
	if err := s.repo.CreateUser(username, name, password); err != nil {
		return err
	}
	logger.Info("user created", "username", username)
	return nil
}

// Login authenticates and returns a snapshot of the account. Repeated
// failures for the same username are throttled. Login metadata is not
// touched; call RecordLogin afterwards.
func (s *Service) Login(username, password string) (*models.User, error) {
	if !s.throttle.allow(username) {
		logger.Warn("login throttled", "username", username)
		return nil, ErrRateLimited
	}

	user, err := s.repo.LoginUser(username, password)
	if err != nil {
		logger.Warn("login failed", "username", username)
		return nil, err
	}

	logger.Info("login succeeded", "username", username)
	return user, nil
}

// RecordLogin applies the streak rule for a login happening today and
// persists the result. The rule: a first-ever login starts the streak at 1;
// a same-day repeat changes nothing; exactly one elapsed day increments;
// a longer gap resets to 1. A last-login date in the future (clock moved
// back) leaves everything untouched. Returns the streak now in effect.
func (s *Service) RecordLogin(username string) (int, error) {
	user, err := s.repo.GetUser(username)
	if err != nil {
		return 0, err
	}

	today := dateutil.Today()

	if user.LastLogin == "" {
		if err := s.repo.UpdateLoginMeta(username, today, 1); err != nil {
			return 0, err
		}
		return 1, nil
	}

	gap, err := dateutil.DaysBetween(user.LastLogin, today)
	if err != nil {
		// a malformed stored date must surface, never pass as "no date"
		return 0, fmt.Errorf("stored last-login date is unreadable: %w", err)
	}

	streak := user.Streak
	switch {
	case gap < 0:
		return streak, nil
	case gap == 0:
		return streak, nil
	case gap == 1:
		streak++
	default:
		streak = 1
	}

	if err := s.repo.UpdateLoginMeta(username, today, streak); err != nil {
		return 0, err
	}
	return streak, nil
}

func (s *Service) UpdateLoginMeta(username, date string, streak int) error {
	return s.repo.UpdateLoginMeta(username, date, streak)
}

func (s *Service) SetDarkMode(username string, dark bool) error {
	return s.repo.SetDarkMode(username, dark)
}

func (s *Service) RecoverUser(username string) (*models.User, error) {
	return s.repo.RecoverUser(username)
}

func (s *Service) GetClothingItems(username string) ([]models.ClothingItem, error) {
	return s.repo.GetClothingItems(username)
}

func (s *Service) GetClothingItemsCount(username string) (int, error) {
	return s.repo.GetClothingItemsCount(username)
}

func (s *Service) SaveClothingItem(username string, item models.ClothingItem) error {
	return s.repo.SaveClothingItem(username, item)
}

func (s *Service) DeleteClothingItem(username string, itemID int) error {
	return s.repo.DeleteClothingItem(username, itemID)
}

// FilterItemsByColor returns the user's items whose color matches,
// case-insensitively, in insertion order.
func (s *Service) FilterItemsByColor(username, color string) ([]models.ClothingItem, error) {
	items, err := s.repo.GetClothingItems(username)
	if err != nil {
		return nil, err
	}

	var filtered []models.ClothingItem
	for _, item := range items {
		if strings.EqualFold(item.Color, color) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *Service) GetOutfits(username string) ([]models.Outfit, error) {
	return s.repo.GetOutfits(username)
}

func (s *Service) GetOutfitCount(username string) (int, error) {
	return s.repo.GetOutfitCount(username)
}

func (s *Service) SaveOutfit(username string, outfit models.Outfit) error {
	return s.repo.SaveOutfit(username, outfit)
}

func (s *Service) DeleteOutfit(username string, outfitID string) error {
	return s.repo.DeleteOutfit(username, outfitID)
}

// FilterOutfitsBySeason returns the user's outfits for the given season,
// case-insensitively, in insertion order.
func (s *Service) FilterOutfitsBySeason(username, season string) ([]models.Outfit, error) {
	outfits, err := s.repo.GetOutfits(username)
	if err != nil {
		return nil, err
	}

	var filtered []models.Outfit
	for _, outfit := range outfits {
		if strings.EqualFold(outfit.Season, season) {
			filtered = append(filtered, outfit)
		}
	}
	return filtered, nil
}

func (s *Service) GetTodaySuggestion(username string) (*models.Outfit, error) {
	return s.repo.GetTodaySuggestion(username)
}

func (s *Service) GenerateNextClothingItemID() int {
	return s.repo.GenerateNextClothingItemID()
}

func (s *Service) GenerateNextOutfitID() string {
	return s.repo.GenerateNextOutfitID()
}
