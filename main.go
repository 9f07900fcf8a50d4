// Command dressdiary wires the wardrobe core together the way an embedding
// front-end would and prints a per-user summary, which doubles as a smoke
// check of a stored database.
package main

import (
	"log"

	"dressdiary/internal/access"
	"dressdiary/internal/config"
	"dressdiary/internal/database"
	"dressdiary/internal/logger"
	"dressdiary/internal/repository"
)

func main() {
	cfg := config.Load()

	logger.Initialize(logger.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())

	var store repository.Store
	if cfg.DatabasePath != "" {
		db, err := database.Initialize(cfg.DatabasePath)
		if err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		if err := database.Migrate(db); err != nil {
			log.Fatal("Failed to run migrations:", err)
		}

		store = database.NewStore(db)
	} else {
		logger.Warn("no database path configured, running in-memory only")
	}

	repo, err := repository.New(store)
	if err != nil {
		log.Fatal("Failed to load repository:", err)
	}
	if store != nil {
		defer store.Close()
	}

	repo.SetItemsChangedCallback(func() {
		logger.Debug("clothing items changed, views should refresh")
	})
	repo.SetOutfitsChangedCallback(func() {
		logger.Debug("outfits changed, views should refresh")
	})

	wardrobe := access.NewService(repo, cfg.IsDevelopment())

	usernames := repo.Usernames()
	logger.Info("wardrobe core ready", "users", len(usernames))

	for _, username := range usernames {
		items, err := wardrobe.GetClothingItemsCount(username)
		if err != nil {
			logger.Error("failed to count items", "username", username, "error", err)
			continue
		}
		outfits, err := wardrobe.GetOutfitCount(username)
		if err != nil {
			logger.Error("failed to count outfits", "username", username, "error", err)
			continue
		}

		suggested := "none"
		if suggestion, err := wardrobe.GetTodaySuggestion(username); err == nil && suggestion != nil {
			suggested = suggestion.Name
		}

		logger.Info("wardrobe summary",
			"username", username,
			"items", items,
			"outfits", outfits,
			"suggestion", suggested,
		)
	}
}
