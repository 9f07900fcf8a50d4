package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dressdiary/internal/dateutil"
	"dressdiary/internal/models"
	"dressdiary/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := repository.New(nil)
	require.NoError(t, err)
	return NewService(repo, true)
}

func fixClock(t *testing.T, day, month, year int) {
	t.Helper()
	orig := dateutil.Now
	dateutil.Now = func() time.Time {
		return time.Date(year, time.Month(month), day, 9, 30, 0, 0, time.Local)
	}
	t.Cleanup(func() { dateutil.Now = orig })
}

func TestEndToEndScenario(t *testing.T) {
	fixClock(t, 15, 7, 2025) // July: summer

	svc := newTestService(t)

	require.NoError(t, svc.CreateUser("ana", "Ana", "pw1"))

	u, err := svc.Login("ana", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = svc.Login("ana", "wrong")
	assert.ErrorIs(t, err, repository.ErrAuthFailure)

	pants := models.NewPants(svc.GenerateNextClothingItemID(), "black", []string{"wool"}, nil, 100, "30")
	require.NoError(t, svc.SaveClothingItem("ana", pants))

	count, err := svc.GetClothingItemsCount("ana")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	outfit := models.NewOutfit(svc.GenerateNextOutfitID(), "beach", "summer", dateutil.Today())
	outfit.AddItem(pants.ID)
	require.NoError(t, svc.SaveOutfit("ana", *outfit))

	suggestion, err := svc.GetTodaySuggestion("ana")
	require.NoError(t, err)
	require.NotNil(t, suggestion)
	assert.Equal(t, "summer", suggestion.Season)

	// nothing matches in winter
	fixClock(t, 15, 1, 2026)
	suggestion, err = svc.GetTodaySuggestion("ana")
	require.NoError(t, err)
	assert.Nil(t, suggestion)
}

func TestRecordLoginStreakPolicy(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.CreateUser("ana", "Ana", "pw1"))

	// first-ever login starts at 1
	fixClock(t, 10, 3, 2025)
	streak, err := svc.RecordLogin("ana")
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	// same day changes nothing
	streak, err = svc.RecordLogin("ana")
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	// next day increments
	fixClock(t, 11, 3, 2025)
	streak, err = svc.RecordLogin("ana")
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	fixClock(t, 12, 3, 2025)
	streak, err = svc.RecordLogin("ana")
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	// a gap resets to 1
	fixClock(t, 20, 3, 2025)
	streak, err = svc.RecordLogin("ana")
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	// clock moved back: leave state alone
	fixClock(t, 18, 3, 2025)
	streak, err = svc.RecordLogin("ana")
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	u, err := svc.Login("ana", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "20-03-2025", u.LastLogin, "regressing clock must not rewrite last login")

	_, err = svc.RecordLogin("nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateLoginMetaPassthrough(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.CreateUser("ana", "Ana", "pw1"))

	require.NoError(t, svc.UpdateLoginMeta("ana", "01-02-2025", 9))
	u, err := svc.Login("ana", "pw1")
	require.NoError(t, err)
	assert.Equal(t, 9, u.Streak)
	assert.Equal(t, "01-02-2025", u.LastLogin)

	assert.ErrorIs(t, svc.UpdateLoginMeta("ana", "garbage", 1), repository.ErrInvalidArgument)
}

func TestSetDarkMode(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.CreateUser("ana", "Ana", "pw1"))

	require.NoError(t, svc.SetDarkMode("ana", true))
	u, err := svc.Login("ana", "pw1")
	require.NoError(t, err)
	assert.True(t, u.DarkMode)
}

func TestFilterItemsByColor(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.CreateUser("ana", "Ana", "pw1"))

	require.NoError(t, svc.SaveClothingItem("ana", models.NewTop(1, "Red", nil, nil, "short", "crew")))
	require.NoError(t, svc.SaveClothingItem("ana", models.NewShoes(2, "white", nil, nil, 41)))
	require.NoError(t, svc.SaveClothingItem("ana", models.NewJacket(3, "red", nil, nil, true)))

	red, err := svc.FilterItemsByColor("ana", "red")
	require.NoError(t, err)
	require.Len(t, red, 2)
	assert.Equal(t, 1, red[0].ID)
	assert.Equal(t, 3, red[1].ID)

	none, err := svc.FilterItemsByColor("ana", "purple")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.FilterItemsByColor("nobody", "red")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFilterOutfitsBySeason(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.CreateUser("ana", "Ana", "pw1"))

	require.NoError(t, svc.SaveOutfit("ana", *models.NewOutfit("o1", "ski", "Winter", "01-01-2025")))
	require.NoError(t, svc.SaveOutfit("ana", *models.NewOutfit("o2", "beach", "summer", "01-06-2025")))
	require.NoError(t, svc.SaveOutfit("ana", *models.NewOutfit("o3", "sled", "winter", "02-01-2025")))

	winter, err := svc.FilterOutfitsBySeason("ana", "winter")
	require.NoError(t, err)
	require.Len(t, winter, 2)
	assert.Equal(t, "o1", winter[0].ID)
	assert.Equal(t, "o3", winter[1].ID)
}

func TestLoginThrottling(t *testing.T) {
	repo, err := repository.New(nil)
	require.NoError(t, err)
	svc := NewService(repo, false) // throttling active
	require.NoError(t, svc.CreateUser("ana", "Ana", "pw1"))

	// the burst allows a handful of attempts, then locks the username out
	for i := 0; i < 5; i++ {
		_, err := svc.Login("ana", "wrong")
		assert.ErrorIs(t, err, repository.ErrAuthFailure, "attempt %d", i)
	}

	_, err = svc.Login("ana", "pw1")
	assert.ErrorIs(t, err, ErrRateLimited)

	// other usernames are unaffected
	require.NoError(t, svc.CreateUser("bob", "Bob", "pw2"))
	_, err = svc.Login("bob", "pw2")
	assert.NoError(t, err)
}

func TestThrottleDisabled(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.CreateUser("ana", "Ana", "pw1"))

	for i := 0; i < 20; i++ {
		_, err := svc.Login("ana", "wrong")
		assert.ErrorIs(t, err, repository.ErrAuthFailure)
	}
}
