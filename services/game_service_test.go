package services

import (
	"testing"
	"time"

	"trivianight/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGame(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	t.Run("blank name defaults to the spelled-out date", func(t *testing.T) {
		game, err := svc.CreateGame(user.ID, &CreateGameRequest{GameDate: "2025-06-05"})
		require.NoError(t, err)
		assert.Equal(t, "Thursday, June 05 2025", game.Name)
	})

	t.Run("explicit name is kept", func(t *testing.T) {
		game, err := svc.CreateGame(user.ID, &CreateGameRequest{Name: "Pub Finals", GameDate: "2025-06-05"})
		require.NoError(t, err)
		assert.Equal(t, "Pub Finals", game.Name)
	})

	t.Run("malformed date is a validation failure", func(t *testing.T) {
		_, err := svc.CreateGame(user.ID, &CreateGameRequest{GameDate: "05/06/2025"})
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Fields, "game_date")
	})
}

func TestAddRound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	game, err := svc.CreateGame(user.ID, &CreateGameRequest{GameDate: "2025-06-05"})
	require.NoError(t, err)
	round := createTestRound(t, db, user.ID, "Music", "1")

	t.Run("adds a membership with the supplied order", func(t *testing.T) {
		membership, err := svc.AddRound(game.ID, round.ID, 3, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, membership.Order)
	})

	t.Run("duplicate membership is softly rejected", func(t *testing.T) {
		_, err := svc.AddRound(game.ID, round.ID, 5, user.ID)
		assert.ErrorIs(t, err, ErrRoundAlreadyInGame)

		var count int64
		require.NoError(t, db.Model(&models.GameRound{}).
			Where("game_id = ? AND round_id = ?", game.ID, round.ID).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("non-owner is rejected with no state change", func(t *testing.T) {
		other := createTestUser(t, db, "mallory")
		extra := createTestRound(t, db, user.ID, "Extra", "2")

		_, err := svc.AddRound(game.ID, extra.ID, 1, other.ID)
		assert.ErrorIs(t, err, ErrNotPermitted)

		var count int64
		require.NoError(t, db.Model(&models.GameRound{}).
			Where("game_id = ?", game.ID).
			Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("missing round", func(t *testing.T) {
		_, err := svc.AddRound(game.ID, 9999, 1, user.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing game", func(t *testing.T) {
		_, err := svc.AddRound(9999, round.ID, 1, user.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemoveRound(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	game, err := svc.CreateGame(user.ID, &CreateGameRequest{GameDate: "2025-06-05"})
	require.NoError(t, err)
	round := createTestRound(t, db, user.ID, "Music", "1")
	_, err = svc.AddRound(game.ID, round.ID, 1, user.ID)
	require.NoError(t, err)

	t.Run("non-owner is rejected", func(t *testing.T) {
		other := createTestUser(t, db, "mallory")
		assert.ErrorIs(t, svc.RemoveRound(game.ID, round.ID, other.ID), ErrNotPermitted)
	})

	t.Run("removes the membership", func(t *testing.T) {
		require.NoError(t, svc.RemoveRound(game.ID, round.ID, user.ID))

		rounds, err := svc.GameRounds(game.ID)
		require.NoError(t, err)
		assert.Empty(t, rounds)
	})

	t.Run("absent membership is a silent no-op", func(t *testing.T) {
		assert.NoError(t, svc.RemoveRound(game.ID, round.ID, user.ID))
	})
}

func TestGameRoundsOrdering(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	game, err := svc.CreateGame(user.ID, &CreateGameRequest{GameDate: "2025-06-05"})
	require.NoError(t, err)

	closer := createTestRound(t, db, user.ID, "Closer", "3")
	openerA := createTestRound(t, db, user.ID, "Opener A", "1")
	openerB := createTestRound(t, db, user.ID, "Opener B", "2")

	// Duplicate and gapped order values are allowed as supplied.
	_, err = svc.AddRound(game.ID, closer.ID, 5, user.ID)
	require.NoError(t, err)
	_, err = svc.AddRound(game.ID, openerA.ID, 1, user.ID)
	require.NoError(t, err)
	_, err = svc.AddRound(game.ID, openerB.ID, 1, user.ID)
	require.NoError(t, err)

	rounds, err := svc.GameRounds(game.ID)
	require.NoError(t, err)
	require.Len(t, rounds, 3)

	// Ascending by order, ties broken by insertion order.
	assert.Equal(t, "Opener A", rounds[0].Round.Title)
	assert.Equal(t, "Opener B", rounds[1].Round.Title)
	assert.Equal(t, "Closer", rounds[2].Round.Title)
}

func TestMissingLabels(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	game, err := svc.CreateGame(user.ID, &CreateGameRequest{GameDate: "2025-06-05"})
	require.NoError(t, err)

	first := createTestRound(t, db, user.ID, "Round One", "1")
	third := createTestRound(t, db, user.ID, "Round Three", "3")
	_, err = svc.AddRound(game.ID, first.ID, 1, user.ID)
	require.NoError(t, err)
	_, err = svc.AddRound(game.ID, third.ID, 3, user.ID)
	require.NoError(t, err)

	missing, err := svc.MissingLabels(game.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "5", "6"}, missing)

	t.Run("custom expected set preserves order", func(t *testing.T) {
		missing, err := svc.MissingLabels(game.ID, []string{"3", "Music", "1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Music"}, missing)
	})

	t.Run("empty game misses everything", func(t *testing.T) {
		empty, err := svc.CreateGame(user.ID, &CreateGameRequest{GameDate: "2025-06-05"})
		require.NoError(t, err)

		missing, err := svc.MissingLabels(empty.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultRoundLabels, missing)
	})
}

func TestUpcomingArchivePartition(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	day := 24 * time.Hour
	yesterday, err := svc.CreateGame(user.ID, &CreateGameRequest{
		Name: "Yesterday", GameDate: time.Now().Add(-day).Format("2006-01-02"),
	})
	require.NoError(t, err)
	today, err := svc.CreateGame(user.ID, &CreateGameRequest{
		Name: "Today", GameDate: time.Now().Format("2006-01-02"),
	})
	require.NoError(t, err)
	tomorrow, err := svc.CreateGame(user.ID, &CreateGameRequest{
		Name: "Tomorrow", GameDate: time.Now().Add(day).Format("2006-01-02"),
	})
	require.NoError(t, err)

	inactive, err := svc.CreateGame(user.ID, &CreateGameRequest{
		Name: "Cancelled", GameDate: time.Now().Add(day).Format("2006-01-02"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateGame(inactive.ID, user.ID))

	upcoming, err := svc.UpcomingGames(1)
	require.NoError(t, err)
	require.Len(t, upcoming.Items, 2)
	// Soonest first.
	assert.Equal(t, today.ID, upcoming.Items[0].ID)
	assert.Equal(t, tomorrow.ID, upcoming.Items[1].ID)

	archive, err := svc.ArchivedGames(1)
	require.NoError(t, err)
	require.Len(t, archive.Items, 1)
	assert.Equal(t, yesterday.ID, archive.Items[0].ID)

	all, err := svc.ListGames(1)
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
	assert.EqualValues(t, 3, all.Total)
}

func TestDeactivateGame(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	game, err := svc.CreateGame(user.ID, &CreateGameRequest{GameDate: "2025-06-05"})
	require.NoError(t, err)

	other := createTestUser(t, db, "mallory")
	assert.ErrorIs(t, svc.DeactivateGame(game.ID, other.ID), ErrNotPermitted)

	require.NoError(t, svc.DeactivateGame(game.ID, user.ID))

	page, err := svc.ListGames(1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestGetGameView(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "alice")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	game, err := svc.CreateGame(user.ID, &CreateGameRequest{Name: "Quiz Night", GameDate: "2025-06-05"})
	require.NoError(t, err)
	round := createTestRound(t, db, user.ID, "Music", "2")
	_, err = svc.AddRound(game.ID, round.ID, 1, user.ID)
	require.NoError(t, err)

	view, err := svc.GetGameView(game.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quiz Night", view.Game.Name)
	require.Len(t, view.Rounds, 1)
	assert.Equal(t, "Music", view.Rounds[0].Round.Title)
	assert.Equal(t, []string{"1", "3", "4", "5", "6"}, view.MissingLabels)

	_, err = svc.GetGameView(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameListingsByOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	svc := NewGameService(db, NewGameViewCache(nil), 10)

	_, err := svc.CreateGame(alice.ID, &CreateGameRequest{Name: "Alice Game", GameDate: "2025-06-05"})
	require.NoError(t, err)
	_, err = svc.CreateGame(bob.ID, &CreateGameRequest{Name: "Bob Game", GameDate: "2025-06-06"})
	require.NoError(t, err)

	page, err := svc.ListUserGames(alice.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Alice Game", page.Items[0].Name)
}
