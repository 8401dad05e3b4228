package services

import (
	"errors"
	"strings"
	"time"

	"trivianight/models"

	"gorm.io/gorm"
)

// DefaultRoundLabels is the conventional six-round trivia night format used
// to flag games that are missing a standard round.
var DefaultRoundLabels = []string{"1", "2", "3", "4", "5", "6"}

type GameService struct {
	db      *gorm.DB
	cache   *GameViewCache
	perPage int
}

func NewGameService(db *gorm.DB, cache *GameViewCache, perPage int) *GameService {
	return &GameService{db: db, cache: cache, perPage: perPage}
}

type CreateGameRequest struct {
	Name     string `json:"name"`
	GameDate string `json:"game_date" binding:"required"` // YYYY-MM-DD
}

type AddRoundRequest struct {
	RoundID uint `json:"round_id" binding:"required"`
	Order   int  `json:"round_order"`
}

// GameRoundView is one round of a game together with its position.
type GameRoundView struct {
	Round models.Round `json:"round"`
	Order int          `json:"order"`
}

// GameView is the assembled public page for a game.
type GameView struct {
	Game          models.Game     `json:"game"`
	Rounds        []GameRoundView `json:"rounds"`
	MissingLabels []string        `json:"missing_labels"`
}

// CreateGame persists a new game. A blank name defaults to the game date
// spelled out, e.g. "Thursday, June 05 2025".
func (s *GameService) CreateGame(userID uint, req *CreateGameRequest) (*models.Game, error) {
	date, err := time.ParseInLocation("2006-01-02", req.GameDate, time.Local)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"game_date": "must be a date in YYYY-MM-DD format"}}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = date.Format("Monday, January 02 2006")
	}

	game := models.Game{
		Name:     name,
		GameDate: date,
		UserID:   userID,
		IsActive: true,
	}

	if err := s.db.Create(&game).Error; err != nil {
		return nil, err
	}

	return &game, nil
}

func (s *GameService) GetGame(gameID uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// AddRound inserts a round into a game at the given order position. The
// order value is stored as supplied; duplicate or gapped positions across
// the game are allowed. A round already in the game is rejected softly with
// no state change. The existence check races with concurrent adds; see
// DESIGN.md.
func (s *GameService) AddRound(gameID, roundID uint, order int, userID uint) (*models.GameRound, error) {
	game, err := s.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if !CanModify(userID, game.UserID) {
		return nil, ErrNotPermitted
	}

	var round models.Round
	if err := s.db.First(&round, roundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.GameRound{}).
		Where("game_id = ? AND round_id = ?", gameID, roundID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRoundAlreadyInGame
	}

	membership := models.GameRound{
		GameID:  gameID,
		RoundID: roundID,
		Order:   order,
		AddedAt: time.Now(),
	}

	if err := s.db.Create(&membership).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(gameID)
	return &membership, nil
}

// RemoveRound deletes the round's membership in the game. A round that is
// not in the game is a silent no-op.
func (s *GameService) RemoveRound(gameID, roundID, userID uint) error {
	game, err := s.GetGame(gameID)
	if err != nil {
		return err
	}
	if !CanModify(userID, game.UserID) {
		return ErrNotPermitted
	}

	err = s.db.Where("game_id = ? AND round_id = ?", gameID, roundID).
		Delete(&models.GameRound{}).Error
	if err != nil {
		return err
	}

	s.cache.Invalidate(gameID)
	return nil
}

// GameRounds lists the game's rounds ascending by order position, with ties
// broken by insertion order.
func (s *GameService) GameRounds(gameID uint) ([]GameRoundView, error) {
	var memberships []models.GameRound
	err := s.db.Where("game_id = ?", gameID).
		Preload("Round").
		Order("round_order ASC, id ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	views := make([]GameRoundView, 0, len(memberships))
	for _, m := range memberships {
		views = append(views, GameRoundView{Round: m.Round, Order: m.Order})
	}
	return views, nil
}

// MissingLabels returns which of the expected round labels have no round in
// the game yet, preserving the expected order. A nil expected set means the
// standard six numbered rounds.
func (s *GameService) MissingLabels(gameID uint, expected []string) ([]string, error) {
	if expected == nil {
		expected = DefaultRoundLabels
	}

	rounds, err := s.GameRounds(gameID)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(rounds))
	for _, r := range rounds {
		present[r.Round.Label] = true
	}

	missing := make([]string, 0, len(expected))
	for _, label := range expected {
		if !present[label] {
			missing = append(missing, label)
		}
	}
	return missing, nil
}

// GetGameView assembles the public game page, served from Redis when a
// fresh copy is cached.
func (s *GameService) GetGameView(gameID uint) (*GameView, error) {
	if view, ok := s.cache.Get(gameID); ok {
		return view, nil
	}

	game, err := s.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	rounds, err := s.GameRounds(gameID)
	if err != nil {
		return nil, err
	}

	missing, err := s.MissingLabels(gameID, nil)
	if err != nil {
		return nil, err
	}

	view := &GameView{Game: *game, Rounds: rounds, MissingLabels: missing}
	s.cache.Set(gameID, view)
	return view, nil
}

func (s *GameService) ListGames(page int) (*Page[models.Game], error) {
	return s.listGames(func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}, "game_date DESC", page)
}

func (s *GameService) ListUserGames(userID uint, page int) (*Page[models.Game], error) {
	return s.listGames(func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND is_active = ?", userID, true)
	}, "game_date DESC", page)
}

// UpcomingGames lists active games dated today or later, soonest first.
// "Today" is the server's local date; see DESIGN.md for the midnight
// boundary caveat.
func (s *GameService) UpcomingGames(page int) (*Page[models.Game], error) {
	today := localToday()
	return s.listGames(func(db *gorm.DB) *gorm.DB {
		return db.Where("game_date >= ? AND is_active = ?", today, true)
	}, "game_date ASC", page)
}

// ArchivedGames lists active games dated before today, most recent first.
func (s *GameService) ArchivedGames(page int) (*Page[models.Game], error) {
	today := localToday()
	return s.listGames(func(db *gorm.DB) *gorm.DB {
		return db.Where("game_date < ? AND is_active = ?", today, true)
	}, "game_date DESC", page)
}

func (s *GameService) listGames(scope func(*gorm.DB) *gorm.DB, order string, page int) (*Page[models.Game], error) {
	page = normalizePage(page)

	var total int64
	if err := s.db.Model(&models.Game{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, err
	}

	var games []models.Game
	err := s.db.Scopes(scope).
		Order(order).
		Offset((page - 1) * s.perPage).
		Limit(s.perPage).
		Find(&games).Error
	if err != nil {
		return nil, err
	}

	return &Page[models.Game]{Items: games, Total: total, Page: page, PerPage: s.perPage}, nil
}

// RecentGames returns the user's latest games for the dashboard.
func (s *GameService) RecentGames(userID uint, limit int) ([]models.Game, error) {
	var games []models.Game
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&games).Error
	return games, err
}

// DeactivateGame hides the game from listings without deleting it.
func (s *GameService) DeactivateGame(gameID, userID uint) error {
	game, err := s.GetGame(gameID)
	if err != nil {
		return err
	}
	if !CanModify(userID, game.UserID) {
		return ErrNotPermitted
	}

	if err := s.db.Model(game).Update("is_active", false).Error; err != nil {
		return err
	}

	s.cache.Invalidate(gameID)
	return nil
}

func localToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
