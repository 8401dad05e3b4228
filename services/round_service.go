package services

import (
	"errors"
	"fmt"
	"strings"

	"trivianight/models"

	"gorm.io/gorm"
)

type RoundService struct {
	db      *gorm.DB
	cache   *GameViewCache
	perPage int
}

func NewRoundService(db *gorm.DB, cache *GameViewCache, perPage int) *RoundService {
	return &RoundService{db: db, cache: cache, perPage: perPage}
}

type CreateRoundRequest struct {
	Title          string
	Label          string
	AttachmentPath string
}

// QuestionEntry is one row of the question editor. Entries with a blank
// question or a blank answer are dropped, not rejected.
type QuestionEntry struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
	Points *int   `json:"points" binding:"omitempty,min=1,max=10"`
}

// UniqueTitle returns base if no round uses it yet, otherwise "base 1",
// "base 2", ... until a free title is found. Every candidate is re-checked
// against the store, so pre-existing numbered titles are skipped over.
// Check-then-use is racy under concurrent creation; see DESIGN.md.
func (s *RoundService) UniqueTitle(base string) (string, error) {
	title := base
	for counter := 1; ; counter++ {
		var count int64
		if err := s.db.Model(&models.Round{}).Where("title = ?", title).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return title, nil
		}
		title = fmt.Sprintf("%s %d", base, counter)
	}
}

func (s *RoundService) CreateRound(userID uint, req *CreateRoundRequest) (*models.Round, error) {
	title, err := s.UniqueTitle(strings.TrimSpace(req.Title))
	if err != nil {
		return nil, err
	}

	round := models.Round{
		Title:          title,
		Label:          strings.TrimSpace(req.Label),
		UserID:         userID,
		AttachmentPath: req.AttachmentPath,
		IsActive:       true,
	}

	if err := s.db.Create(&round).Error; err != nil {
		return nil, err
	}

	return &round, nil
}

func (s *RoundService) GetRound(roundID uint) (*models.Round, error) {
	var round models.Round
	err := s.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.number")
	}).First(&round, roundID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &round, nil
}

// ReplaceQuestions swaps the round's question set for the given entries in
// one transaction. Blank entries are dropped and numbering is reassigned
// densely over the kept entries. Points outside a valid non-negative integer
// default to 1.
func (s *RoundService) ReplaceQuestions(roundID, userID uint, entries []QuestionEntry) ([]models.Question, error) {
	round, err := s.GetRound(roundID)
	if err != nil {
		return nil, err
	}
	if !CanModify(userID, round.UserID) {
		return nil, ErrNotPermitted
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("round_id = ?", roundID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	kept := make([]models.Question, 0, len(entries))
	for _, entry := range entries {
		text := strings.TrimSpace(entry.Text)
		answer := strings.TrimSpace(entry.Answer)
		if text == "" || answer == "" {
			continue
		}

		points := 1
		if entry.Points != nil && *entry.Points >= 0 {
			points = *entry.Points
		}

		question := models.Question{
			RoundID: roundID,
			Text:    text,
			Answer:  answer,
			Number:  len(kept) + 1,
			Points:  points,
		}

		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		kept = append(kept, question)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return kept, nil
}

func (s *RoundService) ListRounds(page int) (*Page[models.Round], error) {
	return s.listRounds(func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}, page)
}

func (s *RoundService) ListUserRounds(userID uint, page int) (*Page[models.Round], error) {
	return s.listRounds(func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND is_active = ?", userID, true)
	}, page)
}

func (s *RoundService) listRounds(scope func(*gorm.DB) *gorm.DB, page int) (*Page[models.Round], error) {
	page = normalizePage(page)

	var total int64
	if err := s.db.Model(&models.Round{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, err
	}

	var rounds []models.Round
	err := s.db.Scopes(scope).
		Order("created_at DESC").
		Offset((page - 1) * s.perPage).
		Limit(s.perPage).
		Find(&rounds).Error
	if err != nil {
		return nil, err
	}

	return &Page[models.Round]{Items: rounds, Total: total, Page: page, PerPage: s.perPage}, nil
}

// RecentRounds returns the user's latest rounds for the dashboard.
func (s *RoundService) RecentRounds(userID uint, limit int) ([]models.Round, error) {
	var rounds []models.Round
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rounds).Error
	return rounds, err
}

// UsageCount reports how many games reference the round.
func (s *RoundService) UsageCount(roundID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.GameRound{}).Where("round_id = ?", roundID).Count(&count).Error
	return count, err
}

// IsUnused reports whether the round has never been added to a game.
func (s *RoundService) IsUnused(roundID uint) (bool, error) {
	count, err := s.UsageCount(roundID)
	return count == 0, err
}

// DeactivateRound hides the round from listings without deleting it.
func (s *RoundService) DeactivateRound(roundID, userID uint) error {
	round, err := s.GetRound(roundID)
	if err != nil {
		return err
	}
	if !CanModify(userID, round.UserID) {
		return ErrNotPermitted
	}

	return s.db.Model(round).Update("is_active", false).Error
}

// DeleteRound removes the round together with its questions and any game
// memberships, so it disappears from every game's round listing.
func (s *RoundService) DeleteRound(roundID, userID uint) error {
	round, err := s.GetRound(roundID)
	if err != nil {
		return err
	}
	if !CanModify(userID, round.UserID) {
		return ErrNotPermitted
	}

	var memberships []models.GameRound
	if err := s.db.Where("round_id = ?", roundID).Find(&memberships).Error; err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("round_id = ?", roundID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("round_id = ?", roundID).Delete(&models.GameRound{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Round{}, roundID).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	for _, membership := range memberships {
		s.cache.Invalidate(membership.GameID)
	}

	return nil
}
