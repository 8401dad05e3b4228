package handlers

import (
	"net/http"

	"trivianight/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.CreateGame(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

// GetGame serves the assembled game view: the game, its rounds in order and
// which standard round labels are still missing.
func (h *GameHandler) GetGame(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	view, err := h.gameService.GetGameView(gameID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) AddRound(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.AddRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Order == 0 {
		req.Order = 1
	}

	membership, err := h.gameService.AddRound(gameID, req.RoundID, req.Order, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, membership)
}

func (h *GameHandler) RemoveRound(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	roundID, ok := idParam(c, "roundID")
	if !ok {
		return
	}

	if err := h.gameService.RemoveRound(gameID, roundID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Round removed from game"})
}

func (h *GameHandler) ListGames(c *gin.Context) {
	page, err := h.gameService.ListGames(pageQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *GameHandler) ListMyGames(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, err := h.gameService.ListUserGames(userID, pageQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *GameHandler) ListUpcomingGames(c *gin.Context) {
	page, err := h.gameService.UpcomingGames(pageQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *GameHandler) ListArchivedGames(c *gin.Context) {
	page, err := h.gameService.ArchivedGames(pageQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *GameHandler) DeactivateGame(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.gameService.DeactivateGame(gameID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game deactivated"})
}
