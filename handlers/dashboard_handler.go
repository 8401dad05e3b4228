package handlers

import (
	"net/http"

	"trivianight/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	roundService *services.RoundService
	gameService  *services.GameService
}

func NewDashboardHandler(roundService *services.RoundService, gameService *services.GameService) *DashboardHandler {
	return &DashboardHandler{
		roundService: roundService,
		gameService:  gameService,
	}
}

const recentLimit = 5

// Dashboard returns the user's most recent rounds and games.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rounds, err := h.roundService.RecentRounds(userID, recentLimit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	games, err := h.gameService.RecentGames(userID, recentLimit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recent_rounds": rounds, "recent_games": games})
}
