package handlers

import (
	"log"
	"net/http"
	"strings"

	"trivianight/services"
	"trivianight/storage"

	"github.com/gin-gonic/gin"
)

type RoundHandler struct {
	roundService *services.RoundService
	store        *storage.Store
	allowedExts  []string
}

func NewRoundHandler(roundService *services.RoundService, store *storage.Store, allowedExts []string) *RoundHandler {
	return &RoundHandler{
		roundService: roundService,
		store:        store,
		allowedExts:  allowedExts,
	}
}

// CreateRound accepts a multipart form: title, label and an optional
// attachment. A disallowed attachment is skipped, not fatal; the round is
// still created without it.
func (h *RoundHandler) CreateRound(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	label := strings.TrimSpace(c.PostForm("label"))

	fields := make(map[string]string)
	if title == "" {
		fields["title"] = "title is required"
	}
	if label == "" {
		fields["label"] = "label is required"
	}
	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
		return
	}

	attachmentPath := ""
	attachmentSkipped := ""
	if file, err := c.FormFile("attachment"); err == nil {
		if !storage.AllowedFile(file.Filename, h.allowedExts) {
			attachmentSkipped = "file type not allowed"
		} else {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read attachment"})
				return
			}
			defer src.Close()

			stored, err := h.store.Save(file.Filename, src)
			if err != nil {
				log.Printf("Failed to store attachment %q: %v", file.Filename, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
				return
			}
			attachmentPath = stored
		}
	}

	round, err := h.roundService.CreateRound(userID, &services.CreateRoundRequest{
		Title:          title,
		Label:          label,
		AttachmentPath: attachmentPath,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"round": round}
	if attachmentSkipped != "" {
		resp["attachment_skipped"] = attachmentSkipped
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RoundHandler) GetRound(c *gin.Context) {
	roundID, ok := idParam(c, "id")
	if !ok {
		return
	}

	round, err := h.roundService.GetRound(roundID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	usage, err := h.roundService.UsageCount(roundID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"round": round, "usage_count": usage})
}

type ReplaceQuestionsRequest struct {
	Questions []services.QuestionEntry `json:"questions" binding:"dive"`
}

func (h *RoundHandler) ReplaceQuestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	roundID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ReplaceQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.roundService.ReplaceQuestions(roundID, userID, req.Questions)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *RoundHandler) ListRounds(c *gin.Context) {
	page, err := h.roundService.ListRounds(pageQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *RoundHandler) ListMyRounds(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, err := h.roundService.ListUserRounds(userID, pageQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *RoundHandler) DeactivateRound(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	roundID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.roundService.DeactivateRound(roundID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Round deactivated"})
}
