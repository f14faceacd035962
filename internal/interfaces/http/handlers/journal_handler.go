package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerrors "swap24.backend/internal/domain/errors"
	"swap24.backend/internal/domain/repositories"
	"swap24.backend/internal/interfaces/http/middleware"
	"swap24.backend/internal/interfaces/http/response"
	"swap24.backend/pkg/utils"
)

// JournalHandler serves the caller's transaction journal
type JournalHandler struct {
	journal repositories.TxJournalRepository
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journal repositories.TxJournalRepository) *JournalHandler {
	return &JournalHandler{journal: journal}
}

// ListJournal returns the caller's submitted chain writes, newest first
// GET /api/v1/journal?page=1&limit=20
func (h *JournalHandler) ListJournal(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if !identity.Authenticated() {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	entries, total, err := h.journal.ListByUser(c.Request.Context(), identity.UserID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, domainerrors.InternalError(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entries":    entries,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
