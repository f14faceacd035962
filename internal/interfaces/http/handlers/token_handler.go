package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"swap24.backend/internal/domain/entities"
	"swap24.backend/internal/interfaces/http/response"
)

// TokenHandler serves the supported token catalog
type TokenHandler struct {
	catalog entities.TokenCatalog
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(catalog entities.TokenCatalog) *TokenHandler {
	return &TokenHandler{catalog: catalog}
}

// ListTokens returns the assets ads may be placed for
// GET /api/v1/tokens
func (h *TokenHandler) ListTokens(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"tokens": h.catalog})
}
