package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"swap24.backend/internal/domain/entities"
	domainerrors "swap24.backend/internal/domain/errors"
	"swap24.backend/internal/interfaces/http/middleware"
	"swap24.backend/internal/interfaces/http/response"
	"swap24.backend/internal/usecases"
)

type adLifecycleService interface {
	CreateAd(ctx context.Context, identity entities.Identity, input *entities.PostAdInput) (*entities.CreateAdResult, error)
	CancelAd(ctx context.Context, identity entities.Identity, adID int64, confirmed bool) (*entities.CancelAdResult, error)
	AbandonWait(ctx context.Context, identity entities.Identity, txHash string) (*entities.JournalEntry, error)
}

type adQueryService interface {
	ListAll(ctx context.Context, filter usecases.ListAdsFilter) ([]*entities.Ad, error)
	ListMine(ctx context.Context, vendor string) ([]*entities.Ad, error)
	ComputeBuyQuote(ctx context.Context, adID int64, requestedAmount string) (*entities.BuyQuote, error)
}

// AdHandler handles marketplace ad endpoints
type AdHandler struct {
	lifecycle adLifecycleService
	query     adQueryService
}

// NewAdHandler creates a new ad handler
func NewAdHandler(lifecycle *usecases.AdLifecycleUsecase, query *usecases.AdQueryUsecase) *AdHandler {
	return &AdHandler{lifecycle: lifecycle, query: query}
}

// CreateAd posts a new ad
// POST /api/v1/ads
func (h *AdHandler) CreateAd(c *gin.Context) {
	var input entities.PostAdInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.lifecycle.CreateAd(c.Request.Context(), middleware.GetIdentity(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

type cancelAdRequest struct {
	Confirm bool `json:"confirm"`
}

// CancelAd cancels the caller's ad
// POST /api/v1/ads/:id/cancel
func (h *AdHandler) CancelAd(c *gin.Context) {
	adID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid ad ID"))
		return
	}

	var req cancelAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.lifecycle.CancelAd(c.Request.Context(), middleware.GetIdentity(c), adID, req.Confirm)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListAds returns the market listing
// GET /api/v1/ads?asset=USDC&active=true
func (h *AdHandler) ListAds(c *gin.Context) {
	filter := usecases.ListAdsFilter{
		Asset:      c.Query("asset"),
		ActiveOnly: c.Query("active") == "true",
	}

	ads, err := h.query.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ads": ads})
}

// ListMyAds returns the caller's own ads
// GET /api/v1/ads/mine
func (h *AdHandler) ListMyAds(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	ads, err := h.query.ListMine(c.Request.Context(), identity.WalletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ads": ads})
}

type quoteRequest struct {
	AdID   int64  `json:"adId" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// Quote computes the fiat conversion for a requested amount
// POST /api/v1/quotes
func (h *AdHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	quote, err := h.query.ComputeBuyQuote(c.Request.Context(), req.AdID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

// AbandonWait abandons a pending confirmation wait
// POST /api/v1/waits/:txHash/abandon
func (h *AdHandler) AbandonWait(c *gin.Context) {
	entry, err := h.lifecycle.AbandonWait(c.Request.Context(), middleware.GetIdentity(c), c.Param("txHash"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entry)
}
