package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"swap24.backend/internal/domain/entities"
	domainerrors "swap24.backend/internal/domain/errors"
	"swap24.backend/internal/interfaces/http/middleware"
	"swap24.backend/internal/usecases"
)

type lifecycleStub struct {
	createFn  func(context.Context, entities.Identity, *entities.PostAdInput) (*entities.CreateAdResult, error)
	cancelFn  func(context.Context, entities.Identity, int64, bool) (*entities.CancelAdResult, error)
	abandonFn func(context.Context, entities.Identity, string) (*entities.JournalEntry, error)
}

func (s lifecycleStub) CreateAd(ctx context.Context, identity entities.Identity, input *entities.PostAdInput) (*entities.CreateAdResult, error) {
	if s.createFn != nil {
		return s.createFn(ctx, identity, input)
	}
	return &entities.CreateAdResult{}, nil
}
func (s lifecycleStub) CancelAd(ctx context.Context, identity entities.Identity, adID int64, confirmed bool) (*entities.CancelAdResult, error) {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, identity, adID, confirmed)
	}
	return &entities.CancelAdResult{}, nil
}
func (s lifecycleStub) AbandonWait(ctx context.Context, identity entities.Identity, txHash string) (*entities.JournalEntry, error) {
	if s.abandonFn != nil {
		return s.abandonFn(ctx, identity, txHash)
	}
	return &entities.JournalEntry{}, nil
}

type queryStub struct {
	listAllFn  func(context.Context, usecases.ListAdsFilter) ([]*entities.Ad, error)
	listMineFn func(context.Context, string) ([]*entities.Ad, error)
	quoteFn    func(context.Context, int64, string) (*entities.BuyQuote, error)
}

func (s queryStub) ListAll(ctx context.Context, filter usecases.ListAdsFilter) ([]*entities.Ad, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx, filter)
	}
	return []*entities.Ad{}, nil
}
func (s queryStub) ListMine(ctx context.Context, vendor string) ([]*entities.Ad, error) {
	if s.listMineFn != nil {
		return s.listMineFn(ctx, vendor)
	}
	return []*entities.Ad{}, nil
}
func (s queryStub) ComputeBuyQuote(ctx context.Context, adID int64, amount string) (*entities.BuyQuote, error) {
	if s.quoteFn != nil {
		return s.quoteFn(ctx, adID, amount)
	}
	return &entities.BuyQuote{}, nil
}

func newAdRouter(h *AdHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	withIdentity := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-1")
		c.Set(middleware.WalletAddressKey, "0xVendorAddress")
	}
	r.POST("/ads", withIdentity, h.CreateAd)
	r.POST("/ads/:id/cancel", withIdentity, h.CancelAd)
	r.GET("/ads", h.ListAds)
	r.GET("/ads/mine", withIdentity, h.ListMyAds)
	r.POST("/quotes", h.Quote)
	r.POST("/waits/:txHash/abandon", withIdentity, h.AbandonWait)
	return r
}

func TestAdHandler_CreateAd(t *testing.T) {
	h := &AdHandler{lifecycle: lifecycleStub{
		createFn: func(_ context.Context, identity entities.Identity, input *entities.PostAdInput) (*entities.CreateAdResult, error) {
			require.Equal(t, "user-1", identity.UserID)
			require.Equal(t, "USDC", input.TokenSymbol)
			return &entities.CreateAdResult{AdID: null.Int64From(7), TxHash: "0xcreate"}, nil
		},
	}}
	r := newAdRouter(h)

	body := `{"token":"USDC","amount":"2","price":"90000","rate":"1 USDC = 45000 NGN"}`
	req := httptest.NewRequest(http.MethodPost, "/ads", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result entities.CreateAdResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, int64(7), result.AdID.Int64)
	require.Equal(t, "0xcreate", result.TxHash)
}

func TestAdHandler_CreateAd_BadBody(t *testing.T) {
	h := &AdHandler{lifecycle: lifecycleStub{}}
	r := newAdRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/ads", strings.NewReader(`{"amount":"2"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdHandler_CreateAd_ErrorMapping(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"validation":   {domainerrors.Validation("amount", "bad amount"), http.StatusBadRequest},
		"wallet":       {domainerrors.WalletNotConnected(), http.StatusUnauthorized},
		"allowance":    {domainerrors.AllowanceCheckFailed(context.DeadlineExceeded), http.StatusBadGateway},
		"reverted":     {domainerrors.TxReverted("0xdead"), http.StatusUnprocessableEntity},
		"plain errors": {context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := &AdHandler{lifecycle: lifecycleStub{
				createFn: func(context.Context, entities.Identity, *entities.PostAdInput) (*entities.CreateAdResult, error) {
					return nil, tc.err
				},
			}}
			r := newAdRouter(h)

			body := `{"token":"USDC","amount":"2","price":"90000"}`
			req := httptest.NewRequest(http.MethodPost, "/ads", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestAdHandler_CancelAd(t *testing.T) {
	h := &AdHandler{lifecycle: lifecycleStub{
		cancelFn: func(_ context.Context, _ entities.Identity, adID int64, confirmed bool) (*entities.CancelAdResult, error) {
			require.Equal(t, int64(5), adID)
			require.True(t, confirmed)
			return &entities.CancelAdResult{AdID: adID, TxHash: "0xcancel", RefundAmount: "2"}, nil
		},
	}}
	r := newAdRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/ads/5/cancel", strings.NewReader(`{"confirm":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAdHandler_CancelAd_InvalidID(t *testing.T) {
	h := &AdHandler{lifecycle: lifecycleStub{}}
	r := newAdRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/ads/abc/cancel", strings.NewReader(`{"confirm":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdHandler_ListAds_ForwardsFilter(t *testing.T) {
	h := &AdHandler{query: queryStub{
		listAllFn: func(_ context.Context, filter usecases.ListAdsFilter) ([]*entities.Ad, error) {
			require.Equal(t, "USDC", filter.Asset)
			require.True(t, filter.ActiveOnly)
			return []*entities.Ad{{ID: 1, CryptoToken: "USDC", IsActive: true}}, nil
		},
	}}
	r := newAdRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/ads?asset=USDC&active=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"ads"`)
}

func TestAdHandler_ListMyAds(t *testing.T) {
	h := &AdHandler{query: queryStub{
		listMineFn: func(_ context.Context, vendor string) ([]*entities.Ad, error) {
			require.Equal(t, "0xVendorAddress", vendor)
			return []*entities.Ad{{ID: 1}}, nil
		},
	}}
	r := newAdRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/ads/mine", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestAdHandler_Quote(t *testing.T) {
	h := &AdHandler{query: queryStub{
		quoteFn: func(_ context.Context, adID int64, amount string) (*entities.BuyQuote, error) {
			require.Equal(t, int64(2), adID)
			require.Equal(t, "20", amount)
			return &entities.BuyQuote{AdID: adID, FiatAmount: "30000", WithinLimits: true}, nil
		},
	}}
	r := newAdRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{"adId":2,"amount":"20"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"30000"`)
}

func TestAdHandler_Quote_OutOfLimits(t *testing.T) {
	h := &AdHandler{query: queryStub{
		quoteFn: func(context.Context, int64, string) (*entities.BuyQuote, error) {
			return nil, domainerrors.OutOfLimitRange("order value 1500 NGN is outside the 15947 - 41854 NGN limit")
		},
	}}
	r := newAdRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{"adId":1,"amount":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "OUT_OF_LIMIT_RANGE")
}

func TestAdHandler_AbandonWait(t *testing.T) {
	h := &AdHandler{lifecycle: lifecycleStub{
		abandonFn: func(_ context.Context, _ entities.Identity, txHash string) (*entities.JournalEntry, error) {
			require.Equal(t, "0xpending", txHash)
			return &entities.JournalEntry{TxHash: txHash, Status: entities.JournalStatusAbandoned}, nil
		},
	}}
	r := newAdRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/waits/0xpending/abandon", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), "abandoned")
}
