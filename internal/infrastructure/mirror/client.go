package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"swap24.backend/internal/domain/entities"
	"swap24.backend/pkg/logger"
)

// Client persists ad and transaction records to the external backend
// mirror. It implements repositories.MirrorClient. The mirror is never the
// authority: callers invoke it only after a confirmed chain write and treat
// failures as warnings.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	maxInterval time.Duration
}

// NewClient creates a mirror client for the backend at baseURL.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		apiKey:      apiKey,
		maxInterval: 5 * time.Second,
	}
}

// AddTransaction posts a transaction record.
// POST /transactions/add
func (c *Client) AddTransaction(ctx context.Context, record *entities.TransactionRecord) error {
	return c.post(ctx, "/transactions/add", record)
}

// AddAd posts an ad record.
// POST /ads/add
func (c *Client) AddAd(ctx context.Context, record *entities.AdRecord) error {
	return c.post(ctx, "/ads/add", record)
}

// listAdsResponse is the mirror's ad listing envelope.
type listAdsResponse struct {
	Ads []mirrorAd `json:"ads"`
}

type mirrorAd struct {
	AdsID         int64   `json:"adsId"`
	Vendor        string  `json:"vendorAddress"`
	AssetType     string  `json:"assetType"`
	TokenAddress  string  `json:"tokenAddress"`
	Amount        float64 `json:"availableAmount"`
	PricePerUnit  string  `json:"pricePerUnit"`
	PaymentMethod string  `json:"paymentMethods"`
	Rate          string  `json:"rate"`
	Limit         string  `json:"limit"`
	SellerName    string  `json:"sellerName"`
	IsActive      bool    `json:"isActive"`
}

// ListAds reads the mirror's ad table. Amounts come back in display units;
// they are reported as-is in the PricePerUnit/Limit metadata and the
// on-chain fields are left to the mirror's own values.
// GET /ads
func (c *Client) ListAds(ctx context.Context) ([]*entities.Ad, error) {
	body, err := c.do(ctx, http.MethodGet, "/ads", nil)
	if err != nil {
		return nil, err
	}

	var resp listAdsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode mirror ads: %w", err)
	}

	ads := make([]*entities.Ad, 0, len(resp.Ads))
	for _, m := range resp.Ads {
		ads = append(ads, &entities.Ad{
			ID:            m.AdsID,
			Vendor:        m.Vendor,
			TokenAddress:  m.TokenAddress,
			CryptoToken:   m.AssetType,
			PaymentMethod: m.PaymentMethod,
			Rate:          m.Rate,
			IsActive:      m.IsActive,
			PricePerUnit:  m.PricePerUnit,
			Limit:         m.Limit,
			SellerName:    m.SellerName,
		})
	}
	return ads, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode mirror payload: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, path, body)
	return err
}

// do executes one request with exponential backoff on network errors and
// 429s; any other non-2xx status is permanent.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("mirror request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn(ctx, "mirror rate limited, retrying",
				zap.String("path", path))
			return fmt.Errorf("mirror rate limited")
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			msg, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("mirror returned %d: %s", resp.StatusCode, string(msg)))
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read mirror response: %w", err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxInterval = c.maxInterval
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return respBody, nil
}
