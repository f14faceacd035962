package usecases_test

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"swap24.backend/internal/domain/entities"
)

// Mock MarketGateway
type MockMarketGateway struct {
	mock.Mock
}

func (m *MockMarketGateway) GetAllAds(ctx context.Context) ([]*entities.Ad, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ad), args.Error(1)
}

func (m *MockMarketGateway) CreateAd(ctx context.Context, input *entities.ChainAdInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockMarketGateway) CancelAd(ctx context.Context, adID int64) (string, error) {
	args := m.Called(ctx, adID)
	return args.String(0), args.Error(1)
}

func (m *MockMarketGateway) WaitMined(ctx context.Context, txHash string) (*entities.TxOutcome, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TxOutcome), args.Error(1)
}

func (m *MockMarketGateway) MarketAddress() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockMarketGateway) SignerAddress() string {
	args := m.Called()
	return args.String(0)
}

// Mock TokenGateway
type MockTokenGateway struct {
	mock.Mock
}

func (m *MockTokenGateway) Allowance(ctx context.Context, token, owner, spender string) (*big.Int, error) {
	args := m.Called(ctx, token, owner, spender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenGateway) Approve(ctx context.Context, token, spender string, amount *big.Int) (string, error) {
	args := m.Called(ctx, token, spender, amount)
	return args.String(0), args.Error(1)
}

func (m *MockTokenGateway) Decimals(ctx context.Context, token string) (int32, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int32), args.Error(1)
}

// Mock MirrorClient
type MockMirrorClient struct {
	mock.Mock
}

func (m *MockMirrorClient) AddTransaction(ctx context.Context, record *entities.TransactionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMirrorClient) AddAd(ctx context.Context, record *entities.AdRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMirrorClient) ListAds(ctx context.Context) ([]*entities.Ad, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ad), args.Error(1)
}

// Mock TxJournalRepository
type MockTxJournalRepository struct {
	mock.Mock
}

func (m *MockTxJournalRepository) Create(ctx context.Context, entry *entities.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTxJournalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.JournalStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTxJournalRepository) SetAdID(ctx context.Context, id uuid.UUID, adID int64) error {
	args := m.Called(ctx, id, adID)
	return args.Error(0)
}

func (m *MockTxJournalRepository) GetByTxHash(ctx context.Context, txHash string) (*entities.JournalEntry, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.JournalEntry), args.Error(1)
}

func (m *MockTxJournalRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.JournalEntry, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockTxJournalRepository) ListPendingOlderThan(ctx context.Context, age time.Duration, limit int) ([]*entities.JournalEntry, error) {
	args := m.Called(ctx, age, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.JournalEntry), args.Error(1)
}

func (m *MockTxJournalRepository) MarkAbandoned(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
