package main

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"swap24.backend/internal/config"
	"swap24.backend/internal/infrastructure/blockchain"
	plog "swap24.backend/pkg/logger"
)

const testMainSignerKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origNewEVMClient := newEVMClient
	origNewSigner := newSigner
	origRunServer := runServer

	t.Cleanup(func() {
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		newEVMClient = origNewEVMClient
		newSigner = origNewSigner
		runServer = origRunServer
	})
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port: "18080",
			Env:  "development",
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "swap24",
			SSLMode:  "disable",
		},
		Redis: config.RedisConfig{
			URL:      "redis://localhost:6379",
			Password: "",
		},
		JWT: config.JWTConfig{
			Secret:        "secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
		Blockchain: config.BlockchainConfig{
			RPCURL:           "http://127.0.0.1:8545",
			ChainID:          11155111,
			MarketAddress:    "0x7b66522d365e4c906b89d2263d37c2c306264f89",
			SignerPrivateKey: testMainSignerKey,
			ReceiptTimeout:   time.Second,
		},
		Mirror: config.MirrorConfig{
			BaseURL: "http://localhost:9090",
			Timeout: time.Second,
		},
		Market: config.MarketConfig{
			DataSource:           "chain",
			JournalMaxPendingAge: time.Hour,
		},
	}
}

func stubEVMClient(string) (*blockchain.EVMClient, error) {
	return blockchain.NewEVMClientWithHooks(
		big.NewInt(11155111),
		func(context.Context, string, []byte) ([]byte, error) { return nil, errors.New("no rpc") },
		func(context.Context, *bind.TransactOpts, common.Address, abi.ABI, string, ...interface{}) (string, error) {
			return "", errors.New("no rpc")
		},
		func(context.Context, string) (*types.Receipt, error) { return nil, errors.New("no rpc") },
	), nil
}

func TestRunMainProcess_RedisInitError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return errors.New("redis down") }

	err := runMainProcess()
	if err == nil {
		t.Fatal("expected redis init error")
	}
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	err := runMainProcess()
	if err == nil {
		t.Fatal("expected db open error")
	}
}

func TestRunMainProcess_EVMDialError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:main_evm_err?mode=memory&cache=shared"), &gorm.Config{})
	}
	newEVMClient = func(string) (*blockchain.EVMClient, error) { return nil, errors.New("dial failed") }

	err := runMainProcess()
	if err == nil {
		t.Fatal("expected evm dial error")
	}
}

func TestRunMainProcess_SignerKeyError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = func() *config.Config {
		cfg := baseTestConfig()
		cfg.Blockchain.SignerPrivateKey = ""
		return cfg
	}
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:main_signer_err?mode=memory&cache=shared"), &gorm.Config{})
	}
	newEVMClient = stubEVMClient

	err := runMainProcess()
	if err == nil {
		t.Fatal("expected signer key error")
	}
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:main_server_err?mode=memory&cache=shared"), &gorm.Config{})
	}
	newEVMClient = stubEVMClient
	runServer = func(*gin.Engine, string) error { return errors.New("listen failed") }

	err := runMainProcess()
	if err == nil {
		t.Fatal("expected server run error")
	}
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:main_success?mode=memory&cache=shared"), &gorm.Config{})
	}
	newEVMClient = stubEVMClient
	runServer = func(*gin.Engine, string) error { return nil }

	if err := runMainProcess(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
