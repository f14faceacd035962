package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Blockchain BlockchainConfig
	Mirror     MirrorConfig
	Market     MarketConfig
	Security   SecurityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BlockchainConfig holds the chain connection and the custodial signer
type BlockchainConfig struct {
	RPCURL           string
	ChainID          int64
	MarketAddress    string
	SignerPrivateKey string
	ReceiptTimeout   time.Duration
}

// MirrorConfig holds the backend mirror connection
type MirrorConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// MarketConfig selects the ad listing data source
type MarketConfig struct {
	// DataSource is "chain" or "mirror"
	DataSource string
	// JournalMaxPendingAge is how long a pending journal row may sit before
	// the sweeper abandons it
	JournalMaxPendingAge time.Duration
}

// SecurityConfig holds service-to-service credentials
type SecurityConfig struct {
	APIKeyHash string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "swap24"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Blockchain: BlockchainConfig{
			RPCURL:           getEnv("SEPOLIA_RPC_URL", "https://rpc.sepolia.org"),
			ChainID:          int64(getEnvAsInt("CHAIN_ID", 11155111)),
			MarketAddress:    getEnv("MARKET_CONTRACT_ADDRESS", "0x7b66522d365e4c906b89d2263d37c2c306264f89"),
			SignerPrivateKey: getEnv("SIGNER_PRIVATE_KEY", ""),
			ReceiptTimeout:   getEnvAsDuration("RECEIPT_TIMEOUT", 2*time.Minute),
		},
		Mirror: MirrorConfig{
			BaseURL: getEnv("MIRROR_BASE_URL", "http://localhost:9090"),
			APIKey:  getEnv("MIRROR_API_KEY", ""),
			Timeout: getEnvAsDuration("MIRROR_TIMEOUT", 10*time.Second),
		},
		Market: MarketConfig{
			DataSource:           getEnv("MARKET_DATA_SOURCE", "chain"),
			JournalMaxPendingAge: getEnvAsDuration("JOURNAL_MAX_PENDING_AGE", time.Hour),
		},
		Security: SecurityConfig{
			APIKeyHash: getEnv("API_KEY_HASH", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
