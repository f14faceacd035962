package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"swap24.backend/internal/domain/entities"
	"swap24.backend/pkg/crypto"
	"swap24.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// APIKeyHeader is the header key for service-to-service auth
	APIKeyHeader = "X-API-Key"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for the backend user id
	UserIDKey = "user_id"
	// WalletAddressKey is the context key for the caller's wallet address
	WalletAddressKey = "wallet_address"
)

// AuthMiddleware authenticates a request either by JWT bearer token or by
// X-API-Key checked against the configured bcrypt hash. API-key callers have
// no backend user; write paths that need a wallet read it from the
// X-Wallet-Address header in that case.
func AuthMiddleware(jwtService *jwt.JWTService, apiKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader(APIKeyHeader); apiKey != "" && apiKeyHash != "" {
			if !crypto.CheckAPIKey(apiKey, apiKeyHash) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid API key",
				})
				return
			}
			c.Set(WalletAddressKey, c.GetHeader("X-Wallet-Address"))
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(WalletAddressKey, claims.WalletAddress)

		c.Next()
	}
}

// GetIdentity assembles the caller identity set by AuthMiddleware.
func GetIdentity(c *gin.Context) entities.Identity {
	return entities.Identity{
		UserID:        c.GetString(UserIDKey),
		WalletAddress: c.GetString(WalletAddressKey),
	}
}
