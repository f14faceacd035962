package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swap24.backend/internal/interfaces/http/handlers"
	"swap24.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	adHandler      *handlers.AdHandler
	tokenHandler   *handlers.TokenHandler
	journalHandler *handlers.JournalHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Ad routes: reads are public, writes require auth and carry
		// idempotency protection because each write submits a transaction.
		ads := v1.Group("/ads")
		{
			ads.GET("", d.adHandler.ListAds)
			ads.GET("/mine", d.authMiddleware, d.adHandler.ListMyAds)
			ads.POST("", d.authMiddleware, middleware.IdempotencyMiddleware(), d.adHandler.CreateAd)
			ads.POST("/:id/cancel", d.authMiddleware, middleware.IdempotencyMiddleware(), d.adHandler.CancelAd)
		}

		// Quote routes (public)
		v1.POST("/quotes", d.adHandler.Quote)

		// Receipt wait routes (protected)
		waits := v1.Group("/waits")
		waits.Use(d.authMiddleware)
		{
			waits.POST("/:txHash/abandon", d.adHandler.AbandonWait)
		}

		// Token routes (public)
		tokens := v1.Group("/tokens")
		{
			tokens.GET("", d.tokenHandler.ListTokens)
		}

		// Journal routes (protected)
		journal := v1.Group("/journal")
		journal.Use(d.authMiddleware)
		{
			journal.GET("", d.journalHandler.ListJournal)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "swap24-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key, X-Wallet-Address, X-Request-ID, Idempotency-Key")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
