package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	r.GET("/", handler.GetIndex)
	r.GET("/health", handler.GetHealth)
	r.GET("/news", handler.GetNews)
	r.GET("/news/rss", handler.GetNewsRSS)
	r.POST("/login", handler.PostLogin)

	api := r.Group("/api")
	if apiAccessKey != "" {
		api.Use(authMiddleware(apiAccessKey))
		slog.Info("API endpoints require authentication")
	} else {
		slog.Warn("API endpoints are open (API_ACCESS_KEY not set)")
	}
	{
		api.POST("/import/guiones", handler.APIImportScripts)
		api.POST("/import/news", handler.APIImportNews)
		api.POST("/import/users", handler.APIImportUsers)
		api.POST("/import/catalog", handler.APIImportCatalog)
		api.POST("/import/fichas", handler.APIImportFichas)

		api.GET("/programs", handler.APIListPrograms)
		api.GET("/programs/:slug/guiones", handler.APIListScripts)
		api.POST("/programs/:slug/guiones", handler.APIAddScript)
		api.DELETE("/programs/:slug/guiones", handler.APIClearProgram)
		api.PUT("/programs/:slug/guiones/:id", handler.APIUpdateScript)
		api.DELETE("/programs/:slug/guiones/:id", handler.APIDeleteScript)
		api.POST("/programs/:slug/pulir", handler.APIPulir)

		api.GET("/search", handler.APISearch)
		api.GET("/search/history", handler.APISearchHistory)

		api.POST("/news", handler.APIAddNews)
		api.DELETE("/news/:id", handler.APIDeleteNews)

		api.GET("/users", handler.APIListUsers)
		api.POST("/users", handler.APIAddUser)
		api.DELETE("/users/:username", handler.APIDeleteUser)

		api.GET("/catalog", handler.APIGetCatalog)
		api.GET("/rate", handler.APIGetRate)
		api.GET("/fichas", handler.APIListFichas)

		api.POST("/worklogs/toggle", handler.APIToggleWorkLog)
		api.GET("/worklogs", handler.APIWorkLogSummary)
		api.GET("/worklogs/:userId", handler.APIUserWorkLogs)
		api.GET("/payment-config/:username", handler.APIGetPaymentConfig)
		api.PUT("/payment-config/:username", handler.APIPutPaymentConfig)

		api.GET("/reports/:kind", handler.APIReport)

		api.GET("/backup", handler.APIDownloadBackup)
		api.POST("/backup/restore", handler.APIRestoreBackup)
		api.POST("/backup/sync", handler.APISyncBackup)
	}

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
