package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mfigueroa/agendx/internal/storage"
)

// NewRouter wires the REST API. The routes mirror what the REST gateway
// client expects, so one agendx instance can host records for another.
func NewRouter(gateway storage.Gateway, corsOrigins []string) *gin.Engine {
	handler := NewHandler(gateway)

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), cors(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	events := api.Group("/events")
	events.GET("", handler.ListEvents)
	events.POST("", handler.CreateEvent)
	events.GET("/:id", handler.GetEvent)
	events.PUT("/:id", handler.UpdateEvent)
	events.DELETE("/:id", handler.DeleteEvent)

	sessions := api.Group("/sessions")
	sessions.GET("", handler.ListSessions)
	sessions.POST("", handler.CreateSession)
	sessions.PUT("/:id", handler.UpdateSession)
	sessions.DELETE("/:id", handler.DeleteSession)

	return engine
}

func cors(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed["*"]; ok {
				c.Header("Access-Control-Allow-Origin", "*")
			} else if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
		}

		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
