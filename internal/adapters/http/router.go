package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chandrasingh0914/mersiv-backend/internal/adapters/socket"
	"github.com/chandrasingh0914/mersiv-backend/internal/config"
)

// SetupRouter wires the REST API, the health endpoints and the websocket
// entry point onto one gin engine.
func SetupRouter(ctx context.Context, cfg *config.Config, stores Catalog, sock *socket.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "mersiv Backend API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	h := &StoreHandlers{Stores: stores}

	api := r.Group("/api")
	api.GET("/stores", h.ListStores)
	api.POST("/stores", h.CreateStore)
	api.GET("/stores/:id", h.GetStore)
	api.PUT("/stores/:id", h.UpdateStore)
	api.PATCH("/stores/:id", h.UpdateModelPosition)
	api.DELETE("/stores/:id", h.DeleteStore)
	api.GET("/widget/config", h.WidgetConfig)

	r.GET("/ws", func(c *gin.Context) {
		sock.Handle(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Bool("allow_all_origins", cfg.AllowAllOrigins).Msg("router setup")
	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cc.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cc.AllowCredentials = true
	if cfg.AllowAllOrigins {
		cc.AllowAllOrigins = true
		cc.AllowCredentials = false
	} else {
		cc.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	}
	return cc
}
