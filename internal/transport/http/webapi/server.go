package webapi

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

// Service registers a group of related routes.
type Service interface {
	Start(ctx context.Context, engine *gin.Engine, apiGroup *gin.RouterGroup) error
}

// NewEngine builds the gin engine with CORS and the /api group, then
// starts every service on it.
func NewEngine(ctx context.Context, cfg *config.Config, logger *logging.Logger, services ...Service) (*gin.Engine, error) {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	apiGroup := engine.Group("/api")
	for _, service := range services {
		if err := service.Start(ctx, engine, apiGroup); err != nil {
			return nil, err
		}
	}

	logger.InfoTag("HTTP", "API routes registered")
	return engine, nil
}
