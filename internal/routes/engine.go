package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
)

// NewEngine builds the gin engine with the global middleware. Forwarding
// headers are honoured only from cfg.TrustedProxies; with none configured
// the client IP is the peer address.
func NewEngine(cfg *config.Config, log *logger.Logger) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	return r, nil
}
