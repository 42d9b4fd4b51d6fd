package server

import (
	"time"

	"github.com/danmuck/eppwire/internal/config"
	"github.com/danmuck/eppwire/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Gateway exposes the EPP codec over HTTP: XML in, JSON out and back.
type Gateway struct {
	Name     string    `json:"name"`
	Addr     string    `json:"addr"`
	Validate bool      `json:"validate"`
	Appeared time.Time `json:"appeared"`

	router *gin.Engine
}

func New(cfg config.GatewayConfig) *Gateway {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetrics(cfg.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Gateway{
		Name:     cfg.Name,
		Addr:     cfg.Addr,
		Validate: cfg.Validate,
		Appeared: time.Now(),
		router:   r,
	}
}

func (g *Gateway) HTTPRouter() *gin.Engine {
	return g.router
}

func (g *Gateway) Serve() error {
	g.RegisterRoutes()
	log.Info().Str("gateway", g.Name).Str("addr", g.Addr).Msg("codec gateway listening")
	return g.router.Run(g.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
