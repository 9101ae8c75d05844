package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tansancola/sceneswitcher/internal/app/infrastructure/config"
	"github.com/tansancola/sceneswitcher/pkg/logger"
)

type Router struct {
	router *gin.Engine

	log       logger.Logger
	manager   *config.Manager
	startedAt time.Time
}

func NewRouter(log logger.Logger, manager *config.Manager) *Router {
	r := &Router{
		router:    gin.New(),
		log:       log,
		manager:   manager,
		startedAt: time.Now(),
	}
	r.router.Use(gin.Recovery())

	cfg := manager.Get()
	metricsHandlers := []gin.HandlerFunc{gin.WrapH(promhttp.Handler())}
	if cfg.App.AuthToken != "" {
		metricsHandlers = append([]gin.HandlerFunc{gin.BasicAuth(gin.Accounts{
			"admin": cfg.App.AuthToken,
		})}, metricsHandlers...)
	}

	r.router.GET("/metrics", metricsHandlers...)
	r.router.GET("/status", r.statusHandler)

	return r
}

func (r *Router) Run(addr string) error {
	return r.newServer(addr, r.router).ListenAndServe()
}

func (r *Router) newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
