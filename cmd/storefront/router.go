package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dwikikusuma/storefront/internal/bootstrap"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

func newRouter(a *bootstrap.App, cfg config.Config, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Gin(log))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) {
		if err := a.Stores.Ping(c.Request.Context()); err != nil {
			log.Warn("readiness check failed", slog.Any("err", err))
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	})

	h := &handlers{app: a, log: log}
	pages := r.Group("/", withIdentity(cfg.AppEnv == "production"))
	{
		pages.GET("/", h.storefront)

		pages.GET("/cart", h.getCart)
		pages.POST("/cart/actions/:action", h.cartAction)
		pages.POST("/cart/checkout", h.goToCheckout)

		pages.GET("/checkout", h.checkout)
		pages.POST("/checkout/qty/:idx", h.checkoutQty)
		pages.POST("/checkout/submit", h.submit)
		pages.POST("/checkout/cancel", h.cancel)
		pages.POST("/checkout/acknowledge", h.acknowledge)
		pages.GET("/checkout/summary.xlsx", h.summaryXLSX)
	}
	return r
}
