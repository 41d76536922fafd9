package http

import (
	"github.com/aq2208/oms-api/internal/adapter/http/middleware"
	"github.com/aq2208/oms-api/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(ch *CustomerHandler, ph *ProductHandler, oh *OrderHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Info("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/customers", ch.List)
		v1.POST("/customers", ch.Create)
		v1.GET("/customers/:id", ch.Get)
		v1.PUT("/customers/:id", ch.Update)
		v1.DELETE("/customers/:id", ch.Delete)

		v1.GET("/products", ph.List)
		v1.POST("/products", ph.Create)
		v1.GET("/products/:id", ph.Get)
		v1.PUT("/products/:id", ph.Update)
		v1.DELETE("/products/:id", ph.Delete)

		v1.GET("/orders", oh.List)
		v1.POST("/orders", oh.Create)
		v1.GET("/orders/:id", oh.Get)
		v1.PUT("/orders/:id", oh.Update)
		v1.PATCH("/orders/:id", oh.Update) // both verbs take partial bodies
		v1.DELETE("/orders/:id", oh.Delete)
	}

	return r
}
