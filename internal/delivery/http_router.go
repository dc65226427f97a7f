package delivery

import (
	"time"

	"wbreports/internal/delivery/middleware"
	"wbreports/pkg/logger"
	"wbreports/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
	timeout  time.Duration
}

// timeout bounds each request and should exceed the upstream client timeout
func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, timeout time.Duration) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
		timeout:  timeout,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.timeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}

	router.Use(cors.New(config))

	router.GET("/health", r.handlers.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		reports := v1.Group("/reports")
		{
			reports.GET("/orders", r.handlers.GetOrders)
			reports.GET("/sales", r.handlers.GetSales)
			reports.GET("/keywords", r.handlers.GetKeywords)
		}
	}

	router.GET("/metrics", middleware.PrometheusHandler(r.metrics))

	return router
}
