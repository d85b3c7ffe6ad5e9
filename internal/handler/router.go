package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-leave-gateway/internal/middleware"
	"github.com/noah-isme/sma-leave-gateway/internal/service"
	"github.com/noah-isme/sma-leave-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-leave-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-leave-gateway/pkg/middleware/requestid"
)

// RouterOptions carries everything the HTTP surface needs.
type RouterOptions struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Descriptors    *service.DescriptorService
	Leave          *service.LeaveService
	Redirects      *service.RedirectService
}

// NewRouter assembles the gin engine.
func NewRouter(opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics, "/metrics"))

	metricsHandler := NewMetricsHandler(opts.Metrics, opts.Descriptors.APIBase())
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	api.Use(middleware.BearerToken())
	api.GET("/descriptors/requests", NewDescriptorHandler(opts.Descriptors).ListRequests)
	api.GET("/leave/requests", NewLeaveHandler(opts.Leave).List)
	api.GET("/auth/redirect", NewAuthHandler(opts.Redirects).Redirect)

	return r
}
