package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/rentals-backend/internal/http/handlers"
	httpMW "github.com/yungbote/rentals-backend/internal/http/middleware"
	"github.com/yungbote/rentals-backend/internal/observability"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	TracingService string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	ListingHandler *httpH.ListingHandler
	BookingHandler *httpH.BookingHandler
	ReviewHandler  *httpH.ReviewHandler
	ExportHandler  *httpH.ExportHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, "/metrics", "/healthcheck"))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	// Reads are open; writes need an authenticated caller.
	writes := func(c *gin.Context) { c.Next() }
	requireAuth := func(c *gin.Context) { c.Next() }
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.Authenticate())
		writes = cfg.AuthMiddleware.RequireAuthFor(http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete)
		requireAuth = cfg.AuthMiddleware.RequireAuth()
	}
	api.Use(writes)

	// Listings
	if h := cfg.ListingHandler; h != nil {
		api.GET("/listings/", h.List)
		api.POST("/listings/", h.Create)
		api.GET("/listings/:id/", h.Get)
		api.PUT("/listings/:id/", h.Update)
		api.PATCH("/listings/:id/", h.Update)
		api.DELETE("/listings/:id/", h.Delete)
		api.GET("/listings/:id/bookings/", h.Bookings)
		api.GET("/listings/:id/reviews/", h.Reviews)
	}

	// Bookings
	if h := cfg.BookingHandler; h != nil {
		api.GET("/bookings/", h.List)
		api.POST("/bookings/", h.Create)
		api.GET("/bookings/:id/", h.Get)
		api.PUT("/bookings/:id/", h.Update)
		api.PATCH("/bookings/:id/", h.Update)
		api.DELETE("/bookings/:id/", h.Delete)
		api.PATCH("/bookings/:id/confirm/", h.Confirm)
		api.PATCH("/bookings/:id/cancel/", h.Cancel)
	}

	// Reviews
	if h := cfg.ReviewHandler; h != nil {
		api.GET("/reviews/", h.List)
		api.POST("/reviews/", h.Create)
		api.GET("/reviews/:id/", h.Get)
		api.PUT("/reviews/:id/", h.Update)
		api.PATCH("/reviews/:id/", h.Update)
		api.DELETE("/reviews/:id/", h.Delete)
	}

	// Exports
	if h := cfg.ExportHandler; h != nil {
		api.GET("/exports/bookings.xlsx", requireAuth, h.Bookings)
	}

	return r
}
