package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/http"
	httpH "github.com/yungbote/rentals-backend/internal/http/handlers"
	httpMW "github.com/yungbote/rentals-backend/internal/http/middleware"
	"github.com/yungbote/rentals-backend/internal/observability"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health  *httpH.HealthHandler
	Listing *httpH.ListingHandler
	Booking *httpH.BookingHandler
	Review  *httpH.ReviewHandler
	Export  *httpH.ExportHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	pages := httpH.Pagination{DefaultSize: cfg.PageSize, MaxSize: cfg.MaxPageSize}
	return Handlers{
		Health:  httpH.NewHealthHandler(db),
		Listing: httpH.NewListingHandler(log, services.Listing, pages),
		Booking: httpH.NewBookingHandler(log, services.Booking, pages),
		Review:  httpH.NewReviewHandler(log, services.Review, pages),
		Export:  httpH.NewExportHandler(log, services.Export),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Identity),
	}
}

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) http.RouterConfig {
	tracing := ""
	if cfg.Otel.Enabled {
		tracing = cfg.Otel.ServiceName
	}
	return http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		TracingService: tracing,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthMiddleware: middleware.Auth,
		ListingHandler: handlers.Listing,
		BookingHandler: handlers.Booking,
		ReviewHandler:  handlers.Review,
		ExportHandler:  handlers.Export,
		HealthHandler:  handlers.Health,
	}
}
