package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/observability"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
	"github.com/yungbote/rentals-backend/internal/services"
)

type Services struct {
	Identity services.IdentityService
	Listing  services.ListingService
	Booking  services.BookingService
	Review   services.ReviewService
	Export   services.ExportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	tx := store.NewGormTxRunner(db)

	identity := services.NewIdentityService(log, reposet.User, cfg.JWTSecretKey, cfg.AuthCacheTTL)
	listing := services.NewListingService(log, reposet.Listing, reposet.Booking, reposet.Review)
	booking := services.NewBookingService(log, tx, reposet.Booking, reposet.Listing, clients.BookingEvents, metrics)
	review := services.NewReviewService(log, tx, reposet.Review, reposet.Listing, reposet.Booking, metrics)

	return Services{
		Identity: identity,
		Listing:  listing,
		Booking:  booking,
		Review:   review,
		Export:   services.NewExportService(log, booking),
	}
}
