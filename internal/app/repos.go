package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type Repos struct {
	User    repos.UserRepo
	Listing repos.ListingRepo
	Booking repos.BookingRepo
	Review  repos.ReviewRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:    repos.NewUserRepo(db, log),
		Listing: repos.NewListingRepo(db, log),
		Booking: repos.NewBookingRepo(db, log),
		Review:  repos.NewReviewRepo(db, log),
	}
}
