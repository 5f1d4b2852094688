package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/data/repos/rental"
	"github.com/yungbote/rentals-backend/internal/data/repos/user"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type ListingRepo = rental.ListingRepo
type BookingRepo = rental.BookingRepo
type ReviewRepo = rental.ReviewRepo

type Page = rental.Page
type Order = rental.Order
type ListingFilter = rental.ListingFilter
type BookingFilter = rental.BookingFilter
type ReviewFilter = rental.ReviewFilter

var (
	ParseOrdering      = rental.ParseOrdering
	ListingOrderFields = rental.ListingOrderFields
	BookingOrderFields = rental.BookingOrderFields
	ReviewOrderFields  = rental.ReviewOrderFields
)

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }

func NewListingRepo(db *gorm.DB, log *logger.Logger) ListingRepo {
	return rental.NewListingRepo(db, log)
}

func NewBookingRepo(db *gorm.DB, log *logger.Logger) BookingRepo {
	return rental.NewBookingRepo(db, log)
}

func NewReviewRepo(db *gorm.DB, log *logger.Logger) ReviewRepo {
	return rental.NewReviewRepo(db, log)
}
