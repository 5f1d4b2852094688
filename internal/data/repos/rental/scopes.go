package rental

import (
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/domain/user"
)

// Visibility subqueries reference listing.host_id directly so the same scope
// works for list, detail, update and delete queries.
const (
	bookingVisibleSQL = "booking.guest_id = ? OR booking.listing_id IN (SELECT listing.id FROM listing WHERE listing.host_id = ?)"
	reviewVisibleSQL  = "review.guest_id = ? OR review.listing_id IN (SELECT listing.id FROM listing WHERE listing.host_id = ?)"
)

func noRows(q *gorm.DB) *gorm.DB { return q.Where("1 = 0") }

// bookingsVisibleTo narrows to bookings where who is the guest or the host of
// the booked listing. Anonymous callers match nothing.
func bookingsVisibleTo(who user.Identity) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if who.IsAnonymous() {
			return noRows(q)
		}
		return q.Where(bookingVisibleSQL, who.UserID, who.UserID)
	}
}

func reviewsVisibleTo(who user.Identity) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if who.IsAnonymous() {
			return noRows(q)
		}
		return q.Where(reviewVisibleSQL, who.UserID, who.UserID)
	}
}
