package rental

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	domain "github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type BookingRepo interface {
	Create(dbc dbctx.Context, b *domain.Booking) error
	// GetByID loads a booking regardless of who is asking.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Booking, error)
	// GetVisible loads a booking only when who may see it; otherwise not_found.
	GetVisible(dbc dbctx.Context, id uuid.UUID, who user.Identity) (*domain.Booking, error)
	List(dbc dbctx.Context, who user.Identity, f BookingFilter, p Page) ([]*domain.Booking, int64, error)
	RangeTaken(dbc dbctx.Context, listingID uuid.UUID, checkIn, checkOut datatypes.Date, excludeID uuid.UUID) (bool, error)
	Update(dbc dbctx.Context, b *domain.Booking) error
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status domain.BookingStatus) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteAll(dbc dbctx.Context) (int64, error)
}

type bookingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookingRepo(db *gorm.DB, baseLog *logger.Logger) BookingRepo {
	return &bookingRepo{db: db, log: baseLog.With("repo", "BookingRepo")}
}

var bookingColumns = []string{
	"listing_id", "check_in", "check_out", "total_price", "status", "special_requests",
}

func withBookingDetail(q *gorm.DB) *gorm.DB {
	return q.Preload("Listing").Preload("Listing.Host").Preload("Guest")
}

func (r *bookingRepo) Create(dbc dbctx.Context, b *domain.Booking) error {
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(b).Error; err != nil {
		return store.MapError("booking.create", err)
	}
	return nil
}

func (r *bookingRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	if err := withBookingDetail(dbc.DB(r.db)).Where("booking.id = ?", id).First(&b).Error; err != nil {
		return nil, store.MapError("booking.get", err)
	}
	return &b, nil
}

func (r *bookingRepo) GetVisible(dbc dbctx.Context, id uuid.UUID, who user.Identity) (*domain.Booking, error) {
	var b domain.Booking
	err := withBookingDetail(dbc.DB(r.db)).
		Scopes(bookingsVisibleTo(who)).
		Where("booking.id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, store.MapError("booking.get", err)
	}
	return &b, nil
}

func (r *bookingRepo) filtered(dbc dbctx.Context, who user.Identity, f BookingFilter) *gorm.DB {
	q := dbc.DB(r.db).Model(&domain.Booking{}).Scopes(bookingsVisibleTo(who))
	if f.Status != nil {
		q = q.Where("booking.status = ?", *f.Status)
	}
	if f.GuestID != nil {
		q = q.Where("booking.guest_id = ?", *f.GuestID)
	}
	if f.ListingID != nil {
		q = q.Where("booking.listing_id = ?", *f.ListingID)
	}
	if f.CheckIn != nil {
		q = q.Where("booking.check_in = ?", *f.CheckIn)
	}
	if f.CheckOut != nil {
		q = q.Where("booking.check_out = ?", *f.CheckOut)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(
			`LOWER(booking.special_requests) LIKE ? ESCAPE '\' OR booking.listing_id IN (SELECT listing.id FROM listing WHERE LOWER(listing.title) LIKE ? ESCAPE '\' OR LOWER(listing.location) LIKE ? ESCAPE '\')`,
			p, p, p,
		)
	}
	return q
}

func (r *bookingRepo) List(dbc dbctx.Context, who user.Identity, f BookingFilter, p Page) ([]*domain.Booking, int64, error) {
	if who.IsAnonymous() {
		return []*domain.Booking{}, 0, nil
	}
	var total int64
	if err := r.filtered(dbc, who, f).Count(&total).Error; err != nil {
		return nil, 0, store.MapError("booking.count", err)
	}
	out := []*domain.Booking{}
	q := applyOrdering(r.filtered(dbc, who, f), "booking", f.Ordering, nil)
	if err := withBookingDetail(applyPage(q, p)).Find(&out).Error; err != nil {
		return nil, 0, store.MapError("booking.list", err)
	}
	return out, total, nil
}

func (r *bookingRepo) RangeTaken(dbc dbctx.Context, listingID uuid.UUID, checkIn, checkOut datatypes.Date, excludeID uuid.UUID) (bool, error) {
	q := dbc.DB(r.db).Model(&domain.Booking{}).
		Where("listing_id = ? AND check_in = ? AND check_out = ?", listingID, checkIn, checkOut)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, store.MapError("booking.range_taken", err)
	}
	return count > 0, nil
}

func (r *bookingRepo) Update(dbc dbctx.Context, b *domain.Booking) error {
	res := dbc.DB(r.db).Model(b).Select(bookingColumns).Updates(b)
	if res.Error != nil {
		return store.MapError("booking.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("booking.update", "Not found.")
	}
	return nil
}

func (r *bookingRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status domain.BookingStatus) error {
	res := dbc.DB(r.db).Model(&domain.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return store.MapError("booking.update_status", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("booking.update_status", "Not found.")
	}
	return nil
}

// Delete removes the booking and its reviews.
func (r *bookingRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&domain.Review{}).Error; err != nil {
			return store.MapError("booking.delete.reviews", err)
		}
		res := tx.Where("id = ?", id).Delete(&domain.Booking{})
		if res.Error != nil {
			return store.MapError("booking.delete", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("booking.delete", "Not found.")
		}
		return nil
	})
}

func (r *bookingRepo) DeleteAll(dbc dbctx.Context) (int64, error) {
	res := dbc.DB(r.db).Where("1 = 1").Delete(&domain.Booking{})
	if res.Error != nil {
		return 0, store.MapError("booking.delete_all", res.Error)
	}
	return res.RowsAffected, nil
}
