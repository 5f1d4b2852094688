package rental

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	domain "github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type ListingRepo interface {
	Create(dbc dbctx.Context, l *domain.Listing) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Listing, error)
	List(dbc dbctx.Context, f ListingFilter, p Page) ([]*domain.Listing, int64, error)
	Update(dbc dbctx.Context, l *domain.Listing) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteAll(dbc dbctx.Context) (int64, error)
}

type listingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewListingRepo(db *gorm.DB, baseLog *logger.Logger) ListingRepo {
	return &listingRepo{db: db, log: baseLog.With("repo", "ListingRepo")}
}

// listingColumns are the client-writable columns.
var listingColumns = []string{
	"title", "description", "price", "location", "property_type",
	"bedrooms", "bathrooms", "max_guests", "amenities", "is_available",
}

const averageRatingSQL = "(SELECT COALESCE(AVG(review.rating), 0) FROM review WHERE review.listing_id = listing.id)"

func withListingDetail(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Host").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("review.created_at DESC").Order("review.id")
		}).
		Preload("Reviews.Guest")
}

func (r *listingRepo) Create(dbc dbctx.Context, l *domain.Listing) error {
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(l).Error; err != nil {
		return store.MapError("listing.create", err)
	}
	return nil
}

func (r *listingRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Listing, error) {
	var l domain.Listing
	err := withListingDetail(dbc.DB(r.db)).Where("listing.id = ?", id).First(&l).Error
	if err != nil {
		return nil, store.MapError("listing.get", err)
	}
	return &l, nil
}

func (r *listingRepo) filtered(dbc dbctx.Context, f ListingFilter) *gorm.DB {
	q := dbc.DB(r.db).Model(&domain.Listing{})
	if f.PropertyType != nil {
		q = q.Where("listing.property_type = ?", *f.PropertyType)
	}
	if f.IsAvailable != nil {
		q = q.Where("listing.is_available = ?", *f.IsAvailable)
	}
	if f.Bedrooms != nil {
		q = q.Where("listing.bedrooms = ?", *f.Bedrooms)
	}
	if f.Bathrooms != nil {
		q = q.Where("listing.bathrooms = ?", *f.Bathrooms)
	}
	if f.HostID != nil {
		q = q.Where("listing.host_id = ?", *f.HostID)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(
			`LOWER(listing.title) LIKE ? ESCAPE '\' OR LOWER(listing.description) LIKE ? ESCAPE '\' OR LOWER(listing.location) LIKE ? ESCAPE '\' OR LOWER(listing.amenities) LIKE ? ESCAPE '\'`,
			p, p, p, p,
		)
	}
	return q
}

func (r *listingRepo) List(dbc dbctx.Context, f ListingFilter, p Page) ([]*domain.Listing, int64, error) {
	var total int64
	if err := r.filtered(dbc, f).Count(&total).Error; err != nil {
		return nil, 0, store.MapError("listing.count", err)
	}
	var out []*domain.Listing
	q := applyOrdering(r.filtered(dbc, f), "listing", f.Ordering, map[string]string{
		"average_rating": averageRatingSQL,
	})
	if err := withListingDetail(applyPage(q, p)).Find(&out).Error; err != nil {
		return nil, 0, store.MapError("listing.list", err)
	}
	return out, total, nil
}

func (r *listingRepo) Update(dbc dbctx.Context, l *domain.Listing) error {
	res := dbc.DB(r.db).Model(l).Select(listingColumns).Updates(l)
	if res.Error != nil {
		return store.MapError("listing.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("listing.update", "Not found.")
	}
	return nil
}

// Delete removes the listing along with its bookings and every review that
// hangs off the listing or one of those bookings.
func (r *listingRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.DB(r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"listing_id = ? OR booking_id IN (SELECT booking.id FROM booking WHERE booking.listing_id = ?)", id, id,
		).Delete(&domain.Review{}).Error; err != nil {
			return store.MapError("listing.delete.reviews", err)
		}
		if err := tx.Where("listing_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
			return store.MapError("listing.delete.bookings", err)
		}
		res := tx.Where("id = ?", id).Delete(&domain.Listing{})
		if res.Error != nil {
			return store.MapError("listing.delete", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("listing.delete", "Not found.")
		}
		return nil
	})
}

func (r *listingRepo) DeleteAll(dbc dbctx.Context) (int64, error) {
	res := dbc.DB(r.db).Where("1 = 1").Delete(&domain.Listing{})
	if res.Error != nil {
		return 0, store.MapError("listing.delete_all", res.Error)
	}
	return res.RowsAffected, nil
}
