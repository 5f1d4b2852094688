package rental

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	domain "github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type ReviewRepo interface {
	Create(dbc dbctx.Context, r *domain.Review) error
	GetVisible(dbc dbctx.Context, id uuid.UUID, who user.Identity) (*domain.Review, error)
	List(dbc dbctx.Context, who user.Identity, f ReviewFilter, p Page) ([]*domain.Review, int64, error)
	// ListForListing is the public review feed of one listing.
	ListForListing(dbc dbctx.Context, listingID uuid.UUID, p Page) ([]*domain.Review, int64, error)
	Exists(dbc dbctx.Context, listingID, guestID, bookingID, excludeID uuid.UUID) (bool, error)
	Update(dbc dbctx.Context, r *domain.Review) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteAll(dbc dbctx.Context) (int64, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func withReviewDetail(q *gorm.DB) *gorm.DB {
	return q.Preload("Guest").Preload("Listing")
}

func (r *reviewRepo) Create(dbc dbctx.Context, rv *domain.Review) error {
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(rv).Error; err != nil {
		return store.MapError("review.create", err)
	}
	return nil
}

func (r *reviewRepo) GetVisible(dbc dbctx.Context, id uuid.UUID, who user.Identity) (*domain.Review, error) {
	var rv domain.Review
	err := withReviewDetail(dbc.DB(r.db)).
		Scopes(reviewsVisibleTo(who)).
		Where("review.id = ?", id).
		First(&rv).Error
	if err != nil {
		return nil, store.MapError("review.get", err)
	}
	return &rv, nil
}

func (r *reviewRepo) filtered(dbc dbctx.Context, f ReviewFilter) *gorm.DB {
	q := dbc.DB(r.db).Model(&domain.Review{})
	if f.ListingID != nil {
		q = q.Where("review.listing_id = ?", *f.ListingID)
	}
	if f.GuestID != nil {
		q = q.Where("review.guest_id = ?", *f.GuestID)
	}
	if f.Rating != nil {
		q = q.Where("review.rating = ?", *f.Rating)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(
			`LOWER(review.comment) LIKE ? ESCAPE '\' OR review.listing_id IN (SELECT listing.id FROM listing WHERE LOWER(listing.title) LIKE ? ESCAPE '\')`,
			p, p,
		)
	}
	return q
}

func (r *reviewRepo) list(build func() *gorm.DB, f ReviewFilter, p Page, op string) ([]*domain.Review, int64, error) {
	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, store.MapError(op+".count", err)
	}
	out := []*domain.Review{}
	q := applyOrdering(build(), "review", f.Ordering, nil)
	if err := withReviewDetail(applyPage(q, p)).Find(&out).Error; err != nil {
		return nil, 0, store.MapError(op, err)
	}
	return out, total, nil
}

func (r *reviewRepo) List(dbc dbctx.Context, who user.Identity, f ReviewFilter, p Page) ([]*domain.Review, int64, error) {
	if who.IsAnonymous() {
		return []*domain.Review{}, 0, nil
	}
	return r.list(func() *gorm.DB {
		return r.filtered(dbc, f).Scopes(reviewsVisibleTo(who))
	}, f, p, "review.list")
}

func (r *reviewRepo) ListForListing(dbc dbctx.Context, listingID uuid.UUID, p Page) ([]*domain.Review, int64, error) {
	f := ReviewFilter{ListingID: &listingID}
	return r.list(func() *gorm.DB { return r.filtered(dbc, f) }, f, p, "review.list_for_listing")
}

func (r *reviewRepo) Exists(dbc dbctx.Context, listingID, guestID, bookingID, excludeID uuid.UUID) (bool, error) {
	q := dbc.DB(r.db).Model(&domain.Review{}).
		Where("listing_id = ? AND guest_id = ? AND booking_id = ?", listingID, guestID, bookingID)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, store.MapError("review.exists", err)
	}
	return count > 0, nil
}

// Update writes rating and comment; ownership columns are immutable.
func (r *reviewRepo) Update(dbc dbctx.Context, rv *domain.Review) error {
	res := dbc.DB(r.db).Model(rv).Select("rating", "comment").Updates(rv)
	if res.Error != nil {
		return store.MapError("review.update", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("review.update", "Not found.")
	}
	return nil
}

func (r *reviewRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&domain.Review{})
	if res.Error != nil {
		return store.MapError("review.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("review.delete", "Not found.")
	}
	return nil
}

func (r *reviewRepo) DeleteAll(dbc dbctx.Context) (int64, error) {
	res := dbc.DB(r.db).Where("1 = 1").Delete(&domain.Review{})
	if res.Error != nil {
		return 0, store.MapError("review.delete_all", res.Error)
	}
	return res.RowsAffected, nil
}
