package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/observability"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

const (
	msgReviewTupleUnique    = "The fields listing, guest, booking must make a unique set."
	msgBookingNotForListing = "Booking does not belong to this listing."
)

type ReviewFields struct {
	ListingID *uuid.UUID
	BookingID *uuid.UUID
	Rating    *int
	Comment   *string
}

type ReviewService interface {
	List(ctx context.Context, who user.Identity, f repos.ReviewFilter, p repos.Page) ([]*rental.Review, int64, error)
	Get(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Review, error)
	Create(ctx context.Context, who user.Identity, in ReviewFields) (*rental.Review, error)
	// Update changes rating and comment only; listing, booking and guest are
	// fixed at creation.
	Update(ctx context.Context, who user.Identity, id uuid.UUID, in ReviewFields) (*rental.Review, error)
	Delete(ctx context.Context, who user.Identity, id uuid.UUID) error
}

type reviewService struct {
	log      *logger.Logger
	tx       store.TxRunner
	reviews  repos.ReviewRepo
	listings repos.ListingRepo
	bookings repos.BookingRepo
	metrics  *observability.Metrics
}

func NewReviewService(
	log *logger.Logger,
	tx store.TxRunner,
	reviews repos.ReviewRepo,
	listings repos.ListingRepo,
	bookings repos.BookingRepo,
	metrics *observability.Metrics,
) ReviewService {
	return &reviewService{
		log:      log.With("service", "ReviewService"),
		tx:       tx,
		reviews:  reviews,
		listings: listings,
		bookings: bookings,
		metrics:  metrics,
	}
}

func (s *reviewService) List(ctx context.Context, who user.Identity, f repos.ReviewFilter, p repos.Page) ([]*rental.Review, int64, error) {
	return s.reviews.List(dbctx.Context{Ctx: ctx}, who, f, p)
}

func (s *reviewService) Get(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Review, error) {
	return s.reviews.GetVisible(dbctx.Context{Ctx: ctx}, id, who)
}

func (s *reviewService) Create(ctx context.Context, who user.Identity, in ReviewFields) (*rental.Review, error) {
	const op = "review.create"
	if who.IsAnonymous() {
		return nil, errs.Unauthenticated(op, msgNotAuthenticated)
	}
	rv := &rental.Review{GuestID: who.UserID}
	if in.ListingID != nil {
		rv.ListingID = *in.ListingID
	}
	if in.BookingID != nil {
		rv.BookingID = *in.BookingID
	}
	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = *in.Comment
	}
	if err := rv.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.listings.GetByID(dbc, rv.ListingID); err != nil {
			if errs.IsCode(err, errs.CodeNotFound) {
				return errs.Validation(op, "listing", fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", rv.ListingID))
			}
			return err
		}
		b, err := s.bookings.GetByID(dbc, rv.BookingID)
		if err != nil {
			if errs.IsCode(err, errs.CodeNotFound) {
				return errs.Validation(op, "booking", fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", rv.BookingID))
			}
			return err
		}
		if b.ListingID != rv.ListingID {
			return errs.Validation(op, "booking", msgBookingNotForListing)
		}
		exists, err := s.reviews.Exists(dbc, rv.ListingID, rv.GuestID, rv.BookingID, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return errs.Conflict(op, msgReviewTupleUnique)
		}
		return s.reviews.Create(dbc, rv)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncReviewCreated()
	s.log.Info("review created", "review_id", rv.ID, "listing_id", rv.ListingID, "guest_id", who.UserID)
	return s.reviews.GetVisible(dbctx.Context{Ctx: ctx}, rv.ID, who)
}

func (s *reviewService) Update(ctx context.Context, who user.Identity, id uuid.UUID, in ReviewFields) (*rental.Review, error) {
	const op = "review.update"
	if who.IsAnonymous() {
		return nil, errs.Unauthenticated(op, msgNotAuthenticated)
	}
	dbc := dbctx.Context{Ctx: ctx}
	rv, err := s.reviews.GetVisible(dbc, id, who)
	if err != nil {
		return nil, err
	}
	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = *in.Comment
	}
	if err := rv.Validate(); err != nil {
		return nil, err
	}
	if err := s.reviews.Update(dbc, rv); err != nil {
		return nil, err
	}
	return s.reviews.GetVisible(dbc, id, who)
}

func (s *reviewService) Delete(ctx context.Context, who user.Identity, id uuid.UUID) error {
	const op = "review.delete"
	if who.IsAnonymous() {
		return errs.Unauthenticated(op, msgNotAuthenticated)
	}
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.reviews.GetVisible(dbc, id, who); err != nil {
		return err
	}
	return s.reviews.Delete(dbc, id)
}
