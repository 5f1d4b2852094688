package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

const msgPermissionDenied = "You do not have permission to perform this action."

// ListingFields carries client-writable listing fields. Nil fields are left
// untouched (or at their defaults on create).
type ListingFields struct {
	Title        *string
	Description  *string
	Price        *decimal.Decimal
	Location     *string
	PropertyType *rental.PropertyType
	Bedrooms     *int
	Bathrooms    *int
	MaxGuests    *int
	Amenities    *string
	IsAvailable  *bool
}

func (f ListingFields) apply(l *rental.Listing) {
	if f.Title != nil {
		l.Title = *f.Title
	}
	if f.Description != nil {
		l.Description = *f.Description
	}
	if f.Price != nil {
		l.Price = *f.Price
	}
	if f.Location != nil {
		l.Location = *f.Location
	}
	if f.PropertyType != nil {
		l.PropertyType = *f.PropertyType
	}
	if f.Bedrooms != nil {
		l.Bedrooms = *f.Bedrooms
	}
	if f.Bathrooms != nil {
		l.Bathrooms = *f.Bathrooms
	}
	if f.MaxGuests != nil {
		l.MaxGuests = *f.MaxGuests
	}
	if f.Amenities != nil {
		l.Amenities = *f.Amenities
	}
	if f.IsAvailable != nil {
		l.IsAvailable = *f.IsAvailable
	}
}

type ListingService interface {
	List(ctx context.Context, f repos.ListingFilter, p repos.Page) ([]*rental.Listing, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*rental.Listing, error)
	Create(ctx context.Context, who user.Identity, in ListingFields) (*rental.Listing, error)
	Update(ctx context.Context, who user.Identity, id uuid.UUID, in ListingFields) (*rental.Listing, error)
	Delete(ctx context.Context, who user.Identity, id uuid.UUID) error
	// ListBookings returns the listing's bookings that who may see.
	ListBookings(ctx context.Context, who user.Identity, id uuid.UUID, p repos.Page) ([]*rental.Booking, int64, error)
	ListReviews(ctx context.Context, id uuid.UUID, p repos.Page) ([]*rental.Review, int64, error)
}

type listingService struct {
	log      *logger.Logger
	listings repos.ListingRepo
	bookings repos.BookingRepo
	reviews  repos.ReviewRepo
}

func NewListingService(log *logger.Logger, listings repos.ListingRepo, bookings repos.BookingRepo, reviews repos.ReviewRepo) ListingService {
	return &listingService{
		log:      log.With("service", "ListingService"),
		listings: listings,
		bookings: bookings,
		reviews:  reviews,
	}
}

func (s *listingService) List(ctx context.Context, f repos.ListingFilter, p repos.Page) ([]*rental.Listing, int64, error) {
	return s.listings.List(dbctx.Context{Ctx: ctx}, f, p)
}

func (s *listingService) Get(ctx context.Context, id uuid.UUID) (*rental.Listing, error) {
	return s.listings.GetByID(dbctx.Context{Ctx: ctx}, id)
}

func (s *listingService) Create(ctx context.Context, who user.Identity, in ListingFields) (*rental.Listing, error) {
	const op = "listing.create"
	if who.IsAnonymous() {
		return nil, errs.Unauthenticated(op, msgNotAuthenticated)
	}
	l := rental.NewListing(who.UserID)
	in.apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if err := s.listings.Create(dbc, l); err != nil {
		return nil, err
	}
	s.log.Info("listing created", "listing_id", l.ID, "host_id", who.UserID)
	return s.listings.GetByID(dbc, l.ID)
}

func (s *listingService) Update(ctx context.Context, who user.Identity, id uuid.UUID, in ListingFields) (*rental.Listing, error) {
	const op = "listing.update"
	if who.IsAnonymous() {
		return nil, errs.Unauthenticated(op, msgNotAuthenticated)
	}
	dbc := dbctx.Context{Ctx: ctx}
	l, err := s.listings.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if !rental.OwnsListing(l, who) {
		return nil, errs.Forbidden(op, msgPermissionDenied)
	}
	in.apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.listings.Update(dbc, l); err != nil {
		return nil, err
	}
	return s.listings.GetByID(dbc, id)
}

func (s *listingService) Delete(ctx context.Context, who user.Identity, id uuid.UUID) error {
	const op = "listing.delete"
	if who.IsAnonymous() {
		return errs.Unauthenticated(op, msgNotAuthenticated)
	}
	dbc := dbctx.Context{Ctx: ctx}
	l, err := s.listings.GetByID(dbc, id)
	if err != nil {
		return err
	}
	if !rental.OwnsListing(l, who) {
		return errs.Forbidden(op, msgPermissionDenied)
	}
	if err := s.listings.Delete(dbc, id); err != nil {
		return err
	}
	s.log.Info("listing deleted", "listing_id", id, "host_id", who.UserID)
	return nil
}

func (s *listingService) ListBookings(ctx context.Context, who user.Identity, id uuid.UUID, p repos.Page) ([]*rental.Booking, int64, error) {
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.listings.GetByID(dbc, id); err != nil {
		return nil, 0, err
	}
	return s.bookings.List(dbc, who, repos.BookingFilter{ListingID: &id}, p)
}

func (s *listingService) ListReviews(ctx context.Context, id uuid.UUID, p repos.Page) ([]*rental.Review, int64, error) {
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := s.listings.GetByID(dbc, id); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListForListing(dbc, id, p)
}
