package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	redisbus "github.com/yungbote/rentals-backend/internal/clients/redis"
	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/observability"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

const msgBookingRangeUnique = "The fields listing, check_in, check_out must make a unique set."

// BookingFields carries client-writable booking fields. The guest is never
// client-writable.
type BookingFields struct {
	ListingID       *uuid.UUID
	CheckIn         *datatypes.Date
	CheckOut        *datatypes.Date
	TotalPrice      *decimal.Decimal
	Status          *rental.BookingStatus
	SpecialRequests *string
}

func (f BookingFields) apply(b *rental.Booking) {
	if f.ListingID != nil {
		b.ListingID = *f.ListingID
	}
	if f.CheckIn != nil {
		b.CheckIn = *f.CheckIn
	}
	if f.CheckOut != nil {
		b.CheckOut = *f.CheckOut
	}
	if f.TotalPrice != nil {
		b.TotalPrice = *f.TotalPrice
	}
	if f.Status != nil {
		b.Status = *f.Status
	}
	if f.SpecialRequests != nil {
		b.SpecialRequests = *f.SpecialRequests
	}
}

type BookingService interface {
	List(ctx context.Context, who user.Identity, f repos.BookingFilter, p repos.Page) ([]*rental.Booking, int64, error)
	Get(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Booking, error)
	// Create books a listing for who; new bookings are always pending.
	Create(ctx context.Context, who user.Identity, in BookingFields) (*rental.Booking, error)
	Update(ctx context.Context, who user.Identity, id uuid.UUID, in BookingFields) (*rental.Booking, error)
	Delete(ctx context.Context, who user.Identity, id uuid.UUID) error
	Confirm(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Booking, error)
	Cancel(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Booking, error)
}

type bookingService struct {
	log      *logger.Logger
	tx       store.TxRunner
	bookings repos.BookingRepo
	listings repos.ListingRepo
	events   redisbus.BookingEventBus
	metrics  *observability.Metrics
}

func NewBookingService(
	log *logger.Logger,
	tx store.TxRunner,
	bookings repos.BookingRepo,
	listings repos.ListingRepo,
	events redisbus.BookingEventBus,
	metrics *observability.Metrics,
) BookingService {
	if events == nil {
		events = redisbus.NopBus{}
	}
	return &bookingService{
		log:      log.With("service", "BookingService"),
		tx:       tx,
		bookings: bookings,
		listings: listings,
		events:   events,
		metrics:  metrics,
	}
}

func (s *bookingService) List(ctx context.Context, who user.Identity, f repos.BookingFilter, p repos.Page) ([]*rental.Booking, int64, error) {
	return s.bookings.List(dbctx.Context{Ctx: ctx}, who, f, p)
}

func (s *bookingService) Get(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Booking, error) {
	return s.bookings.GetVisible(dbctx.Context{Ctx: ctx}, id, who)
}

func (s *bookingService) Create(ctx context.Context, who user.Identity, in BookingFields) (*rental.Booking, error) {
	const op = "booking.create"
	if who.IsAnonymous() {
		return nil, errs.Unauthenticated(op, msgNotAuthenticated)
	}
	b := &rental.Booking{GuestID: who.UserID}
	in.Status = nil
	in.apply(b)
	b.Status = rental.BookingPending
	if err := b.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if err := s.checkListing(dbc, op, b.ListingID); err != nil {
			return err
		}
		if err := s.checkRange(dbc, op, b, uuid.Nil); err != nil {
			return err
		}
		return s.bookings.Create(dbc, b)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.bookings.GetByID(dbctx.Context{Ctx: ctx}, b.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info("booking created", "booking_id", out.ID, "listing_id", out.ListingID, "guest_id", who.UserID)
	s.emit(ctx, rental.BookingEventCreated, out, who)
	return out, nil
}

func (s *bookingService) Update(ctx context.Context, who user.Identity, id uuid.UUID, in BookingFields) (*rental.Booking, error) {
	const op = "booking.update"
	if who.IsAnonymous() {
		return nil, errs.Unauthenticated(op, msgNotAuthenticated)
	}
	var prevStatus rental.BookingStatus
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		b, err := s.bookings.GetVisible(dbc, id, who)
		if err != nil {
			return err
		}
		prevListing := b.ListingID
		prevStatus = b.Status
		in.apply(b)
		if err := b.Validate(); err != nil {
			return err
		}
		if b.ListingID != prevListing {
			if err := s.checkListing(dbc, op, b.ListingID); err != nil {
				return err
			}
		}
		if err := s.checkRange(dbc, op, b, b.ID); err != nil {
			return err
		}
		return s.bookings.Update(dbc, b)
	})
	if err != nil {
		return nil, err
	}
	out, err := s.bookings.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, err
	}
	if out.Status != prevStatus {
		s.log.Info("booking status changed", "booking_id", id, "from", prevStatus, "status", out.Status, "requester_id", who.UserID)
		s.emit(ctx, rental.BookingEventStatusChanged, out, who)
	}
	return out, nil
}

func (s *bookingService) Delete(ctx context.Context, who user.Identity, id uuid.UUID) error {
	const op = "booking.delete"
	if who.IsAnonymous() {
		return errs.Unauthenticated(op, msgNotAuthenticated)
	}
	dbc := dbctx.Context{Ctx: ctx}
	b, err := s.bookings.GetVisible(dbc, id, who)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(dbc, id); err != nil {
		return err
	}
	s.log.Info("booking deleted", "booking_id", id, "requester_id", who.UserID)
	s.emit(ctx, rental.BookingEventDeleted, b, who)
	return nil
}

func (s *bookingService) Confirm(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Booking, error) {
	return s.transition(ctx, who, id, rental.Confirm, rental.BookingEventConfirmed)
}

func (s *bookingService) Cancel(ctx context.Context, who user.Identity, id uuid.UUID) (*rental.Booking, error) {
	return s.transition(ctx, who, id, rental.Cancel, rental.BookingEventCancelled)
}

// transition loads the booking without visibility scoping so that a
// non-participant gets the lifecycle's forbidden message rather than 404.
func (s *bookingService) transition(
	ctx context.Context,
	who user.Identity,
	id uuid.UUID,
	apply func(*rental.Booking, user.Identity) error,
	evType rental.BookingEventType,
) (*rental.Booking, error) {
	if who.IsAnonymous() {
		return nil, errs.Unauthenticated(string(evType), msgNotAuthenticated)
	}
	var out *rental.Booking
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		b, err := s.bookings.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if err := apply(b, who); err != nil {
			return err
		}
		if err := s.bookings.UpdateStatus(dbc, b.ID, b.Status); err != nil {
			return err
		}
		out, err = s.bookings.GetByID(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("booking status changed", "booking_id", id, "status", out.Status, "requester_id", who.UserID)
	s.emit(ctx, evType, out, who)
	return out, nil
}

func (s *bookingService) checkListing(dbc dbctx.Context, op string, listingID uuid.UUID) error {
	if _, err := s.listings.GetByID(dbc, listingID); err != nil {
		if errs.IsCode(err, errs.CodeNotFound) {
			return errs.Validation(op, "listing", fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", listingID))
		}
		return err
	}
	return nil
}

func (s *bookingService) checkRange(dbc dbctx.Context, op string, b *rental.Booking, exclude uuid.UUID) error {
	taken, err := s.bookings.RangeTaken(dbc, b.ListingID, b.CheckIn, b.CheckOut, exclude)
	if err != nil {
		return err
	}
	if taken {
		return errs.Conflict(op, msgBookingRangeUnique)
	}
	return nil
}

// emit runs after commit. Publish failures are logged and counted, never
// returned to the caller.
func (s *bookingService) emit(ctx context.Context, t rental.BookingEventType, b *rental.Booking, who user.Identity) {
	if t != rental.BookingEventDeleted {
		s.metrics.IncBookingTransition(string(b.Status))
	}
	if err := s.events.Publish(ctx, rental.NewBookingEvent(t, b, who.UserID)); err != nil {
		s.metrics.IncEventPublishFailure()
		s.log.Warn("booking event publish failed", "type", t, "booking_id", b.ID, "error", err)
	}
}
