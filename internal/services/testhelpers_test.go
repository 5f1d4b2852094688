package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/repos/testutil"
	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/observability"
)

type recordingBus struct {
	mu     sync.Mutex
	events []rental.BookingEvent
	err    error
}

func (b *recordingBus) Publish(_ context.Context, ev rental.BookingEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, ev)
	return nil
}

func (b *recordingBus) Subscribe(ctx context.Context, _ func(rental.BookingEvent)) error {
	<-ctx.Done()
	return nil
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) types() []rental.BookingEventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]rental.BookingEventType, 0, len(b.events))
	for _, ev := range b.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	bus      *recordingBus
	metrics  *observability.Metrics
	users    repos.UserRepo
	listings ListingService
	bookings BookingService
	reviews  ReviewService
	export   ExportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	tx := store.NewGormTxRunner(db)

	userRepo := repos.NewUserRepo(db, log)
	listingRepo := repos.NewListingRepo(db, log)
	bookingRepo := repos.NewBookingRepo(db, log)
	reviewRepo := repos.NewReviewRepo(db, log)

	bus := &recordingBus{}
	m := observability.NewMetrics()
	bookings := NewBookingService(log, tx, bookingRepo, listingRepo, bus, m)
	return &fixture{
		db:       db,
		bus:      bus,
		metrics:  m,
		users:    userRepo,
		listings: NewListingService(log, listingRepo, bookingRepo, reviewRepo),
		bookings: bookings,
		reviews:  NewReviewService(log, tx, reviewRepo, listingRepo, bookingRepo, m),
		export:   NewExportService(log, bookings),
	}
}

func identityOf(u *user.User) user.Identity {
	return user.Identity{UserID: u.ID, Username: u.Username}
}
