package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
)

// DefaultPassword is the plaintext password of every seeded user.
const DefaultPassword = "password123"

var (
	hashOnce sync.Once
	hashed   string
)

func passwordHash(tb testing.TB) string {
	tb.Helper()
	hashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		if err != nil {
			tb.Fatalf("hash password: %v", err)
		}
		hashed = string(h)
	})
	return hashed
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *user.User {
	tb.Helper()
	u := &user.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		Password:  passwordHash(tb),
		FirstName: "First",
		LastName:  "Last",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedListing(tb testing.TB, ctx context.Context, tx *gorm.DB, hostID uuid.UUID, mutate ...func(*rental.Listing)) *rental.Listing {
	tb.Helper()
	l := rental.NewListing(hostID)
	l.ID = uuid.New()
	l.Title = "Listing"
	l.Description = "A place to stay"
	l.Location = "Lisbon"
	l.Price = decimal.RequireFromString("100.00")
	l.Amenities = "WiFi, Kitchen"
	for _, fn := range mutate {
		fn(l)
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(l).Error; err != nil {
		tb.Fatalf("seed listing: %v", err)
	}
	return l
}

// SeedBooking books nights starting startOffset days from today.
func SeedBooking(tb testing.TB, ctx context.Context, tx *gorm.DB, listingID, guestID uuid.UUID, startOffset, nights int, mutate ...func(*rental.Booking)) *rental.Booking {
	tb.Helper()
	checkIn := rental.Date(time.Now().UTC().AddDate(0, 0, startOffset))
	b := &rental.Booking{
		ID:         uuid.New(),
		ListingID:  listingID,
		GuestID:    guestID,
		CheckIn:    checkIn,
		CheckOut:   rental.Date(time.Time(checkIn).AddDate(0, 0, nights)),
		TotalPrice: decimal.NewFromInt(int64(100 * nights)),
		Status:     rental.BookingPending,
	}
	for _, fn := range mutate {
		fn(b)
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		tb.Fatalf("seed booking: %v", err)
	}
	return b
}

func SeedReview(tb testing.TB, ctx context.Context, tx *gorm.DB, b *rental.Booking, rating int) *rental.Review {
	tb.Helper()
	r := &rental.Review{
		ID:        uuid.New(),
		ListingID: b.ListingID,
		GuestID:   b.GuestID,
		BookingID: b.ID,
		Rating:    rating,
		Comment:   "Great stay",
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return r
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func Ptr[T any](v T) *T { return &v }
