package seed

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/repos/testutil"
	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
)

func newTestGenerator(t *testing.T, db *gorm.DB, seed int64) (*Generator, *bytes.Buffer) {
	t.Helper()
	log := testutil.Logger(t)
	var out bytes.Buffer
	g := NewGenerator(log, store.NewGormTxRunner(db), Repos{
		Users:    repos.NewUserRepo(db, log),
		Listings: repos.NewListingRepo(db, log),
		Bookings: repos.NewBookingRepo(db, log),
		Reviews:  repos.NewReviewRepo(db, log),
	}, rand.New(rand.NewSource(seed)), &out)
	g.Hash = func(p string) (string, error) { return "hashed:" + p, nil }
	g.Now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return g, &out
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestGeneratorRun(t *testing.T) {
	db := testutil.DB(t)
	g, out := newTestGenerator(t, db, 7)

	sum, err := g.Run(context.Background(), Options{Users: 10, Listings: 20})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Users != 10 || sum.Listings != 20 {
		t.Fatalf("summary: %+v", sum)
	}
	if sum.Bookings < 15 || sum.Bookings > 30 {
		t.Fatalf("bookings out of range: %d", sum.Bookings)
	}
	if got := count(t, db, &rental.Booking{}); got != int64(sum.Bookings) {
		t.Fatalf("stored bookings: got %d want %d", got, sum.Bookings)
	}

	var completed int64
	if err := db.Model(&rental.Booking{}).Where("status = ?", rental.BookingCompleted).Count(&completed).Error; err != nil {
		t.Fatalf("count completed: %v", err)
	}
	if int64(sum.Reviews) != completed/2 {
		t.Fatalf("reviews: got %d want %d", sum.Reviews, completed/2)
	}

	var listings []*rental.Listing
	if err := db.Find(&listings).Error; err != nil {
		t.Fatalf("load listings: %v", err)
	}
	prices := map[string]decimal.Decimal{}
	for _, l := range listings {
		if l.Price.LessThan(decimal.NewFromInt(50)) || l.Price.GreaterThan(decimal.NewFromInt(500)) {
			t.Fatalf("price out of range: %s", l.Price)
		}
		if l.Bedrooms < 1 || l.Bedrooms > 5 || l.Bathrooms < 1 || l.Bathrooms > 3 || l.MaxGuests < 1 || l.MaxGuests > 8 {
			t.Fatalf("room counts out of range: %+v", l)
		}
		prices[l.ID.String()] = l.Price
	}

	var bookings []*rental.Booking
	if err := db.Find(&bookings).Error; err != nil {
		t.Fatalf("load bookings: %v", err)
	}
	for _, b := range bookings {
		nights := b.Nights()
		if nights < 1 || nights > 14 {
			t.Fatalf("nights out of range: %d", nights)
		}
		want := prices[b.ListingID.String()].Mul(decimal.NewFromInt(int64(nights)))
		if !b.TotalPrice.Equal(want) {
			t.Fatalf("total price: got %s want %s", b.TotalPrice, want)
		}
	}

	var users []*user.User
	if err := db.Find(&users).Error; err != nil {
		t.Fatalf("load users: %v", err)
	}
	for _, u := range users {
		if u.Email != u.Username+"@example.com" || u.Password != "hashed:"+DefaultPassword {
			t.Fatalf("unexpected user: %+v", u)
		}
	}

	for _, line := range []string{"Creating users...", "Created 10 users.", "Created 20 listings.", "Database seeding completed successfully!"} {
		if !strings.Contains(out.String(), line) {
			t.Fatalf("progress output missing %q:\n%s", line, out.String())
		}
	}
}

func TestGeneratorClearKeepsSuperusers(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, ctx, db, "admin")
	if err := db.Model(admin).Update("is_superuser", true).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	g, _ := newTestGenerator(t, db, 1)
	if _, err := g.Run(ctx, Options{Users: 3, Listings: 4}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	g2, _ := newTestGenerator(t, db, 2)
	sum, err := g2.Run(ctx, Options{Users: 2, Listings: 1, Clear: true})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !sum.Cleared {
		t.Fatalf("expected Cleared")
	}
	if got := count(t, db, &user.User{}); got != 3 {
		t.Fatalf("users after clear: got %d want 3", got)
	}
	if got := count(t, db, &rental.Listing{}); got != 1 {
		t.Fatalf("listings after clear: got %d want 1", got)
	}
	if got := count(t, db, &rental.Review{}); got != int64(sum.Reviews) {
		t.Fatalf("reviews after clear: got %d want %d", got, sum.Reviews)
	}
}

func TestGeneratorWithoutListings(t *testing.T) {
	db := testutil.DB(t)
	g, _ := newTestGenerator(t, db, 3)
	sum, err := g.Run(context.Background(), Options{Users: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Bookings != 0 || sum.Reviews != 0 {
		t.Fatalf("expected no bookings or reviews: %+v", sum)
	}
}

func TestGeneratorRejectsBadOptions(t *testing.T) {
	db := testutil.DB(t)
	g, _ := newTestGenerator(t, db, 4)
	cases := []Options{{Users: 0, Listings: 1}, {Users: 1, Listings: -1}}
	for _, opts := range cases {
		if _, err := g.Run(context.Background(), opts); err == nil {
			t.Fatalf("expected error for %+v", opts)
		}
	}
}

func TestStatusDistribution(t *testing.T) {
	g := &Generator{rng: rand.New(rand.NewSource(42))}
	counts := map[rental.BookingStatus]int{}
	for i := 0; i < 10000; i++ {
		counts[g.status()]++
	}
	if counts[rental.BookingConfirmed] < 5500 || counts[rental.BookingConfirmed] > 6500 {
		t.Fatalf("confirmed share off: %v", counts)
	}
	if counts[rental.BookingCancelled] == 0 || counts[rental.BookingPending] == 0 || counts[rental.BookingCompleted] == 0 {
		t.Fatalf("every status should appear: %v", counts)
	}
}

func TestPriceRange(t *testing.T) {
	g := &Generator{rng: rand.New(rand.NewSource(7))}
	lo, hi := decimal.NewFromInt(50), decimal.NewFromInt(500)
	minSeen, maxSeen := hi, lo
	for i := 0; i < 50000; i++ {
		p := g.price()
		if p.LessThan(lo) || !p.LessThan(hi) {
			t.Fatalf("price out of range: %s", p)
		}
		if !p.Equal(p.Truncate(2)) {
			t.Fatalf("price has more than two decimals: %s", p)
		}
		minSeen = decimal.Min(minSeen, p)
		maxSeen = decimal.Max(maxSeen, p)
	}
	if minSeen.GreaterThan(decimal.NewFromInt(51)) || maxSeen.LessThan(decimal.NewFromInt(499)) {
		t.Fatalf("draws should span the range, got [%s, %s]", minSeen, maxSeen)
	}
}
