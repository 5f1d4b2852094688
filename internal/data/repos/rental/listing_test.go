package rental

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/rentals-backend/internal/data/repos/testutil"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	domain "github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
)

func TestListingRepoFiltersAndOrdering(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewListingRepo(db, testutil.Logger(t))

	host := testutil.SeedUser(t, ctx, db, "host")
	guest := testutil.SeedUser(t, ctx, db, "guest")

	cheap := testutil.SeedListing(t, ctx, db, host.ID, func(l *domain.Listing) {
		l.Title = "Cheap studio"
		l.PropertyType = domain.PropertyStudio
		l.Price = decimal.RequireFromString("55.50")
	})
	pricey := testutil.SeedListing(t, ctx, db, host.ID, func(l *domain.Listing) {
		l.Title = "Beach villa"
		l.PropertyType = domain.PropertyVilla
		l.Price = decimal.RequireFromString("480.00")
		l.Bedrooms = 4
		l.Amenities = "Pool, Ocean View"
	})
	hidden := testutil.SeedListing(t, ctx, db, guest.ID, func(l *domain.Listing) {
		l.Title = "Unavailable condo"
		l.PropertyType = domain.PropertyCondo
		l.IsAvailable = false
	})

	b1 := testutil.SeedBooking(t, ctx, db, cheap.ID, guest.ID, -10, 2)
	b2 := testutil.SeedBooking(t, ctx, db, pricey.ID, guest.ID, -10, 2)
	testutil.SeedReview(t, ctx, db, b1, 3)
	testutil.SeedReview(t, ctx, db, b2, 5)

	ids := func(ls []*domain.Listing) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(ls))
		for _, l := range ls {
			out = append(out, l.ID)
		}
		return out
	}

	cases := []struct {
		name   string
		filter ListingFilter
		want   []uuid.UUID
	}{
		{"price ascending", ListingFilter{Ordering: []Order{{Field: "price"}}}, []uuid.UUID{cheap.ID, hidden.ID, pricey.ID}},
		{"property type", ListingFilter{PropertyType: testutil.Ptr(domain.PropertyVilla)}, []uuid.UUID{pricey.ID}},
		{"availability", ListingFilter{IsAvailable: testutil.Ptr(false)}, []uuid.UUID{hidden.ID}},
		{"bedrooms", ListingFilter{Bedrooms: testutil.Ptr(4)}, []uuid.UUID{pricey.ID}},
		{"host", ListingFilter{HostID: testutil.PtrUUID(guest.ID)}, []uuid.UUID{hidden.ID}},
		{"search amenities case-insensitive", ListingFilter{Search: "ocean"}, []uuid.UUID{pricey.ID}},
		{"average rating descending", ListingFilter{
			HostID:   testutil.PtrUUID(host.ID),
			Ordering: []Order{{Field: "average_rating", Desc: true}},
		}, []uuid.UUID{pricey.ID, cheap.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, total, err := repo.List(dbc, tc.filter, Page{})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if int(total) != len(tc.want) {
				t.Fatalf("total: got %d want %d", total, len(tc.want))
			}
			gotIDs := ids(got)
			for i := range tc.want {
				if gotIDs[i] != tc.want[i] {
					t.Fatalf("order mismatch at %d: got %v want %v", i, gotIDs, tc.want)
				}
			}
		})
	}

	page, total, err := repo.List(dbc, ListingFilter{Ordering: []Order{{Field: "price"}}}, Page{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatalf("List page: %v", err)
	}
	if total != 3 || len(page) != 1 || page[0].ID != hidden.ID {
		t.Fatalf("unexpected page: total=%d ids=%v", total, ids(page))
	}
}

func TestListingRepoGetIncludesHostAndReviews(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewListingRepo(db, testutil.Logger(t))

	host := testutil.SeedUser(t, ctx, db, "host")
	guest := testutil.SeedUser(t, ctx, db, "guest")
	l := testutil.SeedListing(t, ctx, db, host.ID)
	for i, rating := range []int{5, 4, 3} {
		b := testutil.SeedBooking(t, ctx, db, l.ID, guest.ID, -20+i*3, 2)
		testutil.SeedReview(t, ctx, db, b, rating)
	}

	got, err := repo.GetByID(dbc, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Host == nil || got.Host.Username != "host" {
		t.Fatalf("host not preloaded: %+v", got.Host)
	}
	if len(got.Reviews) != 3 || got.Reviews[0].Guest == nil {
		t.Fatalf("reviews not preloaded: %+v", got.Reviews)
	}
	summary := got.Rating()
	if summary.Count != 3 || summary.AverageFloat() != 4.0 {
		t.Fatalf("unexpected rating summary: %+v", summary)
	}
	if !got.Price.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("price round trip: %s", got.Price)
	}

	if _, err := repo.GetByID(dbc, uuid.New()); !errs.IsCode(err, errs.CodeNotFound) {
		t.Fatalf("missing listing: expected not_found, got %v", err)
	}
}

func TestListingRepoUpdateAndCascadeDelete(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	listings := NewListingRepo(db, testutil.Logger(t))

	host := testutil.SeedUser(t, ctx, db, "host")
	guest := testutil.SeedUser(t, ctx, db, "guest")
	l := testutil.SeedListing(t, ctx, db, host.ID)
	other := testutil.SeedListing(t, ctx, db, host.ID)
	b := testutil.SeedBooking(t, ctx, db, l.ID, guest.ID, 5, 3)
	testutil.SeedReview(t, ctx, db, b, 4)
	kept := testutil.SeedBooking(t, ctx, db, other.ID, guest.ID, 5, 3)

	l.IsAvailable = false
	l.Title = "Renamed"
	if err := listings.Update(dbc, l); err != nil {
		t.Fatalf("Update: %v", err)
	}
	reloaded, err := listings.GetByID(dbc, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.IsAvailable || reloaded.Title != "Renamed" {
		t.Fatalf("update not persisted: %+v", reloaded)
	}

	if err := listings.Delete(dbc, l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var bookingCount, reviewCount int64
	db.Model(&domain.Booking{}).Where("listing_id = ?", l.ID).Count(&bookingCount)
	db.Model(&domain.Review{}).Where("listing_id = ?", l.ID).Count(&reviewCount)
	if bookingCount != 0 || reviewCount != 0 {
		t.Fatalf("cascade failed: bookings=%d reviews=%d", bookingCount, reviewCount)
	}
	var keptCount int64
	db.Model(&domain.Booking{}).Where("id = ?", kept.ID).Count(&keptCount)
	if keptCount != 1 {
		t.Fatalf("unrelated booking removed")
	}
	if err := listings.Delete(dbc, l.ID); !errs.IsCode(err, errs.CodeNotFound) {
		t.Fatalf("second delete: expected not_found, got %v", err)
	}
}
