package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/repos/testutil"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
)

func TestReviewCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host := testutil.SeedUser(t, ctx, f.db, "host")
	guest := testutil.SeedUser(t, ctx, f.db, "guest")
	l := testutil.SeedListing(t, ctx, f.db, host.ID)
	other := testutil.SeedListing(t, ctx, f.db, host.ID)
	b := testutil.SeedBooking(t, ctx, f.db, l.ID, guest.ID, -5, 2)

	in := ReviewFields{
		ListingID: &l.ID,
		BookingID: &b.ID,
		Rating:    testutil.Ptr(5),
		Comment:   testutil.Ptr("Lovely"),
	}
	rv, err := f.reviews.Create(ctx, identityOf(guest), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rv.GuestID != guest.ID || rv.Guest == nil {
		t.Fatalf("guest must be the requester, got %+v", rv)
	}

	if _, err := f.reviews.Create(ctx, identityOf(guest), in); !errs.IsCode(err, errs.CodeConflict) {
		t.Fatalf("expected conflict on duplicate review, got %v", err)
	}

	listing, err := f.listings.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("Get listing: %v", err)
	}
	if s := listing.Rating(); s.Count != 1 || s.AverageFloat() != 5 {
		t.Fatalf("unexpected rating summary %+v", s)
	}

	cases := []struct {
		name  string
		in    ReviewFields
		field string
	}{
		{"rating too high", ReviewFields{ListingID: &l.ID, BookingID: &b.ID, Rating: testutil.Ptr(6), Comment: testutil.Ptr("x")}, "rating"},
		{"rating too low", ReviewFields{ListingID: &l.ID, BookingID: &b.ID, Rating: testutil.Ptr(0), Comment: testutil.Ptr("x")}, "rating"},
		{"blank comment", ReviewFields{ListingID: &l.ID, BookingID: &b.ID, Rating: testutil.Ptr(3), Comment: testutil.Ptr("")}, "comment"},
		{"booking of another listing", ReviewFields{ListingID: &other.ID, BookingID: &b.ID, Rating: testutil.Ptr(3), Comment: testutil.Ptr("x")}, "booking"},
		{"unknown booking", ReviewFields{ListingID: &l.ID, BookingID: testutil.PtrUUID(uuid.New()), Rating: testutil.Ptr(3), Comment: testutil.Ptr("x")}, "booking"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.reviews.Create(ctx, identityOf(guest), tc.in)
			if !errs.IsCode(err, errs.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(errs.FieldsOf(err)[tc.field]) == 0 {
				t.Fatalf("expected error on %q, got %v", tc.field, errs.FieldsOf(err))
			}
		})
	}
}

func TestReviewUpdateKeepsOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host := testutil.SeedUser(t, ctx, f.db, "host")
	guest := testutil.SeedUser(t, ctx, f.db, "guest")
	stranger := testutil.SeedUser(t, ctx, f.db, "stranger")
	l := testutil.SeedListing(t, ctx, f.db, host.ID)
	other := testutil.SeedListing(t, ctx, f.db, host.ID)
	b := testutil.SeedBooking(t, ctx, f.db, l.ID, guest.ID, -5, 2)
	rv := testutil.SeedReview(t, ctx, f.db, b, 2)

	got, err := f.reviews.Update(ctx, identityOf(guest), rv.ID, ReviewFields{
		ListingID: &other.ID,
		Rating:    testutil.Ptr(4),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Rating != 4 || got.ListingID != l.ID || got.Comment != rv.Comment {
		t.Fatalf("unexpected review after update: %+v", got)
	}

	if _, err := f.reviews.Get(ctx, identityOf(stranger), rv.ID); !errs.IsCode(err, errs.CodeNotFound) {
		t.Fatalf("stranger get: expected not_found, got %v", err)
	}
	if err := f.reviews.Delete(ctx, identityOf(stranger), rv.ID); !errs.IsCode(err, errs.CodeNotFound) {
		t.Fatalf("stranger delete: expected not_found, got %v", err)
	}
	if err := f.reviews.Delete(ctx, identityOf(host), rv.ID); err != nil {
		t.Fatalf("host delete: %v", err)
	}
	rows, _, err := f.reviews.List(ctx, identityOf(guest), repos.ReviewFilter{}, repos.Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no reviews, got %d", len(rows))
	}
}
