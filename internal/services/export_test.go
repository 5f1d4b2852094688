package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/repos/testutil"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/user"
)

func TestWriteBookingsXLSX(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	host := testutil.SeedUser(t, ctx, f.db, "host")
	guest := testutil.SeedUser(t, ctx, f.db, "guest")
	stranger := testutil.SeedUser(t, ctx, f.db, "stranger")
	l := testutil.SeedListing(t, ctx, f.db, host.ID)
	testutil.SeedBooking(t, ctx, f.db, l.ID, guest.ID, 2, 3)
	testutil.SeedBooking(t, ctx, f.db, l.ID, stranger.ID, 9, 1)

	var buf bytes.Buffer
	n, err := f.export.WriteBookingsXLSX(ctx, identityOf(guest), repos.BookingFilter{}, &buf)
	if err != nil {
		t.Fatalf("WriteBookingsXLSX: %v", err)
	}
	if n != 1 {
		t.Fatalf("guest should export 1 booking, got %d", n)
	}

	wb, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer wb.Close()
	rows, err := wb.GetRows(bookingsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[1][1] != l.Title || rows[1][3] != "guest" || rows[1][6] != "3" {
		t.Fatalf("unexpected sheet contents %v", rows)
	}

	if _, err := f.export.WriteBookingsXLSX(ctx, user.Anonymous(), repos.BookingFilter{}, &buf); !errs.IsCode(err, errs.CodeUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
