package services

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

const bookingsSheet = "Bookings"

var bookingExportHeader = []string{
	"ID", "Listing", "Location", "Guest", "Check-in", "Check-out", "Nights", "Total price", "Status", "Special requests", "Created",
}

// ExportService renders the bookings visible to a user as a spreadsheet.
type ExportService interface {
	WriteBookingsXLSX(ctx context.Context, who user.Identity, f repos.BookingFilter, w io.Writer) (int, error)
}

type exportService struct {
	log      *logger.Logger
	bookings BookingService
}

func NewExportService(log *logger.Logger, bookings BookingService) ExportService {
	return &exportService{log: log.With("service", "ExportService"), bookings: bookings}
}

func (s *exportService) WriteBookingsXLSX(ctx context.Context, who user.Identity, f repos.BookingFilter, w io.Writer) (int, error) {
	const op = "export.bookings"
	if who.IsAnonymous() {
		return 0, errs.Unauthenticated(op, msgNotAuthenticated)
	}
	rows, _, err := s.bookings.List(ctx, who, f, repos.Page{})
	if err != nil {
		return 0, err
	}

	x := excelize.NewFile()
	defer func() {
		if cerr := x.Close(); cerr != nil {
			s.log.Warn("close workbook", "error", cerr)
		}
	}()
	if err := x.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return 0, errs.Wrap(errs.CodeInternal, op, err)
	}

	header, err := x.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return 0, errs.Wrap(errs.CodeInternal, op, err)
	}
	for i, h := range bookingExportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = x.SetCellValue(bookingsSheet, cell, h)
		_ = x.SetCellStyle(bookingsSheet, cell, cell, header)
	}

	for i, b := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := x.SetSheetRow(bookingsSheet, cell, &[]interface{}{
			b.ID.String(),
			listingTitle(b),
			listingLocation(b),
			guestName(b),
			rental.FormatDate(b.CheckIn),
			rental.FormatDate(b.CheckOut),
			b.Nights(),
			b.TotalPrice.InexactFloat64(),
			string(b.Status),
			b.SpecialRequests,
			b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}); err != nil {
			return 0, errs.Wrap(errs.CodeInternal, op, err)
		}
	}
	_ = x.SetColWidth(bookingsSheet, "A", "A", 38)
	_ = x.SetColWidth(bookingsSheet, "B", "D", 24)

	if _, err := x.WriteTo(w); err != nil {
		return 0, errs.Wrap(errs.CodeInternal, op, fmt.Errorf("write workbook: %w", err))
	}
	s.log.Debug("bookings exported", "rows", len(rows), "requester_id", who.UserID)
	return len(rows), nil
}

func listingTitle(b *rental.Booking) string {
	if b.Listing == nil {
		return ""
	}
	return b.Listing.Title
}

func listingLocation(b *rental.Booking) string {
	if b.Listing == nil {
		return ""
	}
	return b.Listing.Location
}

func guestName(b *rental.Booking) string {
	if b.Guest == nil {
		return ""
	}
	return b.Guest.Username
}
