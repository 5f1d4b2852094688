package rental

import (
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/user"
)

const (
	MsgOnlyHostConfirms       = "Only the listing host can confirm bookings."
	MsgOnlyGuestOrHostCancels = "Only the guest or host can cancel bookings."
)

// Confirm moves the booking to confirmed. Only the host of the booked
// listing may confirm; the prior status is not consulted. b.Listing must be
// loaded.
func Confirm(b *Booking, by user.Identity) error {
	const op = "booking.confirm"
	if by.IsAnonymous() {
		return errs.Unauthenticated(op, "Authentication credentials were not provided.")
	}
	if !IsHost(b, by) {
		return errs.Forbidden(op, MsgOnlyHostConfirms)
	}
	b.Status = BookingConfirmed
	return nil
}

// Cancel moves the booking to cancelled. The guest or the host may cancel
// from any prior status. b.Listing must be loaded.
func Cancel(b *Booking, by user.Identity) error {
	const op = "booking.cancel"
	if by.IsAnonymous() {
		return errs.Unauthenticated(op, "Authentication credentials were not provided.")
	}
	if !by.Is(b.GuestID) && !IsHost(b, by) {
		return errs.Forbidden(op, MsgOnlyGuestOrHostCancels)
	}
	b.Status = BookingCancelled
	return nil
}
