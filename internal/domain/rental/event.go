package rental

import (
	"time"

	"github.com/google/uuid"
)

type BookingEventType string

const (
	BookingEventCreated       BookingEventType = "booking.created"
	BookingEventConfirmed     BookingEventType = "booking.confirmed"
	BookingEventCancelled     BookingEventType = "booking.cancelled"
	BookingEventStatusChanged BookingEventType = "booking.status_changed"
	BookingEventDeleted       BookingEventType = "booking.deleted"
)

// BookingEvent is published after a booking change commits.
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  uuid.UUID        `json:"booking_id"`
	ListingID  uuid.UUID        `json:"listing_id"`
	GuestID    uuid.UUID        `json:"guest_id"`
	HostID     uuid.UUID        `json:"host_id"`
	Status     BookingStatus    `json:"status"`
	ActorID    uuid.UUID        `json:"actor_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func NewBookingEvent(t BookingEventType, b *Booking, actor uuid.UUID) BookingEvent {
	ev := BookingEvent{
		Type:       t,
		BookingID:  b.ID,
		ListingID:  b.ListingID,
		GuestID:    b.GuestID,
		Status:     b.Status,
		ActorID:    actor,
		OccurredAt: time.Now().UTC(),
	}
	if b.Listing != nil {
		ev.HostID = b.Listing.HostID
	}
	return ev
}
