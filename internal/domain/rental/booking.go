package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/user"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingCancelled,
	BookingCompleted,
}

func (s BookingStatus) Valid() bool {
	for _, st := range BookingStatuses {
		if s == st {
			return true
		}
	}
	return false
}

const (
	idxBookingRange = "idx_booking_listing_range"

	MsgCheckOutAfterCheckIn = "Check-out date must be after check-in date."
	MsgDuplicateBooking     = "A booking for this listing with the same check-in and check-out dates already exists."
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_booking_listing_range,priority:1" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID" json:"listing,omitempty"`

	GuestID uuid.UUID  `gorm:"type:uuid;not null;index" json:"guest_id"`
	Guest   *user.User `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	CheckIn         datatypes.Date  `gorm:"not null;uniqueIndex:idx_booking_listing_range,priority:2" json:"check_in"`
	CheckOut        datatypes.Date  `gorm:"not null;uniqueIndex:idx_booking_listing_range,priority:3" json:"check_out"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status          BookingStatus   `gorm:"size:20;not null;index" json:"status"`
	SpecialRequests string          `gorm:"type:text;not null" json:"special_requests"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Booking) TableName() string { return "booking" }

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}

// Nights is the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return Nights(b.CheckIn, b.CheckOut)
}

// Validate checks field constraints that do not need storage.
func (b *Booking) Validate() error {
	fe := errs.FieldErrors{}
	if b.ListingID == uuid.Nil {
		fe.Add("listing", "This field is required.")
	}
	if time.Time(b.CheckIn).IsZero() {
		fe.Add("check_in", "This field is required.")
	}
	if time.Time(b.CheckOut).IsZero() {
		fe.Add("check_out", "This field is required.")
	}
	if msg := MoneyProblem(b.TotalPrice); msg != "" {
		fe.Add("total_price", msg)
	}
	if b.Status != "" && !b.Status.Valid() {
		fe.Add("status", "\""+string(b.Status)+"\" is not a valid choice.")
	}
	if err := fe.Err("booking.validate"); err != nil {
		return err
	}
	return ValidateDateRange(b.CheckIn, b.CheckOut)
}

// ValidateDateRange rejects ranges where check_in is not strictly before
// check_out.
func ValidateDateRange(checkIn, checkOut datatypes.Date) error {
	if !time.Time(checkIn).Before(time.Time(checkOut)) {
		fe := errs.FieldErrors{}
		fe.Add(errs.NonFieldErrors, MsgCheckOutAfterCheckIn)
		return fe.Err("booking.validate")
	}
	return nil
}

// Date truncates t to a calendar date in UTC.
func Date(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(raw string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return datatypes.Date{}, err
	}
	return Date(t), nil
}

const DateLayout = "2006-01-02"

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

func Nights(checkIn, checkOut datatypes.Date) int {
	return int(time.Time(checkOut).Sub(time.Time(checkIn)).Hours() / 24)
}
