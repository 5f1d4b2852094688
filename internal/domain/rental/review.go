package rental

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/user"
)

const (
	MinRating = 1
	MaxRating = 5

	MsgDuplicateReview = "You have already reviewed this booking."
)

type Review struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_listing_guest_booking,priority:1" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID" json:"-"`

	GuestID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_review_listing_guest_booking,priority:2" json:"guest_id"`
	Guest   *user.User `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_listing_guest_booking,priority:3;index" json:"booking_id"`
	Booking   *Booking  `gorm:"foreignKey:BookingID" json:"-"`

	Rating  int    `gorm:"not null;index" json:"rating"`
	Comment string `gorm:"type:text;not null" json:"comment"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Review) TableName() string { return "review" }

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Review) Validate() error {
	fe := errs.FieldErrors{}
	if r.ListingID == uuid.Nil {
		fe.Add("listing", "This field is required.")
	}
	if r.BookingID == uuid.Nil {
		fe.Add("booking", "This field is required.")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		fe.Add("rating", "Ensure this value is between 1 and 5.")
	}
	if r.Comment == "" {
		fe.Add("comment", "This field may not be blank.")
	}
	return fe.Err("review.validate")
}
