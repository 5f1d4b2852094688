package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/services"
)

const msgRequired = "This field is required."

type ListingRequest struct {
	Title        *string          `json:"title" validate:"omitempty,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Location     *string          `json:"location" validate:"omitempty,max=200"`
	PropertyType *string          `json:"property_type" validate:"omitempty,oneof=apartment house condo villa studio"`
	Bedrooms     *int             `json:"bedrooms" validate:"omitempty,min=1"`
	Bathrooms    *int             `json:"bathrooms" validate:"omitempty,min=1"`
	MaxGuests    *int             `json:"max_guests" validate:"omitempty,min=1"`
	Amenities    *string          `json:"amenities"`
	IsAvailable  *bool            `json:"is_available"`
}

// Validate checks tags and, when full is set (create or replace), the
// presence of required fields.
func (r ListingRequest) Validate(full bool) error {
	fe := validateStruct(r)
	if full {
		requireField(fe, "title", r.Title == nil)
		requireField(fe, "description", r.Description == nil)
		requireField(fe, "price", r.Price == nil)
		requireField(fe, "location", r.Location == nil)
	}
	return fe.Err("listing.request")
}

func (r ListingRequest) Fields() services.ListingFields {
	f := services.ListingFields{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Location:    r.Location,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		MaxGuests:   r.MaxGuests,
		Amenities:   r.Amenities,
		IsAvailable: r.IsAvailable,
	}
	if r.PropertyType != nil {
		pt := rental.PropertyType(*r.PropertyType)
		f.PropertyType = &pt
	}
	return f
}

type BookingRequest struct {
	Listing         *uuid.UUID       `json:"listing"`
	CheckIn         *string          `json:"check_in" validate:"omitempty,datetime=2006-01-02"`
	CheckOut        *string          `json:"check_out" validate:"omitempty,datetime=2006-01-02"`
	TotalPrice      *decimal.Decimal `json:"total_price"`
	Status          *string          `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	SpecialRequests *string          `json:"special_requests"`
}

func (r BookingRequest) Validate(full bool) error {
	fe := validateStruct(r)
	if full {
		requireField(fe, "listing", r.Listing == nil)
		requireField(fe, "check_in", r.CheckIn == nil)
		requireField(fe, "check_out", r.CheckOut == nil)
		requireField(fe, "total_price", r.TotalPrice == nil)
	}
	return fe.Err("booking.request")
}

// Fields converts the request. Call Validate first; dates are assumed to be
// well formed.
func (r BookingRequest) Fields() services.BookingFields {
	f := services.BookingFields{
		ListingID:       r.Listing,
		TotalPrice:      r.TotalPrice,
		SpecialRequests: r.SpecialRequests,
		CheckIn:         parseDate(r.CheckIn),
		CheckOut:        parseDate(r.CheckOut),
	}
	if r.Status != nil {
		s := rental.BookingStatus(*r.Status)
		f.Status = &s
	}
	return f
}

type ReviewRequest struct {
	Listing *uuid.UUID `json:"listing"`
	Booking *uuid.UUID `json:"booking"`
	Rating  *int       `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string    `json:"comment"`
}

func (r ReviewRequest) Validate(full bool) error {
	fe := validateStruct(r)
	if full {
		requireField(fe, "listing", r.Listing == nil)
		requireField(fe, "booking", r.Booking == nil)
		requireField(fe, "rating", r.Rating == nil)
		requireField(fe, "comment", r.Comment == nil)
	}
	return fe.Err("review.request")
}

func (r ReviewRequest) Fields() services.ReviewFields {
	return services.ReviewFields{
		ListingID: r.Listing,
		BookingID: r.Booking,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

func requireField(fe errs.FieldErrors, field string, missing bool) {
	if missing && len(fe[field]) == 0 {
		fe.Add(field, msgRequired)
	}
}

func parseDate(raw *string) *datatypes.Date {
	if raw == nil {
		return nil
	}
	d, err := rental.ParseDate(*raw)
	if err != nil {
		return nil
	}
	return &d
}
