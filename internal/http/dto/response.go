package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/rentals-backend/internal/domain/rental"
	"github.com/yungbote/rentals-backend/internal/domain/user"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type ListingResponse struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Price         string           `json:"price"`
	Location      string           `json:"location"`
	PropertyType  string           `json:"property_type"`
	Bedrooms      int              `json:"bedrooms"`
	Bathrooms     int              `json:"bathrooms"`
	MaxGuests     int              `json:"max_guests"`
	Amenities     string           `json:"amenities"`
	IsAvailable   bool             `json:"is_available"`
	Host          *UserResponse    `json:"host"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int              `json:"review_count"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ListingSummary is the listing as embedded in a booking.
type ListingSummary struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Location     string        `json:"location"`
	Price        string        `json:"price"`
	PropertyType string        `json:"property_type"`
	Host         *UserResponse `json:"host"`
}

type BookingResponse struct {
	ID              uuid.UUID       `json:"id"`
	Listing         *ListingSummary `json:"listing"`
	Guest           *UserResponse   `json:"guest"`
	CheckIn         string          `json:"check_in"`
	CheckOut        string          `json:"check_out"`
	TotalPrice      string          `json:"total_price"`
	Status          string          `json:"status"`
	SpecialRequests string          `json:"special_requests"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ReviewResponse struct {
	ID        uuid.UUID     `json:"id"`
	Listing   uuid.UUID     `json:"listing"`
	Booking   uuid.UUID     `json:"booking"`
	Guest     *UserResponse `json:"guest"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func money(d decimal.Decimal) string { return d.StringFixed(rental.MoneyDecimalPlaces) }

func User(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Listing maps a listing with its host and reviews loaded. The rating
// aggregates are computed from the loaded reviews.
func Listing(l *rental.Listing) ListingResponse {
	summary := l.Rating()
	return ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Price:         money(l.Price),
		Location:      l.Location,
		PropertyType:  string(l.PropertyType),
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		MaxGuests:     l.MaxGuests,
		Amenities:     l.Amenities,
		IsAvailable:   l.IsAvailable,
		Host:          User(l.Host),
		Reviews:       Reviews(l.Reviews),
		AverageRating: summary.AverageFloat(),
		ReviewCount:   summary.Count,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func Listings(ls []*rental.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, Listing(l))
	}
	return out
}

func Booking(b *rental.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		Guest:           User(b.Guest),
		CheckIn:         rental.FormatDate(b.CheckIn),
		CheckOut:        rental.FormatDate(b.CheckOut),
		TotalPrice:      money(b.TotalPrice),
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if l := b.Listing; l != nil {
		resp.Listing = &ListingSummary{
			ID:           l.ID,
			Title:        l.Title,
			Location:     l.Location,
			Price:        money(l.Price),
			PropertyType: string(l.PropertyType),
			Host:         User(l.Host),
		}
	}
	return resp
}

func Bookings(bs []*rental.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, Booking(b))
	}
	return out
}

func Review(r *rental.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Listing:   r.ListingID,
		Booking:   r.BookingID,
		Guest:     User(r.Guest),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func Reviews(rs []*rental.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(rs))
	for _, r := range rs {
		if r != nil {
			out = append(out, Review(r))
		}
	}
	return out
}
