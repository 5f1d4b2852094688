package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/domain/user"
)

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyCondo     PropertyType = "condo"
	PropertyVilla     PropertyType = "villa"
	PropertyStudio    PropertyType = "studio"
)

var PropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyHouse,
	PropertyCondo,
	PropertyVilla,
	PropertyStudio,
}

func (p PropertyType) Valid() bool {
	for _, t := range PropertyTypes {
		if p == t {
			return true
		}
	}
	return false
}

const (
	MaxTitleLength    = 200
	MaxLocationLength = 200
)

type Listing struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string          `gorm:"size:200;not null" json:"title"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Location     string          `gorm:"size:200;not null" json:"location"`
	PropertyType PropertyType    `gorm:"size:20;not null;index" json:"property_type"`
	Bedrooms     int             `gorm:"not null" json:"bedrooms"`
	Bathrooms    int             `gorm:"not null" json:"bathrooms"`
	MaxGuests    int             `gorm:"not null" json:"max_guests"`
	Amenities    string          `gorm:"type:text;not null" json:"amenities"`
	IsAvailable  bool            `gorm:"not null;index" json:"is_available"`

	HostID uuid.UUID  `gorm:"type:uuid;not null;index" json:"host_id"`
	Host   *user.User `gorm:"foreignKey:HostID" json:"host,omitempty"`

	Reviews []*Review `gorm:"foreignKey:ListingID" json:"reviews,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Listing) TableName() string { return "listing" }

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// NewListing returns a listing carrying the documented field defaults.
func NewListing(hostID uuid.UUID) *Listing {
	return &Listing{
		HostID:       hostID,
		PropertyType: PropertyApartment,
		Bedrooms:     1,
		Bathrooms:    1,
		MaxGuests:    1,
		IsAvailable:  true,
	}
}

// Rating summarizes the listing's loaded reviews.
func (l *Listing) Rating() RatingSummary {
	ratings := make([]int, 0, len(l.Reviews))
	for _, r := range l.Reviews {
		if r != nil {
			ratings = append(ratings, r.Rating)
		}
	}
	return SummarizeRatings(ratings)
}

func (l *Listing) Validate() error {
	fe := validateListingFields(l)
	return fe.Err("listing.validate")
}
