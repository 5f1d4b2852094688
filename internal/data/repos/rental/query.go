package rental

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/yungbote/rentals-backend/internal/domain/rental"
)

// Page selects a window of a result set. Limit <= 0 returns every row.
type Page struct {
	Offset int
	Limit  int
}

// Order is one ordering term; Field must be whitelisted by the caller's repo.
type Order struct {
	Field string
	Desc  bool
}

// ParseOrdering turns "-price,created_at" into terms, dropping fields that
// are not in allowed.
func ParseOrdering(raw string, allowed []string) []Order {
	var out []Order
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		for _, a := range allowed {
			if field == a {
				out = append(out, Order{Field: field, Desc: desc})
				break
			}
		}
	}
	return out
}

type ListingFilter struct {
	PropertyType *domain.PropertyType
	IsAvailable  *bool
	Bedrooms     *int
	Bathrooms    *int
	HostID       *uuid.UUID
	Search       string
	Ordering     []Order
}

type BookingFilter struct {
	Status    *domain.BookingStatus
	GuestID   *uuid.UUID
	ListingID *uuid.UUID
	CheckIn   *datatypes.Date
	CheckOut  *datatypes.Date
	Search    string
	Ordering  []Order
}

type ReviewFilter struct {
	ListingID *uuid.UUID
	GuestID   *uuid.UUID
	Rating    *int
	Search    string
	Ordering  []Order
}

var (
	ListingOrderFields = []string{"price", "created_at", "updated_at", "average_rating"}
	BookingOrderFields = []string{"check_in", "check_out", "total_price", "created_at"}
	ReviewOrderFields  = []string{"rating", "created_at"}
)

var defaultOrdering = []Order{{Field: "created_at", Desc: true}}

// applyOrdering maps whitelisted fields to SQL expressions; id breaks ties so
// pagination is stable.
func applyOrdering(q *gorm.DB, table string, terms []Order, exprs map[string]string) *gorm.DB {
	if len(terms) == 0 {
		terms = defaultOrdering
	}
	for _, o := range terms {
		expr, ok := exprs[o.Field]
		if !ok {
			expr = table + "." + o.Field
		}
		if o.Desc {
			expr += " DESC"
		}
		q = q.Order(expr)
	}
	return q.Order(table + ".id")
}

func applyPage(q *gorm.DB, p Page) *gorm.DB {
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	return q
}

func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
