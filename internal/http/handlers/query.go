package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
)

const msgInvalidPage = "Invalid page."

// Pagination holds the page-size policy for list endpoints.
type Pagination struct {
	DefaultSize int
	MaxSize     int
}

type pageRequest struct {
	repos.Page
	Number int
	Size   int
}

func (p Pagination) parse(c *gin.Context) (pageRequest, error) {
	size := p.DefaultSize
	if size <= 0 {
		size = 20
	}
	if raw := strings.TrimSpace(c.Query("page_size")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = n
		}
	}
	if p.MaxSize > 0 && size > p.MaxSize {
		size = p.MaxSize
	}
	number := 1
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n-1 > math.MaxInt/size {
			return pageRequest{}, errs.NotFound("page", msgInvalidPage)
		}
		number = n
	}
	return pageRequest{
		Page:   repos.Page{Offset: (number - 1) * size, Limit: size},
		Number: number,
		Size:   size,
	}, nil
}

// check rejects pages past the end of a non-empty result set.
func (pr pageRequest) check(total int64) error {
	if pr.Number > 1 && int64(pr.Offset) >= total {
		return errs.NotFound("page", msgInvalidPage)
	}
	return nil
}

// queryParser collects filter parse failures as field errors.
type queryParser struct {
	c  *gin.Context
	fe errs.FieldErrors
}

func newQueryParser(c *gin.Context) *queryParser {
	return &queryParser{c: c, fe: errs.FieldErrors{}}
}

func (q *queryParser) raw(name string) (string, bool) {
	v := strings.TrimSpace(q.c.Query(name))
	return v, v != ""
}

func (q *queryParser) uuid(name string) *uuid.UUID {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		q.fe.Add(name, "Select a valid choice. That choice is not one of the available choices.")
		return nil
	}
	return &id
}

func (q *queryParser) int(name string) *int {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fe.Add(name, "Enter a number.")
		return nil
	}
	return &n
}

func (q *queryParser) bool(name string) *bool {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	var b bool
	switch strings.ToLower(v) {
	case "true", "1":
		b = true
	case "false", "0":
		b = false
	default:
		q.fe.Add(name, "Select a valid choice. "+v+" is not one of the available choices.")
		return nil
	}
	return &b
}

func (q *queryParser) date(name string) *datatypes.Date {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	d, err := rental.ParseDate(v)
	if err != nil {
		q.fe.Add(name, "Enter a valid date.")
		return nil
	}
	return &d
}

func (q *queryParser) choice(name string, valid func(string) bool) *string {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	if !valid(v) {
		q.fe.Add(name, "Select a valid choice. "+v+" is not one of the available choices.")
		return nil
	}
	return &v
}

func (q *queryParser) search() string {
	v, _ := q.raw("search")
	return v
}

func (q *queryParser) ordering(allowed []string) []repos.Order {
	v, _ := q.raw("ordering")
	return repos.ParseOrdering(v, allowed)
}

func (q *queryParser) err() error {
	return q.fe.Err("query")
}

func parseListingFilter(c *gin.Context) (repos.ListingFilter, error) {
	q := newQueryParser(c)
	f := repos.ListingFilter{
		IsAvailable: q.bool("is_available"),
		Bedrooms:    q.int("bedrooms"),
		Bathrooms:   q.int("bathrooms"),
		HostID:      q.uuid("host"),
		Search:      q.search(),
		Ordering:    q.ordering(repos.ListingOrderFields),
	}
	if pt := q.choice("property_type", func(s string) bool { return rental.PropertyType(s).Valid() }); pt != nil {
		v := rental.PropertyType(*pt)
		f.PropertyType = &v
	}
	return f, q.err()
}

func parseBookingFilter(c *gin.Context) (repos.BookingFilter, error) {
	q := newQueryParser(c)
	f := repos.BookingFilter{
		GuestID:   q.uuid("guest"),
		ListingID: q.uuid("listing"),
		CheckIn:   q.date("check_in"),
		CheckOut:  q.date("check_out"),
		Search:    q.search(),
		Ordering:  q.ordering(repos.BookingOrderFields),
	}
	if s := q.choice("status", func(s string) bool { return rental.BookingStatus(s).Valid() }); s != nil {
		v := rental.BookingStatus(*s)
		f.Status = &v
	}
	return f, q.err()
}

func parseReviewFilter(c *gin.Context) (repos.ReviewFilter, error) {
	q := newQueryParser(c)
	f := repos.ReviewFilter{
		ListingID: q.uuid("listing"),
		GuestID:   q.uuid("guest"),
		Rating:    q.int("rating"),
		Search:    q.search(),
		Ordering:  q.ordering(repos.ReviewOrderFields),
	}
	return f, q.err()
}

// pathID parses the :id segment. A malformed id cannot name a row, so it is
// reported as not found.
func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errs.NotFound("path", "Not found.")
	}
	return id, nil
}
