package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/data/repos"
	"github.com/yungbote/rentals-backend/internal/data/repos/testutil"
	"github.com/yungbote/rentals-backend/internal/data/store"
	"github.com/yungbote/rentals-backend/internal/domain/rental"
	httpH "github.com/yungbote/rentals-backend/internal/http/handlers"
	httpMW "github.com/yungbote/rentals-backend/internal/http/middleware"
	"github.com/yungbote/rentals-backend/internal/observability"
	"github.com/yungbote/rentals-backend/internal/services"
)

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	tx := store.NewGormTxRunner(db)
	m := observability.NewMetrics()

	userRepo := repos.NewUserRepo(db, log)
	listingRepo := repos.NewListingRepo(db, log)
	bookingRepo := repos.NewBookingRepo(db, log)
	reviewRepo := repos.NewReviewRepo(db, log)

	identity := services.NewIdentityService(log, userRepo, "secret", time.Minute)
	bookings := services.NewBookingService(log, tx, bookingRepo, listingRepo, nil, m)
	pages := httpH.Pagination{DefaultSize: 20, MaxSize: 100}

	engine := NewRouter(RouterConfig{
		Log:            log,
		Metrics:        m,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, identity),
		ListingHandler: httpH.NewListingHandler(log, services.NewListingService(log, listingRepo, bookingRepo, reviewRepo), pages),
		BookingHandler: httpH.NewBookingHandler(log, bookings, pages),
		ReviewHandler:  httpH.NewReviewHandler(log, services.NewReviewService(log, tx, reviewRepo, listingRepo, bookingRepo, m), pages),
		ExportHandler:  httpH.NewExportHandler(log, services.NewExportService(log, bookings)),
		HealthHandler:  httpH.NewHealthHandler(db),
	})
	return &testAPI{t: t, db: db, engine: engine}
}

func basicAuth(username string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+testutil.DefaultPassword))
}

func (a *testAPI) do(method, path, username string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.Header.Set("Authorization", basicAuth(username))
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) expect(rec *httptest.ResponseRecorder, status int, out any) {
	a.t.Helper()
	if rec.Code != status {
		a.t.Fatalf("status: got=%d want=%d body=%s", rec.Code, status, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			a.t.Fatalf("decode %s: %v", rec.Body.String(), err)
		}
	}
}

type listingJSON struct {
	ID            string  `json:"id"`
	Price         string  `json:"price"`
	PropertyType  string  `json:"property_type"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	Host          struct {
		Username string `json:"username"`
	} `json:"host"`
}

type bookingJSON struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	TotalPrice string `json:"total_price"`
	CheckIn    string `json:"check_in"`
	Guest      struct {
		Username string `json:"username"`
	} `json:"guest"`
}

type pageJSON struct {
	Count   int               `json:"count"`
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

type errorJSON struct {
	Error struct {
		Message string              `json:"message"`
		Code    string              `json:"code"`
		Fields  map[string][]string `json:"fields"`
	} `json:"error"`
}

func TestBookingScenario(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	testutil.SeedUser(t, ctx, api.db, "host")
	testutil.SeedUser(t, ctx, api.db, "guest")
	testutil.SeedUser(t, ctx, api.db, "stranger")

	var page pageJSON
	api.expect(api.do(http.MethodGet, "/api/listings/", "", nil), http.StatusOK, &page)
	if page.Count != 0 || page.Results == nil {
		t.Fatalf("expected empty listing page, got %+v", page)
	}

	api.expect(api.do(http.MethodPost, "/api/listings/", "", map[string]any{"title": "x"}), http.StatusUnauthorized, nil)

	var l listingJSON
	api.expect(api.do(http.MethodPost, "/api/listings/", "host", map[string]any{
		"title":       "Beach House",
		"description": "Sea view",
		"price":       "150.00",
		"location":    "Porto",
	}), http.StatusCreated, &l)
	if l.Price != "150.00" || l.PropertyType != "apartment" || l.Host.Username != "host" {
		t.Fatalf("unexpected listing %+v", l)
	}

	api.expect(api.do(http.MethodGet, "/api/listings/"+l.ID+"/", "", nil), http.StatusOK, &l)
	if l.Price != "150.00" || l.AverageRating != 0 || l.ReviewCount != 0 {
		t.Fatalf("unexpected listing read-back %+v", l)
	}

	checkIn := rental.FormatDate(rental.Date(time.Now().AddDate(0, 0, 7)))
	checkOut := rental.FormatDate(rental.Date(time.Now().AddDate(0, 0, 10)))
	bookingBody := map[string]any{
		"listing":     l.ID,
		"check_in":    checkIn,
		"check_out":   checkOut,
		"total_price": "450.00",
	}
	var b bookingJSON
	api.expect(api.do(http.MethodPost, "/api/bookings/", "guest", bookingBody), http.StatusCreated, &b)
	if b.Status != "pending" || b.TotalPrice != "450.00" || b.CheckIn != checkIn || b.Guest.Username != "guest" {
		t.Fatalf("unexpected booking %+v", b)
	}

	var dup errorJSON
	api.expect(api.do(http.MethodPost, "/api/bookings/", "guest", bookingBody), http.StatusConflict, &dup)
	if len(dup.Error.Fields["non_field_errors"]) == 0 {
		t.Fatalf("expected non_field_errors on duplicate, got %+v", dup)
	}

	api.expect(api.do(http.MethodGet, "/api/bookings/", "", nil), http.StatusOK, &page)
	if page.Count != 0 {
		t.Fatalf("anonymous should see no bookings, got %d", page.Count)
	}
	api.expect(api.do(http.MethodGet, "/api/bookings/", "stranger", nil), http.StatusOK, &page)
	if page.Count != 0 {
		t.Fatalf("stranger should see no bookings, got %d", page.Count)
	}
	api.expect(api.do(http.MethodGet, "/api/bookings/"+b.ID+"/", "stranger", nil), http.StatusNotFound, nil)

	var forbidden errorJSON
	api.expect(api.do(http.MethodPatch, "/api/bookings/"+b.ID+"/confirm/", "guest", nil), http.StatusForbidden, &forbidden)
	if forbidden.Error.Message != rental.MsgOnlyHostConfirms {
		t.Fatalf("unexpected forbidden message %q", forbidden.Error.Message)
	}
	api.expect(api.do(http.MethodPatch, "/api/bookings/"+b.ID+"/confirm/", "", nil), http.StatusUnauthorized, nil)

	api.expect(api.do(http.MethodPatch, "/api/bookings/"+b.ID+"/confirm/", "host", nil), http.StatusOK, &b)
	if b.Status != "confirmed" {
		t.Fatalf("expected confirmed, got %s", b.Status)
	}
	api.expect(api.do(http.MethodPatch, "/api/bookings/"+b.ID+"/cancel/", "stranger", nil), http.StatusForbidden, nil)
	api.expect(api.do(http.MethodPatch, "/api/bookings/"+b.ID+"/cancel/", "guest", nil), http.StatusOK, &b)
	if b.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %s", b.Status)
	}

	api.expect(api.do(http.MethodPost, "/api/reviews/", "guest", map[string]any{
		"listing": l.ID,
		"booking": b.ID,
		"rating":  4,
		"comment": "Nice",
	}), http.StatusCreated, nil)

	api.expect(api.do(http.MethodGet, "/api/listings/"+l.ID+"/", "", nil), http.StatusOK, &l)
	if l.AverageRating != 4 || l.ReviewCount != 1 {
		t.Fatalf("unexpected aggregates %+v", l)
	}

	api.expect(api.do(http.MethodGet, "/api/listings/"+l.ID+"/reviews/", "", nil), http.StatusOK, &page)
	if page.Count != 1 {
		t.Fatalf("nested reviews are public, got %d", page.Count)
	}
	api.expect(api.do(http.MethodGet, "/api/listings/"+l.ID+"/bookings/", "host", nil), http.StatusOK, &page)
	if page.Count != 1 {
		t.Fatalf("host should see the nested booking, got %d", page.Count)
	}
}

func TestValidationErrors(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	host := testutil.SeedUser(t, ctx, api.db, "host")
	testutil.SeedUser(t, ctx, api.db, "guest")
	l := testutil.SeedListing(t, ctx, api.db, host.ID)

	cases := []struct {
		name  string
		path  string
		body  map[string]any
		field string
	}{
		{"listing missing title", "/api/listings/", map[string]any{"description": "d", "price": "1.00", "location": "x"}, "title"},
		{"listing negative price", "/api/listings/", map[string]any{"title": "t", "description": "d", "price": "-1.00", "location": "x"}, "price"},
		{"listing bad type", "/api/listings/", map[string]any{"title": "t", "description": "d", "price": "1.00", "location": "x", "property_type": "castle"}, "property_type"},
		{"booking reversed dates", "/api/bookings/", map[string]any{"listing": l.ID, "check_in": "2030-01-05", "check_out": "2030-01-01", "total_price": "1.00"}, "non_field_errors"},
		{"booking bad date", "/api/bookings/", map[string]any{"listing": l.ID, "check_in": "05/01/2030", "check_out": "2030-01-09", "total_price": "1.00"}, "check_in"},
		{"review rating range", "/api/reviews/", map[string]any{"listing": l.ID, "booking": l.ID, "rating": 9, "comment": "x"}, "rating"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out errorJSON
			api.expect(api.do(http.MethodPost, tc.path, "guest", tc.body), http.StatusBadRequest, &out)
			if out.Error.Code != "validation" || len(out.Error.Fields[tc.field]) == 0 {
				t.Fatalf("expected validation error on %q, got %+v", tc.field, out)
			}
		})
	}
}

func TestListingPaginationAndFilters(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	host := testutil.SeedUser(t, ctx, api.db, "host")
	for i := 0; i < 5; i++ {
		testutil.SeedListing(t, ctx, api.db, host.ID, func(l *rental.Listing) {
			if i%2 == 0 {
				l.PropertyType = rental.PropertyVilla
			}
		})
	}

	var page pageJSON
	api.expect(api.do(http.MethodGet, "/api/listings/?page_size=2", "", nil), http.StatusOK, &page)
	if page.Count != 5 || len(page.Results) != 2 || page.Next == nil || !strings.Contains(*page.Next, "page=2") {
		t.Fatalf("unexpected first page %+v", page)
	}
	api.expect(api.do(http.MethodGet, "/api/listings/?page_size=2&page=3", "", nil), http.StatusOK, &page)
	if len(page.Results) != 1 || page.Next != nil {
		t.Fatalf("unexpected last page %+v", page)
	}
	api.expect(api.do(http.MethodGet, "/api/listings/?page_size=2&page=4", "", nil), http.StatusNotFound, nil)
	api.expect(api.do(http.MethodGet, "/api/listings/?page_size=2&page=9223372036854775807", "", nil), http.StatusNotFound, nil)

	api.expect(api.do(http.MethodGet, "/api/listings/?property_type=villa", "", nil), http.StatusOK, &page)
	if page.Count != 3 {
		t.Fatalf("expected 3 villas, got %d", page.Count)
	}
	api.expect(api.do(http.MethodGet, "/api/listings/?property_type=castle", "", nil), http.StatusBadRequest, nil)
}

func TestExportAndOperationalEndpoints(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()
	host := testutil.SeedUser(t, ctx, api.db, "host")
	l := testutil.SeedListing(t, ctx, api.db, host.ID)
	testutil.SeedBooking(t, ctx, api.db, l.ID, host.ID, 1, 2)

	api.expect(api.do(http.MethodGet, "/api/exports/bookings.xlsx", "", nil), http.StatusUnauthorized, nil)
	rec := api.do(http.MethodGet, "/api/exports/bookings.xlsx", "host", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Header().Get("Content-Type"), "spreadsheetml") {
		t.Fatalf("unexpected export response %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if rec.Header().Get("X-Row-Count") != "1" {
		t.Fatalf("expected one exported row, got %q", rec.Header().Get("X-Row-Count"))
	}

	rec = api.do(http.MethodGet, "/healthcheck", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
	rec = api.do(http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "rentals_http_requests_total") {
		t.Fatalf("metrics endpoint missing request counter")
	}
}
