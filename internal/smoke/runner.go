package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type Config struct {
	BaseURL       string
	HostUser      string
	HostPassword  string
	GuestUser     string
	GuestPassword string
}

type Result struct {
	ListingID     string
	BookingID     string
	ReviewID      string
	AverageRating float64
	ReviewCount   int
}

type credentials struct {
	user     string
	password string
}

// Runner drives the booking lifecycle against a running API and stops at the
// first unexpected response.
type Runner struct {
	log    *logger.Logger
	cfg    Config
	client *http.Client
	out    io.Writer
	step   int

	Now func() time.Time
}

func NewRunner(log *logger.Logger, cfg Config, client *http.Client, out io.Writer) *Runner {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if out == nil {
		out = io.Discard
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Runner{
		log:    log.With("service", "SmokeRunner", "base_url", cfg.BaseURL),
		cfg:    cfg,
		client: client,
		out:    out,
		Now:    time.Now,
	}
}

type listingBody struct {
	ID            string  `json:"id"`
	Price         string  `json:"price"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

type bookingBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type pageBody struct {
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results"`
}

func (r *Runner) Run(ctx context.Context) (Result, error) {
	var res Result
	r.step = 0
	host := credentials{r.cfg.HostUser, r.cfg.HostPassword}
	guest := credentials{r.cfg.GuestUser, r.cfg.GuestPassword}

	var page pageBody
	if err := r.call(ctx, "list listings anonymously", http.MethodGet, "/listings/", credentials{}, nil, http.StatusOK, &page); err != nil {
		return res, err
	}

	var listing listingBody
	err := r.call(ctx, "create listing as host", http.MethodPost, "/listings/", host, map[string]any{
		"title":         "Beautiful Apartment in Downtown",
		"description":   "A modern apartment with great city views and all amenities",
		"price":         "150.00",
		"location":      "Downtown City",
		"property_type": "apartment",
		"bedrooms":      2,
		"bathrooms":     1,
		"max_guests":    4,
		"amenities":     "WiFi, Air Conditioning, Kitchen, Parking",
	}, http.StatusCreated, &listing)
	if err != nil {
		return res, err
	}
	res.ListingID = listing.ID

	var fetched listingBody
	if err := r.call(ctx, "read listing back", http.MethodGet, "/listings/"+listing.ID+"/", credentials{}, nil, http.StatusOK, &fetched); err != nil {
		return res, err
	}
	if fetched.Price != "150.00" {
		return res, r.fail("read listing back", fmt.Errorf("price: got %q want %q", fetched.Price, "150.00"))
	}

	for _, q := range []string{"property_type=apartment", "search=apartment", "ordering=price"} {
		if err := r.call(ctx, "filter listings "+q, http.MethodGet, "/listings/?"+q, credentials{}, nil, http.StatusOK, &page); err != nil {
			return res, err
		}
	}

	today := r.Now()
	var booking bookingBody
	err = r.call(ctx, "create booking as guest", http.MethodPost, "/bookings/", guest, map[string]any{
		"listing":          listing.ID,
		"check_in":         today.AddDate(0, 0, 7).Format(time.DateOnly),
		"check_out":        today.AddDate(0, 0, 10).Format(time.DateOnly),
		"total_price":      "450.00",
		"special_requests": "Late check-in requested",
	}, http.StatusCreated, &booking)
	if err != nil {
		return res, err
	}
	res.BookingID = booking.ID
	if booking.Status != "pending" {
		return res, r.fail("create booking as guest", fmt.Errorf("status: got %q want pending", booking.Status))
	}

	page = pageBody{}
	if err := r.call(ctx, "list bookings anonymously", http.MethodGet, "/bookings/", credentials{}, nil, http.StatusOK, &page); err != nil {
		return res, err
	}
	if len(page.Results) != 0 {
		return res, r.fail("list bookings anonymously", fmt.Errorf("expected no visible bookings, got %d", len(page.Results)))
	}

	bookingPath := "/bookings/" + booking.ID
	if err := r.call(ctx, "confirm booking as guest", http.MethodPatch, bookingPath+"/confirm/", guest, nil, http.StatusForbidden, nil); err != nil {
		return res, err
	}
	if err := r.expectStatus(ctx, "confirm booking as host", bookingPath+"/confirm/", host, "confirmed"); err != nil {
		return res, err
	}
	if err := r.expectStatus(ctx, "cancel booking as guest", bookingPath+"/cancel/", guest, "cancelled"); err != nil {
		return res, err
	}

	var review struct {
		ID string `json:"id"`
	}
	err = r.call(ctx, "create review as guest", http.MethodPost, "/reviews/", guest, map[string]any{
		"listing": listing.ID,
		"booking": booking.ID,
		"rating":  5,
		"comment": "Excellent stay! The apartment was clean, modern, and perfectly located.",
	}, http.StatusCreated, &review)
	if err != nil {
		return res, err
	}
	res.ReviewID = review.ID

	if err := r.call(ctx, "read listing aggregates", http.MethodGet, "/listings/"+listing.ID+"/", credentials{}, nil, http.StatusOK, &fetched); err != nil {
		return res, err
	}
	if fetched.ReviewCount != 1 || fetched.AverageRating != 5 {
		return res, r.fail("read listing aggregates", fmt.Errorf("got average_rating=%v review_count=%d", fetched.AverageRating, fetched.ReviewCount))
	}
	res.AverageRating = fetched.AverageRating
	res.ReviewCount = fetched.ReviewCount

	fmt.Fprintln(r.out, "Smoke run completed.")
	r.log.Info("Smoke run completed", "listing_id", res.ListingID, "booking_id", res.BookingID)
	return res, nil
}

func (r *Runner) expectStatus(ctx context.Context, name, path string, who credentials, want string) error {
	var b bookingBody
	if err := r.call(ctx, name, http.MethodPatch, path, who, nil, http.StatusOK, &b); err != nil {
		return err
	}
	if b.Status != want {
		return r.fail(name, fmt.Errorf("status: got %q want %q", b.Status, want))
	}
	return nil
}

// call performs one step and decodes the body into out when the status
// matches.
func (r *Runner) call(ctx context.Context, name, method, path string, who credentials, body any, wantStatus int, out any) error {
	r.step++
	status, raw, err := r.do(ctx, method, path, who, body)
	if err != nil {
		return r.fail(name, err)
	}
	fmt.Fprintf(r.out, "%d. %s %s %s -> %d\n", r.step, name, method, path, status)
	if status != wantStatus {
		return r.fail(name, fmt.Errorf("status %d, want %d: %s", status, wantStatus, strings.TrimSpace(string(raw))))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return r.fail(name, fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

func (r *Runner) do(ctx context.Context, method, path string, who credentials, body any) (int, []byte, error) {
	target := r.cfg.BaseURL + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if who.user != "" {
		req.SetBasicAuth(who.user, who.password)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func (r *Runner) fail(name string, err error) error {
	fmt.Fprintf(r.out, "FAILED: %s: %v\n", name, err)
	r.log.Warn("Smoke step failed", "step", name, "error", err)
	return fmt.Errorf("%s: %w", name, err)
}
