package smoke

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rentals-backend/internal/app"
	"github.com/yungbote/rentals-backend/internal/data/repos/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedUser(t, ctx, conn, "host")
	testutil.SeedUser(t, ctx, conn, "guest")

	a, err := app.NewWithDB(testutil.Logger(t), app.DefaultConfig(), conn)
	if err != nil {
		t.Fatalf("NewWithDB: %v", err)
	}
	srv := httptest.NewServer(a.Router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunnerCompletesScenario(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer
	r := NewRunner(testutil.Logger(t), Config{
		BaseURL:       srv.URL + "/api/",
		HostUser:      "host",
		HostPassword:  testutil.DefaultPassword,
		GuestUser:     "guest",
		GuestPassword: testutil.DefaultPassword,
	}, srv.Client(), &out)

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	if res.ListingID == "" || res.BookingID == "" || res.ReviewID == "" {
		t.Fatalf("missing ids: %+v", res)
	}
	if res.ReviewCount != 1 || res.AverageRating != 5 {
		t.Fatalf("aggregates: %+v", res)
	}
	if !strings.Contains(out.String(), "confirm booking as guest PATCH") {
		t.Fatalf("progress output missing step:\n%s", out.String())
	}
}

func TestRunnerStopsOnUnexpectedStatus(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer
	r := NewRunner(testutil.Logger(t), Config{
		BaseURL:       srv.URL + "/api",
		HostUser:      "host",
		HostPassword:  "wrong-password",
		GuestUser:     "guest",
		GuestPassword: testutil.DefaultPassword,
	}, srv.Client(), &out)

	_, err := r.Run(context.Background())
	if err == nil {
		t.Fatalf("expected failure with bad host credentials")
	}
	if !strings.Contains(err.Error(), "create listing as host") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "FAILED") {
		t.Fatalf("failure not reported:\n%s", out.String())
	}
}
