package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rentals-backend/internal/data/repos/testutil"
)

func TestNewWithDBServesRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conn := testutil.DB(t)
	cfg := DefaultConfig()
	cfg.MetricsEnabled = true

	a, err := NewWithDB(testutil.Logger(t), cfg, conn)
	if err != nil {
		t.Fatalf("NewWithDB: %v", err)
	}

	ctx := context.Background()
	host := testutil.SeedUser(t, ctx, conn, "host")
	testutil.SeedListing(t, ctx, conn, host.ID)

	for _, path := range []string{"/healthcheck", "/metrics", "/api/listings/"} {
		rec := httptest.NewRecorder()
		a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: got %d body=%s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestNewWithDBRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPageSize = 0
	if _, err := NewWithDB(testutil.Logger(t), cfg, testutil.DB(t)); err == nil {
		t.Fatalf("expected config error")
	}
}
