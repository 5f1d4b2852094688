package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/listings/?"+rawQuery, nil)
	return c
}

func TestPaginationParse(t *testing.T) {
	p := Pagination{DefaultSize: 20, MaxSize: 100}
	cases := []struct {
		name    string
		query   string
		number  int
		size    int
		offset  int
		invalid bool
	}{
		{name: "defaults", query: "", number: 1, size: 20, offset: 0},
		{name: "page and size", query: "page=3&page_size=5", number: 3, size: 5, offset: 10},
		{name: "size capped", query: "page_size=1000", number: 1, size: 100, offset: 0},
		{name: "bad size ignored", query: "page_size=abc", number: 1, size: 20, offset: 0},
		{name: "zero page", query: "page=0", invalid: true},
		{name: "not a number", query: "page=last", invalid: true},
		{name: "offset would overflow", query: "page=9223372036854775807&page_size=40", invalid: true},
		{name: "beyond int64", query: "page=99999999999999999999", invalid: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pr, err := p.parse(queryContext(tc.query))
			if tc.invalid {
				if !errs.IsCode(err, errs.CodeNotFound) {
					t.Fatalf("expected not found, got %v (%+v)", err, pr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if pr.Number != tc.number || pr.Size != tc.size || pr.Offset != tc.offset || pr.Limit != tc.size {
				t.Fatalf("got %+v", pr)
			}
		})
	}
}

func TestPageRequestCheck(t *testing.T) {
	p := Pagination{DefaultSize: 2, MaxSize: 10}
	pr, err := p.parse(queryContext("page=3"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := pr.check(5); err != nil {
		t.Fatalf("page 3 of 5 rows should exist: %v", err)
	}
	if err := pr.check(4); !errs.IsCode(err, errs.CodeNotFound) {
		t.Fatalf("page 3 of 4 rows should be invalid, got %v", err)
	}

	first, _ := p.parse(queryContext(""))
	if err := first.check(0); err != nil {
		t.Fatalf("first page of an empty set is valid: %v", err)
	}
}
