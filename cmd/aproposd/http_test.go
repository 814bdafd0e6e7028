package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandleSearchReturnsPages(t *testing.T) {
	s := newTestServer(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/search?db=default&name=foo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := s.handleSearch(c); err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleSearchBadRequestOnUnknownDB(t *testing.T) {
	s := newTestServer(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/search?db=nope&name=foo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := s.handleSearch(c); err != nil {
		t.Fatalf("handleSearch: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleDatabasesListsNames(t *testing.T) {
	s := newTestServer(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/databases", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := s.handleDatabases(c); err != nil {
		t.Fatalf("handleDatabases: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got == "" {
		t.Fatal("expected a non-empty response body")
	}
}
