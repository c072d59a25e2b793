package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1M", 1 << 20},
		{"100M", 100 << 20},
		{"512K", 512 << 10},
		{"1G", 1 << 30},
		{"2048", 2048},
		{"", 1 << 20},
		{"garbage", 1 << 20},
	}

	for _, tt := range tests {
		if got := parseLimit(tt.in); got != tt.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBodyLimit_UnderLimit(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader("small body"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := BodyLimit("1M", "100M", "/api/v1/mammograms")
	if err := mw(handler)(c); err != nil {
		t.Fatalf("small body rejected: %v", err)
	}
}

func TestBodyLimit_ContentLengthRejected(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader(strings.Repeat("x", 2048)))
	req.ContentLength = 2048
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := BodyLimit("1K", "100M", "/api/v1/mammograms")
	err := mw(handler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %v", err)
	}
}

func TestBodyLimit_UploadRouteGetsLargerLimit(t *testing.T) {
	e := echo.New()
	body := strings.Repeat("x", 2048)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mammograms", strings.NewReader(body))
	req.ContentLength = int64(len(body))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	// 2 KB body exceeds the 1 KB default but fits the upload limit.
	mw := BodyLimit("1K", "100M", "/api/v1/mammograms")
	if err := mw(handler)(c); err != nil {
		t.Fatalf("upload body rejected: %v", err)
	}
}

func TestBodyLimit_StreamingRejection(t *testing.T) {
	e := echo.New()
	// No Content-Length; the limit has to trip during the read.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader(strings.Repeat("x", 4096)))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		buf := make([]byte, 8192)
		for {
			if _, err := c.Request().Body.Read(buf); err != nil {
				return err
			}
		}
	}

	mw := BodyLimit("1K", "100M", "/api/v1/mammograms")
	err := mw(handler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413 from streaming read, got %v", err)
	}
}
