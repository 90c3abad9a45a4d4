package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type pingFunc func(ctx context.Context, rp *readpref.ReadPref) error

func (f pingFunc) Ping(ctx context.Context, rp *readpref.ReadPref) error { return f(ctx, rp) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		ping     pingFunc
		wantCode int
		wantBody string
	}{
		{
			name:     "database reachable",
			ping:     func(context.Context, *readpref.ReadPref) error { return nil },
			wantCode: http.StatusOK,
			wantBody: `"database":"connected"`,
		},
		{
			name:     "database down",
			ping:     func(context.Context, *readpref.ReadPref) error { return errors.New("no reachable servers") },
			wantCode: http.StatusServiceUnavailable,
			wantBody: `"database":"disconnected"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := healthHandler(tt.ping)(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
