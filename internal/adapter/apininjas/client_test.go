package apininjas

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/V4T54L/contact-hub/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Validate(t *testing.T) {
	t.Run("Successful Validation", func(t *testing.T) {
		var gotKey, gotNumber string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get(apiKeyHeader)
			gotNumber = r.URL.Query().Get("number")
			w.Write([]byte(`{"is_valid": true, "country": "Spain", "timezones": ["Europe/Madrid", "Europe/Ceuta"]}`))
		}))
		defer srv.Close()

		client := NewClient("secret", srv.URL, srv.URL, 5*time.Second, testLogger(), nil)
		info, err := client.Validate(context.Background(), "+34600111222")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotKey != "secret" {
			t.Errorf("expected API key header, got %q", gotKey)
		}
		if gotNumber != "+34600111222" {
			t.Errorf("number query param: got %q", gotNumber)
		}
		if !info.Valid {
			t.Error("expected is_valid to be true")
		}
		if info.Country != "Spain" {
			t.Errorf("country: got %q", info.Country)
		}
		if len(info.Timezones) != 2 || info.Timezones[0] != "Europe/Madrid" {
			t.Errorf("timezones: got %v", info.Timezones)
		}
	})

	t.Run("Non-200 Status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusPaymentRequired)
		}))
		defer srv.Close()

		client := NewClient("secret", srv.URL, srv.URL, 5*time.Second, testLogger(), nil)
		_, err := client.Validate(context.Background(), "+34600111222")
		if !domain.IsKind(err, domain.KindUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})

	t.Run("Malformed Body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"is_valid":`))
		}))
		defer srv.Close()

		client := NewClient("secret", srv.URL, srv.URL, 5*time.Second, testLogger(), nil)
		_, err := client.Validate(context.Background(), "+34600111222")
		if !domain.IsKind(err, domain.KindUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})

	t.Run("Unreachable Service", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		client := NewClient("secret", srv.URL, srv.URL, time.Second, testLogger(), nil)
		_, err := client.Validate(context.Background(), "+34600111222")
		if !domain.IsKind(err, domain.KindUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})
}

func TestClient_CurrentTime(t *testing.T) {
	t.Run("Successful Lookup", func(t *testing.T) {
		var gotTimezone string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotTimezone = r.URL.Query().Get("timezone")
			w.Write([]byte(`{"datetime": "2024-01-01T10:00:00"}`))
		}))
		defer srv.Close()

		client := NewClient("secret", srv.URL, srv.URL, 5*time.Second, testLogger(), nil)
		datetime, err := client.CurrentTime(context.Background(), "Europe/Madrid")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotTimezone != "Europe/Madrid" {
			t.Errorf("timezone query param: got %q", gotTimezone)
		}
		if datetime != "2024-01-01T10:00:00" {
			t.Errorf("datetime: got %q, want the response verbatim", datetime)
		}
	})

	t.Run("Non-200 Status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad timezone", http.StatusBadRequest)
		}))
		defer srv.Close()

		client := NewClient("secret", srv.URL, srv.URL, 5*time.Second, testLogger(), nil)
		_, err := client.CurrentTime(context.Background(), "Nowhere/Town")
		if !domain.IsKind(err, domain.KindUpstream) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})
}
