package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/incubyte/booking/internal/config"
	"github.com/incubyte/booking/internal/platform/db"
	"github.com/incubyte/booking/internal/platform/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		StoreDriver:    config.DriverMemory,
		CORSOrigins:    []string{"*"},
		RequestTimeout: 5 * time.Second,
	}
}

func newTestServer(t *testing.T) (*echo.Echo, *backend) {
	t.Helper()
	b := memoryBackend()
	return newServer(testConfig(), zerolog.Nop(), b, metrics.New()), b
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func booking(start, end string) string {
	return `{"doctor_id":1,"location_id":1,"start_time":"2025-01-06T` + start +
		`","end_time":"2025-01-06T` + end + `","day_of_week":"Monday"}`
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestServer_BookingScenario(t *testing.T) {
	e, _ := newTestServer(t)

	steps := []struct {
		method, path, body string
		status             int
		message            string
	}{
		{http.MethodPost, "/doctors", `{"first_name":"Ada","last_name":"Byron"}`, http.StatusOK, ""},
		{http.MethodPost, "/locations", `{"address":"10 Main St"}`, http.StatusOK, ""},
		{http.MethodPost, "/appointments", booking("10:00:00", "11:00:00"), http.StatusBadRequest, "Invalid doctor or location association."},
		{http.MethodPost, "/availability", booking("09:00:00", "17:00:00"), http.StatusBadRequest, "Doctor is not associated with the selected location."},
		{http.MethodPost, "/locations/associate-doctor-location", `{"doctor_id":1,"location_id":1}`, http.StatusOK, ""},
		{http.MethodPost, "/availability", booking("09:00:00", "17:00:00"), http.StatusOK, ""},
		{http.MethodPost, "/availability", booking("16:00:00", "18:00:00"), http.StatusBadRequest, "Doctor is already available for that time slot"},
		{http.MethodPost, "/appointments", booking("12:30:00", "13:00:00"), http.StatusOK, ""},
		{http.MethodPost, "/appointments", booking("12:00:00", "12:30:00"), http.StatusOK, ""},
		{http.MethodPost, "/appointments", booking("12:15:00", "12:45:00"), http.StatusBadRequest, "Time slot already booked."},
		{http.MethodPost, "/appointments", booking("17:00:00", "17:30:00"), http.StatusBadRequest, "No matching availability."},
	}

	for i, s := range steps {
		rec := do(e, s.method, s.path, s.body)
		if rec.Code != s.status {
			t.Fatalf("step %d %s %s: expected %d, got %d (%s)", i, s.method, s.path, s.status, rec.Code, rec.Body.String())
		}
		if s.message != "" {
			if got := errorMessage(t, rec); got != s.message {
				t.Errorf("step %d: expected message %q, got %q", i, s.message, got)
			}
		}
	}

	rec := do(e, http.MethodGet, "/appointments/doctor/1", "")
	var appts []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &appts); err != nil {
		t.Fatalf("decode appointments: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}
	if appts[0]["start_time"] != "2025-01-06T12:00:00" {
		t.Errorf("expected appointments ordered by start, got %v", appts[0]["start_time"])
	}

	rec = do(e, http.MethodDelete, "/locations/deassociate-doctor-location?doctor_id=1&location_id=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("deassociate: expected 200, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/appointments/doctor/1", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected appointments to go with the association, got %s", rec.Body.String())
	}
	rec = do(e, http.MethodGet, "/availability/doctor/1", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected availability to go with the association, got %s", rec.Body.String())
	}
}

func TestServer_NotFoundIsEmpty(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/doctors/99", "/locations/99", "/appointments/99", "/availability/99"} {
		rec := do(e, http.MethodGet, path, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Errorf("%s: expected empty body, got %q", path, rec.Body.String())
		}
	}
}

func TestServer_TrailingSlash(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/doctors/", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with trailing slash, got %d", rec.Code)
	}
}

func TestServer_Health(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected /health response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/health/db", "")
	var resp db.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || resp.Driver != config.DriverMemory || resp.Pool != nil {
		t.Errorf("unexpected /health/db response %d %+v", rec.Code, resp)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Error("expected a request id on every response")
	}
}

func TestServer_Metrics(t *testing.T) {
	e, _ := newTestServer(t)

	do(e, http.MethodPost, "/doctors", `{"first_name":"Ada","last_name":"Byron"}`)
	do(e, http.MethodPost, "/locations", `{"address":"10 Main St"}`)
	do(e, http.MethodPost, "/locations/associate-doctor-location", `{"doctor_id":1,"location_id":1}`)
	do(e, http.MethodPost, "/availability", booking("09:00:00", "17:00:00"))

	rec := do(e, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`booking_validations_total{outcome="created",resource="availability"} 1`,
		`booking_http_requests_total{method="POST",route="/doctors",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics to contain %q", want)
		}
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	b := memoryBackend()
	e := newServer(testConfig(), zerolog.Nop(), b, nil)

	if rec := do(e, http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without metrics, got %d", rec.Code)
	}
}

func TestSQLiteBackend_MigrateAndSeed(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "booking.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	b := sqliteBackend(sqlDB)
	defer b.close()

	if _, err := b.migrator.Up(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	first, err := seedDemo(ctx, b)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	second, err := seedDemo(ctx, b)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if *first != *second {
		t.Errorf("expected seeding to be idempotent, got %+v then %+v", first, second)
	}

	slots, err := b.scheduling.ListAvailability(ctx, first.JosephLister)
	if err != nil {
		t.Fatalf("list availability: %v", err)
	}
	if len(slots) != 1 || slots[0].DayOfWeek != "Monday" {
		t.Errorf("expected the Monday demo slot, got %+v", slots)
	}
}

func TestRunServer_InvalidConfig(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	err := runServer()
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("expected a config error, got %v", err)
	}
}
