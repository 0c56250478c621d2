package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/mkhalid12/weather-dashboard/internal/store"
	"github.com/mkhalid12/weather-dashboard/internal/weather"
)

type stubClient struct {
	current    weather.WeatherRecord
	currentErr error
}

func (c *stubClient) FetchCurrent(ctx context.Context, city string) (weather.WeatherRecord, error) {
	if c.currentErr != nil {
		return weather.WeatherRecord{}, c.currentErr
	}
	return c.current, nil
}

func (c *stubClient) FetchForecast(ctx context.Context, city string) ([]weather.ForecastEntry, error) {
	return nil, weather.ErrUnavailable
}

func newTestApp(t *testing.T, client weather.Client) (*fiber.App, *store.HistoryStore) {
	t.Helper()

	history, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history store: %v", err)
	}
	t.Cleanup(func() { history.Close() })

	app := fiber.New()
	RegisterRoutes(app, weather.NewService(client, history, false), history)
	return app, history
}

// TestWeatherCityValidation verifies that a missing city query parameter is
// rejected before any fetch happens.
func TestWeatherCityValidation(t *testing.T) {
	app, _ := newTestApp(t, &stubClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestWeatherSuccessAppendsHistory(t *testing.T) {
	client := &stubClient{
		current: weather.WeatherRecord{
			City:         "London",
			Country:      "GB",
			TemperatureC: 15,
			HumidityPct:  60,
			Description:  "Broken Clouds",
			Condition:    weather.ConditionClouds,
			WindSpeedMPS: 5,
			Visibility:   "5.0 km",
			PressureHpa:  1012,
			Sunrise:      "22:13:20",
			Sunset:       "06:33:20",
		},
	}
	app, history := newTestApp(t, client)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var report weather.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Current.City != "London" {
		t.Fatalf("expected city London, got %q", report.Current.City)
	}
	if report.TravelTip == "" || report.Advisory == "" {
		t.Fatal("expected derived insights in the report")
	}
	if len(report.Forecast) != 0 {
		t.Fatal("forecast section should be omitted when the forecast fetch fails")
	}

	rows, err := history.Recent(10)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(rows) != 1 || rows[0].City != "London" {
		t.Fatalf("expected one London history row, got %+v", rows)
	}
}

func TestWeatherCityNotFound(t *testing.T) {
	app, history := newTestApp(t, &stubClient{currentErr: weather.ErrCityNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Nowhereistan", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	rows, err := history.Recent(10)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("failed lookups must not be logged, got %+v", rows)
	}
}

func TestWeatherFetchFailure(t *testing.T) {
	app, _ := newTestApp(t, &stubClient{currentErr: weather.ErrUnavailable})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

// TestHistoryLimitValidation verifies that the history endpoint rejects
// non-numeric and non-positive limits.
func TestHistoryLimitValidation(t *testing.T) {
	app, _ := newTestApp(t, &stubClient{})

	for _, limit := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit="+limit, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("limit %q: expected status %d, got %d", limit, http.StatusBadRequest, resp.StatusCode)
		}
	}
}
