package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhalid12/weather-dashboard/internal/weather"
)

const currentFixture = `{
	"name": "London",
	"main": {"temp": 15.0, "humidity": 60, "pressure": 1012},
	"weather": [{"main": "Clouds", "description": "broken clouds"}],
	"wind": {"speed": 5.0},
	"visibility": 5000,
	"sys": {"sunrise": 1700000000, "sunset": 1700030000, "country": "GB"}
}`

const forecastFixture = `{
	"list": [
		{"dt_txt": "2026-09-01 12:00:00", "main": {"temp": 16.2}, "weather": [{"description": "light rain"}]}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(srv.Client(), "test-key")
	c.baseURL = srv.URL
	return c
}

func TestFetchCurrent(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(currentFixture))
	})

	rec, err := c.FetchCurrent(context.Background(), "London")
	require.NoError(t, err)

	assert.Equal(t, "/weather", gotPath)
	assert.Contains(t, gotQuery, "q=London")
	assert.Contains(t, gotQuery, "appid=test-key")
	assert.Contains(t, gotQuery, "units=metric")

	assert.Equal(t, "London", rec.City)
	assert.Equal(t, weather.ConditionClouds, rec.Condition)
	assert.Equal(t, "5.0 km", rec.Visibility)
}

func TestFetchCurrentNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	})

	_, err := c.FetchCurrent(context.Background(), "Nowhereistan")
	assert.ErrorIs(t, err, weather.ErrCityNotFound)
}

func TestFetchCurrentServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.FetchCurrent(context.Background(), "London")
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestFetchCurrentMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "London"`))
	})

	_, err := c.FetchCurrent(context.Background(), "London")
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestFetchCurrentTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(currentFixture))
	}))
	t.Cleanup(srv.Close)

	c := New(&http.Client{Timeout: 20 * time.Millisecond}, "test-key")
	c.baseURL = srv.URL

	_, err := c.FetchCurrent(context.Background(), "London")
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestFetchCurrentMissingAPIKey(t *testing.T) {
	c := New(http.DefaultClient, "")

	_, err := c.FetchCurrent(context.Background(), "London")
	assert.ErrorIs(t, err, weather.ErrUnavailable)
}

func TestFetchForecast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		w.Write([]byte(forecastFixture))
	})

	entries, err := c.FetchForecast(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Light Rain", entries[0].Description)
}

// After enough consecutive failures the breaker opens and stops sending
// requests upstream; callers still see the generic fetch error.
func TestFetchCurrentCircuitOpens(t *testing.T) {
	var hits int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	for i := 0; i < 10; i++ {
		_, err := c.FetchCurrent(context.Background(), "London")
		assert.ErrorIs(t, err, weather.ErrUnavailable)
	}
	assert.Less(t, hits, 10, "open circuit should short-circuit upstream calls")
}
