// Package openweather implements the outbound OpenWeatherMap client.
package openweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mkhalid12/weather-dashboard/internal/weather"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	currentPath    = "/weather"
	forecastPath   = "/forecast"
)

// Client fetches current conditions and the 5-day forecast from
// OpenWeatherMap. Each endpoint sits behind its own circuit breaker; there
// are no retries, a failed call is terminal for the user action that issued
// it. The caller's http.Client supplies the request timeout.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client

	currentCB  *gobreaker.CircuitBreaker
	forecastCB *gobreaker.CircuitBreaker
}

// New creates a Client. The apiKey is required for every call; a missing key
// surfaces as a fetch failure rather than a panic.
func New(httpClient *http.Client, apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		http:       httpClient,
		currentCB:  newBreaker("openweather-current"),
		forecastCB: newBreaker("openweather-forecast"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// An unknown city is a valid provider answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, weather.ErrCityNotFound)
		},
	})
}

// FetchCurrent fetches and normalizes current conditions for a city.
func (c *Client) FetchCurrent(ctx context.Context, city string) (weather.WeatherRecord, error) {
	body, err := c.get(ctx, c.currentCB, currentPath, city)
	if err != nil {
		return weather.WeatherRecord{}, err
	}

	rec, err := weather.NormalizeCurrent(body)
	if err != nil {
		return weather.WeatherRecord{}, fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
	}
	return rec, nil
}

// FetchForecast fetches and normalizes the 3-hourly forecast list for a city.
func (c *Client) FetchForecast(ctx context.Context, city string) ([]weather.ForecastEntry, error) {
	body, err := c.get(ctx, c.forecastCB, forecastPath, city)
	if err != nil {
		return nil, err
	}

	entries, err := weather.NormalizeForecast(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, cb *gobreaker.CircuitBreaker, path, city string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: openweather api key is not configured", weather.ErrUnavailable)
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())

	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, weather.ErrCityNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		if errors.Is(err, weather.ErrCityNotFound) {
			return nil, weather.ErrCityNotFound
		}
		return nil, fmt.Errorf("%w: %v", weather.ErrUnavailable, err)
	}

	return result.([]byte), nil
}
