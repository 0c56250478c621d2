package weather

import (
	"context"
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/kelvins/geocoder"
)

var (
	// ErrCityNotFound is returned when the provider does not know the city.
	ErrCityNotFound = errors.New("city not found")
	// ErrUnavailable covers every other current-weather failure: network
	// errors, unexpected statuses, malformed payloads.
	ErrUnavailable = errors.New("could not retrieve weather data")
)

// Client is the outbound weather-provider contract.
type Client interface {
	FetchCurrent(ctx context.Context, city string) (WeatherRecord, error)
	FetchForecast(ctx context.Context, city string) ([]ForecastEntry, error)
}

// HistoryStore receives one row per successful query. Append is the only
// operation the pipeline needs.
type HistoryStore interface {
	Append(rec WeatherRecord) (int64, error)
}

// Service runs the dashboard pipeline: fetch, normalize, persist, derive.
type Service struct {
	client  Client
	history HistoryStore
	geocode bool // coordinate lookup for the map panel is configured
}

// NewService creates a new Service.
func NewService(client Client, history HistoryStore, geocodeEnabled bool) *Service {
	return &Service{
		client:  client,
		history: history,
		geocode: geocodeEnabled,
	}
}

// GetWeather runs one full dashboard query in strict sequence: current fetch,
// forecast fetch, history append, insight derivation, map lookup. Only a
// failed current fetch is terminal. A forecast failure omits the forecast
// section, a history failure is logged and the fetched weather still renders,
// and a geocoding failure leaves the map keyed by the city string alone.
func (s *Service) GetWeather(ctx context.Context, city string) (Report, error) {
	current, err := s.client.FetchCurrent(ctx, city)
	if err != nil {
		return Report{}, err
	}
	current.QueriedAt = time.Now().UTC()

	forecast, forecastErr := s.client.FetchForecast(ctx, city)
	if forecastErr != nil {
		log.Printf("forecast fetch failed for %s: %v", city, forecastErr)
	}

	if _, err := s.history.Append(current); err != nil {
		log.Printf("history append failed for %s: %v", current.City, err)
	}

	report := Report{
		Current:   current,
		Advisory:  DeriveAdvisory(current.TemperatureC, current.HumidityPct, current.WindSpeedMPS),
		TravelTip: RecommendTravel(current.Condition),
		Metrics:   metricsOverview(current),
		Map:       s.mapView(city, current.Country),
	}
	if forecastErr == nil {
		report.Forecast = forecast
	}

	return report, nil
}

// metricsOverview flattens the record into the metric/value series the
// dashboard's overview chart consumes.
func metricsOverview(rec WeatherRecord) []MetricPoint {
	return []MetricPoint{
		{Metric: "Temperature", Value: rec.TemperatureC},
		{Metric: "Humidity", Value: rec.HumidityPct},
		{Metric: "Wind Speed", Value: rec.WindSpeedMPS},
		{Metric: "Pressure", Value: rec.PressureHpa},
	}
}

// mapView builds the embed URL the dashboard iframes, keyed by the literal
// city string, and resolves coordinates when geocoding is configured.
func (s *Service) mapView(city, country string) MapView {
	view := MapView{
		EmbedURL: "https://www.google.com/maps?q=" + url.QueryEscape(city) + "&output=embed",
	}
	if !s.geocode {
		return view
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: city, Country: country})
	if err != nil {
		log.Printf("geocoding failed for %s: %v", city, err)
		return view
	}
	view.Latitude = &loc.Latitude
	view.Longitude = &loc.Longitude
	return view
}
