package weather

import (
	"time"
)

// Condition is the provider's top-level weather category (weather[0].main in
// the OpenWeatherMap payload). It is kept distinct from the title-cased display
// description: the travel-tip table is keyed on this exact string, and full
// descriptions like "Broken Clouds" would silently fall through to the
// fallback tip.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionSnow         Condition = "Snow"
	ConditionThunderstorm Condition = "Thunderstorm"
)

// WeatherRecord is the normalized, immutable snapshot of current conditions
// for one query. A record is only ever built from a fully-parseable provider
// response; a partial or malformed response fails the whole fetch instead of
// producing a partially-filled record.
type WeatherRecord struct {
	City         string    `json:"city"`
	Country      string    `json:"country"`
	TemperatureC float64   `json:"temperatureC"`
	HumidityPct  float64   `json:"humidityPercent"`
	Description  string    `json:"description"` // title-cased, for display
	Condition    Condition `json:"condition"`   // raw provider category
	WindSpeedMPS float64   `json:"windSpeedMps"`
	Visibility   string    `json:"visibility"` // "<km> km" or "N/A"
	PressureHpa  float64   `json:"pressureHpa"`
	Sunrise      string    `json:"sunrise"`   // HH:MM:SS, UTC
	Sunset       string    `json:"sunset"`    // HH:MM:SS, UTC
	QueriedAt    time.Time `json:"queriedAt"` // set once per user action, UTC
}

// ForecastEntry is one 3-hourly slot of the provider's 5-day forecast.
// Forecast data is independent of the current-weather record; a failed
// forecast fetch never invalidates a successful current fetch.
type ForecastEntry struct {
	DateTime     string  `json:"dateTime"`
	TemperatureC float64 `json:"temperatureC"`
	Description  string  `json:"description"`
}

// MetricPoint is one row of the metrics-overview series the dashboard charts.
type MetricPoint struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// MapView carries what the dashboard needs to embed a map for the queried
// city. Coordinates are present only when geocoding is configured and the
// lookup succeeded.
type MapView struct {
	EmbedURL  string   `json:"embedUrl"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Report is the full result of one dashboard query.
type Report struct {
	Current   WeatherRecord   `json:"current"`
	Advisory  string          `json:"advisory"`
	TravelTip string          `json:"travelTip"`
	Metrics   []MetricPoint   `json:"metrics"`
	Forecast  []ForecastEntry `json:"forecast,omitempty"`
	Map       MapView         `json:"map"`
}
