package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase capitalizes each word for display. A fresh Caser per call:
// cases.Caser is stateful and not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// currentPayload mirrors the OpenWeatherMap current-weather response shape.
// Required fields are pointers so a missing key is distinguishable from a
// zero value.
type currentPayload struct {
	Name *string `json:"name"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility"`
	Sys        *struct {
		Sunrise *int64  `json:"sunrise"`
		Sunset  *int64  `json:"sunset"`
		Country *string `json:"country"`
	} `json:"sys"`
}

// NormalizeCurrent converts a raw current-weather payload into a
// WeatherRecord. Any absent required field, or a field of the wrong shape,
// fails the whole record; there is no partial result. The function has no
// hidden state: the same payload always yields the same record.
func NormalizeCurrent(raw []byte) (WeatherRecord, error) {
	var p currentPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return WeatherRecord{}, fmt.Errorf("decode current weather: %w", err)
	}

	switch {
	case p.Name == nil || *p.Name == "":
		return WeatherRecord{}, missingField("name")
	case p.Main == nil:
		return WeatherRecord{}, missingField("main")
	case p.Main.Temp == nil:
		return WeatherRecord{}, missingField("main.temp")
	case p.Main.Humidity == nil:
		return WeatherRecord{}, missingField("main.humidity")
	case p.Main.Pressure == nil:
		return WeatherRecord{}, missingField("main.pressure")
	case len(p.Weather) == 0:
		return WeatherRecord{}, missingField("weather")
	case p.Wind == nil || p.Wind.Speed == nil:
		return WeatherRecord{}, missingField("wind.speed")
	case p.Sys == nil:
		return WeatherRecord{}, missingField("sys")
	case p.Sys.Sunrise == nil:
		return WeatherRecord{}, missingField("sys.sunrise")
	case p.Sys.Sunset == nil:
		return WeatherRecord{}, missingField("sys.sunset")
	case p.Sys.Country == nil:
		return WeatherRecord{}, missingField("sys.country")
	}

	visibility := "N/A"
	if p.Visibility != nil {
		visibility = formatVisibility(*p.Visibility)
	}

	return WeatherRecord{
		City:         *p.Name,
		Country:      *p.Sys.Country,
		TemperatureC: *p.Main.Temp,
		HumidityPct:  *p.Main.Humidity,
		Description:  titleCase(p.Weather[0].Description),
		Condition:    Condition(p.Weather[0].Main),
		WindSpeedMPS: *p.Wind.Speed,
		Visibility:   visibility,
		PressureHpa:  *p.Main.Pressure,
		Sunrise:      clockUTC(*p.Sys.Sunrise),
		Sunset:       clockUTC(*p.Sys.Sunset),
	}, nil
}

// forecastPayload mirrors the 5-day/3-hour forecast response shape.
type forecastPayload struct {
	List []struct {
		DtTxt *string `json:"dt_txt"`
		Main  *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// NormalizeForecast converts a raw forecast payload into a sequence of
// ForecastEntry values, ordered as the provider returned them.
func NormalizeForecast(raw []byte) ([]ForecastEntry, error) {
	var p forecastPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	if p.List == nil {
		return nil, missingField("list")
	}

	entries := make([]ForecastEntry, 0, len(p.List))
	for i, item := range p.List {
		switch {
		case item.DtTxt == nil:
			return nil, missingField(fmt.Sprintf("list[%d].dt_txt", i))
		case item.Main == nil || item.Main.Temp == nil:
			return nil, missingField(fmt.Sprintf("list[%d].main.temp", i))
		case len(item.Weather) == 0:
			return nil, missingField(fmt.Sprintf("list[%d].weather", i))
		}

		entries = append(entries, ForecastEntry{
			DateTime:     *item.DtTxt,
			TemperatureC: *item.Main.Temp,
			Description:  titleCase(item.Weather[0].Description),
		})
	}

	return entries, nil
}

// formatVisibility converts a meters reading to a "<km> km" display string.
// The shortest decimal representation is used, except that whole kilometers
// keep a trailing ".0" (5000m -> "5.0 km") so stored history rows keep the
// format the dashboard always displayed.
func formatVisibility(meters float64) string {
	s := strconv.FormatFloat(meters/1000, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + " km"
}

// clockUTC renders epoch seconds as an HH:MM:SS wall-clock string, fixed to
// UTC regardless of the host timezone.
func clockUTC(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("15:04:05")
}

func missingField(name string) error {
	return fmt.Errorf("missing or invalid field %q", name)
}
