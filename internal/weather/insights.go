package weather

import "strings"

// Advisory fragments. Exactly one temperature bucket is emitted per call;
// humidity and wind fragments are additive, appended in that order.
const (
	adviceHot      = "It's quite hot! Stay hydrated and avoid direct sun exposure. "
	adviceCold     = "It's cold outside! Dress warmly. "
	adviceModerate = "The weather is moderate, great for outdoor activities! "
	adviceHumidity = "High humidity levels detected. It might feel warmer than it actually is. "
	adviceWind     = "Strong winds detected. Be cautious while traveling. "
)

// DeriveAdvisory builds the free-text advisory for a record's temperature,
// humidity and wind readings. Pure function: same inputs, same string.
func DeriveAdvisory(tempC, humidityPct, windSpeedMPS float64) string {
	var b strings.Builder

	switch {
	case tempC > 30:
		b.WriteString(adviceHot)
	case tempC < 10:
		b.WriteString(adviceCold)
	default:
		b.WriteString(adviceModerate)
	}

	if humidityPct > 80 {
		b.WriteString(adviceHumidity)
	}
	if windSpeedMPS > 10 {
		b.WriteString(adviceWind)
	}

	return b.String()
}

var travelTips = map[Condition]string{
	ConditionClear:        "Great day for a picnic or a walk in the park!",
	ConditionClouds:       "Mild weather! A good day for outdoor photography or hiking.",
	ConditionRain:         "Carry an umbrella!",
	ConditionSnow:         "Perfect weather for a cozy indoor day!",
	ConditionThunderstorm: "Better to stay indoors.",
}

const travelTipFallback = "Check weather updates before planning your day!"

// RecommendTravel returns the travel suggestion for a condition category.
// The lookup is an exact match with no case normalization; anything outside
// the table yields the generic fallback.
func RecommendTravel(cond Condition) string {
	if tip, ok := travelTips[cond]; ok {
		return tip
	}
	return travelTipFallback
}
