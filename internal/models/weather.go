package models

// ResolvedPlace is a geocoded location: coordinates plus a human display name.
// DisplayName carries the country when the provider returned one
// ("Dubai, United Arab Emirates").
type ResolvedPlace struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
	CountryCode string  `json:"countryCode,omitempty"`
}

// DailyRecord is one day of forecast aggregates. Sunrise and Sunset are the
// provider's raw ISO datetimes; the time-only split happens at render time.
type DailyRecord struct {
	Date     string  `json:"date"`
	TempMaxC float64 `json:"tempMaxC"`
	TempMinC float64 `json:"tempMinC"`
	PrecipMM float64 `json:"precipMm"`
	WindKPH  float64 `json:"windKph"`
	UVIndex  float64 `json:"uvIndex"`
	Sunrise  string  `json:"sunrise"`
	Sunset   string  `json:"sunset"`
}

// ForecastSeries is the chronologically ordered daily forecast, index 0 being
// today. The full provider series is kept; display caps are the renderer's job.
type ForecastSeries []DailyRecord

// AlertRecord is one active alert for a region. Missing provider fields are
// substituted with explicit placeholders at fetch time, so every field here is
// always non-empty.
type AlertRecord struct {
	Event        string `json:"event"`
	Area         string `json:"area"`
	Severity     string `json:"severity"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}
