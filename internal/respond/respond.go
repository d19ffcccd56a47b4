// Package respond turns forecast and alert data into the final
// natural-language message. Everything here is a pure function: identical
// input yields a byte-identical message.
package respond

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/models"
)

// Fixed user-facing failure strings. Every pipeline failure renders as one of
// these rather than an error detail, since text is the only output channel.
const (
	MsgNoPlace             = "I couldn't identify a city name in your question. Please ask like: 'What's the weather in Paris?'"
	MsgForecastUnavailable = "Could not fetch global forecast data."
	MsgAlertsUnavailable   = "Unable to fetch alerts or no alerts found."
	MsgNoActiveAlerts      = "No active alerts for this state."
)

// outlookDays is how many days beyond today the short outlook covers.
const outlookDays = 3

// tagPattern matches angle-bracket markup. Upstream text fields are free-form
// and must never inject structural markup into the final message.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// PlaceNotFound is the answer when geocoding failed after both fallback attempts.
func PlaceNotFound(name string) string {
	return fmt.Sprintf("Sorry, I couldn't find weather data for '%s'. Please check the city name and try again.", name)
}

// Forecast renders the full conversational answer for a resolved place:
// summary paragraph, detailed fields for today, and a short multi-day outlook.
func Forecast(place models.ResolvedPlace, series models.ForecastSeries) string {
	if len(series) == 0 {
		return MsgForecastUnavailable
	}
	today := series[0]

	var b strings.Builder
	b.WriteString(summary(place.DisplayName, today))
	b.WriteString("\n\n---\n\n")
	b.WriteString(fmt.Sprintf("**Detailed Weather Report for %s**\n\n", place.DisplayName))
	b.WriteString(fmt.Sprintf("**Date**: %s\n\n", today.Date))
	b.WriteString("**Today's Forecast:**\n\n")
	b.WriteString(fmt.Sprintf("* **Temperature**: Max %s°C / Min %s°C\n", num(today.TempMaxC), num(today.TempMinC)))
	b.WriteString(fmt.Sprintf("* **Wind Speed**: %s km/h\n", num(today.WindKPH)))
	b.WriteString(fmt.Sprintf("* **Precipitation**: %s mm\n", num(today.PrecipMM)))
	b.WriteString(fmt.Sprintf("* **UV Index**: %s\n", num(today.UVIndex)))
	b.WriteString(fmt.Sprintf("* **Sunrise**: %s\n", timeOfDay(today.Sunrise)))
	b.WriteString(fmt.Sprintf("* **Sunset**: %s\n", timeOfDay(today.Sunset)))

	if len(series) > 1 {
		b.WriteString("\n**3-Day Forecast:**\n")
		for i := 1; i <= outlookDays && i < len(series); i++ {
			d := series[i]
			b.WriteString(fmt.Sprintf("\n**%s**: %s°C / %s°C, Wind: %s km/h", d.Date, num(d.TempMaxC), num(d.TempMinC), num(d.WindKPH)))
		}
	}

	return Sanitize(b.String())
}

// summary is the one-paragraph conversational opener. The precipitation
// sentence branches on > 0 (non-positive values take the no-rain branch); the
// UV clause has three tiers (> 6, > 3, else).
func summary(displayName string, today models.DailyRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hello! Here's the weather update for %s. ", displayName))
	b.WriteString(fmt.Sprintf("Today's temperature will range from a low of %s°C to a high of %s°C. ", num(today.TempMinC), num(today.TempMaxC)))

	if today.PrecipMM > 0 {
		b.WriteString(fmt.Sprintf("You can expect some precipitation today, with about %smm of rainfall, so don't forget your umbrella! ", num(today.PrecipMM)))
	} else {
		b.WriteString("Good news - no rain is expected today, so you can leave your umbrella at home! ")
	}

	b.WriteString(fmt.Sprintf("The wind will be blowing at %s km/h, and the UV index is %s, ", num(today.WindKPH), num(today.UVIndex)))
	switch {
	case today.UVIndex > 6:
		b.WriteString("so make sure to wear sunscreen if you're heading outdoors. ")
	case today.UVIndex > 3:
		b.WriteString("so some sun protection would be wise. ")
	default:
		b.WriteString("so UV exposure is minimal today. ")
	}

	b.WriteString(fmt.Sprintf("Have a great day in %s!", displayName))
	return b.String()
}

// ForecastDetail renders up to maxDays per-day field blocks. This is the tool
// contract's forecast output; the retrieval layer never truncates, the cap is
// applied here.
func ForecastDetail(series models.ForecastSeries, maxDays int) string {
	if len(series) == 0 {
		return MsgForecastUnavailable
	}
	if maxDays > 0 && len(series) > maxDays {
		series = series[:maxDays]
	}
	blocks := make([]string, 0, len(series))
	for _, d := range series {
		blocks = append(blocks, dayBlock(d))
	}
	return Sanitize(strings.Join(blocks, "\n\n"))
}

func dayBlock(d models.DailyRecord) string {
	return fmt.Sprintf("--- Date: %s ---\n"+
		"* Temperature: Max %s°C / Min %s°C\n"+
		"* Wind Speed: %s km/h\n"+
		"* Precipitation: %s mm\n"+
		"* UV Index: %s\n"+
		"* Sunrise: %s\n"+
		"* Sunset: %s",
		d.Date, num(d.TempMaxC), num(d.TempMinC), num(d.WindKPH), num(d.PrecipMM), num(d.UVIndex),
		timeOfDay(d.Sunrise), timeOfDay(d.Sunset))
}

// Alerts renders each record as a fixed five-line block, multiple records
// joined by a "---" separator line. Empty input means the provider confirmed
// a clear region, which reads differently from a failed lookup.
func Alerts(records []models.AlertRecord) string {
	if len(records) == 0 {
		return MsgNoActiveAlerts
	}
	blocks := make([]string, 0, len(records))
	for _, a := range records {
		blocks = append(blocks, fmt.Sprintf(
			"Event: %s\nArea: %s\nSeverity: %s\nDescription: %s\nInstructions: %s",
			a.Event, a.Area, a.Severity, a.Description, a.Instructions))
	}
	return Sanitize(strings.Join(blocks, "\n---\n"))
}

// Coordinates renders the single-line geocoding answer for the tool contract.
func Coordinates(place models.ResolvedPlace) string {
	return Sanitize(fmt.Sprintf("Found %s: Latitude %s, Longitude %s",
		place.DisplayName, num(place.Latitude), num(place.Longitude)))
}

// CoordinatesNotFound is the tool-contract answer when geocoding failed.
func CoordinatesNotFound(name string) string {
	return fmt.Sprintf("Could not find coordinates for %s", name)
}

// Sanitize strips angle-bracket markup from a message before it is returned.
func Sanitize(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// timeOfDay extracts the clock portion of an ISO 8601 timestamp
// ("2025-06-01T05:42" becomes "05:42"). Missing values render as "N/A".
func timeOfDay(iso string) string {
	if iso == "" {
		return "N/A"
	}
	if _, after, found := strings.Cut(iso, "T"); found {
		return after
	}
	return iso
}

// num formats floats without trailing zeros ("25.6", "0", "-3.5").
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
