package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/models"
)

// DefaultAlertsBaseURL is the NWS API root for the US alert provider.
const DefaultAlertsBaseURL = "https://api.weather.gov"

// Placeholders for optional provider fields, so every AlertRecord field is
// always present rather than silently omitted.
const (
	alertUnknown        = "Unknown"
	alertNoDescription  = "No description available"
	alertNoInstructions = "No specific instructions provided"
)

// AlertsClient fetches active alerts from the regional (US-only) provider,
// keyed by two-letter region code.
type AlertsClient struct {
	baseURL string
	f       *fetcher
}

func NewAlertsClient(baseURL string, timeout time.Duration, userAgent string) *AlertsClient {
	if baseURL == "" {
		baseURL = DefaultAlertsBaseURL
	}
	return &AlertsClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		f:       newFetcher("alerts", timeout, userAgent, "application/geo+json"),
	}
}

type alertsResponse struct {
	Features []struct {
		Properties struct {
			Event       string `json:"event"`
			AreaDesc    string `json:"areaDesc"`
			Severity    string `json:"severity"`
			Description string `json:"description"`
			Instruction string `json:"instruction"`
		} `json:"properties"`
	} `json:"features"`
}

// ActiveAlerts returns the active alerts for the region in provider order.
// An empty (non-nil) slice means the provider confirmed no active alerts,
// which is distinct from a fetch failure.
func (c *AlertsClient) ActiveAlerts(ctx context.Context, regionCode string) ([]models.AlertRecord, error) {
	code := strings.ToUpper(strings.TrimSpace(regionCode))

	var resp alertsResponse
	u := c.baseURL + "/alerts/active/area/" + url.PathEscape(code)
	if err := c.f.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetch alerts for %s: %w", code, err)
	}

	records := make([]models.AlertRecord, 0, len(resp.Features))
	for _, feat := range resp.Features {
		p := feat.Properties
		records = append(records, models.AlertRecord{
			Event:        orPlaceholder(p.Event, alertUnknown),
			Area:         orPlaceholder(p.AreaDesc, alertUnknown),
			Severity:     orPlaceholder(p.Severity, alertUnknown),
			Description:  orPlaceholder(p.Description, alertNoDescription),
			Instructions: orPlaceholder(p.Instruction, alertNoInstructions),
		})
	}
	return records, nil
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
