package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/client"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/respond"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/validation"
)

// AlertsTool exposes active-alert lookup by two-letter US region code.
type AlertsTool struct {
	alerts client.AlertsAPI
}

var _ Executor = (*AlertsTool)(nil)

func NewAlertsTool(alerts client.AlertsAPI) *AlertsTool {
	return &AlertsTool{alerts: alerts}
}

func (t *AlertsTool) Definition() Tool {
	return NewFunctionTool(
		"get_alerts",
		"Get active weather alerts for a US state.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"region_code": {
					Type:        "string",
					Description: "Two-letter US state code (e.g. CA, NY)",
				},
			},
			Required: []string{"region_code"},
		},
	)
}

func (t *AlertsTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		RegionCode string `json:"region_code"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments for get_alerts: %w", err)
	}

	code, err := validation.ValidateRegionCode(args.RegionCode)
	if err != nil {
		return fmt.Sprintf("Error: region_code must be a two-letter US state code. Received: %s", args.RegionCode), nil
	}

	records, err := t.alerts.ActiveAlerts(ctx, code)
	if err != nil {
		return respond.MsgAlertsUnavailable, nil
	}
	return respond.Alerts(records), nil
}
