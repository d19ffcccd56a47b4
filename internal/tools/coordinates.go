package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/client"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/respond"
)

// CoordinatesTool exposes place-name geocoding, including the same two-step
// fallback the interactive pipeline uses.
type CoordinatesTool struct {
	geocoder client.GeocodeAPI
}

var _ Executor = (*CoordinatesTool)(nil)

func NewCoordinatesTool(geocoder client.GeocodeAPI) *CoordinatesTool {
	return &CoordinatesTool{geocoder: geocoder}
}

func (t *CoordinatesTool) Definition() Tool {
	return NewFunctionTool(
		"get_coordinates",
		"Get latitude and longitude for a place name.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"place_name": {
					Type:        "string",
					Description: "Name of the place (e.g. \"Paris\", \"Tokyo\")",
				},
			},
			Required: []string{"place_name"},
		},
	)
}

func (t *CoordinatesTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		PlaceName string `json:"place_name"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments for get_coordinates: %w", err)
	}

	name := strings.TrimSpace(args.PlaceName)
	if name == "" {
		return "Error: place_name cannot be empty.", nil
	}

	place, err := t.geocoder.Resolve(ctx, name)
	if err != nil {
		if errors.Is(err, client.ErrPlaceNotFound) {
			return respond.CoordinatesNotFound(name), nil
		}
		return fmt.Sprintf("Error fetching coordinates for %s", name), nil
	}
	return respond.Coordinates(place), nil
}
