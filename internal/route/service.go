// README: Travel-duration lookups via the Google Maps Directions API.
package route

import (
	"context"
	"fmt"
	"math"
	"time"

	"googlemaps.github.io/maps"

	"tripkit/internal/types"
)

// Mode selects a travel mode for a duration lookup.
type Mode string

const (
	ModeWalk    Mode = "walk"
	ModeDrive   Mode = "drive"
	ModeTransit Mode = "transit"
)

// Service answers "how many minutes from A to B by mode" against the
// Directions API.
type Service struct {
	client *maps.Client
}

// NewService creates a Service with the given API key.
func NewService(apiKey string) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client}, nil
}

// Minutes returns the travel duration in whole minutes from from to to.
func (s *Service) Minutes(ctx context.Context, mode Mode, from, to types.Point) (int, error) {
	tm, err := travelMode(mode)
	if err != nil {
		return 0, err
	}

	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", from.Lat, from.Lng),
		Destination: fmt.Sprintf("%f,%f", to.Lat, to.Lng),
		Mode:        tm,
		Language:    "ko",
		Region:      "KR",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("directions api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no %s route from %v to %v", mode, from, to)
	}

	return durationMinutes(routes[0].Legs[0].Duration), nil
}

func travelMode(mode Mode) (maps.Mode, error) {
	switch mode {
	case ModeWalk:
		return maps.TravelModeWalking, nil
	case ModeDrive:
		return maps.TravelModeDriving, nil
	case ModeTransit:
		return maps.TravelModeTransit, nil
	default:
		return "", fmt.Errorf("unknown travel mode %q", mode)
	}
}

func durationMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
