// README: Itinerary edit pipeline (free-text place names to resolved, timed stops).
package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tripkit/internal/route"
	"tripkit/internal/types"
)

// editEntry is one model-enriched place from the edit reply.
type editEntry struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	EstimatedCost int    `json:"estimatedCost"`
}

// Edit enriches an ordered place-name list via the model, resolves each name,
// and returns the stops that resolved confidently plus their cost total.
// Entries that are blank, unresolvable, or whose resolved name shares no
// substring relationship with the requested name are dropped silently; the
// surviving stops keep request order.
func (s *Service) Edit(ctx context.Context, names []string) (*EditResult, error) {
	raw, err := s.gen.Generate(ctx, buildEditPrompt(names))
	if err != nil {
		return nil, fmt.Errorf("edit itinerary: %w", err)
	}

	entries, err := parseEditEntries(raw)
	if err != nil {
		return nil, fmt.Errorf("edit itinerary: %w", err)
	}

	result := &EditResult{Places: []Stop{}}
	var prev *Stop

	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}

		p, err := s.places.Search(ctx, e.Name, "")
		if err != nil {
			return nil, fmt.Errorf("edit itinerary: resolve %q: %w", e.Name, err)
		}
		if p == nil {
			continue
		}
		// Guard against obviously wrong matches: the resolved name and the
		// requested name must contain one another in at least one direction.
		if !strings.Contains(p.Name, e.Name) && !strings.Contains(e.Name, p.Name) {
			continue
		}

		stop := Stop{
			Name:         e.Name,
			Category:     e.Type,
			Point:        types.Point{Lat: p.Lat, Lng: p.Lng},
			Address:      p.Address,
			Phone:        p.Phone,
			CategoryCode: p.CategoryCode,
			Cost:         e.EstimatedCost,
		}

		// Timings are attempted only when both endpoints carry real
		// coordinates; a route failure here is absorbed with the -1 sentinel
		// instead of aborting the pipeline.
		if prev != nil && prev.Point.Valid() && stop.Point.Valid() {
			stop.Timings = s.editTimings(ctx, prev.Point, stop.Point)
		}

		result.Places = append(result.Places, stop)
		prev = &result.Places[len(result.Places)-1]
		result.TotalEstimatedCost += stop.Cost
	}

	return result, nil
}

func (s *Service) editTimings(ctx context.Context, from, to types.Point) Timings {
	walk, err := s.routes.Minutes(ctx, route.ModeWalk, from, to)
	if err != nil {
		return FailedTimings()
	}
	drive, err := s.routes.Minutes(ctx, route.ModeDrive, from, to)
	if err != nil {
		return FailedTimings()
	}
	transit, err := s.routes.Minutes(ctx, route.ModeTransit, from, to)
	if err != nil {
		return FailedTimings()
	}
	return ComputedTimings(walk, drive, transit)
}

// parseEditEntries accepts either a bare JSON array of place entries or an
// object with a "places" array; any other shape is rejected.
func parseEditEntries(raw string) ([]editEntry, error) {
	var entries []editEntry
	if err := json.Unmarshal([]byte(raw), &entries); err == nil {
		return entries, nil
	}

	var wrapped struct {
		Places json.RawMessage `json:"places"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil || wrapped.Places == nil {
		return nil, ErrInvalidEditResponse
	}
	if err := json.Unmarshal(wrapped.Places, &entries); err != nil {
		return nil, ErrInvalidEditResponse
	}
	return entries, nil
}
