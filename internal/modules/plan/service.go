// README: Itinerary generation pipeline (draft, resolve, time, cost, assemble).
package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tripkit/internal/kakao"
	"tripkit/internal/route"
	"tripkit/internal/types"
)

var (
	// ErrPastStartDate rejects requests whose start date lies before today.
	ErrPastStartDate = errors.New("start date is before today")
	// ErrInvalidEditResponse reports an edit-model reply that is neither a
	// place array nor an object carrying one.
	ErrInvalidEditResponse = errors.New("edit response must be a place array or carry a \"places\" array")
)

// TextGenerator is the slice of the Gemini client the pipelines consume.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateDocument(ctx context.Context, prompt string, v any) error
}

// PlaceResolver is the slice of the Kakao client the pipelines consume.
type PlaceResolver interface {
	Search(ctx context.Context, keyword, categoryCode string) (*kakao.Place, error)
	SearchNearCoord(ctx context.Context, keyword string, lat, lng float64, radius int) (*kakao.Place, error)
	TopByCategory(ctx context.Context, lat, lng float64, categoryCode string, limit int) ([]kakao.Place, error)
	ResolveGenerated(ctx context.Context, generatedName, locationHint, categoryCode string) (*kakao.Place, error)
}

// RouteTimer answers inter-stop travel durations.
type RouteTimer interface {
	Minutes(ctx context.Context, mode route.Mode, from, to types.Point) (int, error)
}

// Service orchestrates the itinerary generation and edit pipelines. All work
// within one request is sequential; the service itself holds no per-request
// state and is safe for concurrent use.
type Service struct {
	gen    TextGenerator
	places PlaceResolver
	routes RouteTimer
}

func NewService(gen TextGenerator, places PlaceResolver, routes RouteTimer) *Service {
	return &Service{gen: gen, places: places, routes: routes}
}

// draftDay is the parsed shape of one generated day before resolution.
type draftDay struct {
	date   string
	places []DraftPlace
}

// categoryCodes maps generated category labels to Kakao category group codes
// for the resolution fallback.
var categoryCodes = map[string]string{
	"관광지": "AT4",
	"식사":  "FD6",
	"카페":  "CE7",
	"숙소":  "AD5",
}

// Generate runs the full generation pipeline. Any stage failure aborts the
// request; there is no partial-itinerary return.
func (s *Service) Generate(ctx context.Context, req ItineraryRequest) (*Itinerary, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.StartDate.Before(today) {
		return nil, fmt.Errorf("generate itinerary: %w", ErrPastStartDate)
	}

	drafts, err := s.draft(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: draft stage: %w", err)
	}

	resolved, err := s.resolve(ctx, drafts)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: resolve stage: %w", err)
	}

	if err := s.attachTimes(ctx, resolved); err != nil {
		return nil, fmt.Errorf("generate itinerary: timing stage: %w", err)
	}

	resolved, err = s.cost(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: cost stage: %w", err)
	}

	return assemble(req, resolved), nil
}

// draft asks the model for the itinerary skeleton and parses it, preserving
// the emitted date order.
func (s *Service) draft(ctx context.Context, req ItineraryRequest) ([]draftDay, error) {
	var doc struct {
		Itinerary []struct {
			Date           string `json:"date"`
			TravelSchedule []struct {
				Name     string `json:"name"`
				Type     string `json:"type"`
				Location string `json:"location"`
			} `json:"travelSchedule"`
		} `json:"itinerary"`
	}
	if err := s.gen.GenerateDocument(ctx, buildCreatePrompt(req), &doc); err != nil {
		return nil, err
	}

	days := make([]draftDay, 0, len(doc.Itinerary))
	for _, d := range doc.Itinerary {
		day := draftDay{date: d.Date}
		for _, p := range d.TravelSchedule {
			day.places = append(day.places, DraftPlace{Name: p.Name, Category: p.Type, Hint: p.Location})
		}
		days = append(days, day)
	}
	return days, nil
}

// resolve turns draft places into geolocated stops, in original order. Each
// place resolves hint-first: the model's location hint is searched before the
// bare name. A draft place no search can place falls back to the nearest
// same-category place around the previous stop; if that also yields nothing
// the place is dropped.
func (s *Service) resolve(ctx context.Context, drafts []draftDay) ([]resolvedDay, error) {
	days := make([]resolvedDay, 0, len(drafts))
	for _, d := range drafts {
		day := resolvedDay{date: d.date}
		for _, dp := range d.places {
			code := categoryCodes[dp.Category]

			p, err := s.places.ResolveGenerated(ctx, dp.Name, dp.Hint, code)
			if err != nil {
				return nil, err
			}
			if p == nil && code != "" && len(day.stops) > 0 {
				prev := day.stops[len(day.stops)-1]
				top, err := s.places.TopByCategory(ctx, prev.Point.Lat, prev.Point.Lng, code, 1)
				if err != nil {
					return nil, err
				}
				if len(top) > 0 {
					p = &top[0]
				}
			}
			if p == nil {
				continue
			}

			day.stops = append(day.stops, Stop{
				Name:         p.Name,
				Category:     dp.Category,
				Point:        types.Point{Lat: p.Lat, Lng: p.Lng},
				Address:      p.Address,
				Phone:        p.Phone,
				CategoryCode: p.CategoryCode,
			})
		}
		days = append(days, day)
	}
	return days, nil
}

// attachTimes computes walk/drive/transit durations for every stop that has a
// predecessor within the same day. The first stop of a day carries none.
func (s *Service) attachTimes(ctx context.Context, days []resolvedDay) error {
	for _, day := range days {
		for i := 1; i < len(day.stops); i++ {
			from := day.stops[i-1].Point
			to := day.stops[i].Point

			walk, err := s.routes.Minutes(ctx, route.ModeWalk, from, to)
			if err != nil {
				return err
			}
			drive, err := s.routes.Minutes(ctx, route.ModeDrive, from, to)
			if err != nil {
				return err
			}
			transit, err := s.routes.Minutes(ctx, route.ModeTransit, from, to)
			if err != nil {
				return err
			}

			day.stops[i].Timings = ComputedTimings(walk, drive, transit)
		}
	}
	return nil
}

// cost asks the model for per-place cost estimates and merges them back by
// normalized name. Unmatched entries are ignored; unmatched stops keep zero.
func (s *Service) cost(ctx context.Context, days []resolvedDay) ([]resolvedDay, error) {
	var doc map[string]json.RawMessage
	if err := s.gen.GenerateDocument(ctx, buildCostPrompt(days), &doc); err != nil {
		return nil, err
	}

	out := make([]resolvedDay, len(days))
	for i, day := range days {
		out[i] = resolvedDay{date: day.date, stops: append([]Stop(nil), day.stops...)}

		raw, ok := doc[day.date]
		if !ok {
			continue
		}
		var block struct {
			TravelSchedule []struct {
				Name          string `json:"name"`
				EstimatedCost int    `json:"estimatedCost"`
			} `json:"travelSchedule"`
		}
		if err := json.Unmarshal(raw, &block); err != nil {
			continue
		}

		for _, entry := range block.TravelSchedule {
			key := normalizeName(entry.Name)
			if key == "" {
				continue
			}
			for j, stop := range out[i].stops {
				if normalizeName(stop.Name) == key {
					out[i].stops[j] = stop.withCost(entry.EstimatedCost)
					break
				}
			}
		}
	}
	return out, nil
}

func assemble(req ItineraryRequest, days []resolvedDay) *Itinerary {
	blocks := make([]DayBlock, 0, len(days))
	for i, day := range days {
		total := 0
		for _, stop := range day.stops {
			total += stop.Cost
		}
		blocks = append(blocks, DayBlock{
			Label:     fmt.Sprintf("%d일차", i+1),
			Date:      day.date,
			TotalCost: total,
			Stops:     day.stops,
		})
	}

	nights := int(req.EndDate.Sub(req.StartDate).Hours() / 24)
	title := fmt.Sprintf("%s %d박 %d일 여행", req.Destination.DisplayName(), nights, nights+1)

	return &Itinerary{
		Title:     title,
		StartDate: req.StartDate.Format(DateLayout),
		EndDate:   req.EndDate.Format(DateLayout),
		Days:      blocks,
	}
}

// normalizeName strips all whitespace and case-folds, so "Gyeongbokgung
// Palace" and "gyeongbokgungpalace" compare equal during the cost merge.
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
