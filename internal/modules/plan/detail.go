// README: Single-place detail lookup (model description + coordinate-biased search).
package plan

import (
	"context"
	"fmt"
)

const detailSearchRadius = 1000 // meters

// PlaceDetail enriches one itinerary place with a model-written description
// and fresh address/coordinates from a search biased to the place's known
// location. A place the search cannot find keeps empty address and zero
// coordinates; upstream failures propagate.
func (s *Service) PlaceDetail(ctx context.Context, req PlaceDetailRequest) (*PlaceDetail, error) {
	var doc struct {
		Description string `json:"description"`
	}
	if err := s.gen.GenerateDocument(ctx, buildDescriptionPrompt(req.Name, req.Category), &doc); err != nil {
		return nil, fmt.Errorf("place detail: %w", err)
	}

	place, err := s.places.SearchNearCoord(ctx, req.Name, req.Lat, req.Lng, detailSearchRadius)
	if err != nil {
		return nil, fmt.Errorf("place detail: %w", err)
	}

	detail := &PlaceDetail{
		Name:        req.Name,
		Category:    req.Category,
		Description: doc.Description,
		Cost:        req.Cost,
	}
	if place != nil {
		detail.Address = place.Address
		detail.Lat = place.Lat
		detail.Lng = place.Lng
	}
	return detail, nil
}
