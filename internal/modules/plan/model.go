// README: Itinerary domain model (draft places, stops, day blocks).
package plan

import (
	"encoding/json"
	"time"

	"tripkit/internal/types"
)

// DateLayout is the wire format for itinerary dates.
const DateLayout = "2006-01-02"

// ItineraryRequest carries the inbound parameters for itinerary generation.
type ItineraryRequest struct {
	Destination types.City
	StartDate   time.Time
	EndDate     time.Time
	Preferences string
}

// DraftPlace is a place emitted by the generation stage before any
// coordinates are known. Hint, when the model provides one, is a nearby
// district or landmark searched ahead of the bare name. DraftPlace only
// exists between the draft and resolve stages.
type DraftPlace struct {
	Name     string
	Category string
	Hint     string
}

// TimingState tags the outcome of the inter-stop timing computation.
// "attempted and failed" must stay distinguishable from "never attempted"
// (the first stop of a day), so this is not a nullable integer.
type TimingState int

const (
	// TimingNone means no timing was attempted: the stop has no predecessor.
	TimingNone TimingState = iota
	// TimingFailed means the computation was attempted and failed; it
	// serializes as -1 for all three modes.
	TimingFailed
	// TimingComputed means all three durations were obtained.
	TimingComputed
)

// Timings holds the travel durations from the previous stop of the same day.
type Timings struct {
	State      TimingState
	WalkMin    int
	DriveMin   int
	TransitMin int
}

// ComputedTimings builds a computed Timings value.
func ComputedTimings(walk, drive, transit int) Timings {
	return Timings{State: TimingComputed, WalkMin: walk, DriveMin: drive, TransitMin: transit}
}

// FailedTimings marks a timing computation that was attempted and failed.
func FailedTimings() Timings {
	return Timings{State: TimingFailed}
}

// Stop is a resolved place enriched with cost and inter-stop timings, as it
// appears in a final itinerary.
type Stop struct {
	Name         string
	Category     string
	Point        types.Point
	Address      string
	Phone        string
	CategoryCode string
	Cost         int
	Timings      Timings
}

// withCost returns a copy of the stop with the estimated cost set. The cost
// merge produces new stops instead of mutating resolved ones.
func (s Stop) withCost(cost int) Stop {
	s.Cost = cost
	return s
}

// stopJSON is the wire form of a Stop. Timings flatten to three nullable
// minute fields: null when never attempted, -1 when the computation failed.
type stopJSON struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone,omitempty"`
	CategoryCode  string  `json:"categoryCode,omitempty"`
	EstimatedCost int     `json:"estimatedCost"`
	WalkTime      *int    `json:"walkTime"`
	DriveTime     *int    `json:"driveTime"`
	TransitTime   *int    `json:"transitTime"`
}

func (s Stop) MarshalJSON() ([]byte, error) {
	out := stopJSON{
		Name:          s.Name,
		Type:          s.Category,
		Lat:           s.Point.Lat,
		Lng:           s.Point.Lng,
		Address:       s.Address,
		Phone:         s.Phone,
		CategoryCode:  s.CategoryCode,
		EstimatedCost: s.Cost,
	}
	switch s.Timings.State {
	case TimingComputed:
		out.WalkTime = intPtr(s.Timings.WalkMin)
		out.DriveTime = intPtr(s.Timings.DriveMin)
		out.TransitTime = intPtr(s.Timings.TransitMin)
	case TimingFailed:
		out.WalkTime = intPtr(-1)
		out.DriveTime = intPtr(-1)
		out.TransitTime = intPtr(-1)
	}
	return json.Marshal(out)
}

func (s *Stop) UnmarshalJSON(data []byte) error {
	var in stopJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = Stop{
		Name:         in.Name,
		Category:     in.Type,
		Point:        types.Point{Lat: in.Lat, Lng: in.Lng},
		Address:      in.Address,
		Phone:        in.Phone,
		CategoryCode: in.CategoryCode,
		Cost:         in.EstimatedCost,
	}
	switch {
	case in.WalkTime == nil:
		s.Timings = Timings{State: TimingNone}
	case *in.WalkTime == -1:
		s.Timings = FailedTimings()
	default:
		s.Timings = ComputedTimings(*in.WalkTime, derefOrZero(in.DriveTime), derefOrZero(in.TransitTime))
	}
	return nil
}

// DayBlock is one date's ordered stop sequence. Block order follows the
// generator's date insertion order and is never re-sorted.
type DayBlock struct {
	Label     string `json:"day"`
	Date      string `json:"date"`
	TotalCost int    `json:"totalEstimatedCost"`
	Stops     []Stop `json:"places"`
}

// Itinerary is the assembled multi-day schedule.
type Itinerary struct {
	Title     string     `json:"title"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Days      []DayBlock `json:"days"`
}

// EditResult is the outcome of the edit pipeline: the stops that resolved
// confidently, in request order, plus their cost total.
type EditResult struct {
	TotalEstimatedCost int    `json:"totalEstimatedCost"`
	Places             []Stop `json:"places"`
}

// PlaceDetailRequest asks for an enriched single-place view.
type PlaceDetailRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"type"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Cost     int     `json:"estimatedCost"`
}

// PlaceDetail is the enriched single-place view.
type PlaceDetail struct {
	Name        string  `json:"name"`
	Category    string  `json:"type"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Cost        int     `json:"estimatedCost"`
}

func intPtr(v int) *int { return &v }

func derefOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
