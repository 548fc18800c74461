// README: Prompt builders for the generation, cost, edit, and detail calls.
package plan

import (
	"fmt"
	"strings"
)

func buildCreatePrompt(req ItineraryRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are planning a trip to %s, South Korea from %s to %s.\n",
		req.Destination.DisplayName(),
		req.StartDate.Format(DateLayout),
		req.EndDate.Format(DateLayout))
	if req.Preferences != "" {
		fmt.Fprintf(&b, "Traveler preferences: %s\n", req.Preferences)
	}

	b.WriteString(`
Build a realistic daily schedule with 3 to 5 places per day. Every place must
really exist in or near the destination city and be searchable by its exact
Korean name. Use "type" values 관광지, 식사, 카페 or 숙소.

Return JSON only, exactly matching this schema:
{
  "itinerary": [
    {
      "date": "YYYY-MM-DD",
      "travelSchedule": [
        {"name": "경복궁", "type": "관광지", "location": "종로구 경복궁"}
      ]
    }
  ]
}

Hard constraints:
- One entry per calendar date from the start date to the end date, in order.
- "name" is the exact place name only, no descriptions.
- "location" is optional: a disambiguated search phrase (district plus place
  name), only when the bare name alone is ambiguous.
- No markdown, no comments.
`)
	return b.String()
}

func buildCostPrompt(days []resolvedDay) string {
	var b strings.Builder

	b.WriteString(`Estimate a per-person cost in KRW for each place in the
schedule below: admission for sights, a typical meal price for restaurants and
cafes, a night's rate for lodging. Use 0 when a place is free.

Schedule:
`)
	for _, day := range days {
		fmt.Fprintf(&b, "%s:\n", day.date)
		for _, stop := range day.stops {
			fmt.Fprintf(&b, "- %s (%s)\n", stop.Name, stop.Category)
		}
	}

	b.WriteString(`
Return JSON only, keyed by date, with a top-level "totalEstimatedCost":
{
  "2026-06-01": {
    "travelSchedule": [
      {"name": "경복궁", "estimatedCost": 3000}
    ]
  },
  "totalEstimatedCost": 3000
}
Keep every place name exactly as given. No markdown, no comments.
`)
	return b.String()
}

func buildEditPrompt(names []string) string {
	var b strings.Builder

	b.WriteString(`For each of the following places in South Korea, in the
given order, classify it (관광지, 식사, 카페 or 숙소) and estimate a
per-person cost in KRW (0 when free):
`)
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	b.WriteString(`
Return JSON only:
{
  "places": [
    {"name": "경복궁", "type": "관광지", "estimatedCost": 3000}
  ]
}
Keep the order and the exact names. No markdown, no comments.
`)
	return b.String()
}

func buildDescriptionPrompt(name, category string) string {
	return fmt.Sprintf(`Write one Korean sentence describing the place "%s" (%s)
for a traveler. Return JSON only: {"description": "..."}`, name, category)
}

// resolvedDay pairs a date with its resolved stops while the pipeline is
// still running; DayBlock is only assembled at the end.
type resolvedDay struct {
	date  string
	stops []Stop
}
