// README: Plan handlers (generate, edit, detail, save, get, city resolve).
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tripkit/internal/kakao"
	"tripkit/internal/modules/plan"
	"tripkit/internal/types"
)

// Generation chains several model and search calls, so the request budget is
// much larger than a single lookup's.
const (
	generateTimeout = 90 * time.Second
	lookupTimeout   = 10 * time.Second
)

type placeDirectory interface {
	CityFromCoord(ctx context.Context, lat, lng float64) (types.City, error)
	ManyByCategory(ctx context.Context, lat, lng float64, categoryCode string) ([]kakao.Place, error)
}

type PlanHandler struct {
	plan   *plan.Service
	store  *plan.Store
	places placeDirectory
}

func NewPlanHandler(svc *plan.Service, store *plan.Store, places placeDirectory) *PlanHandler {
	return &PlanHandler{plan: svc, store: store, places: places}
}

type generateReq struct {
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Preferences string `json:"preferences"`
}

// Generate handles POST /api/plans/generate.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	dest, ok := types.ParseCity(req.Destination)
	if !ok {
		writeError(c, http.StatusBadRequest, "unsupported destination")
		return
	}
	start, err := time.ParseInLocation(plan.DateLayout, req.StartDate, time.Local)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid startDate")
		return
	}
	end, err := time.ParseInLocation(plan.DateLayout, req.EndDate, time.Local)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid endDate")
		return
	}
	if end.Before(start) {
		writeError(c, http.StatusBadRequest, "endDate before startDate")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	it, err := h.plan.Generate(ctx, plan.ItineraryRequest{
		Destination: dest,
		StartDate:   start,
		EndDate:     end,
		Preferences: req.Preferences,
	})
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

type editReq struct {
	Names []string `json:"names"`
}

// Edit handles POST /api/plans/edit.
func (h *PlanHandler) Edit(c *gin.Context) {
	var req editReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Names) == 0 {
		writeError(c, http.StatusBadRequest, "missing names")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	result, err := h.plan.Edit(ctx, req.Names)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}

// Detail handles POST /api/plans/detail.
func (h *PlanHandler) Detail(c *gin.Context) {
	var req plan.PlaceDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(c, http.StatusBadRequest, "missing name")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generateTimeout)
	defer cancel()

	detail, err := h.plan.PlaceDetail(ctx, req)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, detail)
}

// Save handles POST /api/plans.
func (h *PlanHandler) Save(c *gin.Context) {
	var it plan.Itinerary
	if err := c.ShouldBindJSON(&it); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if it.Title == "" || len(it.Days) == 0 {
		writeError(c, http.StatusBadRequest, "missing title or days")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	id, err := h.store.Save(ctx, &it)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"plan_id": id})
}

// Get handles GET /api/plans/:id.
func (h *PlanHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" || !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	it, err := h.store.Get(ctx, id)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

// ResolveCity handles GET /api/cities/resolve?lat=..&lng=..
func (h *PlanHandler) ResolveCity(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "invalid lat or lng")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	city, err := h.places.CityFromCoord(ctx, lat, lng)
	if err != nil {
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"city": city,
		"name": city.DisplayName(),
	})
}

// Nearby handles GET /api/places/nearby?lat=..&lng=..&category=..
func (h *PlanHandler) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "invalid lat or lng")
		return
	}
	category := c.Query("category")
	if category == "" {
		writeError(c, http.StatusBadRequest, "missing category")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	places, err := h.places.ManyByCategory(ctx, lat, lng, category)
	if err != nil {
		writePlanError(c, err)
		return
	}
	if places == nil {
		places = []kakao.Place{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"places": places})
}
