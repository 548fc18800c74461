// README: Plan handler validation and error-mapping tests.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tripkit/internal/ai"
	"tripkit/internal/kakao"
	"tripkit/internal/modules/plan"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Validation failures must reject before any service call, so nil
	// dependencies are safe here.
	h := NewPlanHandler(nil, nil, nil)
	r.POST("/api/plans/generate", h.Generate)
	r.POST("/api/plans/edit", h.Edit)
	r.GET("/api/plans/:id", h.Get)
	r.GET("/api/cities/resolve", h.ResolveCity)
	r.GET("/api/places/nearby", h.Nearby)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateRequestValidation(t *testing.T) {
	r := newTestRouter()
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"unsupported destination", `{"destination":"PARIS","startDate":"2026-10-01","endDate":"2026-10-02"}`},
		{"bad start date", `{"destination":"SEOUL","startDate":"next week","endDate":"2026-10-02"}`},
		{"bad end date", `{"destination":"SEOUL","startDate":"2026-10-01","endDate":""}`},
		{"end before start", `{"destination":"SEOUL","startDate":"2026-10-05","endDate":"2026-10-01"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/plans/generate", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestEditRequestValidation(t *testing.T) {
	r := newTestRouter()
	for name, body := range map[string]string{
		"invalid json":  `not json`,
		"missing names": `{"names":[]}`,
		"wrong field":   `{"places":["경복궁"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/plans/edit", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestGetRejectsMalformedID(t *testing.T) {
	r := newTestRouter()
	// Valid ids are exactly 32 lowercase hex chars.
	for name, id := range map[string]string{
		"punctuation":   "not-a-hex-id!",
		"too short":     strings.Repeat("a", 31),
		"too long":      strings.Repeat("a", 33),
		"uppercase hex": strings.Repeat("A", 32),
		"non-hex chars": strings.Repeat("z", 32),
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/plans/"+id, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestResolveCityRejectsMalformedCoords(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodGet, "/api/cities/resolve?lat=abc&lng=127.0", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestNearbyRequestValidation(t *testing.T) {
	r := newTestRouter()
	for name, query := range map[string]string{
		"bad coords":       "lat=x&lng=127.0&category=AT4",
		"missing category": "lat=37.5&lng=127.0",
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/places/nearby?"+query, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestPlanErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"past start date", fmt.Errorf("generate itinerary: %w", plan.ErrPastStartDate), http.StatusBadRequest},
		{"plan not found", plan.ErrPlanNotFound, http.StatusNotFound},
		{"city not found", kakao.ErrCityNotFound, http.StatusNotFound},
		{"safety blocked", &ai.SafetyBlockedError{Reason: "SAFETY"}, http.StatusBadRequest},
		{"upstream failure", fmt.Errorf("generate itinerary: draft stage: %w", &ai.UpstreamError{StatusCode: 500}), http.StatusBadGateway},
		{"malformed reply", &ai.MalformedResponseError{Detail: "no text part in response"}, http.StatusBadGateway},
		{"invalid edit reply", fmt.Errorf("edit itinerary: %w", plan.ErrInvalidEditResponse), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			writePlanError(c, tc.err)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
