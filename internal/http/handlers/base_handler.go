// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripkit/internal/ai"
	"tripkit/internal/kakao"
	"tripkit/internal/modules/plan"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID ensures IDs are exactly 32 lowercase hex chars (the shape the
// plan store's ID generator emits).
func isValidID(v string) bool {
	if len(v) != 32 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePlanError(c *gin.Context, err error) {
	var upstream *ai.UpstreamError
	var blocked *ai.SafetyBlockedError
	var malformed *ai.MalformedResponseError

	switch {
	case errors.Is(err, plan.ErrPastStartDate):
		writeError(c, http.StatusBadRequest, plan.ErrPastStartDate.Error())
	case errors.Is(err, plan.ErrPlanNotFound):
		writeError(c, http.StatusNotFound, plan.ErrPlanNotFound.Error())
	case errors.Is(err, kakao.ErrCityNotFound):
		writeError(c, http.StatusNotFound, kakao.ErrCityNotFound.Error())
	case errors.As(err, &blocked):
		writeError(c, http.StatusBadRequest, "request blocked by content policy")
	case errors.Is(err, plan.ErrInvalidEditResponse),
		errors.As(err, &upstream),
		errors.As(err, &malformed):
		writeError(c, http.StatusBadGateway, "upstream generation failed")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
