// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripkit/internal/http/handlers"
	"tripkit/internal/http/middleware"
	"tripkit/internal/kakao"
	"tripkit/internal/modules/plan"
)

func NewRouter(
	planService *plan.Service,
	planStore *plan.Store,
	places *kakao.CachedClient,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	planHandler := handlers.NewPlanHandler(planService, planStore, places)
	api := r.Group("/api")
	{
		api.POST("/plans/generate", planHandler.Generate)
		api.POST("/plans/edit", planHandler.Edit)
		api.POST("/plans/detail", planHandler.Detail)
		api.POST("/plans", planHandler.Save)
		api.GET("/plans/:id", planHandler.Get)
		api.GET("/cities/resolve", planHandler.ResolveCity)
		api.GET("/places/nearby", planHandler.Nearby)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
