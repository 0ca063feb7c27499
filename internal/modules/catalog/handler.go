package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travia/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedules", h.ListSchedules)
	rg.GET("/schedules/cities", h.ListCities)
}

// ListSchedules backs the route-search form: active departures, optionally
// filtered by origin/destination city.
func (h *Handler) ListSchedules(c *gin.Context) {
	rows, err := h.service.SearchSchedules(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListCities(c *gin.Context) {
	cities, err := h.service.Cities(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, cities)
}
