package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripgrid/trip-logistics-api/internal/middleware"
	"github.com/tripgrid/trip-logistics-api/internal/service"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
	"github.com/tripgrid/trip-logistics-api/pkg/response"
)

// CalendarHandler exposes the month layout endpoint, both directly and
// through read-only share links.
type CalendarHandler struct {
	calendar *service.CalendarService
	share    *service.ShareService
}

// NewCalendarHandler constructs a calendar handler.
func NewCalendarHandler(calendar *service.CalendarService, share *service.ShareService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, share: share}
}

// Month godoc
// @Summary Month layout for a trip calendar
// @Tags Calendar
// @Produce json
// @Param id path string true "Trip ID"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/calendar [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month query parameter is required (YYYY-MM)"))
		return
	}

	layout, cached, err := h.calendar.Month(c.Request.Context(), c.Param("id"), month)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, layout, nil, middleware.ExtractMeta(c))
}

// SharedMonth godoc
// @Summary Month layout through a read-only share token
// @Tags Calendar
// @Produce json
// @Param token path string true "Share token"
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Router /shared/{token}/calendar [get]
func (h *CalendarHandler) SharedMonth(c *gin.Context) {
	tripID, err := h.share.Resolve(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	month := c.Query("month")
	if month == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "month query parameter is required (YYYY-MM)"))
		return
	}

	layout, cached, err := h.calendar.Month(c.Request.Context(), tripID, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, layout, nil, middleware.ExtractMeta(c))
}
