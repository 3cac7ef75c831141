package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripgrid/trip-logistics-api/internal/dto"
	"github.com/tripgrid/trip-logistics-api/internal/service"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
	"github.com/tripgrid/trip-logistics-api/pkg/response"
)

// PickupHandler exposes pickup grouping and claim endpoints.
type PickupHandler struct {
	service *service.PickupService
}

// NewPickupHandler constructs a pickup handler.
func NewPickupHandler(svc *service.PickupService) *PickupHandler {
	return &PickupHandler{service: svc}
}

// Groups godoc
// @Summary Open pickup groups for a trip
// @Tags Pickups
// @Produce json
// @Param id path string true "Trip ID"
// @Param window query int false "Grouping window in minutes"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/pickup-groups [get]
func (h *PickupHandler) Groups(c *gin.Context) {
	window := 0
	if raw := c.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "window must be a positive minute count"))
			return
		}
		window = parsed
	}

	groups, err := h.service.Groups(c.Request.Context(), c.Param("id"), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}

// Claim godoc
// @Summary Claim a pending pickup for a driver
// @Tags Pickups
// @Accept json
// @Produce json
// @Param transportId path string true "Transport ID"
// @Param payload body dto.ClaimPickupRequest true "Claim payload"
// @Success 200 {object} response.Envelope
// @Router /transports/{transportId}/claim [post]
func (h *PickupHandler) Claim(c *gin.Context) {
	var req dto.ClaimPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	transport, err := h.service.Claim(c.Request.Context(), c.Param("transportId"), req.DriverID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transport, nil)
}

// Release godoc
// @Summary Release a claimed pickup
// @Tags Pickups
// @Param transportId path string true "Transport ID"
// @Success 204
// @Router /transports/{transportId}/claim [delete]
func (h *PickupHandler) Release(c *gin.Context) {
	if err := h.service.Release(c.Request.Context(), c.Param("transportId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
