package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripgrid/trip-logistics-api/internal/service"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
	"github.com/tripgrid/trip-logistics-api/pkg/response"
)

// TransportHandler exposes arrival/departure endpoints.
type TransportHandler struct {
	service *service.TransportService
}

// NewTransportHandler constructs a transport handler.
func NewTransportHandler(svc *service.TransportService) *TransportHandler {
	return &TransportHandler{service: svc}
}

// List godoc
// @Summary List transports for a trip
// @Tags Transports
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/transports [get]
func (h *TransportHandler) List(c *gin.Context) {
	transports, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transports, nil)
}

// Create godoc
// @Summary Record an arrival or departure
// @Tags Transports
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body service.TransportRequest true "Transport payload"
// @Success 201 {object} response.Envelope
// @Router /trips/{id}/transports [post]
func (h *TransportHandler) Create(c *gin.Context) {
	var req service.TransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	transport, err := h.service.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, transport)
}

// Update godoc
// @Summary Update a transport
// @Tags Transports
// @Accept json
// @Produce json
// @Param transportId path string true "Transport ID"
// @Param payload body service.TransportRequest true "Transport payload"
// @Success 200 {object} response.Envelope
// @Router /transports/{transportId} [put]
func (h *TransportHandler) Update(c *gin.Context) {
	var req service.TransportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	transport, err := h.service.Update(c.Request.Context(), c.Param("transportId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transport, nil)
}

// Delete godoc
// @Summary Remove a transport
// @Tags Transports
// @Param transportId path string true "Transport ID"
// @Success 204
// @Router /transports/{transportId} [delete]
func (h *TransportHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("transportId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
