package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tripgrid/trip-logistics-api/internal/service"
	"github.com/tripgrid/trip-logistics-api/pkg/response"
)

// ShareHandler mints read-only trip links.
type ShareHandler struct {
	service *service.ShareService
}

// NewShareHandler constructs a share handler.
func NewShareHandler(svc *service.ShareService) *ShareHandler {
	return &ShareHandler{service: svc}
}

// Create godoc
// @Summary Create a read-only share link for a trip calendar
// @Tags Share
// @Produce json
// @Param id path string true "Trip ID"
// @Success 201 {object} response.Envelope
// @Router /trips/{id}/share [post]
func (h *ShareHandler) Create(c *gin.Context) {
	link, err := h.service.CreateLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}
