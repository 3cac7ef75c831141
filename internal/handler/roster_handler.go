package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripgrid/trip-logistics-api/internal/service"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
	"github.com/tripgrid/trip-logistics-api/pkg/response"
)

// RosterHandler exposes people and room endpoints scoped to a trip.
type RosterHandler struct {
	service *service.RosterService
}

// NewRosterHandler constructs a roster handler.
func NewRosterHandler(svc *service.RosterService) *RosterHandler {
	return &RosterHandler{service: svc}
}

// ListPeople godoc
// @Summary List trip members
// @Tags Roster
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/people [get]
func (h *RosterHandler) ListPeople(c *gin.Context) {
	people, err := h.service.ListPeople(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, people, nil)
}

// CreatePerson godoc
// @Summary Add a trip member
// @Tags Roster
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body service.CreatePersonRequest true "Person payload"
// @Success 201 {object} response.Envelope
// @Router /trips/{id}/people [post]
func (h *RosterHandler) CreatePerson(c *gin.Context) {
	var req service.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	person, err := h.service.CreatePerson(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, person)
}

// UpdatePerson godoc
// @Summary Update a trip member
// @Tags Roster
// @Accept json
// @Produce json
// @Param personId path string true "Person ID"
// @Param payload body service.CreatePersonRequest true "Person payload"
// @Success 200 {object} response.Envelope
// @Router /people/{personId} [put]
func (h *RosterHandler) UpdatePerson(c *gin.Context) {
	var req service.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	person, err := h.service.UpdatePerson(c.Request.Context(), c.Param("personId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}

// DeletePerson godoc
// @Summary Remove a trip member
// @Tags Roster
// @Param personId path string true "Person ID"
// @Success 204
// @Router /people/{personId} [delete]
func (h *RosterHandler) DeletePerson(c *gin.Context) {
	if err := h.service.DeletePerson(c.Request.Context(), c.Param("personId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListRooms godoc
// @Summary List trip rooms
// @Tags Roster
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response.Envelope
// @Router /trips/{id}/rooms [get]
func (h *RosterHandler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// CreateRoom godoc
// @Summary Add a room
// @Tags Roster
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param payload body service.CreateRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /trips/{id}/rooms [post]
func (h *RosterHandler) CreateRoom(c *gin.Context) {
	var req service.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.service.CreateRoom(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// UpdateRoom godoc
// @Summary Update a room
// @Tags Roster
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param payload body service.CreateRoomRequest true "Room payload"
// @Success 200 {object} response.Envelope
// @Router /rooms/{roomId} [put]
func (h *RosterHandler) UpdateRoom(c *gin.Context) {
	var req service.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.service.UpdateRoom(c.Request.Context(), c.Param("roomId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// DeleteRoom godoc
// @Summary Remove a room
// @Tags Roster
// @Param roomId path string true "Room ID"
// @Success 204
// @Router /rooms/{roomId} [delete]
func (h *RosterHandler) DeleteRoom(c *gin.Context) {
	if err := h.service.DeleteRoom(c.Request.Context(), c.Param("roomId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
