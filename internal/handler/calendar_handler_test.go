package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	"github.com/tripgrid/trip-logistics-api/internal/service"
	"github.com/tripgrid/trip-logistics-api/pkg/response"
)

type assignmentReaderStub struct {
	assignments []models.RoomAssignment
}

func (s *assignmentReaderStub) ListByTripAndWindow(ctx context.Context, tripID string, from, to time.Time) ([]models.RoomAssignment, error) {
	return s.assignments, nil
}

type transportReaderStub struct {
	transports []models.Transport
}

func (s *transportReaderStub) List(ctx context.Context, filter models.TransportFilter) ([]models.Transport, error) {
	return s.transports, nil
}

type personReaderStub struct {
	people []models.Person
}

func (s *personReaderStub) ListByTrip(ctx context.Context, tripID string) ([]models.Person, error) {
	return s.people, nil
}

type roomReaderStub struct {
	rooms []models.Room
}

func (s *roomReaderStub) ListByTrip(ctx context.Context, tripID string) ([]models.Room, error) {
	return s.rooms, nil
}

func newCalendarTestHandler() *CalendarHandler {
	calendar := service.NewCalendarService(
		&assignmentReaderStub{assignments: []models.RoomAssignment{
			{ID: "a1", TripID: "trip-1", PersonID: "p1", RoomID: "r1",
				StartDate: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC)},
		}},
		&transportReaderStub{},
		&personReaderStub{people: []models.Person{{ID: "p1", Name: "Alice"}}},
		&roomReaderStub{rooms: []models.Room{{ID: "r1", Name: "Room 101"}}},
		nil, nil, service.CalendarServiceConfig{UnknownLabel: "Unknown"}, nil,
	)
	return NewCalendarHandler(calendar, nil)
}

func TestCalendarHandlerMonth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCalendarTestHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/trips/trip-1/calendar?month=2024-07", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "trip-1"}}

	handler.Month(c)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	payload, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var month models.CalendarMonth
	require.NoError(t, json.Unmarshal(payload, &month))
	require.Equal(t, "trip-1", month.TripID)
	require.Len(t, month.Days, 35)
}

func TestCalendarHandlerMonthRequiresMonthParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCalendarTestHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/trips/trip-1/calendar", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "trip-1"}}

	handler.Month(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarHandlerMonthRejectsBadMonth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCalendarTestHandler()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/trips/trip-1/calendar?month=nope", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "trip-1"}}

	handler.Month(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
