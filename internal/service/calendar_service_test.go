package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgrid/trip-logistics-api/internal/models"
)

type stubAssignmentReader struct {
	assignments []models.RoomAssignment
	err         error
	gotFrom     time.Time
	gotTo       time.Time
}

func (s *stubAssignmentReader) ListByTripAndWindow(ctx context.Context, tripID string, from, to time.Time) ([]models.RoomAssignment, error) {
	s.gotFrom = from
	s.gotTo = to
	return s.assignments, s.err
}

type stubTransportReader struct {
	transports []models.Transport
	err        error
}

func (s *stubTransportReader) List(ctx context.Context, filter models.TransportFilter) ([]models.Transport, error) {
	return s.transports, s.err
}

type stubPersonReader struct {
	people []models.Person
	err    error
}

func (s *stubPersonReader) ListByTrip(ctx context.Context, tripID string) ([]models.Person, error) {
	return s.people, s.err
}

type stubRoomReader struct {
	rooms []models.Room
	err   error
}

func (s *stubRoomReader) ListByTrip(ctx context.Context, tripID string) ([]models.Room, error) {
	return s.rooms, s.err
}

func newTestCalendarService(a *stubAssignmentReader, tr *stubTransportReader, p *stubPersonReader, r *stubRoomReader) *CalendarService {
	return NewCalendarService(a, tr, p, r, nil, nil, CalendarServiceConfig{UnknownLabel: "Unknown"}, nil)
}

func TestCalendarServiceMonth(t *testing.T) {
	color := "#3b82f6"
	assignments := &stubAssignmentReader{assignments: []models.RoomAssignment{
		{ID: "a1", TripID: "trip-1", PersonID: "p1", RoomID: "r1",
			StartDate: day(2024, time.July, 15), EndDate: day(2024, time.July, 20)},
	}}
	transports := &stubTransportReader{transports: []models.Transport{
		{ID: "t1", TripID: "trip-1", PersonID: "p1", Type: models.TransportArrival,
			Datetime: time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC), Location: "Airport"},
	}}
	people := &stubPersonReader{people: []models.Person{{ID: "p1", TripID: "trip-1", Name: "Alice", Color: &color}}}
	rooms := &stubRoomReader{rooms: []models.Room{{ID: "r1", TripID: "trip-1", Name: "Room 101"}}}

	svc := newTestCalendarService(assignments, transports, people, rooms)
	month, cached, err := svc.Month(context.Background(), "trip-1", "2024-07")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "trip-1", month.TripID)
	assert.Equal(t, "2024-07", month.Month)
	require.Len(t, month.Days, 35)

	// Repository was queried for the padded window, not the bare month.
	assert.Equal(t, day(2024, time.July, 1), assignments.gotFrom)
	assert.Equal(t, day(2024, time.August, 4), assignments.gotTo)

	var target models.CalendarDay
	for _, d := range month.Days {
		if d.Date == "2024-07-15" {
			target = d
		}
	}
	require.Len(t, target.Events, 1)
	assert.Equal(t, "Alice – Room 101", target.Events[0].Label)
	assert.Equal(t, "#3b82f6", target.Events[0].Color)
	require.Len(t, target.Transports, 1)
	assert.Equal(t, "Alice", target.Transports[0].Label)
}

func TestCalendarServiceMonthRejectsBadMonth(t *testing.T) {
	svc := newTestCalendarService(&stubAssignmentReader{}, &stubTransportReader{}, &stubPersonReader{}, &stubRoomReader{})

	_, _, err := svc.Month(context.Background(), "trip-1", "July 2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
}

func TestCalendarServiceMonthPropagatesRepositoryFailure(t *testing.T) {
	assignments := &stubAssignmentReader{err: assert.AnError}
	svc := newTestCalendarService(assignments, &stubTransportReader{}, &stubPersonReader{}, &stubRoomReader{})

	_, _, err := svc.Month(context.Background(), "trip-1", "2024-07")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load assignments")
}
