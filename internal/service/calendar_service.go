package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
)

type calendarAssignmentReader interface {
	ListByTripAndWindow(ctx context.Context, tripID string, from, to time.Time) ([]models.RoomAssignment, error)
}

type calendarTransportReader interface {
	List(ctx context.Context, filter models.TransportFilter) ([]models.Transport, error)
}

type calendarPersonReader interface {
	ListByTrip(ctx context.Context, tripID string) ([]models.Person, error)
}

type calendarRoomReader interface {
	ListByTrip(ctx context.Context, tripID string) ([]models.Room, error)
}

// CalendarService computes the month layout for a trip.
type CalendarService struct {
	assignments  calendarAssignmentReader
	transports   calendarTransportReader
	people       calendarPersonReader
	rooms        calendarRoomReader
	cache        *CacheService
	metrics      *MetricsService
	cacheTTL     time.Duration
	unknownLabel string
	logger       *zap.Logger
}

// CalendarServiceConfig tunes layout orchestration.
type CalendarServiceConfig struct {
	CacheTTL     time.Duration
	UnknownLabel string
}

// NewCalendarService wires the calendar dependencies.
func NewCalendarService(
	assignments calendarAssignmentReader,
	transports calendarTransportReader,
	people calendarPersonReader,
	rooms calendarRoomReader,
	cache *CacheService,
	metrics *MetricsService,
	cfg CalendarServiceConfig,
	logger *zap.Logger,
) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UnknownLabel == "" {
		cfg.UnknownLabel = "Unknown"
	}
	return &CalendarService{
		assignments:  assignments,
		transports:   transports,
		people:       people,
		rooms:        rooms,
		cache:        cache,
		metrics:      metrics,
		cacheTTL:     cfg.CacheTTL,
		unknownLabel: cfg.UnknownLabel,
		logger:       logger,
	}
}

// Month returns the padded month grid layout for a trip. The second
// return reports whether the result came from cache.
func (s *CalendarService) Month(ctx context.Context, tripID, month string) (*models.CalendarMonth, bool, error) {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid month %q, expected YYYY-MM", month))
	}

	cacheKey := calendarCacheKey(tripID, month)
	if s.cache.Enabled() {
		var cached models.CalendarMonth
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, true, nil
		}
	}

	visibleDays := MonthGrid(parsed.Year(), parsed.Month())
	firstVisible := visibleDays[0]
	lastVisible := visibleDays[len(visibleDays)-1]

	assignments, err := s.assignments.ListByTripAndWindow(ctx, tripID, firstVisible, lastVisible)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}

	windowEnd := lastVisible.AddDate(0, 0, 1)
	transports, err := s.transports.List(ctx, models.TransportFilter{TripID: tripID, From: &firstVisible, To: &windowEnd})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load transports")
	}

	people, err := s.people.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load people")
	}
	rooms, err := s.rooms.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	personNames := make(map[string]string, len(people))
	personColors := make(map[string]string, len(people))
	for _, p := range people {
		personNames[p.ID] = p.Name
		if p.Color != nil {
			personColors[p.ID] = *p.Color
		}
	}
	roomNames := make(map[string]string, len(rooms))
	for _, r := range rooms {
		roomNames[r.ID] = r.Name
	}

	layout := BuildCalendarLayout(LayoutInput{
		VisibleDays:  visibleDays,
		Assignments:  assignments,
		Transports:   transports,
		PersonNames:  personNames,
		PersonColors: personColors,
		RoomNames:    roomNames,
		UnknownLabel: s.unknownLabel,
		Logger:       s.logger,
	})
	s.metrics.RecordSlotOverflows(layout.SlotOverflows)

	result := &models.CalendarMonth{
		TripID: tripID,
		Month:  month,
		Days:   AssembleDays(visibleDays, parsed.Month(), layout),
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, result, s.cacheTTL)
	}
	return result, false, nil
}

func calendarCacheKey(tripID, month string) string {
	return fmt.Sprintf("calendar:%s:%s", tripID, month)
}

func calendarCachePattern(tripID string) string {
	return fmt.Sprintf("calendar:%s:*", tripID)
}
