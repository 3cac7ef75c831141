package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
)

type transportRepository interface {
	List(ctx context.Context, filter models.TransportFilter) ([]models.Transport, error)
	GetByID(ctx context.Context, id string) (*models.Transport, error)
	Create(ctx context.Context, transport *models.Transport) error
	Update(ctx context.Context, transport *models.Transport) error
	Delete(ctx context.Context, id string) error
}

// TransportService manages arrivals and departures.
type TransportService struct {
	repo      transportRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTransportService constructs the service.
func NewTransportService(repo transportRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TransportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransportService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// TransportRequest describes create/update payload.
type TransportRequest struct {
	PersonID    string `json:"person_id" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=ARRIVAL DEPARTURE"`
	Datetime    string `json:"datetime" validate:"required"` // RFC 3339
	Location    string `json:"location" validate:"required"`
	NeedsPickup bool   `json:"needs_pickup"`
}

// List returns the trip's transports.
func (s *TransportService) List(ctx context.Context, tripID string) ([]models.Transport, error) {
	transports, err := s.repo.List(ctx, models.TransportFilter{TripID: tripID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list transports")
	}
	return transports, nil
}

// Create registers a transport.
func (s *TransportService) Create(ctx context.Context, tripID string, req TransportRequest) (*models.Transport, error) {
	when, err := s.parse(req)
	if err != nil {
		return nil, err
	}
	transport := &models.Transport{
		TripID:      tripID,
		PersonID:    req.PersonID,
		Type:        models.TransportType(strings.ToUpper(req.Type)),
		Datetime:    when,
		Location:    req.Location,
		NeedsPickup: req.NeedsPickup,
	}
	if err := s.repo.Create(ctx, transport); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create transport")
	}
	s.invalidateCalendar(ctx, tripID)
	return transport, nil
}

// Update modifies a transport.
func (s *TransportService) Update(ctx context.Context, id string, req TransportRequest) (*models.Transport, error) {
	when, err := s.parse(req)
	if err != nil {
		return nil, err
	}
	transport, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "transport not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load transport")
	}
	transport.PersonID = req.PersonID
	transport.Type = models.TransportType(strings.ToUpper(req.Type))
	transport.Datetime = when
	transport.Location = req.Location
	transport.NeedsPickup = req.NeedsPickup
	if !transport.NeedsPickup {
		transport.DriverID = nil
	}
	if err := s.repo.Update(ctx, transport); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update transport")
	}
	s.invalidateCalendar(ctx, transport.TripID)
	return transport, nil
}

// Delete removes a transport.
func (s *TransportService) Delete(ctx context.Context, id string) error {
	transport, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "transport not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load transport")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete transport")
	}
	s.invalidateCalendar(ctx, transport.TripID)
	return nil
}

func (s *TransportService) parse(req TransportRequest) (time.Time, error) {
	if err := s.validator.Struct(req); err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	when, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid datetime %q, expected RFC 3339", req.Datetime))
	}
	return when, nil
}

func (s *TransportService) invalidateCalendar(ctx context.Context, tripID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, calendarCachePattern(tripID))
	}
}
