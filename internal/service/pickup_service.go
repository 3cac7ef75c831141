package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
)

type pickupTransportRepository interface {
	ListPendingPickups(ctx context.Context, tripID string, since time.Time) ([]models.Transport, error)
	GetByID(ctx context.Context, id string) (*models.Transport, error)
	ClaimPickup(ctx context.Context, id, driverID string) (bool, error)
	ReleasePickup(ctx context.Context, id string) error
}

// PickupService groups pending pickups into driver runs and tracks claims.
type PickupService struct {
	repo             pickupTransportRepository
	metrics          *MetricsService
	defaultWindow    time.Duration
	maxWindowMinutes int
	validate         *validator.Validate
	logger           *zap.Logger
	now              func() time.Time
}

// PickupServiceConfig bounds the grouping window.
type PickupServiceConfig struct {
	DefaultWindowMinutes int
	MaxWindowMinutes     int
}

// NewPickupService creates a pickup service.
func NewPickupService(repo pickupTransportRepository, metrics *MetricsService, cfg PickupServiceConfig, logger *zap.Logger) *PickupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaultWindow := time.Duration(cfg.DefaultWindowMinutes) * time.Minute
	if defaultWindow <= 0 {
		defaultWindow = DefaultPickupWindow
	}
	maxWindow := cfg.MaxWindowMinutes
	if maxWindow <= 0 {
		maxWindow = 240
	}
	return &PickupService{
		repo:             repo,
		metrics:          metrics,
		defaultWindow:    defaultWindow,
		maxWindowMinutes: maxWindow,
		validate:         validator.New(),
		logger:           logger,
		now:              time.Now,
	}
}

// Groups returns open pickup groups for a trip, clustered by station and time.
// windowMinutes <= 0 falls back to the configured default.
func (s *PickupService) Groups(ctx context.Context, tripID string, windowMinutes int) ([]models.PickupGroup, error) {
	window := s.defaultWindow
	if windowMinutes > 0 {
		if windowMinutes > s.maxWindowMinutes {
			windowMinutes = s.maxWindowMinutes
		}
		window = time.Duration(windowMinutes) * time.Minute
	}

	now := s.now().UTC()
	pending, err := s.repo.ListPendingPickups(ctx, tripID, now)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pending pickups")
	}

	groups := GroupPickups(pending, now, window)
	s.metrics.SetOpenPickupGroups(len(groups))
	return groups, nil
}

// Claim assigns a driver to a pending pickup. The claim is conditional on
// the pickup still being unassigned, so concurrent drivers cannot both win.
func (s *PickupService) Claim(ctx context.Context, transportID, driverID string) (*models.Transport, error) {
	if driverID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "driver_id is required")
	}

	claimed, err := s.repo.ClaimPickup(ctx, transportID, driverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "transport not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to claim pickup")
	}
	if !claimed {
		return nil, appErrors.ErrPickupClaimed
	}

	transport, err := s.repo.GetByID(ctx, transportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "transport not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load transport")
	}
	s.logger.Info("pickup claimed", zap.String("transport_id", transportID), zap.String("driver_id", driverID))
	return transport, nil
}

// Release clears the driver from a pickup so it re-enters grouping.
func (s *PickupService) Release(ctx context.Context, transportID string) error {
	if _, err := s.repo.GetByID(ctx, transportID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "transport not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load transport")
	}
	if err := s.repo.ReleasePickup(ctx, transportID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to release pickup")
	}
	s.logger.Info("pickup released", zap.String("transport_id", transportID))
	return nil
}
