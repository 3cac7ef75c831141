package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tripgrid/trip-logistics-api/internal/dto"
	"github.com/tripgrid/trip-logistics-api/internal/models"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
	"github.com/tripgrid/trip-logistics-api/pkg/storage"
)

const shareScope = "calendar"

type shareTripReader interface {
	GetByID(ctx context.Context, id string) (*models.Trip, error)
}

// ShareService issues and resolves read-only calendar links.
type ShareService struct {
	trips   shareTripReader
	signer  *storage.SignedURLSigner
	enabled bool
	logger  *zap.Logger
}

// ShareServiceConfig controls the share-link feature.
type ShareServiceConfig struct {
	Enabled bool
	Secret  string
	TTL     time.Duration
}

// NewShareService builds the share-link issuer.
func NewShareService(trips shareTripReader, cfg ShareServiceConfig, logger *zap.Logger) *ShareService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShareService{
		trips:   trips,
		signer:  storage.NewSignedURLSigner(cfg.Secret, cfg.TTL),
		enabled: cfg.Enabled && cfg.Secret != "",
		logger:  logger,
	}
}

// CreateLink mints a signed read-only token for a trip calendar.
func (s *ShareService) CreateLink(ctx context.Context, tripID string) (*dto.ShareLinkResponse, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "share links are disabled")
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "trip not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trip")
	}

	token, expiresAt, err := s.signer.Generate(tripID, shareScope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign share link")
	}
	s.logger.Info("share link issued", zap.String("trip_id", tripID), zap.Time("expires_at", expiresAt))
	return &dto.ShareLinkResponse{TripID: tripID, Token: token, ExpiresAt: expiresAt}, nil
}

// Resolve validates a share token and returns the trip it grants access to.
func (s *ShareService) Resolve(token string) (string, error) {
	if !s.enabled {
		return "", appErrors.Clone(appErrors.ErrUnavailable, "share links are disabled")
	}
	subject, scope, _, err := s.signer.Parse(token, false)
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return "", appErrors.ErrLinkExpired
		}
		return "", appErrors.ErrLinkInvalid
	}
	if scope != shareScope {
		return "", appErrors.ErrLinkInvalid
	}
	return subject, nil
}
