package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	appErrors "github.com/tripgrid/trip-logistics-api/pkg/errors"
)

type stubTripReader struct {
	trip *models.Trip
	err  error
}

func (s *stubTripReader) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	return s.trip, s.err
}

func newTestShareService(trips *stubTripReader) *ShareService {
	return NewShareService(trips, ShareServiceConfig{
		Enabled: true,
		Secret:  "test-secret",
		TTL:     time.Hour,
	}, nil)
}

func TestShareServiceRoundTrip(t *testing.T) {
	trips := &stubTripReader{trip: &models.Trip{ID: "trip-1", Name: "Summer Camp"}}
	svc := newTestShareService(trips)

	link, err := svc.CreateLink(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "trip-1", link.TripID)
	assert.NotEmpty(t, link.Token)
	assert.True(t, link.ExpiresAt.After(time.Now()))

	tripID, err := svc.Resolve(link.Token)
	require.NoError(t, err)
	assert.Equal(t, "trip-1", tripID)
}

func TestShareServiceRejectsTamperedToken(t *testing.T) {
	svc := newTestShareService(&stubTripReader{trip: &models.Trip{ID: "trip-1"}})

	link, err := svc.CreateLink(context.Background(), "trip-1")
	require.NoError(t, err)

	_, err = svc.Resolve(link.Token + "x")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrLinkInvalid.Code, appErr.Code)
}

func TestShareServiceTripNotFound(t *testing.T) {
	svc := newTestShareService(&stubTripReader{err: sql.ErrNoRows})

	_, err := svc.CreateLink(context.Background(), "missing")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestShareServiceDisabled(t *testing.T) {
	svc := NewShareService(&stubTripReader{}, ShareServiceConfig{Enabled: false}, nil)

	_, err := svc.CreateLink(context.Background(), "trip-1")
	require.Error(t, err)

	_, err = svc.Resolve("anything")
	require.Error(t, err)
}
