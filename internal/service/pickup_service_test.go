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

type stubPickupRepo struct {
	pending    []models.Transport
	pendingErr error
	transport  *models.Transport
	getErr     error
	claimed    bool
	claimErr   error
	released   []string
}

func (s *stubPickupRepo) ListPendingPickups(ctx context.Context, tripID string, since time.Time) ([]models.Transport, error) {
	return s.pending, s.pendingErr
}

func (s *stubPickupRepo) GetByID(ctx context.Context, id string) (*models.Transport, error) {
	return s.transport, s.getErr
}

func (s *stubPickupRepo) ClaimPickup(ctx context.Context, id, driverID string) (bool, error) {
	return s.claimed, s.claimErr
}

func (s *stubPickupRepo) ReleasePickup(ctx context.Context, id string) error {
	s.released = append(s.released, id)
	return nil
}

func newTestPickupService(repo *stubPickupRepo) *PickupService {
	svc := NewPickupService(repo, nil, PickupServiceConfig{DefaultWindowMinutes: 60, MaxWindowMinutes: 240}, nil)
	svc.now = func() time.Time {
		return time.Date(2024, time.July, 10, 8, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestPickupServiceGroups(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubPickupRepo{pending: []models.Transport{
		pickup("t1", "Airport", base),
		pickup("t2", "Airport", base.Add(30*time.Minute)),
		pickup("t3", "Harbor", base),
	}}

	groups, err := newTestPickupService(repo).Groups(context.Background(), "trip-1", 0)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Transports, 2)
	assert.Equal(t, "harbor", groups[1].Station)
}

func TestPickupServiceGroupsClampWindow(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubPickupRepo{pending: []models.Transport{
		pickup("t1", "Airport", base),
		pickup("t2", "Airport", base.Add(5*time.Hour)),
	}}

	// Requested window exceeds the cap, so the 5 hour gap still splits.
	groups, err := newTestPickupService(repo).Groups(context.Background(), "trip-1", 10000)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestPickupServiceClaim(t *testing.T) {
	transport := pickup("t1", "Airport", time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC))
	repo := &stubPickupRepo{claimed: true, transport: &transport}

	got, err := newTestPickupService(repo).Claim(context.Background(), "t1", "driver-1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
}

func TestPickupServiceClaimConflict(t *testing.T) {
	repo := &stubPickupRepo{claimed: false}

	_, err := newTestPickupService(repo).Claim(context.Background(), "t1", "driver-1")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrPickupClaimed.Code, appErr.Code)
}

func TestPickupServiceClaimRequiresDriver(t *testing.T) {
	_, err := newTestPickupService(&stubPickupRepo{}).Claim(context.Background(), "t1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "driver_id")
}

func TestPickupServiceClaimNotFound(t *testing.T) {
	repo := &stubPickupRepo{claimErr: sql.ErrNoRows}

	_, err := newTestPickupService(repo).Claim(context.Background(), "missing", "driver-1")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestPickupServiceRelease(t *testing.T) {
	transport := pickup("t1", "Airport", time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC))
	repo := &stubPickupRepo{transport: &transport}

	require.NoError(t, newTestPickupService(repo).Release(context.Background(), "t1"))
	assert.Equal(t, []string{"t1"}, repo.released)
}
