package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	"github.com/tripgrid/trip-logistics-api/internal/service"
)

type pickupRepoStub struct {
	pending []models.Transport
	claimed bool
}

func (s *pickupRepoStub) ListPendingPickups(ctx context.Context, tripID string, since time.Time) ([]models.Transport, error) {
	return s.pending, nil
}

func (s *pickupRepoStub) GetByID(ctx context.Context, id string) (*models.Transport, error) {
	return &models.Transport{ID: id, NeedsPickup: true}, nil
}

func (s *pickupRepoStub) ClaimPickup(ctx context.Context, id, driverID string) (bool, error) {
	return s.claimed, nil
}

func (s *pickupRepoStub) ReleasePickup(ctx context.Context, id string) error {
	return nil
}

func newPickupTestHandler(repo *pickupRepoStub) *PickupHandler {
	svc := service.NewPickupService(repo, nil, service.PickupServiceConfig{DefaultWindowMinutes: 60, MaxWindowMinutes: 240}, nil)
	return NewPickupHandler(svc)
}

func TestPickupHandlerGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	future := time.Now().Add(2 * time.Hour)
	handler := newPickupTestHandler(&pickupRepoStub{pending: []models.Transport{
		{ID: "t1", TripID: "trip-1", PersonID: "p1", Type: models.TransportArrival,
			Datetime: future, Location: "Airport", NeedsPickup: true},
	}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/trips/trip-1/pickup-groups?window=90", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "trip-1"}}

	handler.Groups(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "airport")
}

func TestPickupHandlerGroupsRejectsBadWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPickupTestHandler(&pickupRepoStub{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/trips/trip-1/pickup-groups?window=-5", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "trip-1"}}

	handler.Groups(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPickupHandlerClaim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPickupTestHandler(&pickupRepoStub{claimed: true})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"driver_id":"driver-1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/transports/t1/claim", body)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "transportId", Value: "t1"}}

	handler.Claim(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestPickupHandlerClaimConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPickupTestHandler(&pickupRepoStub{claimed: false})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"driver_id":"driver-1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/transports/t1/claim", body)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "transportId", Value: "t1"}}

	handler.Claim(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestPickupHandlerRelease(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPickupTestHandler(&pickupRepoStub{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/transports/t1/claim", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "transportId", Value: "t1"}}

	handler.Release(c)
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
}
