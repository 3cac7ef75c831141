package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgrid/trip-logistics-api/internal/models"
)

func pickup(id, location string, at time.Time) models.Transport {
	return models.Transport{
		ID:          id,
		TripID:      "trip-1",
		PersonID:    "p-" + id,
		Type:        models.TransportArrival,
		Datetime:    at,
		Location:    location,
		NeedsPickup: true,
	}
}

func TestGroupPickupsChainsWithinExtendedWindow(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	now := base.Add(-time.Hour)

	// 55 and 110 minutes after the first pickup: each joins because the
	// window chains from the group's extended boundary, not its start.
	groups := GroupPickups([]models.Transport{
		pickup("t1", "Central Station", base),
		pickup("t2", "Central Station", base.Add(55*time.Minute)),
		pickup("t3", "Central Station", base.Add(110*time.Minute)),
	}, now, 60*time.Minute)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Transports, 3)
	assert.Equal(t, base, groups[0].StartTime)
	assert.Equal(t, base.Add(110*time.Minute), groups[0].EndTime)
}

func TestGroupPickupsSplitsBeyondChain(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	now := base.Add(-time.Hour)

	groups := GroupPickups([]models.Transport{
		pickup("t1", "Central Station", base),
		pickup("t2", "Central Station", base.Add(55*time.Minute)),
		pickup("t3", "Central Station", base.Add(130*time.Minute)),
	}, now, 60*time.Minute)

	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Transports, 2)
	assert.Len(t, groups[1].Transports, 1)
	assert.Equal(t, "t3", groups[1].Transports[0].ID)
}

func TestGroupPickupsSeparatesStations(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	now := base.Add(-time.Hour)

	groups := GroupPickups([]models.Transport{
		pickup("t1", "Airport", base),
		pickup("t2", "Central Station", base.Add(10*time.Minute)),
	}, now, 60*time.Minute)

	require.Len(t, groups, 2)
	assert.Equal(t, "airport", groups[0].Station)
	assert.Equal(t, "central station", groups[1].Station)
}

func TestGroupPickupsNormalizesStationNames(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	now := base.Add(-time.Hour)

	groups := GroupPickups([]models.Transport{
		pickup("t1", "  Central Station ", base),
		pickup("t2", "central station", base.Add(15*time.Minute)),
	}, now, 60*time.Minute)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Transports, 2)
	assert.Equal(t, "Central Station", groups[0].DisplayStation)
}

func TestGroupPickupsFiltersIneligibleTransports(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	now := base.Add(-time.Hour)
	driver := "driver-1"

	claimed := pickup("t1", "Airport", base)
	claimed.DriverID = &driver
	noPickup := pickup("t2", "Airport", base)
	noPickup.NeedsPickup = false
	past := pickup("t3", "Airport", now.Add(-time.Minute))
	zero := pickup("t4", "Airport", time.Time{})
	valid := pickup("t5", "Airport", base)

	groups := GroupPickups([]models.Transport{claimed, noPickup, past, zero, valid}, now, 60*time.Minute)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Transports, 1)
	assert.Equal(t, "t5", groups[0].Transports[0].ID)
}

func TestGroupPickupsOrderedByEarliestTime(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	now := base.Add(-time.Hour)

	groups := GroupPickups([]models.Transport{
		pickup("t1", "Harbor", base.Add(3*time.Hour)),
		pickup("t2", "Airport", base),
		pickup("t3", "Central Station", base.Add(90*time.Minute)),
	}, now, 60*time.Minute)

	require.Len(t, groups, 3)
	assert.Equal(t, "airport", groups[0].Station)
	assert.Equal(t, "central station", groups[1].Station)
	assert.Equal(t, "harbor", groups[2].Station)
}

func TestGroupPickupsDefaultsWindow(t *testing.T) {
	base := time.Date(2024, time.July, 10, 12, 0, 0, 0, time.UTC)
	now := base.Add(-time.Hour)

	groups := GroupPickups([]models.Transport{
		pickup("t1", "Airport", base),
		pickup("t2", "Airport", base.Add(45*time.Minute)),
	}, now, 0)

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Transports, 2)
}

func TestGroupPickupsEmptyInput(t *testing.T) {
	groups := GroupPickups(nil, time.Now(), 60*time.Minute)
	assert.Empty(t, groups)
}
