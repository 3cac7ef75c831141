package service

import (
	"sort"
	"strings"
	"time"

	"github.com/tripgrid/trip-logistics-api/internal/models"
)

// DefaultPickupWindow is the clustering window when none is requested.
const DefaultPickupWindow = 60 * time.Minute

// GroupPickups clusters transports that still need a driver into convoy
// groups sharing a station and a chained time window. A transport joins
// a group when it lies within the window of the group's current
// (possibly already extended) boundary, so chains longer than one
// window from the first member are intentional.
func GroupPickups(transports []models.Transport, now time.Time, window time.Duration) []models.PickupGroup {
	if window <= 0 {
		window = DefaultPickupWindow
	}

	eligible := make([]models.Transport, 0, len(transports))
	for _, t := range transports {
		if !t.NeedsPickup || t.DriverID != nil {
			continue
		}
		if t.Datetime.IsZero() || t.Datetime.Before(now) {
			continue
		}
		eligible = append(eligible, t)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if !eligible[i].Datetime.Equal(eligible[j].Datetime) {
			return eligible[i].Datetime.Before(eligible[j].Datetime)
		}
		return eligible[i].ID < eligible[j].ID
	})

	groups := make([]*models.PickupGroup, 0)
	for _, t := range eligible {
		station := normalizeStation(t.Location)
		var target *models.PickupGroup
		for _, g := range groups {
			if g.Station != station {
				continue
			}
			if !t.Datetime.Before(g.StartTime.Add(-window)) && !t.Datetime.After(g.EndTime.Add(window)) {
				target = g
				break
			}
		}
		if target == nil {
			groups = append(groups, &models.PickupGroup{
				Station:        station,
				DisplayStation: strings.TrimSpace(t.Location),
				StartTime:      t.Datetime,
				EndTime:        t.Datetime,
				Transports:     []models.Transport{t},
			})
			continue
		}
		target.Transports = append(target.Transports, t)
		if t.Datetime.Before(target.StartTime) {
			target.StartTime = t.Datetime
		}
		if t.Datetime.After(target.EndTime) {
			target.EndTime = t.Datetime
		}
	}

	out := make([]models.PickupGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func normalizeStation(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
