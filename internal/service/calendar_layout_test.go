package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	"github.com/tripgrid/trip-logistics-api/pkg/colorutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func julyGrid() []time.Time {
	// July 2024 starts on a Monday and pads forward to Sunday August 4.
	return MonthGrid(2024, time.July)
}

func assignment(id, personID, roomID string, start, end time.Time) models.RoomAssignment {
	return models.RoomAssignment{
		ID:        id,
		TripID:    "trip-1",
		PersonID:  personID,
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
	}
}

func layoutFor(assignments []models.RoomAssignment, transports []models.Transport) LayoutResult {
	return BuildCalendarLayout(LayoutInput{
		VisibleDays: julyGrid(),
		Assignments: assignments,
		Transports:  transports,
		PersonNames: map[string]string{"p1": "Alice", "p2": "Bob", "p3": "Carol"},
		PersonColors: map[string]string{
			"p1": "#3b82f6",
			"p2": "#ffff00",
		},
		RoomNames:    map[string]string{"r1": "Room 101", "r2": "Room 102"},
		UnknownLabel: "Unknown",
	})
}

func TestMonthGridPadsToWholeWeeks(t *testing.T) {
	grid := MonthGrid(2024, time.August)
	require.NotEmpty(t, grid)
	assert.Equal(t, day(2024, time.July, 29), grid[0])
	assert.Equal(t, day(2024, time.September, 1), grid[len(grid)-1])
	assert.Equal(t, time.Monday, grid[0].Weekday())
	assert.Equal(t, time.Sunday, grid[len(grid)-1].Weekday())
	assert.Len(t, grid, 35)
}

func TestCheckoutDayIsNotOccupied(t *testing.T) {
	result := layoutFor([]models.RoomAssignment{
		assignment("a1", "p1", "r1", day(2024, time.July, 15), day(2024, time.July, 20)),
	}, nil)

	for d := 15; d <= 19; d++ {
		key := fmt.Sprintf("2024-07-%02d", d)
		require.Len(t, result.Events[key], 1, "expected a segment on %s", key)
	}
	assert.Empty(t, result.Events["2024-07-20"], "checkout day must stay empty")

	first := result.Events["2024-07-15"][0]
	last := result.Events["2024-07-19"][0]
	assert.Equal(t, models.SegmentStart, first.Segment)
	assert.Equal(t, models.SegmentEnd, last.Segment)
}

func TestZeroNightAssignmentsAreDropped(t *testing.T) {
	result := layoutFor([]models.RoomAssignment{
		assignment("a1", "p1", "r1", day(2024, time.July, 10), day(2024, time.July, 10)),
		assignment("a2", "p1", "r1", day(2024, time.July, 12), day(2024, time.July, 11)),
	}, nil)
	assert.Empty(t, result.Events)
}

func TestSpanClippedToVisibleWindow(t *testing.T) {
	result := layoutFor([]models.RoomAssignment{
		assignment("a1", "p1", "r1", day(2024, time.June, 20), day(2024, time.July, 5)),
	}, nil)

	assert.Empty(t, result.Events["2024-06-30"])
	require.Len(t, result.Events["2024-07-01"], 1)
	clipped := result.Events["2024-07-01"][0]
	assert.Equal(t, models.SegmentStart, clipped.Segment)
	assert.True(t, clipped.RoundedLeft)
	assert.True(t, clipped.ShowLabel)
	require.Len(t, result.Events["2024-07-04"], 1)
	assert.Equal(t, models.SegmentEnd, result.Events["2024-07-04"][0].Segment)
	assert.Empty(t, result.Events["2024-07-05"])
}

func TestOverlappingSpansNeverShareASlot(t *testing.T) {
	result := layoutFor([]models.RoomAssignment{
		assignment("a1", "p1", "r1", day(2024, time.July, 1), day(2024, time.July, 10)),
		assignment("a2", "p2", "r1", day(2024, time.July, 3), day(2024, time.July, 8)),
		assignment("a3", "p3", "r2", day(2024, time.July, 5), day(2024, time.July, 7)),
	}, nil)

	for key, events := range result.Events {
		seen := make(map[int]string)
		for _, ev := range events {
			prev, taken := seen[ev.SlotIndex]
			assert.Falsef(t, taken, "slot %d on %s used by %s and %s", ev.SlotIndex, key, prev, ev.AssignmentID)
			seen[ev.SlotIndex] = ev.AssignmentID
		}
	}
	// The longest, earliest span claims the bottom slot.
	assert.Equal(t, 0, result.Events["2024-07-05"][0].SlotIndex)
	assert.Equal(t, "a1", result.Events["2024-07-05"][0].AssignmentID)
}

func TestSlotReuseAfterSpanEnds(t *testing.T) {
	result := layoutFor([]models.RoomAssignment{
		assignment("a1", "p1", "r1", day(2024, time.July, 1), day(2024, time.July, 5)),
		assignment("a2", "p2", "r1", day(2024, time.July, 5), day(2024, time.July, 9)),
	}, nil)

	// The first stay checks out on the 5th, so the second one starts
	// that same day in the freed bottom slot.
	require.Len(t, result.Events["2024-07-05"], 1)
	assert.Equal(t, "a2", result.Events["2024-07-05"][0].AssignmentID)
	assert.Equal(t, 0, result.Events["2024-07-05"][0].SlotIndex)
	assert.Equal(t, 0, result.Events["2024-07-01"][0].SlotIndex)
}

func TestLayoutIsDeterministicAcrossInputOrder(t *testing.T) {
	assignments := []models.RoomAssignment{
		assignment("a1", "p1", "r1", day(2024, time.July, 1), day(2024, time.July, 10)),
		assignment("a2", "p2", "r1", day(2024, time.July, 1), day(2024, time.July, 10)),
		assignment("a3", "p3", "r2", day(2024, time.July, 4), day(2024, time.July, 6)),
	}
	reversed := []models.RoomAssignment{assignments[2], assignments[1], assignments[0]}

	first := layoutFor(assignments, nil)
	second := layoutFor(reversed, nil)
	assert.Equal(t, first.Events, second.Events)
}

func TestWeekBoundaryReentersLabelAndRounding(t *testing.T) {
	// Ten nights spanning the Sunday July 7 / Monday July 8 row break.
	result := layoutFor([]models.RoomAssignment{
		assignment("a1", "p1", "r1", day(2024, time.July, 3), day(2024, time.July, 13)),
	}, nil)

	sunday := result.Events["2024-07-07"][0]
	assert.Equal(t, models.SegmentMiddle, sunday.Segment)
	assert.True(t, sunday.IsRowEnd)
	assert.True(t, sunday.RoundedRight)
	assert.False(t, sunday.ShowLabel)

	monday := result.Events["2024-07-08"][0]
	assert.Equal(t, models.SegmentMiddle, monday.Segment)
	assert.True(t, monday.IsRowStart)
	assert.True(t, monday.RoundedLeft)
	assert.True(t, monday.ShowLabel, "label re-enters on a new row")

	lastNight := result.Events["2024-07-12"][0]
	assert.Equal(t, models.SegmentEnd, lastNight.Segment)
	assert.True(t, lastNight.RoundedRight)
	assert.False(t, lastNight.ShowLabel)
}

func TestUnknownReferencesDegradeToFallbacks(t *testing.T) {
	result := layoutFor([]models.RoomAssignment{
		assignment("a1", "ghost", "nowhere", day(2024, time.July, 2), day(2024, time.July, 3)),
	}, nil)

	require.Len(t, result.Events["2024-07-02"], 1)
	ev := result.Events["2024-07-02"][0]
	assert.Equal(t, models.SegmentSingle, ev.Segment)
	assert.Equal(t, "Unknown – Unknown", ev.Label)
	assert.Equal(t, colorutil.FallbackColor, ev.Color)
	assert.Equal(t, colorutil.TextLight, ev.TextColor)
}

func TestBrightColorGetsDarkText(t *testing.T) {
	result := layoutFor([]models.RoomAssignment{
		assignment("a1", "p2", "r1", day(2024, time.July, 2), day(2024, time.July, 3)),
	}, nil)

	ev := result.Events["2024-07-02"][0]
	assert.Equal(t, "#ffff00", ev.Color)
	assert.Equal(t, colorutil.TextDark, ev.TextColor)
}

func TestSlotAllocationOverflowForcesPlacement(t *testing.T) {
	assignments := make([]models.RoomAssignment, 0, slotCap+1)
	for i := 0; i <= slotCap; i++ {
		assignments = append(assignments, assignment(
			fmt.Sprintf("a%03d", i), "p1", "r1",
			day(2024, time.July, 1), day(2024, time.July, 3),
		))
	}

	result := layoutFor(assignments, nil)
	assert.Equal(t, 1, result.SlotOverflows)

	forced := 0
	for _, ev := range result.Events["2024-07-01"] {
		if ev.SlotIndex == slotCap {
			forced++
		}
	}
	assert.Equal(t, 1, forced)
}

func TestTransportsBucketedAndSorted(t *testing.T) {
	transports := []models.Transport{
		{ID: "t2", PersonID: "p2", Type: models.TransportArrival, Datetime: time.Date(2024, time.July, 4, 18, 30, 0, 0, time.UTC), Location: "Airport"},
		{ID: "t1", PersonID: "p1", Type: models.TransportArrival, Datetime: time.Date(2024, time.July, 4, 9, 15, 0, 0, time.UTC), Location: "Central Station"},
		{ID: "t3", PersonID: "p1", Type: models.TransportDeparture, Datetime: time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC), Location: "Airport"},
	}

	result := layoutFor(nil, transports)
	require.Len(t, result.Transports["2024-07-04"], 2)
	assert.Equal(t, "t1", result.Transports["2024-07-04"][0].TransportID)
	assert.Equal(t, "09:15", result.Transports["2024-07-04"][0].Time)
	assert.Equal(t, "Alice", result.Transports["2024-07-04"][0].Label)
	assert.Equal(t, "t2", result.Transports["2024-07-04"][1].TransportID)
	assert.Empty(t, result.Transports["2024-06-01"], "out-of-window transport dropped")
}

func TestAssembleDaysAppliesCapsAndHiddenCount(t *testing.T) {
	assignments := make([]models.RoomAssignment, 0, 5)
	for i := 0; i < 5; i++ {
		assignments = append(assignments, assignment(
			fmt.Sprintf("a%d", i), "p1", "r1",
			day(2024, time.July, 10), day(2024, time.July, 11),
		))
	}
	transports := make([]models.Transport, 0, 3)
	for i := 0; i < 3; i++ {
		transports = append(transports, models.Transport{
			ID:       fmt.Sprintf("t%d", i),
			PersonID: "p1",
			Type:     models.TransportArrival,
			Datetime: time.Date(2024, time.July, 10, 10+i, 0, 0, 0, time.UTC),
			Location: "Airport",
		})
	}

	grid := julyGrid()
	layout := layoutFor(assignments, transports)
	days := AssembleDays(grid, time.July, layout)
	require.Len(t, days, len(grid))

	var target models.CalendarDay
	for _, d := range days {
		if d.Date == "2024-07-10" {
			target = d
		}
	}
	assert.Len(t, target.Events, MaxVisibleEventsPerDay)
	assert.Len(t, target.Transports, MaxVisibleTransportsPerDay)
	assert.Equal(t, 3, target.HiddenCount)
	assert.True(t, target.InMonth)

	// Padding days outside July are flagged and still carry empty slices.
	padded := days[len(days)-1]
	assert.Equal(t, "2024-08-04", padded.Date)
	assert.False(t, padded.InMonth)
	assert.NotNil(t, padded.Events)
	assert.NotNil(t, padded.Transports)
}
