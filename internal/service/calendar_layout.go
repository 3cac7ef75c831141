package service

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tripgrid/trip-logistics-api/internal/models"
	"github.com/tripgrid/trip-logistics-api/pkg/colorutil"
)

const (
	// MaxVisibleEventsPerDay caps stacked assignment segments per cell.
	MaxVisibleEventsPerDay = 3
	// MaxVisibleTransportsPerDay caps transport chips per cell.
	MaxVisibleTransportsPerDay = 2

	// slotCap is the escape valve for pathological overlap counts: the
	// allocator force-assigns this slot instead of scanning forever.
	slotCap = 100
)

// LayoutInput feeds one pure layout computation. Lookup maps come from
// the caller; ids missing from them degrade to UnknownLabel.
type LayoutInput struct {
	VisibleDays  []time.Time
	Assignments  []models.RoomAssignment
	Transports   []models.Transport
	PersonNames  map[string]string
	PersonColors map[string]string
	RoomNames    map[string]string
	UnknownLabel string
	Logger       *zap.Logger
}

// LayoutResult is the day-keyed render plan plus the overflow count for
// observability.
type LayoutResult struct {
	Events        map[models.DateKey][]models.CalendarDayEvent
	Transports    map[models.DateKey][]models.CalendarDayTransport
	SlotOverflows int
}

// layoutSpan is one assignment clipped to the visible window.
type layoutSpan struct {
	assignment models.RoomAssignment
	start      time.Time
	end        time.Time
	days       []time.Time
	label      string
	color      string
	textColor  string
	slot       int
}

// BuildCalendarLayout computes a collision-free month layout: clip each
// assignment to the window, greedily allocate stacking slots, then emit
// per-day segments with label and rounding re-entry flags. Malformed
// individual records degrade and never abort the batch.
func BuildCalendarLayout(in LayoutInput) LayoutResult {
	result := LayoutResult{
		Events:     make(map[models.DateKey][]models.CalendarDayEvent),
		Transports: make(map[models.DateKey][]models.CalendarDayTransport),
	}
	if len(in.VisibleDays) == 0 {
		return result
	}

	logger := in.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	firstVisible := dateOnly(in.VisibleDays[0])
	lastVisible := dateOnly(in.VisibleDays[len(in.VisibleDays)-1])

	spans := buildSpans(in, firstVisible, lastVisible)
	result.SlotOverflows = allocateSlots(spans, logger)

	for _, span := range spans {
		emitSpanDays(span, result.Events)
	}
	for key := range result.Events {
		events := result.Events[key]
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].SlotIndex < events[j].SlotIndex
		})
		result.Events[key] = events
	}

	placeTransports(in, firstVisible, lastVisible, result.Transports)

	return result
}

// buildSpans applies visibility filtering, range clipping and
// label/color resolution. Zero-night and out-of-window assignments are
// dropped here.
func buildSpans(in LayoutInput, firstVisible, lastVisible time.Time) []*layoutSpan {
	spans := make([]*layoutSpan, 0, len(in.Assignments))
	for _, assignment := range in.Assignments {
		start := dateOnly(assignment.StartDate)
		lastNight := dateOnly(assignment.EndDate).AddDate(0, 0, -1)
		if lastNight.Before(start) {
			continue
		}
		if lastNight.Before(firstVisible) || start.After(lastVisible) {
			continue
		}

		effectiveStart := maxDate(start, firstVisible)
		effectiveEnd := minDate(lastNight, lastVisible)

		personName := in.PersonNames[assignment.PersonID]
		if personName == "" {
			personName = in.UnknownLabel
		}
		roomName := in.RoomNames[assignment.RoomID]
		if roomName == "" {
			roomName = in.UnknownLabel
		}

		color := displayColor(in.PersonColors[assignment.PersonID])

		span := &layoutSpan{
			assignment: assignment,
			start:      effectiveStart,
			end:        effectiveEnd,
			label:      fmt.Sprintf("%s – %s", personName, roomName),
			color:      color,
			textColor:  colorutil.ContrastTextColor(color),
		}
		for d := effectiveStart; !d.After(effectiveEnd); d = d.AddDate(0, 0, 1) {
			span.days = append(span.days, d)
		}
		spans = append(spans, span)
	}
	return spans
}

// allocateSlots performs the greedy interval coloring: earliest start
// first, longer spans before shorter ones, assignment id as the final
// tie break so re-renders of identical input stay byte-identical.
// Returns the number of force-placed spans that exhausted the slot cap.
func allocateSlots(spans []*layoutSpan, logger *zap.Logger) int {
	sort.SliceStable(spans, func(i, j int) bool {
		if !spans[i].start.Equal(spans[j].start) {
			return spans[i].start.Before(spans[j].start)
		}
		if len(spans[i].days) != len(spans[j].days) {
			return len(spans[i].days) > len(spans[j].days)
		}
		return spans[i].assignment.ID < spans[j].assignment.ID
	})

	occupied := make(map[models.DateKey]map[int]bool)
	overflows := 0
	for _, span := range spans {
		slot := -1
		for candidate := 0; candidate < slotCap; candidate++ {
			if spanFits(span, candidate, occupied) {
				slot = candidate
				break
			}
		}
		if slot < 0 {
			slot = slotCap
			overflows++
			logger.Warn("calendar slot allocation overflow",
				zap.String("assignment_id", span.assignment.ID),
				zap.Int("forced_slot", slotCap))
		}
		span.slot = slot
		for _, day := range span.days {
			key := dateKey(day)
			if occupied[key] == nil {
				occupied[key] = make(map[int]bool)
			}
			occupied[key][slot] = true
		}
	}
	return overflows
}

func spanFits(span *layoutSpan, slot int, occupied map[models.DateKey]map[int]bool) bool {
	for _, day := range span.days {
		if occupied[dateKey(day)][slot] {
			return false
		}
	}
	return true
}

// emitSpanDays walks the clipped range and materializes the per-day
// segments. A week row boundary forces the label and rounding to
// re-enter even mid-span.
func emitSpanDays(span *layoutSpan, events map[models.DateKey][]models.CalendarDayEvent) {
	for _, day := range span.days {
		segment := segmentFor(day, span)
		rowStart := day.Weekday() == time.Monday
		rowEnd := day.Weekday() == time.Sunday

		logicalStart := segment == models.SegmentSingle || segment == models.SegmentStart
		logicalEnd := segment == models.SegmentSingle || segment == models.SegmentEnd

		event := models.CalendarDayEvent{
			AssignmentID: span.assignment.ID,
			PersonID:     span.assignment.PersonID,
			RoomID:       span.assignment.RoomID,
			Segment:      segment,
			SlotIndex:    span.slot,
			IsRowStart:   rowStart,
			IsRowEnd:     rowEnd,
			ShowLabel:    logicalStart || (rowStart && segment != models.SegmentEnd),
			RoundedLeft:  logicalStart || rowStart,
			RoundedRight: logicalEnd || rowEnd,
			Label:        span.label,
			Color:        span.color,
			TextColor:    span.textColor,
		}
		key := dateKey(day)
		events[key] = append(events[key], event)
	}
}

func segmentFor(day time.Time, span *layoutSpan) models.SegmentPosition {
	switch {
	case span.start.Equal(span.end):
		return models.SegmentSingle
	case day.Equal(span.start):
		return models.SegmentStart
	case day.Equal(span.end):
		return models.SegmentEnd
	default:
		return models.SegmentMiddle
	}
}

// placeTransports drops each in-window transport into its date bucket.
// No slot allocation: transports stack above events, capped separately.
func placeTransports(in LayoutInput, firstVisible, lastVisible time.Time, out map[models.DateKey][]models.CalendarDayTransport) {
	for _, transport := range in.Transports {
		day := dateOnly(transport.Datetime)
		if day.Before(firstVisible) || day.After(lastVisible) {
			continue
		}
		personName := in.PersonNames[transport.PersonID]
		if personName == "" {
			personName = in.UnknownLabel
		}
		key := dateKey(day)
		out[key] = append(out[key], models.CalendarDayTransport{
			TransportID: transport.ID,
			PersonID:    transport.PersonID,
			Type:        transport.Type,
			Time:        transport.Datetime.Format("15:04"),
			Location:    transport.Location,
			Label:       personName,
		})
	}
	for key := range out {
		transports := out[key]
		sort.SliceStable(transports, func(i, j int) bool {
			if transports[i].Time != transports[j].Time {
				return transports[i].Time < transports[j].Time
			}
			return transports[i].TransportID < transports[j].TransportID
		})
		out[key] = transports
	}
}

// AssembleDays flattens the layout maps into ordered day cells,
// applying the per-day visibility caps and folding everything beyond
// them into the hidden count.
func AssembleDays(visibleDays []time.Time, month time.Month, layout LayoutResult) []models.CalendarDay {
	days := make([]models.CalendarDay, 0, len(visibleDays))
	for _, raw := range visibleDays {
		day := dateOnly(raw)
		key := dateKey(day)
		events := layout.Events[key]
		transports := layout.Transports[key]

		visibleEvents := events
		if len(visibleEvents) > MaxVisibleEventsPerDay {
			visibleEvents = visibleEvents[:MaxVisibleEventsPerDay]
		}
		visibleTransports := transports
		if len(visibleTransports) > MaxVisibleTransportsPerDay {
			visibleTransports = visibleTransports[:MaxVisibleTransportsPerDay]
		}
		hidden := (len(events) - len(visibleEvents)) + (len(transports) - len(visibleTransports))

		if visibleEvents == nil {
			visibleEvents = []models.CalendarDayEvent{}
		}
		if visibleTransports == nil {
			visibleTransports = []models.CalendarDayTransport{}
		}

		days = append(days, models.CalendarDay{
			Date:        key,
			InMonth:     day.Month() == month,
			Events:      visibleEvents,
			Transports:  visibleTransports,
			HiddenCount: hidden,
		})
	}
	return days
}

// MonthGrid expands a month into a contiguous window padded to whole
// Monday-start weeks.
func MonthGrid(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}
	end := last
	for end.Weekday() != time.Sunday {
		end = end.AddDate(0, 0, 1)
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) models.DateKey {
	return t.Format("2006-01-02")
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// displayColor keeps the raw person color unless it is missing or too
// short to be a color at all; the contrast helper tolerates whatever
// remains.
func displayColor(raw string) string {
	if len(raw) < 4 {
		return colorutil.FallbackColor
	}
	return raw
}
