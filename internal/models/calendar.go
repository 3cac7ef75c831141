package models

// DateKey is a calendar date rendered as YYYY-MM-DD, used as the map
// key for per-day layout output.
type DateKey = string

// SegmentPosition locates one day inside a multi-day span.
type SegmentPosition string

const (
	SegmentSingle SegmentPosition = "single"
	SegmentStart  SegmentPosition = "start"
	SegmentMiddle SegmentPosition = "middle"
	SegmentEnd    SegmentPosition = "end"
)

// CalendarDayEvent is one assignment's segment on one visible day,
// carrying everything a grid renderer needs to paint it without
// re-deriving layout.
type CalendarDayEvent struct {
	AssignmentID string          `json:"assignment_id"`
	PersonID     string          `json:"person_id"`
	RoomID       string          `json:"room_id"`
	Segment      SegmentPosition `json:"segment"`
	SlotIndex    int             `json:"slot_index"`
	IsRowStart   bool            `json:"is_row_start"`
	IsRowEnd     bool            `json:"is_row_end"`
	ShowLabel    bool            `json:"show_label"`
	RoundedLeft  bool            `json:"rounded_left"`
	RoundedRight bool            `json:"rounded_right"`
	Label        string          `json:"label"`
	Color        string          `json:"color"`
	TextColor    string          `json:"text_color"`
}

// CalendarDayTransport is one arrival/departure chip on a visible day.
type CalendarDayTransport struct {
	TransportID string        `json:"transport_id"`
	PersonID    string        `json:"person_id"`
	Type        TransportType `json:"type"`
	Time        string        `json:"time"`
	Location    string        `json:"location"`
	Label       string        `json:"label"`
}

// CalendarDay aggregates everything rendered inside one day cell.
type CalendarDay struct {
	Date        DateKey                `json:"date"`
	InMonth     bool                   `json:"in_month"`
	Events      []CalendarDayEvent     `json:"events"`
	Transports  []CalendarDayTransport `json:"transports"`
	HiddenCount int                    `json:"hidden_count"`
}

// CalendarMonth is the full layout for one padded month grid.
type CalendarMonth struct {
	TripID string        `json:"trip_id"`
	Month  string        `json:"month"`
	Days   []CalendarDay `json:"days"`
}
