package models

import "time"

// TransportType distinguishes arrivals from departures.
type TransportType string

const (
	TransportArrival   TransportType = "ARRIVAL"
	TransportDeparture TransportType = "DEPARTURE"
)

// Transport is one point-in-time arrival or departure for a person,
// optionally flagged as needing a pickup at its location.
type Transport struct {
	ID          string        `db:"id" json:"id"`
	TripID      string        `db:"trip_id" json:"trip_id"`
	PersonID    string        `db:"person_id" json:"person_id"`
	Type        TransportType `db:"type" json:"type"`
	Datetime    time.Time     `db:"datetime" json:"datetime"`
	Location    string        `db:"location" json:"location"`
	NeedsPickup bool          `db:"needs_pickup" json:"needs_pickup"`
	DriverID    *string       `db:"driver_id" json:"driver_id,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// TransportFilter narrows down transports.
type TransportFilter struct {
	TripID string
	Type   *TransportType
	From   *time.Time
	To     *time.Time
}
