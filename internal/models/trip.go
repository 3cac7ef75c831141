package models

import "time"

// Trip is one shared group trip: the scoping root for people, rooms,
// assignments and transports.
type Trip struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Destination *string   `db:"destination" json:"destination,omitempty"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TripFilter narrows down trips.
type TripFilter struct {
	Search   string
	Page     int
	PageSize int
}
