package models

import "time"

// RoomAssignment books one person into one room for a date range.
// EndDate follows checkout semantics: it is the departure morning, so
// the person does not occupy the room on the night of EndDate.
type RoomAssignment struct {
	ID        string    `db:"id" json:"id"`
	TripID    string    `db:"trip_id" json:"trip_id"`
	RoomID    string    `db:"room_id" json:"room_id"`
	PersonID  string    `db:"person_id" json:"person_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Nights returns the occupied night count; zero or negative stays
// contribute nothing to the calendar.
func (a RoomAssignment) Nights() int {
	return int(a.EndDate.Sub(a.StartDate).Hours() / 24)
}

// LastOccupiedNight is the final date the room is actually slept in.
func (a RoomAssignment) LastOccupiedNight() time.Time {
	return a.EndDate.AddDate(0, 0, -1)
}
