package dto

// CalendarQuery identifies one month layout computation.
type CalendarQuery struct {
	TripID string `json:"trip_id" validate:"required"`
	Month  string `json:"month" validate:"required"` // YYYY-MM
}
