package dto

// CreateExportRequest enqueues an export job for a trip.
type CreateExportRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=TRANSPORTS CALENDAR"`
	Format string `json:"format" validate:"required,oneof=CSV PDF"`
	Month  string `json:"month"` // YYYY-MM, required for CALENDAR exports
}
