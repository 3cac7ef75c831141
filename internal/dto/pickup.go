package dto

// ClaimPickupRequest assigns a driver to a pending pickup.
type ClaimPickupRequest struct {
	DriverID string `json:"driver_id" validate:"required"`
}
