package dto

import "time"

// ShareLinkResponse carries a read-only trip link token.
type ShareLinkResponse struct {
	TripID    string    `json:"trip_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
