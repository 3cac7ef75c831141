package models

import "time"

// PickupGroup is a convoy of unclaimed pickups sharing a station and a
// chained time window.
type PickupGroup struct {
	Station        string      `json:"station"`
	DisplayStation string      `json:"display_station"`
	StartTime      time.Time   `json:"start_time"`
	EndTime        time.Time   `json:"end_time"`
	Transports     []Transport `json:"transports"`
}
