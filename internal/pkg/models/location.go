package models

import "time"

// LocationUpdate is the payload for a captain reporting its position
type LocationUpdate struct {
	CaptainID string    `json:"captain_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// AvailabilityUpdate is the payload for a captain toggling availability
type AvailabilityUpdate struct {
	CaptainID string `json:"captain_id"`
	Available bool   `json:"available"`
}

// NearbyQuery describes a radius search around a pickup point
type NearbyQuery struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"`
}

// NearbyResult lists the captain IDs inside the requested radius
type NearbyResult struct {
	CaptainIDs []string `json:"captain_ids"`
	RadiusKm   float64  `json:"radius_km"`
}
