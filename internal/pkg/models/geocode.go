package models

// RouteMetrics carries distance and duration between two resolved addresses
type RouteMetrics struct {
	DistanceMeters  int64 `json:"distance_meters"`
	DurationSeconds int64 `json:"duration_seconds"`
}
