package constants

// Redis key formats
const (
	// Session layer
	KeyRevokedToken = "auth:revoked:%s" // Format: auth:revoked:{token}

	// Dispatch layer
	KeyCaptainGeo      = "captains:geo"         // GEO set of all captain locations
	KeyCaptainLocation = "captains:location:%s" // Format: captains:location:{captain_id}
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
)
