package constants

// NATS subjects published by the dispatch service
const (
	SubjectLocationUpdate     = "captain.location.update"
	SubjectCaptainAvailable   = "captain.availability.on"
	SubjectCaptainUnavailable = "captain.availability.off"
)
