package models

// RegisterRiderRequest is the payload for rider registration
type RegisterRiderRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Password string `json:"password"`
}

// RegisterCaptainRequest is the payload for captain registration
type RegisterCaptainRequest struct {
	Email        string `json:"email"`
	FullName     string `json:"fullname"`
	Password     string `json:"password"`
	VehicleType  string `json:"vehicle_type"`
	VehiclePlate string `json:"vehicle_plate"`
}

// LoginRequest is the payload for rider and captain login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	Token     string        `json:"token"`
	UserID    string        `json:"user_id"`
	Kind      PrincipalKind `json:"kind"`
	ExpiresAt int64         `json:"expires_at"`
}
