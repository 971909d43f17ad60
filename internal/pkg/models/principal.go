package models

import (
	"time"

	"github.com/google/uuid"
)

// PrincipalKind distinguishes the two account types sharing the session layer.
type PrincipalKind string

const (
	KindRider   PrincipalKind = "rider"
	KindCaptain PrincipalKind = "captain"
)

// Valid reports whether the kind is one of the two known principal types.
func (k PrincipalKind) Valid() bool {
	return k == KindRider || k == KindCaptain
}

// Principal is an authenticated actor, either a rider or a captain.
// Credentials bind to CredentialSubject, never to structural record fields.
type Principal interface {
	PrincipalID() uuid.UUID
	CredentialSubject() string
	Kind() PrincipalKind
}

// Rider represents a passenger account
type Rider struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"fullname" db:"fullname"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (r *Rider) PrincipalID() uuid.UUID { return r.ID }

func (r *Rider) CredentialSubject() string { return r.ID.String() }

func (r *Rider) Kind() PrincipalKind { return KindRider }

// Captain represents a driver account. LastLocation is the most recent
// coordinate report only; no history is retained.
type Captain struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	FullName     string      `json:"fullname" db:"fullname"`
	PasswordHash string      `json:"-" db:"password_hash"`
	VehicleType  string      `json:"vehicle_type" db:"vehicle_type"`
	VehiclePlate string      `json:"vehicle_plate" db:"vehicle_plate"`
	Available    bool        `json:"available" db:"available"`
	LastLocation *Coordinate `json:"last_location,omitempty" db:"-"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

func (c *Captain) PrincipalID() uuid.UUID { return c.ID }

func (c *Captain) CredentialSubject() string { return c.ID.String() }

func (c *Captain) Kind() PrincipalKind { return KindCaptain }

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
