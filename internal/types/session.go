package types

import "time"

// SessionMode decides which authority a cart mutation addresses.
type SessionMode int

const (
	// Guest means no stored credential; the cart is local-only.
	Guest SessionMode = iota
	// LocalAuth means an offline credential; the cart is still local-only.
	LocalAuth
	// RemoteAuth means a backend-issued token; mutations go to the backend.
	RemoteAuth
)

func (m SessionMode) String() string {
	switch m {
	case Guest:
		return "guest"
	case LocalAuth:
		return "local"
	case RemoteAuth:
		return "remote"
	default:
		return "unknown"
	}
}

// Credential is the stored session credential. Token is the raw bearer
// token; Issuer mirrors the token's iss claim when it parses as a JWT.
type Credential struct {
	Token     string    `json:"token"`
	Issuer    string    `json:"issuer,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}
