package model

import "time"

// RefreshToken is one outstanding, revocable refresh grant. The registry row
// is keyed by the signed token string itself; membership in the registry is
// the authoritative revocation signal, independent of the token's own
// embedded expiry.
type RefreshToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
