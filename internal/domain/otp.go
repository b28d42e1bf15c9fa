package domain

import "time"

// LoginOTP is a one-time login code keyed by the normalized contact field
// (email or mobile number) it was issued against. At most one live record
// exists per key; reissuing overwrites. JSON tags are for the Redis backing.
type LoginOTP struct {
	Key       string    `json:"key"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its validity instant at now.
// The boundary is inclusive: a verification exactly at ExpiresAt still passes.
func (o *LoginOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
