package model

import "time"

// UserSession records a login for the admin sessions view. Sessions are
// written best-effort and never consulted during token verification; token
// validity is signature plus expiry only.
type UserSession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	TokenID   string    `json:"token_id" gorm:"size:64;not null"`
	IPAddress string    `json:"ip_address,omitempty" gorm:"size:64"`
	UserAgent string    `json:"user_agent,omitempty" gorm:"size:512"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
