package model

import "time"

// UserActivity is an append-only audit row for user actions (logins etc).
type UserActivity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Action    string    `json:"action" gorm:"size:100;not null"`
	Details   string    `json:"details,omitempty" gorm:"type:text"`
	IPAddress string    `json:"ip_address,omitempty" gorm:"size:64"`
	UserAgent string    `json:"user_agent,omitempty" gorm:"size:512"`
	CreatedAt time.Time `json:"created_at"`
}

// SystemLog is an append-only diagnostic row (failed logins, warnings).
type SystemLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Level     string    `json:"level" gorm:"size:20;not null;index"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Details   string    `json:"details,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
