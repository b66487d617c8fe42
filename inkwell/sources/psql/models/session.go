package models

import "time"

// Session maps an opaque cookie token to a user id. Rows are created on
// login, deleted on logout and reaped after ExpiresAt.
type Session struct {
	Token     string    `json:"token" gorm:"primaryKey;type:varchar(64)"`
	UserID    int       `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

func (Session) TableName() string {
	return "sessions"
}
