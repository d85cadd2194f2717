package model

import (
	"time"
)

// JWTTokenBlacklist stores revoked JWT ids until they expire
type JWTTokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"` // jti claim
	UsuarioID uint      `gorm:"index" json:"usuario"`
	Reason    string    `gorm:"type:varchar(100)" json:"reason"` // logout, password_change, manual_revoke
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (JWTTokenBlacklist) TableName() string {
	return "jwt_token_blacklist"
}
