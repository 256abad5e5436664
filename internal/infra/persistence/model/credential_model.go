package model

import (
	"time"

	"github.com/google/uuid"
)

// CredentialModel mirrors the 'user_credentials' table: one salted SHA-256
// digest per user plus the salt store line it was computed with.
type CredentialModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Digest       []byte    `gorm:"type:bytea;not null"`
	SaltPosition int       `gorm:"not null;check:salt_position >= 0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "user_credentials"
}
