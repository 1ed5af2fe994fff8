package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/quizmind-backend/internal/domain/user"
)

// UserToken backs a login session. The ID doubles as the JWT "jti" claim, so
// deleting the row revokes the token.
type UserToken struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AccessToken string     `gorm:"uniqueIndex;not null;column:access_token" json:"-"`
	ExpiresAt   time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (UserToken) TableName() string { return "user_token" }
