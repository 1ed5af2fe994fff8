package quiz

import (
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/quizmind-backend/internal/domain/user"
	"gorm.io/datatypes"
)

// QuizAttempt is one generated quiz taken by one user. Score starts at 0 and
// is written once, when the attempt is finalized.
type QuizAttempt struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User           *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Topic          string         `gorm:"column:topic;not null" json:"topic"`
	Difficulty     string         `gorm:"column:difficulty;not null" json:"difficulty"`
	Score          int            `gorm:"column:score;not null;default:0" json:"score"`
	TotalQuestions int            `gorm:"column:total_questions;not null" json:"total_questions"`
	Model          string         `gorm:"column:model" json:"model"`
	Metadata       datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	FinalizedAt    *time.Time     `gorm:"column:finalized_at" json:"finalized_at,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;index" json:"taken_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }

func (a *QuizAttempt) IsFinalized() bool {
	return a != nil && a.FinalizedAt != nil
}
