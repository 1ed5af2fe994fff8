package quiz

import (
	"time"

	"github.com/google/uuid"
)

// OptionLabels are the only valid answer labels, in display order.
var OptionLabels = []string{"A", "B", "C", "D"}

func IsValidLabel(label string) bool {
	switch label {
	case "A", "B", "C", "D":
		return true
	default:
		return false
	}
}

// Question is one multiple-choice item of an attempt. UserAnswer and IsCorrect
// stay nil until an answer is recorded; later submissions overwrite them.
type Question struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	QuizAttemptID uuid.UUID    `gorm:"type:uuid;not null;index" json:"quiz_attempt_id"`
	QuizAttempt   *QuizAttempt `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizAttemptID;references:ID" json:"-"`
	Index         int          `gorm:"column:question_index;not null" json:"index"`
	QuestionText  string       `gorm:"column:question_text;not null" json:"question"`
	OptionA       string       `gorm:"column:option_a;not null" json:"option_a"`
	OptionB       string       `gorm:"column:option_b;not null" json:"option_b"`
	OptionC       string       `gorm:"column:option_c;not null" json:"option_c"`
	OptionD       string       `gorm:"column:option_d;not null" json:"option_d"`
	CorrectAnswer string       `gorm:"column:correct_answer;size:1;not null" json:"correct_answer"`
	UserAnswer    *string      `gorm:"column:user_answer;size:1" json:"user_answer,omitempty"`
	IsCorrect     *bool        `gorm:"column:is_correct" json:"is_correct,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

func (Question) TableName() string { return "quiz_question" }

// Options returns the four options keyed by label.
func (q *Question) Options() map[string]string {
	return map[string]string{
		"A": q.OptionA,
		"B": q.OptionB,
		"C": q.OptionC,
		"D": q.OptionD,
	}
}

// SetOptions copies labeled options onto the A-D columns.
func (q *Question) SetOptions(opts map[string]string) {
	q.OptionA = opts["A"]
	q.OptionB = opts["B"]
	q.OptionC = opts["C"]
	q.OptionD = opts["D"]
}
