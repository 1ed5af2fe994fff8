package quiz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/platform/dbctx"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

type QuestionRepo interface {
	Create(dbc dbctx.Context, questions []*types.Question) ([]*types.Question, error)
	GetByIDs(dbc dbctx.Context, questionIDs []uuid.UUID) ([]*types.Question, error)
	GetByQuizAttemptIDs(dbc dbctx.Context, attemptIDs []uuid.UUID) ([]*types.Question, error)
	// RecordAnswer overwrites any earlier answer; last write wins.
	RecordAnswer(dbc dbctx.Context, questionID uuid.UUID, userAnswer string, isCorrect bool) error
	CountCorrect(dbc dbctx.Context, attemptID uuid.UUID) (int64, error)
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (r *questionRepo) Create(dbc dbctx.Context, questions []*types.Question) ([]*types.Question, error) {
	if len(questions) == 0 {
		return []*types.Question{}, nil
	}
	for _, q := range questions {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Omit("QuizAttempt").Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) GetByIDs(dbc dbctx.Context, questionIDs []uuid.UUID) ([]*types.Question, error) {
	var results []*types.Question
	if len(questionIDs) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questionRepo) GetByQuizAttemptIDs(dbc dbctx.Context, attemptIDs []uuid.UUID) ([]*types.Question, error) {
	var results []*types.Question
	if len(attemptIDs) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("quiz_attempt_id IN ?", attemptIDs).
		Order("quiz_attempt_id ASC").
		Order("question_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questionRepo) RecordAnswer(dbc dbctx.Context, questionID uuid.UUID, userAnswer string, isCorrect bool) error {
	return dbc.Conn(r.db).
		Model(&types.Question{}).
		Where("id = ?", questionID).
		Updates(map[string]any{
			"user_answer": userAnswer,
			"is_correct":  isCorrect,
		}).Error
}

func (r *questionRepo) CountCorrect(dbc dbctx.Context, attemptID uuid.UUID) (int64, error) {
	var count int64
	if err := dbc.Conn(r.db).
		Model(&types.Question{}).
		Where("quiz_attempt_id = ? AND is_correct = ?", attemptID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
