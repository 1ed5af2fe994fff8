package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/platform/dbctx"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

// LeaderboardRow is one attempt joined with its owner's username.
type LeaderboardRow struct {
	Username       string    `json:"username"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TakenAt        time.Time `json:"taken_at"`
}

type QuizAttemptRepo interface {
	Create(dbc dbctx.Context, attempts []*types.QuizAttempt) ([]*types.QuizAttempt, error)
	GetByIDs(dbc dbctx.Context, attemptIDs []uuid.UUID) ([]*types.QuizAttempt, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.QuizAttempt, error)
	// Finalize sets the score once; it reports false when the attempt was
	// already finalized or does not exist.
	Finalize(dbc dbctx.Context, attemptID uuid.UUID, score int, finalizedAt time.Time) (bool, error)
	Leaderboard(dbc dbctx.Context, limit int) ([]LeaderboardRow, error)
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	repoLog := baseLog.With("repo", "QuizAttemptRepo")
	return &quizAttemptRepo{db: db, log: repoLog}
}

func (r *quizAttemptRepo) Create(dbc dbctx.Context, attempts []*types.QuizAttempt) ([]*types.QuizAttempt, error) {
	if len(attempts) == 0 {
		return []*types.QuizAttempt{}, nil
	}
	for _, a := range attempts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
	}
	if err := dbc.Conn(r.db).Omit("User").Create(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *quizAttemptRepo) GetByIDs(dbc dbctx.Context, attemptIDs []uuid.UUID) ([]*types.QuizAttempt, error) {
	var results []*types.QuizAttempt
	if len(attemptIDs) == 0 {
		return results, nil
	}
	if err := dbc.Conn(r.db).
		Where("id IN ?", attemptIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizAttemptRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.QuizAttempt, error) {
	var results []*types.QuizAttempt
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizAttemptRepo) Finalize(dbc dbctx.Context, attemptID uuid.UUID, score int, finalizedAt time.Time) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&types.QuizAttempt{}).
		Where("id = ? AND finalized_at IS NULL", attemptID).
		Updates(map[string]any{
			"score":        score,
			"finalized_at": finalizedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *quizAttemptRepo) Leaderboard(dbc dbctx.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []LeaderboardRow
	if err := dbc.Conn(r.db).
		Table(`quiz_attempt`).
		Select(`"user".username AS username, quiz_attempt.score AS score, quiz_attempt.total_questions AS total_questions, quiz_attempt.created_at AS taken_at`).
		Joins(`JOIN "user" ON "user".id = quiz_attempt.user_id`).
		Order("quiz_attempt.score DESC").
		Order("quiz_attempt.created_at ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
