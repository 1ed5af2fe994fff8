package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/quizmind-backend/internal/data/repos"
	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/domain/quiz"
	"github.com/yungbote/quizmind-backend/internal/platform/dbctx"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"github.com/yungbote/quizmind-backend/internal/platform/ratelimit"
)

const (
	maxTopicLength          = 200
	defaultMaxQuizQuestions = 20
)

var validDifficulties = map[string]struct{}{
	"easy":   {},
	"medium": {},
	"hard":   {},
}

// QuizRequest is a normalized, validated generation request.
type QuizRequest struct {
	Topic      string
	Count      int
	Difficulty string
}

// FinalizeResult carries the authoritative score next to what the client claimed.
type FinalizeResult struct {
	QuizID         uuid.UUID `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	ClientScore    *int      `json:"client_score"`
	ScoreMismatch  bool      `json:"score_mismatch"`
}

type QuizService interface {
	StartQuiz(ctx context.Context, userID uuid.UUID, topic string, count int, difficulty string) (*types.QuizAttempt, []*types.Question, error)
	RecordAnswer(ctx context.Context, userID, questionID uuid.UUID, submittedLabel, claimedCorrectLabel string) (bool, error)
	FinalizeScore(ctx context.Context, userID, quizID uuid.UUID, clientScore, clientTotal *int) (*FinalizeResult, error)
	// GetQuiz returns one of the caller's attempts with its questions in generation order.
	GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*types.QuizAttempt, []*types.Question, error)
}

type QuizConfig struct {
	MaxQuestions int
}

type quizService struct {
	db           *gorm.DB
	log          *logger.Logger
	generator    QuizGenerator
	limiter      ratelimit.Limiter
	attemptRepo  repos.QuizAttemptRepo
	questionRepo repos.QuestionRepo
	maxQuestions int
	now          func() time.Time
}

func NewQuizService(
	db *gorm.DB,
	log *logger.Logger,
	generator QuizGenerator,
	limiter ratelimit.Limiter,
	attemptRepo repos.QuizAttemptRepo,
	questionRepo repos.QuestionRepo,
	cfg QuizConfig,
) QuizService {
	serviceLog := log.With("service", "QuizService")
	if limiter == nil {
		limiter = ratelimit.Noop()
	}
	maxQuestions := cfg.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = defaultMaxQuizQuestions
	}
	return &quizService{
		db:           db,
		log:          serviceLog,
		generator:    generator,
		limiter:      limiter,
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		maxQuestions: maxQuestions,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ValidateQuizRequest trims and bounds the user-supplied generation parameters.
func ValidateQuizRequest(topic string, count int, difficulty string, maxQuestions int) (QuizRequest, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return QuizRequest{}, invalidArgument("topic is required")
	}
	if utf8.RuneCountInString(topic) > maxTopicLength {
		return QuizRequest{}, invalidArgument("topic must be at most %d characters", maxTopicLength)
	}
	if maxQuestions <= 0 {
		maxQuestions = defaultMaxQuizQuestions
	}
	if count < 1 || count > maxQuestions {
		return QuizRequest{}, invalidArgument("num_questions must be between 1 and %d", maxQuestions)
	}
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if _, ok := validDifficulties[difficulty]; !ok {
		return QuizRequest{}, invalidArgument("difficulty must be one of easy, medium, hard")
	}
	return QuizRequest{Topic: topic, Count: count, Difficulty: difficulty}, nil
}

func (qs *quizService) StartQuiz(ctx context.Context, userID uuid.UUID, topic string, count int, difficulty string) (*types.QuizAttempt, []*types.Question, error) {
	if userID == uuid.Nil {
		return nil, nil, ErrUnauthorized
	}
	req, err := ValidateQuizRequest(topic, count, difficulty, qs.maxQuestions)
	if err != nil {
		return nil, nil, err
	}

	allowed, err := qs.limiter.Allow(ctx, "generate:"+userID.String())
	if err != nil {
		qs.log.Warn("rate limiter unavailable, allowing request", "user_id", userID, "error", err)
	} else if !allowed {
		return nil, nil, ErrRateLimited
	}

	drafts, err := qs.generator.Generate(ctx, req.Topic, req.Count, req.Difficulty)
	if err != nil {
		return nil, nil, err
	}
	if len(drafts) == 0 {
		return nil, nil, &GenerationError{Kind: GenerationMalformed, Err: fmt.Errorf("no questions generated")}
	}

	metadata, err := json.Marshal(map[string]any{
		"requested_questions": req.Count,
		"difficulty":          req.Difficulty,
		"temperature":         qs.generator.Temperature(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("encode attempt metadata: %w", err)
	}

	now := qs.now()
	attempt := &types.QuizAttempt{
		ID:             uuid.New(),
		UserID:         userID,
		Topic:          req.Topic,
		Difficulty:     req.Difficulty,
		Score:          0,
		TotalQuestions: len(drafts),
		Model:          qs.generator.Model(),
		Metadata:       datatypes.JSON(metadata),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	questions := make([]*types.Question, 0, len(drafts))
	for i, d := range drafts {
		q := &types.Question{
			ID:            uuid.New(),
			QuizAttemptID: attempt.ID,
			Index:         i,
			QuestionText:  d.Question,
			CorrectAnswer: d.Correct,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		q.SetOptions(d.Options)
		questions = append(questions, q)
	}

	err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := qs.attemptRepo.Create(dbc, []*types.QuizAttempt{attempt}); err != nil {
			return fmt.Errorf("create quiz attempt: %w", err)
		}
		if _, err := qs.questionRepo.Create(dbc, questions); err != nil {
			return fmt.Errorf("create quiz questions: %w", err)
		}
		return nil
	})
	if err != nil {
		qs.log.Error("quiz persistence failed", "user_id", userID, "topic", req.Topic, "error", err)
		return nil, nil, err
	}
	qs.log.Info("quiz started", "user_id", userID, "quiz_id", attempt.ID, "topic", req.Topic, "questions", len(questions))
	return attempt, questions, nil
}

func (qs *quizService) RecordAnswer(ctx context.Context, userID, questionID uuid.UUID, submittedLabel, claimedCorrectLabel string) (bool, error) {
	submitted := normalizeLabel(submittedLabel)
	if !quiz.IsValidLabel(submitted) {
		return false, invalidArgument("user_answer must be one of A, B, C, D")
	}
	dbc := dbctx.New(ctx)

	question, err := qs.ownedQuestion(dbc, userID, questionID)
	if err != nil {
		return false, err
	}

	isCorrect := submitted == question.CorrectAnswer
	if claimed := normalizeLabel(claimedCorrectLabel); claimed != "" && claimed != question.CorrectAnswer {
		qs.log.Warn("client correct_answer disagrees with stored answer", "user_id", userID, "question_id", questionID, "claimed", claimed)
	}
	if err := qs.questionRepo.RecordAnswer(dbc, question.ID, submitted, isCorrect); err != nil {
		return false, fmt.Errorf("record answer: %w", err)
	}
	return isCorrect, nil
}

func (qs *quizService) ownedQuestion(dbc dbctx.Context, userID, questionID uuid.UUID) (*types.Question, error) {
	questions, err := qs.questionRepo.GetByIDs(dbc, []uuid.UUID{questionID})
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrQuestionNotFound
	}
	attempts, err := qs.attemptRepo.GetByIDs(dbc, []uuid.UUID{questions[0].QuizAttemptID})
	if err != nil {
		return nil, fmt.Errorf("load quiz attempt: %w", err)
	}
	if len(attempts) == 0 || attempts[0].UserID != userID {
		return nil, ErrQuestionNotFound
	}
	return questions[0], nil
}

func (qs *quizService) FinalizeScore(ctx context.Context, userID, quizID uuid.UUID, clientScore, clientTotal *int) (*FinalizeResult, error) {
	var result *FinalizeResult
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		attempts, err := qs.attemptRepo.GetByIDs(dbc, []uuid.UUID{quizID})
		if err != nil {
			return fmt.Errorf("load quiz attempt: %w", err)
		}
		if len(attempts) == 0 || attempts[0].UserID != userID {
			return ErrQuizNotFound
		}
		attempt := attempts[0]
		if attempt.IsFinalized() {
			return ErrAlreadyFinalized
		}

		correct, err := qs.questionRepo.CountCorrect(dbc, attempt.ID)
		if err != nil {
			return fmt.Errorf("count correct answers: %w", err)
		}
		score := int(correct)
		updated, err := qs.attemptRepo.Finalize(dbc, attempt.ID, score, qs.now())
		if err != nil {
			return fmt.Errorf("finalize quiz attempt: %w", err)
		}
		if !updated {
			return ErrAlreadyFinalized
		}
		result = &FinalizeResult{
			QuizID:         attempt.ID,
			Score:          score,
			TotalQuestions: attempt.TotalQuestions,
			ClientScore:    clientScore,
			ScoreMismatch:  clientScore != nil && *clientScore != score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.ScoreMismatch {
		qs.log.Warn("client score differs from recomputed score", "user_id", userID, "quiz_id", quizID, "client_score", *clientScore, "score", result.Score)
	}
	if clientTotal != nil && *clientTotal != result.TotalQuestions {
		qs.log.Warn("client total differs from stored total", "user_id", userID, "quiz_id", quizID, "client_total", *clientTotal, "total_questions", result.TotalQuestions)
	}
	return result, nil
}

func (qs *quizService) GetQuiz(ctx context.Context, userID, quizID uuid.UUID) (*types.QuizAttempt, []*types.Question, error) {
	dbc := dbctx.New(ctx)
	attempts, err := qs.attemptRepo.GetByIDs(dbc, []uuid.UUID{quizID})
	if err != nil {
		return nil, nil, fmt.Errorf("load quiz attempt: %w", err)
	}
	if len(attempts) == 0 || attempts[0].UserID != userID {
		return nil, nil, ErrQuizNotFound
	}
	questions, err := qs.questionRepo.GetByQuizAttemptIDs(dbc, []uuid.UUID{quizID})
	if err != nil {
		return nil, nil, fmt.Errorf("load questions: %w", err)
	}
	return attempts[0], questions, nil
}

func normalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}
