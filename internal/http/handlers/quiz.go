package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/http/response"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"github.com/yungbote/quizmind-backend/internal/services"
)

type QuizHandler struct {
	log           *logger.Logger
	quizService   services.QuizService
	exposeAnswers bool
}

func NewQuizHandler(log *logger.Logger, quizService services.QuizService, exposeAnswers bool) *QuizHandler {
	return &QuizHandler{
		log:           log.With("handler", "QuizHandler"),
		quizService:   quizService,
		exposeAnswers: exposeAnswers,
	}
}

type questionView struct {
	ID       uuid.UUID         `json:"id"`
	Index    int               `json:"index"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
	Correct  string            `json:"correct,omitempty"`
}

type reviewQuestionView struct {
	questionView
	UserAnswer *string `json:"user_answer"`
	IsCorrect  *bool   `json:"is_correct"`
}

type quizReviewResponse struct {
	QuizID         uuid.UUID            `json:"quiz_id"`
	Topic          string               `json:"topic"`
	Difficulty     string               `json:"difficulty"`
	Score          int                  `json:"score"`
	TotalQuestions int                  `json:"total_questions"`
	Finalized      bool                 `json:"finalized"`
	TakenAt        time.Time            `json:"taken_at"`
	Questions      []reviewQuestionView `json:"questions"`
}

type startQuizResponse struct {
	QuizID         uuid.UUID      `json:"quiz_id"`
	Topic          string         `json:"topic"`
	Difficulty     string         `json:"difficulty"`
	TotalQuestions int            `json:"total_questions"`
	Questions      []questionView `json:"questions"`
}

// POST /api/quizzes
func (qh *QuizHandler) StartQuiz(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Topic        string `json:"topic"`
		NumQuestions int    `json:"num_questions"`
		Difficulty   string `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	attempt, questions, err := qh.quizService.StartQuiz(c.Request.Context(), rd.UserID, req.Topic, req.NumQuestions, req.Difficulty)
	if err != nil {
		respondServiceError(c, qh.log, err)
		return
	}
	response.RespondOK(c, startQuizResponse{
		QuizID:         attempt.ID,
		Topic:          attempt.Topic,
		Difficulty:     attempt.Difficulty,
		TotalQuestions: attempt.TotalQuestions,
		Questions: lo.Map(questions, func(q *types.Question, _ int) questionView {
			v := questionView{
				ID:       q.ID,
				Index:    q.Index,
				Question: q.QuestionText,
				Options:  q.Options(),
			}
			if qh.exposeAnswers {
				v.Correct = q.CorrectAnswer
			}
			return v
		}),
	})
}

// GET /api/quizzes/:id
// Correct labels are shown once the attempt is finalized, or always when answers are exposed.
func (qh *QuizHandler) GetQuiz(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quiz_id", err)
		return
	}
	attempt, questions, err := qh.quizService.GetQuiz(c.Request.Context(), rd.UserID, quizID)
	if err != nil {
		respondServiceError(c, qh.log, err)
		return
	}
	reveal := qh.exposeAnswers || attempt.IsFinalized()
	response.RespondOK(c, quizReviewResponse{
		QuizID:         attempt.ID,
		Topic:          attempt.Topic,
		Difficulty:     attempt.Difficulty,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Finalized:      attempt.IsFinalized(),
		TakenAt:        attempt.CreatedAt.UTC(),
		Questions: lo.Map(questions, func(q *types.Question, _ int) reviewQuestionView {
			v := reviewQuestionView{
				questionView: questionView{
					ID:       q.ID,
					Index:    q.Index,
					Question: q.QuestionText,
					Options:  q.Options(),
				},
				UserAnswer: q.UserAnswer,
				IsCorrect:  q.IsCorrect,
			}
			if reveal {
				v.Correct = q.CorrectAnswer
			}
			return v
		}),
	})
}

// POST /api/answers
func (qh *QuizHandler) SaveAnswer(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		QuestionID    string `json:"question_id" binding:"required"`
		UserAnswer    string `json:"user_answer" binding:"required"`
		CorrectAnswer string `json:"correct_answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_question_id", err)
		return
	}
	isCorrect, err := qh.quizService.RecordAnswer(c.Request.Context(), rd.UserID, questionID, req.UserAnswer, req.CorrectAnswer)
	if err != nil {
		respondServiceError(c, qh.log, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "success", "is_correct": isCorrect})
}

// POST /api/quizzes/:id/finalize
func (qh *QuizHandler) Finalize(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_quiz_id", err)
		return
	}
	var req struct {
		Score          *int `json:"score"`
		TotalQuestions *int `json:"total_questions"`
	}
	// The body is advisory; an empty one is fine.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	res, err := qh.quizService.FinalizeScore(c.Request.Context(), rd.UserID, quizID, req.Score, req.TotalQuestions)
	if err != nil {
		respondServiceError(c, qh.log, err)
		return
	}
	response.RespondOK(c, res)
}
