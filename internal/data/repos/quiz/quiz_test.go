package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/quizmind-backend/internal/data/repos/testutil"
	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/platform/dbctx"
)

func TestQuestionRoundTripAndAnswers(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	attempts := NewQuizAttemptRepo(db, log)
	questions := NewQuestionRepo(db, log)

	u := testutil.SeedUser(t, ctx, tx, "questionrepo")
	created, err := attempts.Create(dbc, []*types.QuizAttempt{{
		UserID:         u.ID,
		Topic:          "go",
		Difficulty:     "easy",
		TotalQuestions: 2,
	}})
	if err != nil {
		t.Fatalf("Create attempt: %v", err)
	}
	attempt := created[0]

	q1 := &types.Question{QuizAttemptID: attempt.ID, Index: 0, QuestionText: "first", CorrectAnswer: "B"}
	q1.SetOptions(map[string]string{"A": "x", "B": "y", "C": "z", "D": "w"})
	q2 := &types.Question{QuizAttemptID: attempt.ID, Index: 1, QuestionText: "second", CorrectAnswer: "D"}
	q2.SetOptions(map[string]string{"A": "1", "B": "2", "C": "3", "D": "4"})
	if _, err := questions.Create(dbc, []*types.Question{q1, q2}); err != nil {
		t.Fatalf("Create questions: %v", err)
	}

	got, err := questions.GetByQuizAttemptIDs(dbc, []uuid.UUID{attempt.ID})
	if err != nil {
		t.Fatalf("GetByQuizAttemptIDs: %v", err)
	}
	if len(got) != 2 || got[0].QuestionText != "first" || got[1].QuestionText != "second" {
		t.Fatalf("GetByQuizAttemptIDs: unexpected order/result: %+v", got)
	}
	opts := got[0].Options()
	want := map[string]string{"A": "x", "B": "y", "C": "z", "D": "w"}
	for label, text := range want {
		if opts[label] != text {
			t.Fatalf("option %s: got=%q want=%q", label, opts[label], text)
		}
	}
	if got[0].CorrectAnswer != "B" {
		t.Fatalf("correct answer: got=%q want=B", got[0].CorrectAnswer)
	}
	if got[0].UserAnswer != nil || got[0].IsCorrect != nil {
		t.Fatalf("expected unanswered question, got answer=%v correct=%v", got[0].UserAnswer, got[0].IsCorrect)
	}

	if err := questions.RecordAnswer(dbc, q1.ID, "A", false); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	// Last write wins.
	if err := questions.RecordAnswer(dbc, q1.ID, "B", true); err != nil {
		t.Fatalf("RecordAnswer overwrite: %v", err)
	}
	if err := questions.RecordAnswer(dbc, q2.ID, "A", false); err != nil {
		t.Fatalf("RecordAnswer q2: %v", err)
	}

	rows, err := questions.GetByIDs(dbc, []uuid.UUID{q1.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows[0].UserAnswer == nil || *rows[0].UserAnswer != "B" || rows[0].IsCorrect == nil || !*rows[0].IsCorrect {
		t.Fatalf("RecordAnswer: unexpected stored answer: %+v", rows[0])
	}

	correct, err := questions.CountCorrect(dbc, attempt.ID)
	if err != nil {
		t.Fatalf("CountCorrect: %v", err)
	}
	if correct != 1 {
		t.Fatalf("CountCorrect: got=%d want=1", correct)
	}
}

func TestQuizAttemptListFinalizeAndLeaderboard(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewQuizAttemptRepo(db, testutil.Logger(t))

	ada := testutil.SeedUser(t, ctx, tx, "ada")
	bob := testutil.SeedUser(t, ctx, tx, "bob")
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	oldest := testutil.SeedQuizAttempt(t, ctx, tx, ada.ID, "history", 4, 5, base)
	newest := testutil.SeedQuizAttempt(t, ctx, tx, ada.ID, "math", 2, 5, base.Add(2*time.Hour))
	testutil.SeedQuizAttempt(t, ctx, tx, bob.ID, "art", 9, 10, base.Add(time.Hour))

	list, err := repo.ListByUserID(dbc, ada.ID)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(list) != 2 || list[0].ID != newest.ID || list[1].ID != oldest.ID {
		t.Fatalf("ListByUserID: expected newest first, got %+v", list)
	}

	ok, err := repo.Finalize(dbc, newest.ID, 3, base.Add(3*time.Hour))
	if err != nil || !ok {
		t.Fatalf("Finalize: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Finalize(dbc, newest.ID, 5, base.Add(4*time.Hour))
	if err != nil {
		t.Fatalf("Finalize again: %v", err)
	}
	if ok {
		t.Fatalf("Finalize again: expected no update")
	}
	got, err := repo.GetByIDs(dbc, []uuid.UUID{newest.ID})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(got))
	}
	if got[0].Score != 3 || !got[0].IsFinalized() {
		t.Fatalf("Finalize: unexpected attempt state: %+v", got[0])
	}

	board, err := repo.Leaderboard(dbc, 2)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("Leaderboard: expected 2 rows, got %d", len(board))
	}
	if board[0].Username != "bob" || board[0].Score != 9 {
		t.Fatalf("Leaderboard: unexpected first row: %+v", board[0])
	}
	if board[1].Username != "ada" || board[1].Score != 4 {
		t.Fatalf("Leaderboard: unexpected second row: %+v", board[1])
	}
}
