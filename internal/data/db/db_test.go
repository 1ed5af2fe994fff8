package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
	"gorm.io/gorm"
)

func TestSQLiteDSN(t *testing.T) {
	if got := SQLiteDSN("quiz.db"); got != "file:quiz.db?_foreign_keys=on" {
		t.Fatalf("SQLiteDSN: got=%q", got)
	}
	if got := SQLiteDSN("x.db?mode=memory"); got != "file:x.db?mode=memory&_foreign_keys=on" {
		t.Fatalf("SQLiteDSN: got=%q", got)
	}
}

func TestUnsupportedDriver(t *testing.T) {
	log, _ := logger.New("test")
	if _, err := NewDatabaseService(log, Config{Driver: "oracle"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestSQLiteOpenAndMigrate(t *testing.T) {
	log, _ := logger.New("test")
	svc, err := NewDatabaseService(log, Config{
		Driver:       DriverSQLite,
		SQLitePath:   uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("NewDatabaseService: %v", err)
	}
	defer svc.Close()

	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	for _, table := range []string{"user", "user_token", "quiz_attempt", "quiz_question"} {
		if !svc.DB().Migrator().HasTable(table) {
			t.Fatalf("expected table %q to exist", table)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"pg", &pgconn.PgError{Code: "23505"}, true},
		{"pg other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite text", errors.New("UNIQUE constraint failed: user.username"), true},
		{"other", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}
}
