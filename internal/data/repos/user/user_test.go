package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/quizmind-backend/internal/data/db"
	"github.com/yungbote/quizmind-backend/internal/data/repos/testutil"
	types "github.com/yungbote/quizmind-backend/internal/domain"
	"github.com/yungbote/quizmind-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	theDB := testutil.DB(t)
	tx := testutil.Tx(t, theDB)

	repo := NewUserRepo(theDB, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			Username: "userrepo",
			Email:    "userrepo@example.com",
			Password: "pw",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: unexpected result: %+v", created)
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByNames, err := repo.GetByUsernames(dbc, []string{"userrepo"})
	if err != nil {
		t.Fatalf("GetByUsernames: %v", err)
	}
	if len(gotByNames) != 1 || gotByNames[0].Email != "userrepo@example.com" {
		t.Fatalf("GetByUsernames: unexpected result: %+v", gotByNames)
	}

	missing, err := repo.GetByUsernames(dbc, []string{"nobody"})
	if err != nil {
		t.Fatalf("GetByUsernames (missing): %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("GetByUsernames (missing): expected none, got %d", len(missing))
	}
}

func TestUserRepoRejectsDuplicates(t *testing.T) {
	theDB := testutil.DB(t)
	tx := testutil.Tx(t, theDB)

	repo := NewUserRepo(theDB, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	if _, err := repo.Create(dbc, []*types.User{{Username: "dup", Email: "dup@example.com", Password: "pw"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	var before int64
	if err := tx.Model(&types.User{}).Count(&before).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}

	// A failed statement aborts a Postgres transaction, so run it in a savepoint.
	sp := tx.SavePoint("dup_username")
	_, err := repo.Create(dbc, []*types.User{{Username: "dup", Email: "other@example.com", Password: "pw"}})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("Create duplicate username: expected unique violation, got %v", err)
	}
	sp.RollbackTo("dup_username")

	var after int64
	if err := tx.Model(&types.User{}).Count(&after).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}
	if after != before {
		t.Fatalf("Count: expected %d users, got %d", before, after)
	}
}
