package auth

import (
	"context"
	"testing"
	"time"

	"github.com/RodCinelli/gestao-engparente/internal/data/repos/testutil"
	types "github.com/RodCinelli/gestao-engparente/internal/domain"
	"github.com/RodCinelli/gestao-engparente/internal/platform/dbctx"
)

func TestUserTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	u := &types.User{Username: "admin", Password: "pw"}
	if err := tx.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	live := &types.UserToken{UserID: u.ID, RefreshToken: "refresh-1", ExpiresAt: time.Now().Add(time.Hour)}
	stale := &types.UserToken{UserID: u.ID, RefreshToken: "refresh-2", ExpiresAt: time.Now().Add(-time.Hour)}
	if _, err := repo.Create(dbc, []*types.UserToken{live, stale}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByRefreshToken(dbc, "refresh-1")
	if err != nil || got.ID != live.ID {
		t.Fatalf("GetByRefreshToken: err=%v got=%+v", err, got)
	}

	n, err := repo.DeleteExpired(dbc, time.Now())
	if err != nil || n != 1 {
		t.Fatalf("DeleteExpired: err=%v n=%d", err, n)
	}
	if err := repo.DeleteByUserIDs(dbc, []uint{u.ID}); err != nil {
		t.Fatalf("DeleteByUserIDs: %v", err)
	}
	if _, err := repo.GetByRefreshToken(dbc, "refresh-1"); err == nil {
		t.Fatalf("token should be gone")
	}
}
