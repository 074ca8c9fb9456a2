package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/eventreg/internal/database"
	"github.com/hitoshi/eventreg/internal/model"
)

// newTestDB はインメモリSQLiteを開いてマイグレーションを適用する。
// 共有キャッシュなしのインメモリDBは接続ごとに別DBになるため、
// 接続数を1に固定して単一DBとして扱う。
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(db, "sqlite3"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// seedUser はテスト用ユーザーを1件挿入してIDを返す。
func seedUser(t *testing.T, db *sqlx.DB, email string) int64 {
	t.Helper()

	repo := NewSQLUserRepo(db)
	id, err := repo.Create(context.Background(), &model.User{
		Name:     "Test User",
		Email:    email,
		Password: "secret",
		Role:     model.RoleUser,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedEvent はテスト用イベントを1件挿入してIDを返す。
func seedEvent(t *testing.T, db *sqlx.DB, createdBy int64) int64 {
	t.Helper()

	repo := NewSQLEventRepo(db)
	id, err := repo.Create(context.Background(), &model.Event{
		Title:     fmt.Sprintf("Event by %d", createdBy),
		Date:      "2026-09-01",
		CreatedBy: createdBy,
	})
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return id
}

func strPtr(s string) *string { return &s }
