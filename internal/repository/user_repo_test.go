package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/eventreg/internal/model"
)

func TestSQLUserRepo_CreateAndFindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLUserRepo(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, &model.User{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret",
		Role:     model.RoleStaff,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Create returned id = %d, want positive", id)
	}

	user, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user == nil {
		t.Fatal("FindByID returned nil for existing user")
	}
	if user.Name != "Alice" {
		t.Errorf("Name = %q, want %q", user.Name, "Alice")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "alice@example.com")
	}
	if user.Role != model.RoleStaff {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleStaff)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want database-assigned timestamp")
	}
}

// IDは作成順に単調増加する
func TestSQLUserRepo_IDsIncrease(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLUserRepo(db)
	ctx := context.Background()

	var prev int64
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		id, err := repo.Create(ctx, &model.User{
			Name: "U", Email: email, Password: "p", Role: model.RoleUser,
		})
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if id <= prev {
			t.Errorf("id #%d = %d, want greater than %d", i, id, prev)
		}
		prev = id
	}
}

func TestSQLUserRepo_FindByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLUserRepo(db)

	user, err := repo.FindByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user != nil {
		t.Errorf("FindByID = %+v, want nil for missing user", user)
	}
}

// email重複はDUPLICATE_KEYのAPIErrorとして分類される
func TestSQLUserRepo_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLUserRepo(db)
	ctx := context.Background()

	seedUser(t, db, "dup@example.com")

	_, err := repo.Create(ctx, &model.User{
		Name: "Other", Email: "dup@example.com", Password: "p", Role: model.RoleUser,
	})
	if err == nil {
		t.Fatal("expected error for duplicate email")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not *model.APIError: %v", err)
	}
	if apiErr.Code != model.ErrCodeDuplicateKey {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeDuplicateKey)
	}
}

func TestSQLUserRepo_List(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLUserRepo(db)
	ctx := context.Background()

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("List on empty table returned %d rows, want 0", len(users))
	}

	seedUser(t, db, "one@example.com")
	seedUser(t, db, "two@example.com")

	users, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("List returned %d rows, want 2", len(users))
	}
}

func TestSQLUserRepo_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLUserRepo(db)
	ctx := context.Background()

	id := seedUser(t, db, "before@example.com")

	err := repo.Update(ctx, &model.User{
		ID:       id,
		Name:     "Updated",
		Email:    "after@example.com",
		Password: "newsecret",
		Role:     model.RoleStaff,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	user, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user.Name != "Updated" {
		t.Errorf("Name = %q, want %q", user.Name, "Updated")
	}
	if user.Email != "after@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "after@example.com")
	}
	if user.Role != model.RoleStaff {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleStaff)
	}
}

func TestSQLUserRepo_Update_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLUserRepo(db)

	err := repo.Update(context.Background(), &model.User{
		ID: 9999, Name: "X", Email: "x@example.com", Password: "p", Role: model.RoleUser,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update on missing row returned %v, want ErrNotFound", err)
	}
}

// ユーザー削除は同一トランザクションで参加登録も削除する
func TestSQLUserRepo_DeleteByID_CascadesRegistrations(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewSQLUserRepo(db)
	regRepo := NewSQLRegistrationRepo(db)
	ctx := context.Background()

	userID := seedUser(t, db, "target@example.com")
	otherID := seedUser(t, db, "other@example.com")
	eventID := seedEvent(t, db, otherID)

	regID, err := regRepo.Create(ctx, &model.EventRegistration{UserID: userID, EventID: eventID})
	if err != nil {
		t.Fatalf("failed to create registration: %v", err)
	}
	keptRegID, err := regRepo.Create(ctx, &model.EventRegistration{UserID: otherID, EventID: eventID})
	if err != nil {
		t.Fatalf("failed to create registration: %v", err)
	}

	if err := userRepo.DeleteByID(ctx, userID); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}

	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user != nil {
		t.Error("user still exists after delete")
	}

	reg, err := regRepo.FindByID(ctx, regID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if reg != nil {
		t.Error("registration of deleted user still exists")
	}

	kept, err := regRepo.FindByID(ctx, keptRegID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if kept == nil {
		t.Error("registration of other user was deleted")
	}
}

func TestSQLUserRepo_DeleteByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLUserRepo(db)

	err := repo.DeleteByID(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteByID on missing row returned %v, want ErrNotFound", err)
	}
}
