package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/eventreg/internal/model"
)

// SQLUserRepo はsqlxを使用したユーザーリポジトリ。
// クエリは?プレースホルダで記述し、Rebindでドライバのダイアレクトに変換する。
type SQLUserRepo struct {
	db *sqlx.DB
}

// NewSQLUserRepo はSQLUserRepoを生成する。
func NewSQLUserRepo(db *sqlx.DB) *SQLUserRepo {
	return &SQLUserRepo{db: db}
}

// List は全ユーザーを取得する。
func (r *SQLUserRepo) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.db.SelectContext(ctx, &users,
		`SELECT id, name, email, password, role, created_at FROM users`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *SQLUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	err := r.db.GetContext(ctx, user,
		r.db.Rebind(`SELECT id, name, email, password, role, created_at FROM users WHERE id = ?`),
		id,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// Create はユーザーを作成し、採番されたIDを返す。
func (r *SQLUserRepo) Create(ctx context.Context, user *model.User) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?) RETURNING id`),
		user.Name, user.Email, user.Password, user.Role,
	).Scan(&id)
	if err != nil {
		if apiErr, ok := constraintAPIError(err); ok {
			return 0, apiErr
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

// Update はユーザーの name/email/password/role を更新する。
func (r *SQLUserRepo) Update(ctx context.Context, user *model.User) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE users SET name = ?, email = ?, password = ?, role = ? WHERE id = ?`),
		user.Name, user.Email, user.Password, user.Role, user.ID,
	)
	if err != nil {
		if apiErr, ok := constraintAPIError(err); ok {
			return apiErr
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID は指定IDのユーザーと、そのユーザーの全参加登録を
// 同一トランザクションで削除する。
// スキーマのON DELETE CASCADEには依存せず、明示的な削除文で整合性を保証する。
func (r *SQLUserRepo) DeleteByID(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 子テーブルの参加登録を先に削除する
	_, err = tx.ExecContext(ctx,
		tx.Rebind(`DELETE FROM event_registrations WHERE user_id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user registrations: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		tx.Rebind(`DELETE FROM users WHERE id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*SQLUserRepo)(nil)
