package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/eventreg/internal/model"
)

// SQLRegistrationRepo はsqlxを使用した参加登録リポジトリ。
type SQLRegistrationRepo struct {
	db *sqlx.DB
}

// NewSQLRegistrationRepo はSQLRegistrationRepoを生成する。
func NewSQLRegistrationRepo(db *sqlx.DB) *SQLRegistrationRepo {
	return &SQLRegistrationRepo{db: db}
}

// List は全参加登録を取得する。
func (r *SQLRegistrationRepo) List(ctx context.Context) ([]model.EventRegistration, error) {
	regs := []model.EventRegistration{}
	err := r.db.SelectContext(ctx, &regs,
		`SELECT id, user_id, event_id, registered_at FROM event_registrations`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// FindByID は指定IDの参加登録を取得する。見つからない場合はnilを返す。
func (r *SQLRegistrationRepo) FindByID(ctx context.Context, id int64) (*model.EventRegistration, error) {
	reg := &model.EventRegistration{}
	err := r.db.GetContext(ctx, reg,
		r.db.Rebind(`SELECT id, user_id, event_id, registered_at FROM event_registrations WHERE id = ?`),
		id,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find registration by ID: %w", err)
	}
	return reg, nil
}

// Create は参加登録を作成し、採番されたIDを返す。
// 参照先ユーザー・イベントの存在確認はストアの外部キー制約に委ねる。
func (r *SQLRegistrationRepo) Create(ctx context.Context, reg *model.EventRegistration) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO event_registrations (user_id, event_id) VALUES (?, ?) RETURNING id`),
		reg.UserID, reg.EventID,
	).Scan(&id)
	if err != nil {
		if apiErr, ok := constraintAPIError(err); ok {
			return 0, apiErr
		}
		return 0, fmt.Errorf("failed to insert registration: %w", err)
	}
	return id, nil
}

// DeleteByID は指定IDの参加登録を削除する。
func (r *SQLRegistrationRepo) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM event_registrations WHERE id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
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

// compile-time interface check
var _ RegistrationRepository = (*SQLRegistrationRepo)(nil)
