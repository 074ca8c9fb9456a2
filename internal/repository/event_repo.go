package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/eventreg/internal/model"
)

// SQLEventRepo はsqlxを使用したイベントリポジトリ。
type SQLEventRepo struct {
	db *sqlx.DB
}

// NewSQLEventRepo はSQLEventRepoを生成する。
func NewSQLEventRepo(db *sqlx.DB) *SQLEventRepo {
	return &SQLEventRepo{db: db}
}

const eventColumns = `id, title, description, location, date, start_time, end_time, created_by, created_at`

// List は全イベントを取得する。
func (r *SQLEventRepo) List(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	err := r.db.SelectContext(ctx, &events,
		`SELECT `+eventColumns+` FROM events`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
func (r *SQLEventRepo) FindByID(ctx context.Context, id int64) (*model.Event, error) {
	event := &model.Event{}
	err := r.db.GetContext(ctx, event,
		r.db.Rebind(`SELECT `+eventColumns+` FROM events WHERE id = ?`),
		id,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event by ID: %w", err)
	}
	return event, nil
}

// Create はイベントを作成し、採番されたIDを返す。
func (r *SQLEventRepo) Create(ctx context.Context, event *model.Event) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO events (title, description, location, date, start_time, end_time, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		event.Title, event.Description, event.Location, event.Date,
		event.StartTime, event.EndTime, event.CreatedBy,
	).Scan(&id)
	if err != nil {
		if apiErr, ok := constraintAPIError(err); ok {
			return 0, apiErr
		}
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return id, nil
}

// Update はイベントの全更新可能フィールドを更新し、更新後の行を返す。
func (r *SQLEventRepo) Update(ctx context.Context, event *model.Event) (*model.Event, error) {
	updated := &model.Event{}
	err := r.db.GetContext(ctx, updated,
		r.db.Rebind(`UPDATE events
		 SET title = ?, description = ?, location = ?, date = ?, start_time = ?, end_time = ?
		 WHERE id = ? RETURNING `+eventColumns),
		event.Title, event.Description, event.Location, event.Date,
		event.StartTime, event.EndTime, event.ID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		if apiErr, ok := constraintAPIError(err); ok {
			return nil, apiErr
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return updated, nil
}

// DeleteByID は指定IDのイベントと、そのイベントの全参加登録を
// 同一トランザクションで削除する。
func (r *SQLEventRepo) DeleteByID(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 子テーブルの参加登録を先に削除する
	_, err = tx.ExecContext(ctx,
		tx.Rebind(`DELETE FROM event_registrations WHERE event_id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete event registrations: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		tx.Rebind(`DELETE FROM events WHERE id = ?`),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
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
var _ EventRepository = (*SQLEventRepo)(nil)
