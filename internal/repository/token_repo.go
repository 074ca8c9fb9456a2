package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/eventreg/internal/model"
)

// SQLTokenRepo はsqlxを使用したカレンダートークンリポジトリ。
type SQLTokenRepo struct {
	db *sqlx.DB
}

// NewSQLTokenRepo はSQLTokenRepoを生成する。
func NewSQLTokenRepo(db *sqlx.DB) *SQLTokenRepo {
	return &SQLTokenRepo{db: db}
}

// FindByUserID は指定ユーザーのトークンを取得する。見つからない場合はnilを返す。
func (r *SQLTokenRepo) FindByUserID(ctx context.Context, userID int64) (*model.CalendarToken, error) {
	token := &model.CalendarToken{}
	err := r.db.GetContext(ctx, token,
		r.db.Rebind(`SELECT id, user_id, access_token, refresh_token, token_expiry, created_at
		 FROM google_calendar_tokens WHERE user_id = ?`),
		userID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find token by user ID: %w", err)
	}
	return token, nil
}

// Upsert はトークンを保存する。user_idの一意制約を対象に
// ON CONFLICT DO UPDATEで挿入または上書きを単文で行う。
// sqlite3とpostgresの両ダイアレクトが同じ構文を受け付ける。
func (r *SQLTokenRepo) Upsert(ctx context.Context, token *model.CalendarToken) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO google_calendar_tokens (user_id, access_token, refresh_token, token_expiry)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   access_token = excluded.access_token,
		   refresh_token = excluded.refresh_token,
		   token_expiry = excluded.token_expiry
		 RETURNING id`),
		token.UserID, token.AccessToken, token.RefreshToken, token.TokenExpiry,
	).Scan(&id)
	if err != nil {
		if apiErr, ok := constraintAPIError(err); ok {
			return 0, apiErr
		}
		return 0, fmt.Errorf("failed to upsert token: %w", err)
	}
	return id, nil
}

// compile-time interface check
var _ TokenRepository = (*SQLTokenRepo)(nil)
