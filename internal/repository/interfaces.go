package repository

import (
	"context"

	"github.com/hitoshi/eventreg/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// List は全ユーザーを取得する。
	List(ctx context.Context) ([]model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDを返す。
	// email重複の場合はDUPLICATE_KEYのAPIErrorを返す。
	Create(ctx context.Context, user *model.User) (int64, error)

	// Update はユーザーの name/email/password/role を更新する。
	// 対象行が存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, user *model.User) error

	// DeleteByID は指定IDのユーザーと、そのユーザーの全参加登録を
	// 同一トランザクションで削除する。
	// 対象行が存在しない場合はErrNotFoundを返す。
	DeleteByID(ctx context.Context, id int64) error
}

// EventRepository はイベントデータの永続化インターフェース。
type EventRepository interface {
	// List は全イベントを取得する。
	List(ctx context.Context) ([]model.Event, error)

	// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Event, error)

	// Create はイベントを作成し、採番されたIDを返す。
	// created_byが存在しないユーザーを指す場合はFOREIGN_KEY_VIOLATIONのAPIErrorを返す。
	Create(ctx context.Context, event *model.Event) (int64, error)

	// Update はイベントの全更新可能フィールドを更新し、更新後の行を返す。
	// 対象行が存在しない場合はErrNotFoundを返す。
	Update(ctx context.Context, event *model.Event) (*model.Event, error)

	// DeleteByID は指定IDのイベントと、そのイベントの全参加登録を
	// 同一トランザクションで削除する。
	// 対象行が存在しない場合はErrNotFoundを返す。
	DeleteByID(ctx context.Context, id int64) error
}

// RegistrationRepository は参加登録データの永続化インターフェース。
type RegistrationRepository interface {
	// List は全参加登録を取得する。
	List(ctx context.Context) ([]model.EventRegistration, error)

	// FindByID は指定IDの参加登録を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.EventRegistration, error)

	// Create は参加登録を作成し、採番されたIDを返す。
	// (user_id, event_id) の重複はDUPLICATE_KEYのAPIErrorを返す。
	// 参照先が存在しない場合はFOREIGN_KEY_VIOLATIONのAPIErrorを返す。
	Create(ctx context.Context, reg *model.EventRegistration) (int64, error)

	// DeleteByID は指定IDの参加登録を削除する。
	// 対象行が存在しない場合はErrNotFoundを返す。
	DeleteByID(ctx context.Context, id int64) error
}

// TokenRepository はカレンダートークンの永続化インターフェース。
type TokenRepository interface {
	// FindByUserID は指定ユーザーのトークンを取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID int64) (*model.CalendarToken, error)

	// Upsert はトークンを保存する。対象ユーザーの行が存在しない場合は挿入し、
	// 存在する場合はaccess_token/refresh_token/token_expiryを上書きする。
	// いずれの場合も行のIDを返す。
	Upsert(ctx context.Context, token *model.CalendarToken) (int64, error)
}
