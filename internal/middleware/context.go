// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"

	"github.com/hitoshi/eventreg/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var (
	// validatedIDContextKey は検証済みのパスパラメータIDを格納するキー。
	validatedIDContextKey = contextKey("validated_id")
	// userContextKey は存在チェック済みのユーザー行を格納するキー。
	userContextKey = contextKey("user")
	// eventContextKey は存在チェック済みのイベント行を格納するキー。
	eventContextKey = contextKey("event")
	// requestIDContextKey はリクエストIDを格納するキー。
	requestIDContextKey = contextKey("request_id")
)

// ValidatedIDFromContext はIDバリデータを通過した検証済みIDを取得する。
func ValidatedIDFromContext(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(validatedIDContextKey).(int64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("validated ID not found in context")
	}
	return id, nil
}

// ContextWithValidatedID はコンテキストに検証済みIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithValidatedID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, validatedIDContextKey, id)
}

// UserFromContext は存在チェックミドルウェアが格納したユーザー行を取得する。
func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// ContextWithUser はコンテキストにユーザー行を注入する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// EventFromContext は存在チェックミドルウェアが格納したイベント行を取得する。
func EventFromContext(ctx context.Context) (*model.Event, error) {
	event, ok := ctx.Value(eventContextKey).(*model.Event)
	if !ok || event == nil {
		return nil, fmt.Errorf("event not found in context")
	}
	return event, nil
}

// ContextWithEvent はコンテキストにイベント行を注入する。
func ContextWithEvent(ctx context.Context, event *model.Event) context.Context {
	return context.WithValue(ctx, eventContextKey, event)
}

// RequestIDFromContext はリクエストIDを取得する。未設定の場合は空文字列を返す。
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// contextWithRequestID はコンテキストにリクエストIDを注入する。
func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}
