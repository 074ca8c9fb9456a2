package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/eventreg/internal/model"
)

// UserFinder はユーザー存在チェックに必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// EventFinder はイベント存在チェックに必要なインターフェース。
type EventFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Event, error)
}

// NewUserExistenceCheck は検証済みIDのユーザー行を1回の検索で取得し、
// 存在しない場合は404で打ち切るミドルウェアを返す。
// 取得した行はコンテキストに格納し、後段が再検索せずに利用する。
// IDバリデータの後に配置すること。
func NewUserExistenceCheck(finder UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := ValidatedIDFromContext(r.Context())
			if err != nil {
				slog.Error("existence check without validated ID", slog.String("path", r.URL.Path))
				WriteInternalServerError(w)
				return
			}

			user, err := finder.FindByID(r.Context(), id)
			if err != nil {
				slog.Error("failed to check user existence", slog.String("error", err.Error()))
				WriteInternalServerError(w)
				return
			}
			if user == nil {
				WriteErrorResponse(w, http.StatusNotFound, model.NewUserNotFoundError(id))
				return
			}

			ctx := ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewEventExistenceCheck は検証済みIDのイベント行を1回の検索で取得し、
// 存在しない場合は404で打ち切るミドルウェアを返す。
// IDバリデータの後に配置すること。
func NewEventExistenceCheck(finder EventFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := ValidatedIDFromContext(r.Context())
			if err != nil {
				slog.Error("existence check without validated ID", slog.String("path", r.URL.Path))
				WriteInternalServerError(w)
				return
			}

			event, err := finder.FindByID(r.Context(), id)
			if err != nil {
				slog.Error("failed to check event existence", slog.String("error", err.Error()))
				WriteInternalServerError(w)
				return
			}
			if event == nil {
				WriteErrorResponse(w, http.StatusNotFound, model.NewEventNotFoundError(id))
				return
			}

			ctx := ContextWithEvent(r.Context(), event)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
