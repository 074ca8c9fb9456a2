package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/eventreg/internal/model"
)

// NewIDValidator は指定パスパラメータを正の整数として検証するミドルウェアを返す。
// 解析できないか0以下の場合は400を返してパイプラインを打ち切る。
// invalidMessageにはリソースごとの文言（"Invalid ID"、"Invalid event ID"等）を渡す。
// 検証済みIDはリクエストコンテキストに格納し、後段が再パースせずに利用する。
func NewIDValidator(paramName, invalidMessage string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, paramName)

			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidIDError(invalidMessage))
				return
			}

			ctx := ContextWithValidatedID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
