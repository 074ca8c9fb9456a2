// Package handler はリソースごとのHTTPハンドラーとルーティングを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/eventreg/internal/middleware"
	"github.com/hitoshi/eventreg/internal/model"
)

// messageResponse は単一メッセージのレスポンスボディ。
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// decodeJSONBody はリクエストボディをJSONとして読み込む。
// 解析に失敗した場合は400を書き込み、falseを返す。
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "Request body must be valid JSON",
			Category: "validation",
		})
		return false
	}
	return true
}

// handleStoreError はストアから返されたエラーを適切なHTTPステータスコードに変換する。
// 分類済みのAPIError以外はすべて内部サーバーエラーとして扱い、
// 詳細はログにのみ記録する。
func handleStoreError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	slog.Error("store error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidID, model.ErrCodeInvalidRole, model.ErrCodeMissingFields:
		return http.StatusBadRequest
	case model.ErrCodeDuplicateKey, model.ErrCodeForeignKeyViolation:
		// 制約違反はクライアント入力起因として400を返す
		return http.StatusBadRequest
	case model.ErrCodeNoRoleProvided, model.ErrCodeStaffOnly, model.ErrCodeNotEventOwner:
		return http.StatusForbidden
	case model.ErrCodeUserNotFound, model.ErrCodeEventNotFound,
		model.ErrCodeRegistrationNotFound, model.ErrCodeTokenNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
