package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/hitoshi/eventreg/internal/model"
)

// ロール・呼び出し元ID申告用ヘッダー。
// 値は検証されない自己申告であり、暗号学的な本人確認は行わない。
const (
	RoleHeader   = "X-User-Role"
	UserIDHeader = "X-User-Id"
)

// CallerRole はリクエストから呼び出し元の申告ロールを取得する。
// X-User-Roleヘッダーを優先し、なければJSONボディのroleフィールドを参照する。
// ボディを読んだ場合は後段のハンドラーのために復元する。
// どちらにもなければ空文字列を返す。
func CallerRole(r *http.Request) string {
	if role := r.Header.Get(RoleHeader); role != "" {
		return role
	}

	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}

	body, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Role string `json:"role"`
	}
	// 不正なJSONはロール未指定として扱う（ボディの検証はハンドラーの責務）
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Role
}

// CallerUserID はX-User-Idヘッダーから呼び出し元の申告ユーザーIDを取得する。
// ヘッダーがないか整数として解析できない場合は (0, false) を返す。
func CallerUserID(r *http.Request) (int64, bool) {
	raw := r.Header.Get(UserIDHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NewStaffGate は申告ロールが"staff"のリクエストのみ通過させるミドルウェアを返す。
// ロール未指定は403（No role provided）、staff以外は403（Staff only）で打ち切る。
// 比較は大文字小文字を区別する。
func NewStaffGate() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := CallerRole(r)

			if role == "" {
				WriteErrorResponse(w, http.StatusForbidden, model.NewNoRoleProvidedError())
				return
			}
			if role != model.RoleStaff {
				WriteErrorResponse(w, http.StatusForbidden, model.NewStaffOnlyError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
