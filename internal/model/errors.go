package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Codeはバックエンドのエンジンに依存しない安定した分類コード。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, authorization, not_found, conflict, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidID            = "INVALID_ID"
	ErrCodeInvalidRole          = "INVALID_ROLE"
	ErrCodeMissingFields        = "MISSING_FIELDS"
	ErrCodeNoRoleProvided       = "NO_ROLE_PROVIDED"
	ErrCodeStaffOnly            = "STAFF_ONLY"
	ErrCodeNotEventOwner        = "NOT_EVENT_OWNER"
	ErrCodeUserNotFound         = "USER_NOT_FOUND"
	ErrCodeEventNotFound        = "EVENT_NOT_FOUND"
	ErrCodeRegistrationNotFound = "REGISTRATION_NOT_FOUND"
	ErrCodeTokenNotFound        = "TOKEN_NOT_FOUND"
	ErrCodeDuplicateKey         = "DUPLICATE_KEY"
	ErrCodeForeignKeyViolation  = "FOREIGN_KEY_VIOLATION"
	ErrCodeInternal             = "INTERNAL_ERROR"
)

// NewInvalidIDError はIDバリデーション失敗エラーを生成する。
// messageはリソースごとの文言（"Invalid ID"、"Invalid event ID"等）を受け取る。
func NewInvalidIDError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidID,
		Message:  message,
		Category: "validation",
	}
}

// NewMissingFieldsError は必須フィールド欠落エラーを生成する。
func NewMissingFieldsError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  message,
		Category: "validation",
	}
}

// NewNoRoleProvidedError はロール未指定エラーを生成する。
func NewNoRoleProvidedError() *APIError {
	return &APIError{
		Code:     ErrCodeNoRoleProvided,
		Message:  "Access denied. No role provided.",
		Category: "authorization",
	}
}

// NewStaffOnlyError はスタッフ以外のアクセス拒否エラーを生成する。
func NewStaffOnlyError() *APIError {
	return &APIError{
		Code:     ErrCodeStaffOnly,
		Message:  "Access denied. Staff only.",
		Category: "authorization",
	}
}

// NewNotEventOwnerError はイベント所有者でもスタッフでもない呼び出しの拒否エラーを生成する。
func NewNotEventOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeNotEventOwner,
		Message:  "Access denied. Staff or event owner only.",
		Category: "authorization",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("User %d not found", id),
		Category: "not_found",
	}
}

// NewEventNotFoundError はイベント未検出エラーを生成する。
func NewEventNotFoundError(id int64) *APIError {
	return &APIError{
		Code:     ErrCodeEventNotFound,
		Message:  fmt.Sprintf("Event %d not found", id),
		Category: "not_found",
	}
}

// NewRegistrationNotFoundError は参加登録未検出エラーを生成する。
func NewRegistrationNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeRegistrationNotFound,
		Message:  "Registration not found",
		Category: "not_found",
	}
}

// NewTokenNotFoundError はトークン未検出エラーを生成する。
func NewTokenNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeTokenNotFound,
		Message:  "Token not found for user",
		Category: "not_found",
	}
}

// NewDuplicateKeyError は一意制約違反エラーを生成する。
// detailにはドライバのエラー文字列を渡す。分類自体はエンジン非依存。
func NewDuplicateKeyError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateKey,
		Message:  fmt.Sprintf("Duplicate key: %s", detail),
		Category: "conflict",
	}
}

// NewForeignKeyViolationError は外部キー制約違反エラーを生成する。
func NewForeignKeyViolationError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeForeignKeyViolation,
		Message:  fmt.Sprintf("Referenced row does not exist: %s", detail),
		Category: "conflict",
	}
}
