package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/eventreg/internal/middleware"
	"github.com/hitoshi/eventreg/internal/model"
)

// TokenStore はトークンハンドラーが必要とするストアインターフェース。
// repository.TokenRepositoryが実装する。
type TokenStore interface {
	FindByUserID(ctx context.Context, userID int64) (*model.CalendarToken, error)
	Upsert(ctx context.Context, token *model.CalendarToken) (int64, error)
}

// TokenHandler はカレンダートークン管理のHTTPハンドラー。
type TokenHandler struct {
	store TokenStore
}

// NewTokenHandler はTokenHandlerを生成する。
func NewTokenHandler(store TokenStore) *TokenHandler {
	return &TokenHandler{store: store}
}

// saveTokenRequest はトークン保存リクエストのボディ。
type saveTokenRequest struct {
	UserID       int64  `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenExpiry  string `json:"token_expiry"`
}

// tokenSavedResponse はトークン保存成功のレスポンスボディ。
type tokenSavedResponse struct {
	Message string `json:"message"`
	TokenID int64  `json:"tokenId"`
}

// Save はトークンを保存する。対象ユーザーの行が存在する場合は上書きする。
// 挿入・上書きのどちらでも200を返す。
// POST /tokens
func (h *TokenHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveTokenRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.UserID <= 0 || req.AccessToken == "" || req.RefreshToken == "" || req.TokenExpiry == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewMissingFieldsError("Missing required fields: user_id, access_token, refresh_token, token_expiry"))
		return
	}

	id, err := h.store.Upsert(r.Context(), &model.CalendarToken{
		UserID:       req.UserID,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		TokenExpiry:  req.TokenExpiry,
	})
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenSavedResponse{
		Message: "Token saved successfully",
		TokenID: id,
	})
}

// Get は指定ユーザーのトークンを取得する。
// GET /tokens/:userId
// IDバリデータの後段に配置する。
func (h *TokenHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.ValidatedIDFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	token, err := h.store.FindByUserID(r.Context(), userID)
	if err != nil {
		handleStoreError(w, err)
		return
	}
	if token == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewTokenNotFoundError())
		return
	}

	writeJSON(w, http.StatusOK, token)
}
