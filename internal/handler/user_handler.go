package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hitoshi/eventreg/internal/middleware"
	"github.com/hitoshi/eventreg/internal/model"
	"github.com/hitoshi/eventreg/internal/repository"
)

// UserStore はユーザーハンドラーが必要とするストアインターフェース。
// repository.UserRepositoryが実装する。
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, user *model.User) (int64, error)
	Update(ctx context.Context, user *model.User) error
	DeleteByID(ctx context.Context, id int64) error
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	store UserStore
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

// listUsersResponse はユーザー一覧のレスポンスボディ。
type listUsersResponse struct {
	Message string       `json:"message"`
	Data    []model.User `json:"data"`
}

// createUserRequest はユーザー作成リクエストのボディ。
type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// userCreatedResponse はユーザー作成成功のレスポンスボディ。
type userCreatedResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// List は全ユーザーを取得する。
// GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.List(r.Context())
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listUsersResponse{
		Message: "success",
		Data:    users,
	})
}

// Get は指定IDのユーザーを取得する。
// GET /users/:id
// IDバリデータと存在チェックミドルウェアの後段に配置する。
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Create は新規ユーザーを作成する。
// POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewMissingFieldsError("Missing required fields"))
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !model.IsValidRole(role) {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     model.ErrCodeInvalidRole,
			Message:  fmt.Sprintf("Invalid role: %s", role),
			Category: "validation",
		})
		return
	}

	id, err := h.store.Create(r.Context(), &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userCreatedResponse{
		Status:  http.StatusCreated,
		Message: fmt.Sprintf("User %d saved", id),
	})
}

// updateUserRequest はユーザー更新リクエストのボディ。
// 空のフィールドは既存値を維持する。
type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Update はユーザーを部分更新する。未指定のフィールドは既存行の値を維持する。
// PUT /users/:id
// IDバリデータと存在チェックミドルウェアの後段に配置する。
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	var req updateUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	updated := *user
	if req.Name != "" {
		updated.Name = req.Name
	}
	if req.Email != "" {
		updated.Email = req.Email
	}
	if req.Password != "" {
		updated.Password = req.Password
	}
	if req.Role != "" {
		if !model.IsValidRole(req.Role) {
			writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
				Code:     model.ErrCodeInvalidRole,
				Message:  fmt.Sprintf("Invalid role: %s", req.Role),
				Category: "validation",
			})
			return
		}
		updated.Role = req.Role
	}

	if err := h.store.Update(r.Context(), &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeAPIErrorResponse(w, http.StatusNotFound, model.NewUserNotFoundError(updated.ID))
			return
		}
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete は指定IDのユーザーを削除する。
// そのユーザーの参加登録も同一トランザクションで削除される。
// DELETE /users/:id
// スタッフゲートとIDバリデータの後段に配置する。
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.ValidatedIDFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeAPIErrorResponse(w, http.StatusNotFound, model.NewUserNotFoundError(id))
			return
		}
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("User %d deleted successfully", id),
	})
}
