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

// RegistrationStore は参加登録ハンドラーが必要とするストアインターフェース。
// repository.RegistrationRepositoryが実装する。
type RegistrationStore interface {
	List(ctx context.Context) ([]model.EventRegistration, error)
	FindByID(ctx context.Context, id int64) (*model.EventRegistration, error)
	Create(ctx context.Context, reg *model.EventRegistration) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}

// RegistrationHandler は参加登録管理のHTTPハンドラー。
type RegistrationHandler struct {
	store RegistrationStore
}

// NewRegistrationHandler はRegistrationHandlerを生成する。
func NewRegistrationHandler(store RegistrationStore) *RegistrationHandler {
	return &RegistrationHandler{store: store}
}

// listRegistrationsResponse は参加登録一覧のレスポンスボディ。
type listRegistrationsResponse struct {
	Registrations []model.EventRegistration `json:"registrations"`
}

// createRegistrationRequest は参加登録作成リクエストのボディ。
type createRegistrationRequest struct {
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

// registrationCreatedResponse は参加登録作成成功のレスポンスボディ。
type registrationCreatedResponse struct {
	Message        string `json:"message"`
	RegistrationID int64  `json:"registrationId"`
}

// List は全参加登録を取得する。
// GET /event-registrations
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	regs, err := h.store.List(r.Context())
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listRegistrationsResponse{Registrations: regs})
}

// Get は指定IDの参加登録を取得する。
// GET /event-registrations/:id
// IDバリデータの後段に配置する。
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.ValidatedIDFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	reg, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		handleStoreError(w, err)
		return
	}
	if reg == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewRegistrationNotFoundError())
		return
	}

	writeJSON(w, http.StatusOK, reg)
}

// Create は参加登録を作成する。
// 参照先ユーザー・イベントの存在確認はストアの外部キー制約に委ねる。
// POST /event-registrations
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRegistrationRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.UserID <= 0 || req.EventID <= 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewMissingFieldsError("Missing required fields: user_id and event_id"))
		return
	}

	id, err := h.store.Create(r.Context(), &model.EventRegistration{
		UserID:  req.UserID,
		EventID: req.EventID,
	})
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registrationCreatedResponse{
		Message:        "Event registration created successfully",
		RegistrationID: id,
	})
}

// Delete は指定IDの参加登録を削除する。
// DELETE /event-registrations/:id
// スタッフゲートとIDバリデータの後段に配置する。
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.ValidatedIDFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeAPIErrorResponse(w, http.StatusNotFound, model.NewRegistrationNotFoundError())
			return
		}
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Registration %d deleted successfully", id),
	})
}
