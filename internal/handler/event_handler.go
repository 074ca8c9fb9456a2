package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hitoshi/eventreg/internal/middleware"
	"github.com/hitoshi/eventreg/internal/model"
	"github.com/hitoshi/eventreg/internal/repository"
)

// EventStore はイベントハンドラーが必要とするストアインターフェース。
// repository.EventRepositoryが実装する。
type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	FindByID(ctx context.Context, id int64) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (int64, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EventHandler はイベント管理のHTTPハンドラー。
type EventHandler struct {
	store EventStore
}

// NewEventHandler はEventHandlerを生成する。
func NewEventHandler(store EventStore) *EventHandler {
	return &EventHandler{store: store}
}

// listEventsResponse はイベント一覧のレスポンスボディ。
type listEventsResponse struct {
	Message string        `json:"message"`
	Data    []model.Event `json:"data"`
}

// eventRequest はイベント作成・更新リクエストのボディ。
type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CreatedBy   int64  `json:"created_by"`
}

// eventCreatedResponse はイベント作成成功のレスポンスボディ。
type eventCreatedResponse struct {
	Message string `json:"message"`
	EventID int64  `json:"eventId"`
}

// eventUpdatedResponse はイベント更新成功のレスポンスボディ。
type eventUpdatedResponse struct {
	Message string       `json:"message"`
	Event   *model.Event `json:"event"`
}

// List は全イベントを取得する。
// GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.List(r.Context())
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listEventsResponse{
		Message: "success",
		Data:    events,
	})
}

// Get は指定IDのイベントを取得する。
// GET /events/:id
// IDバリデータと存在チェックミドルウェアの後段に配置する。
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := middleware.EventFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Create は新規イベントを作成する。作成者はcreated_byとして記録される。
// POST /events
// スタッフゲートの後段に配置する。
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Title == "" || req.CreatedBy <= 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewMissingFieldsError("Missing required fields: title and created_by"))
		return
	}

	// dateが未指定の場合は当日の日付を採用する
	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	id, err := h.store.Create(r.Context(), &model.Event{
		Title:       req.Title,
		Description: optionalString(req.Description),
		Location:    optionalString(req.Location),
		Date:        date,
		StartTime:   optionalString(req.StartTime),
		EndTime:     optionalString(req.EndTime),
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, eventCreatedResponse{
		Message: "Event created successfully",
		EventID: id,
	})
}

// Update はイベントを部分更新する。未指定のフィールドは既存行の値を維持する。
// 許可されるのはスタッフ、またはイベントの作成者本人のみ。
// PUT /events/:id
// IDバリデータと存在チェックミドルウェアの後段に配置する。
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	event, err := middleware.EventFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	if !callerMayModifyEvent(r, event) {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewNotEventOwnerError())
		return
	}

	var req eventRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Title == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewMissingFieldsError("Missing required field: title"))
		return
	}

	updated := *event
	updated.Title = req.Title
	if req.Description != "" {
		updated.Description = &req.Description
	}
	if req.Location != "" {
		updated.Location = &req.Location
	}
	if req.Date != "" {
		updated.Date = req.Date
	}
	if req.StartTime != "" {
		updated.StartTime = &req.StartTime
	}
	if req.EndTime != "" {
		updated.EndTime = &req.EndTime
	}

	result, err := h.store.Update(r.Context(), &updated)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeAPIErrorResponse(w, http.StatusNotFound, model.NewEventNotFoundError(updated.ID))
			return
		}
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventUpdatedResponse{
		Message: "Event updated successfully",
		Event:   result,
	})
}

// Delete は指定IDのイベントを削除する。
// そのイベントの参加登録も同一トランザクションで削除される。
// 許可されるのはスタッフ、またはイベントの作成者本人のみ。
// DELETE /events/:id
// IDバリデータと存在チェックミドルウェアの後段に配置する。
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	event, err := middleware.EventFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}

	if !callerMayModifyEvent(r, event) {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewNotEventOwnerError())
		return
	}

	if err := h.store.DeleteByID(r.Context(), event.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeAPIErrorResponse(w, http.StatusNotFound, model.NewEventNotFoundError(event.ID))
			return
		}
		handleStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Event %d deleted successfully", event.ID),
	})
}

// callerMayModifyEvent はイベントの更新・削除の認可判定を行う。
// 申告ロールがstaffであるか、申告ユーザーIDがイベントのcreated_byと一致する場合に許可する。
func callerMayModifyEvent(r *http.Request, event *model.Event) bool {
	if middleware.CallerRole(r) == model.RoleStaff {
		return true
	}
	callerID, ok := middleware.CallerUserID(r)
	return ok && callerID == event.CreatedBy
}

// optionalString は空文字列をnilに変換する。
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
