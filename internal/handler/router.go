package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/eventreg/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// sqlx.DBが実装する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// メトリクス（任意）
	MetricsMiddleware func(next http.Handler) http.Handler
	MetricsHandler    http.Handler

	// ヘルスチェック
	HealthChecker HealthChecker

	// ストア
	UserStore         UserStore
	EventStore        EventStore
	RegistrationStore RegistrationStore
	TokenStore        TokenStore
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Recovery → CORS → Metrics → RateLimit
//
// 各リソースのルートにはIDバリデータ → スタッフゲートまたは存在チェック →
// ハンドラーの順でリクエストが流れる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.MetricsMiddleware != nil {
		r.Use(deps.MetricsMiddleware)
	}
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}

	userHandler := NewUserHandler(deps.UserStore)
	eventHandler := NewEventHandler(deps.EventStore)
	regHandler := NewRegistrationHandler(deps.RegistrationStore)
	tokenHandler := NewTokenHandler(deps.TokenStore)

	staffGate := middleware.NewStaffGate()
	userIDValidator := middleware.NewIDValidator("id", "Invalid ID")
	eventIDValidator := middleware.NewIDValidator("id", "Invalid event ID")
	regIDValidator := middleware.NewIDValidator("id", "Invalid registration ID")
	tokenUserIDValidator := middleware.NewIDValidator("userId", "Invalid user ID format")
	userExists := middleware.NewUserExistenceCheck(deps.UserStore)
	eventExists := middleware.NewEventExistenceCheck(deps.EventStore)

	// サービス説明ドキュメント
	r.Get("/", rootHandler)

	// ヘルスチェック
	r.Get("/healthz", newHealthHandler(deps.HealthChecker))

	// Prometheusスクレイプ
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// ユーザー管理
	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		r.With(userIDValidator, userExists).Get("/{id}", userHandler.Get)
		r.With(userIDValidator, userExists).Put("/{id}", userHandler.Update)
		// 削除は認可 → バリデーションの順（存在チェックは削除文の結果で行う）
		r.With(staffGate, userIDValidator).Delete("/{id}", userHandler.Delete)
	})

	// イベント管理
	r.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.With(staffGate).Post("/", eventHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(eventIDValidator, eventExists)
			r.Get("/", eventHandler.Get)
			r.Put("/", eventHandler.Update)
			r.Delete("/", eventHandler.Delete)
		})
	})

	// 参加登録管理
	r.Route("/event-registrations", func(r chi.Router) {
		r.Get("/", regHandler.List)
		r.Post("/", regHandler.Create)
		r.With(regIDValidator).Get("/{id}", regHandler.Get)
		r.With(staffGate, regIDValidator).Delete("/{id}", regHandler.Delete)
	})

	// カレンダートークン管理
	r.Route("/tokens", func(r chi.Router) {
		r.Post("/", tokenHandler.Save)
		r.With(tokenUserIDValidator).Get("/{userId}", tokenHandler.Get)
	})

	// 未定義ルート
	r.NotFound(notFoundHandler)

	return r
}

// rootHandler はエンドポイント一覧を含むサービス説明ドキュメントを返す。
// GET /
func rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the Events API",
		"version": "1.0.0",
		"endpoints": map[string]any{
			"users": map[string]string{
				"GET":     "/users - Get all users",
				"POST":    "/users - Create a new user",
				"GET_ONE": "/users/:id - Get user by ID",
				"PUT":     "/users/:id - Update user",
				"DELETE":  "/users/:id - Delete user (Staff only)",
			},
			"events": map[string]string{
				"GET":     "/events - Get all events",
				"POST":    "/events - Create a new event (Staff only)",
				"GET_ONE": "/events/:id - Get event by ID",
				"PUT":     "/events/:id - Update event (Staff or owner)",
				"DELETE":  "/events/:id - Delete event (Staff or owner)",
			},
			"registrations": map[string]string{
				"GET":     "/event-registrations - Get all registrations",
				"POST":    "/event-registrations - Register for an event",
				"GET_ONE": "/event-registrations/:id - Get registration by ID",
				"DELETE":  "/event-registrations/:id - Delete registration (Staff only)",
			},
			"tokens": map[string]string{
				"GET":  "/tokens/:userId - Get user's token",
				"POST": "/tokens - Save/update token",
			},
		},
	})
}

// notFoundHandler は未定義ルートへの404レスポンスを返す。
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"status":  http.StatusNotFound,
		"message": fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
		"error":   "Not Found",
	})
}

// newHealthHandler はDB疎通を含むヘルスチェックハンドラーを返す。
// GET /healthz
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
