package model

import "time"

// Event は開催イベントを表す。
// date、start_time、end_timeはバックエンド間で表現を揃えるため
// 文字列（"2006-01-02"、"15:04"）として保持する。
type Event struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Location    *string   `db:"location" json:"location"`
	Date        string    `db:"date" json:"date"`
	StartTime   *string   `db:"start_time" json:"start_time"`
	EndTime     *string   `db:"end_time" json:"end_time"`
	CreatedBy   int64     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EventRegistration はユーザーのイベント参加登録を表す。
// (user_id, event_id) の組は一意。
type EventRegistration struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	EventID      int64     `db:"event_id" json:"event_id"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}
