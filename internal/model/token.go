package model

import "time"

// CalendarToken はユーザーごとのGoogleカレンダー連携トークンを表す。
// user_idは一意で、1ユーザーにつき最大1行。再保存はアップサートになる。
type CalendarToken struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	AccessToken  string    `db:"access_token" json:"access_token"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	TokenExpiry  string    `db:"token_expiry" json:"token_expiry"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
