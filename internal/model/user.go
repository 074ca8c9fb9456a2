// Package model はドメインモデルを定義する。
package model

import "time"

// ユーザーのロール値。
const (
	RoleUser  = "user"
	RoleStaff = "staff"
)

// User はサービス利用ユーザーを表す。
// passwordは観測された既存契約に合わせて平文のまま保存・返却する。
type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"password"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsValidRole はロール値が定義済みのものかを返す。
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleStaff
}
