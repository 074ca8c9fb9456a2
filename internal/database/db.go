// Package database はデータベース接続とマイグレーション管理を提供する。
package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open は指定ドライバのデータベース接続を開く。
// driverNameは "sqlite3" または "postgres"。
// sqlite3の場合は外部キー制約を有効化するDSNパラメータを補う
// （SQLiteはデフォルトで外部キーを強制しないため）。
// sqlx.Openは接続を試行しないため、実際の接続確認にはdb.Ping()を使用すること。
func Open(driverName, dsn string) (*sqlx.DB, error) {
	if driverName == "sqlite3" && !strings.Contains(dsn, "_foreign_keys") {
		if strings.Contains(dsn, "?") {
			dsn += "&_foreign_keys=on"
		} else {
			dsn += "?_foreign_keys=on"
		}
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}
