// Package repository はデータ永続化の実装を提供する。
// 単一のsqlxベース実装がsqlite3とpostgresの両バックエンドで動作する。
package repository

import (
	"errors"

	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/hitoshi/eventreg/internal/model"
)

// ErrNotFound は対象行が存在しないことを表す。
// 削除・更新の対象行が0件だった場合にリポジトリが返す。
var ErrNotFound = errors.New("row not found")

// constraintAPIError はストアのエラーをエンジン非依存の分類に変換する。
// 一意制約違反・外部キー制約違反はドライバのエラーコードで判定し、
// エラーメッセージの文字列比較には依存しない。
// 制約違反でない場合は (nil, false) を返す。
func constraintAPIError(err error) (*model.APIError, bool) {
	if err == nil {
		return nil, false
	}
	if isUniqueViolation(err) {
		return model.NewDuplicateKeyError(err.Error()), true
	}
	if isForeignKeyViolation(err) {
		return model.NewForeignKeyViolationError(err.Error()), true
	}
	return nil, false
}

// isUniqueViolation は一意制約違反かをドライバのエラーコードで判定する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// isForeignKeyViolation は外部キー制約違反かをドライバのエラーコードで判定する。
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	return false
}
