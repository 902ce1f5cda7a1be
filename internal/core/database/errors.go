package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	sqliteUniqueFailedKw = "unique constraint failed"
)

// IsDuplicateKey 判断是否唯一索引冲突（兼容未开启 TranslateError 的连接）
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, sqliteUniqueFailedKw) ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique violation")
}

// IsNotFound gorm.ErrRecordNotFound 的简写
func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
