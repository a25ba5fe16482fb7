package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在，或不属于当前用户
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEntry 违反唯一约束
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// translateError 把gorm/驱动错误转换为仓储层错误
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateEntryError(err):
		return ErrDuplicateEntry
	default:
		return err
	}
}

// isDuplicateEntryError 识别 sqlite / postgres / mysql 的唯一约束错误
func isDuplicateEntryError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "Error 1062")
}
