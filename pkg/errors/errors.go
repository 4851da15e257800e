package errors

import (
	"errors"

	"gorm.io/gorm"
)

// ErrUniqueViolation 写入时唯一约束冲突：预检通过但并发写入抢先占用
var ErrUniqueViolation = errors.New("记录已存在，请刷新后重试")

// IsUniqueViolation 判断错误是否为存储层唯一约束冲突。
// 依赖 gorm.Config.TranslateError 将驱动错误翻译为 gorm.ErrDuplicatedKey。
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrUniqueViolation)
}
