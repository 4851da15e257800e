package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// SoftDeleteModel 软删除审计字段。
//
// 软删除用显式的 is_deleted 布尔列表达，而不是 gorm.DeletedAt：
// 回收站与恢复路径需要按需读取已删除行，过滤条件必须作为
// 查询参数显式下传，不能依赖 GORM 的默认隐式作用域。
type SoftDeleteModel struct {
	BaseModel
	IsDeleted bool    `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedBy *string `gorm:"type:uuid"                    json:"deleted_by,omitempty"`
}
