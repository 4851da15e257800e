package model

// Department 部门表 — 对应 departments
//
// ParentID 为自引用外键，NULL 表示顶级部门。全表构成森林，
// 写路径保证任何部门都不会成为自己的祖先。
type Department struct {
	DepartmentID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"department_id"`
	Name         string  `gorm:"type:varchar(50);not null"                      json:"name"`
	Code         string  `gorm:"type:varchar(50);not null"                      json:"code"`
	Leader       string  `gorm:"type:varchar(50)"                               json:"leader,omitempty"`
	Phone        string  `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Email        string  `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Sort         int     `gorm:"not null;default:0"                             json:"sort"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	ParentID     *string `gorm:"type:uuid;index"                                json:"parent_id,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
