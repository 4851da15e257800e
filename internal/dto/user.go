package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Keyword      string `form:"keyword"       binding:"omitempty,max=50"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Page         int    `form:"page"          binding:"omitempty,gte=1"`
	PageSize     int    `form:"page_size"     binding:"omitempty,gte=1,lte=100"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Role       string              `json:"role"`
	IsActive   bool                `json:"is_active"`
	Department *DepartmentResponse `json:"department,omitempty"`
}
