package dto

// ── 部门模块 DTO ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name     string  `json:"name"      binding:"required,min=2,max=50"`
	Code     string  `json:"code"      binding:"required,max=50"`
	Leader   string  `json:"leader"    binding:"omitempty,max=50"`
	Phone    string  `json:"phone"     binding:"omitempty,max=20"`
	Email    string  `json:"email"     binding:"omitempty,email,max=255"`
	Sort     int     `json:"sort"      binding:"omitempty,gte=0"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// UpdateDepartmentRequest 更新部门请求（字段均可选，nil 表示不修改）
type UpdateDepartmentRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=50"`
	Code     *string `json:"code"      binding:"omitempty,max=50"`
	Leader   *string `json:"leader"    binding:"omitempty,max=50"`
	Phone    *string `json:"phone"     binding:"omitempty,max=20"`
	Email    *string `json:"email"     binding:"omitempty,email,max=255"`
	Sort     *int    `json:"sort"      binding:"omitempty,gte=0"`
	IsActive *bool   `json:"is_active"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// DepartmentFilterRequest 部门查询过滤参数（列表与树共用，语义一致）
type DepartmentFilterRequest struct {
	Keyword        string `form:"keyword"         binding:"omitempty,max=50"`
	IsActive       *bool  `form:"is_active"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// DepartmentListRequest 部门分页列表查询参数
type DepartmentListRequest struct {
	DepartmentFilterRequest
	Page     int `form:"page"      binding:"omitempty,gte=1"`
	PageSize int `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

// DepartmentResponse 部门信息响应
type DepartmentResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	Leader    string  `json:"leader,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Email     string  `json:"email,omitempty"`
	Sort      int     `json:"sort"`
	IsActive  bool    `json:"is_active"`
	IsDeleted bool    `json:"is_deleted"`
	ParentID  *string `json:"parent_id,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// DepartmentTreeNode 部门树节点（按需组装，不落库）
type DepartmentTreeNode struct {
	DepartmentResponse
	Children []*DepartmentTreeNode `json:"children"`
}

// BatchDepartmentRequest 批量删除/恢复请求
type BatchDepartmentRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// BatchFailure 批量操作中单个 ID 的失败原因
type BatchFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult 批量操作结果（尽力而为，逐项报告）
type BatchResult struct {
	Succeeded    int            `json:"succeeded"`
	SucceededIDs []string       `json:"succeeded_ids"`
	Failed       []BatchFailure `json:"failed"`
}
