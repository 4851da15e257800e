package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lijianqiao/backend/internal/dto"
	"github.com/lijianqiao/backend/internal/service"
	"github.com/lijianqiao/backend/pkg/response"
)

// DepartmentHandler 部门模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments 获取部门分页列表
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var req dto.DepartmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	depts, total, err := h.deptSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OKPage(c, depts, total, req.Page, req.PageSize)
}

// GetDepartmentTree 获取部门树
// GET /api/v1/departments/tree
func (h *DepartmentHandler) GetDepartmentTree(c *gin.Context) {
	var req dto.DepartmentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	tree, err := h.deptSvc.GetTree(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tree})
}

// ListRecycleBin 获取部门回收站列表
// GET /api/v1/departments/recycle-bin
func (h *DepartmentHandler) ListRecycleBin(c *gin.Context) {
	var req dto.DepartmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	depts, total, err := h.deptSvc.ListRecycleBin(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OKPage(c, depts, total, req.Page, req.PageSize)
}

// GetDepartment 获取部门详情
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "部门ID不能为空")
		return
	}

	dept, err := h.deptSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// CreateDepartment 创建部门
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.Created(c, dept)
}

// UpdateDepartment 更新部门
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "部门ID不能为空")
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// DeleteDepartment 删除部门（软删除）
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "部门ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// RestoreDepartment 恢复已删除部门
// PUT /api/v1/departments/:id/restore
func (h *DepartmentHandler) RestoreDepartment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "部门ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	dept, err := h.deptSvc.Restore(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// BatchDeleteDepartments 批量删除部门
// POST /api/v1/departments/batch-delete
func (h *DepartmentHandler) BatchDeleteDepartments(c *gin.Context) {
	var req dto.BatchDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.deptSvc.BatchDelete(c.Request.Context(), req.IDs, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, result)
}

// BatchRestoreDepartments 批量恢复部门
// POST /api/v1/departments/batch-restore
func (h *DepartmentHandler) BatchRestoreDepartments(c *gin.Context) {
	var req dto.BatchDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.deptSvc.BatchRestore(c.Request.Context(), req.IDs, callerID)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, result)
}

// handleDepartmentError 统一处理部门模块业务错误
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 13001, "部门不存在")
	case errors.Is(err, service.ErrDepartmentCodeExists):
		response.BadRequest(c, 13002, "部门编码已存在")
	case errors.Is(err, service.ErrDepartmentParentNotFound):
		response.BadRequest(c, 13003, "上级部门不存在")
	case errors.Is(err, service.ErrDepartmentSelfParent):
		response.BadRequest(c, 13004, "不能将部门设为自己的上级")
	case errors.Is(err, service.ErrDepartmentCyclicParent):
		response.BadRequest(c, 13005, "不能将部门移动到自己的下级")
	case errors.Is(err, service.ErrDepartmentHasChildren):
		response.BadRequest(c, 13006, "存在子部门，无法删除")
	case errors.Is(err, service.ErrDepartmentHasUsers):
		response.BadRequest(c, 13007, "部门下存在用户，无法删除")
	case errors.Is(err, service.ErrDepartmentNotDeleted):
		response.BadRequest(c, 13008, "部门未被删除，无法恢复")
	default:
		response.InternalError(c)
	}
}
