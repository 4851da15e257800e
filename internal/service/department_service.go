package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lijianqiao/backend/internal/dto"
	"github.com/lijianqiao/backend/internal/model"
	"github.com/lijianqiao/backend/internal/repository"
	pkgerrors "github.com/lijianqiao/backend/pkg/errors"
)

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNotFound       = errors.New("部门不存在")
	ErrDepartmentCodeExists     = errors.New("部门编码已存在")
	ErrDepartmentParentNotFound = errors.New("上级部门不存在")
	ErrDepartmentSelfParent     = errors.New("不能将部门设为自己的上级")
	ErrDepartmentCyclicParent   = errors.New("不能将部门移动到自己的下级")
	ErrDepartmentHasChildren    = errors.New("存在子部门，无法删除")
	ErrDepartmentHasUsers       = errors.New("部门下存在用户，无法删除")
	ErrDepartmentNotDeleted     = errors.New("部门未被删除，无法恢复")
)

// DepartmentService 部门业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	// List 分页列表，过滤语义与 GetTree 完全一致
	List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, int64, error)
	// GetTree 返回过滤后的部门森林（不分页）
	GetTree(ctx context.Context, req *dto.DepartmentFilterRequest) ([]*dto.DepartmentTreeNode, error)
	// ListRecycleBin 回收站：仅已软删除的部门，过滤语义与 List 一致（分页）
	ListRecycleBin(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id, callerID string) error
	Restore(ctx context.Context, id, callerID string) (*dto.DepartmentResponse, error)
	// BatchDelete / BatchRestore 逐项尽力而为，单项失败不影响其余项
	BatchDelete(ctx context.Context, ids []string, callerID string) (*dto.BatchResult, error)
	BatchRestore(ctx context.Context, ids []string, callerID string) (*dto.BatchResult, error)
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	// 检查编码唯一性（未删除行范围内）
	exists, err := s.repo.Department.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		s.logger.Error("查询部门编码失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrDepartmentCodeExists
	}

	// 校验上级部门存在且未删除
	if req.ParentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentParentNotFound
			}
			s.logger.Error("查询上级部门失败", zap.Error(err))
			return nil, err
		}
	}

	dept := &model.Department{
		Name:     req.Name,
		Code:     req.Code,
		Leader:   req.Leader,
		Phone:    req.Phone,
		Email:    req.Email,
		Sort:     req.Sort,
		IsActive: true,
		ParentID: req.ParentID,
	}
	dept.CreatedBy = &callerID
	dept.UpdatedBy = &callerID

	if err := s.repo.Department.Create(ctx, dept); err != nil {
		// 预检通过但并发写入抢先占用编码时，以存储层唯一约束为最终裁决
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDepartmentCodeExists
		}
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}

	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// ────────────────────── List / GetTree ──────────────────────

func (s *departmentService) List(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, int64, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	filters := toDepartmentFilters(&req.DepartmentFilterRequest)
	depts, total, err := s.repo.Department.List(ctx, filters, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("查询部门列表失败", zap.Error(err))
		return nil, 0, err
	}

	return toDepartmentResponses(depts), total, nil
}

func (s *departmentService) GetTree(ctx context.Context, req *dto.DepartmentFilterRequest) ([]*dto.DepartmentTreeNode, error) {
	// 树模式取完整过滤行集：命中的子部门即使父未命中也要参与组装
	depts, err := s.repo.Department.ListAll(ctx, toDepartmentFilters(req))
	if err != nil {
		s.logger.Error("查询部门树失败", zap.Error(err))
		return nil, err
	}

	return buildDepartmentForest(depts), nil
}

func (s *departmentService) ListRecycleBin(ctx context.Context, req *dto.DepartmentListRequest) ([]dto.DepartmentResponse, int64, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	// 复用列表过滤条件，仅把范围收窄到已删除行
	filters := toDepartmentFilters(&req.DepartmentFilterRequest)
	filters.OnlyDeleted = true
	depts, total, err := s.repo.Department.List(ctx, filters, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("查询回收站失败", zap.Error(err))
		return nil, 0, err
	}

	return toDepartmentResponses(depts), total, nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 如果更新编码，检查唯一性（排除自身）
	if req.Code != nil && *req.Code != dept.Code {
		exists, err := s.repo.Department.ExistsByCode(ctx, *req.Code, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDepartmentCodeExists
		}
		dept.Code = *req.Code
	}

	// 如果调整上级，校验不成环
	if req.ParentID != nil {
		if err := s.checkParentReassign(ctx, dept, *req.ParentID); err != nil {
			return nil, err
		}
		dept.ParentID = req.ParentID
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Leader != nil {
		dept.Leader = *req.Leader
	}
	if req.Phone != nil {
		dept.Phone = *req.Phone
	}
	if req.Email != nil {
		dept.Email = *req.Email
	}
	if req.Sort != nil {
		dept.Sort = *req.Sort
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	dept.UpdatedBy = &callerID

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrDepartmentCodeExists
		}
		s.logger.Error("更新部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// checkParentReassign 校验上级调整不违反森林不变量：
// 不可设为自身，不可设为自己的后代（会成环），且新上级必须存在且未删除。
func (s *departmentService) checkParentReassign(ctx context.Context, dept *model.Department, newParentID string) error {
	if newParentID == dept.DepartmentID {
		return ErrDepartmentSelfParent
	}

	if _, err := s.repo.Department.GetByID(ctx, newParentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentParentNotFound
		}
		return err
	}

	descendants, err := s.repo.Department.GetDescendantIDs(ctx, dept.DepartmentID)
	if err != nil {
		s.logger.Error("查询后代部门失败", zap.String("id", dept.DepartmentID), zap.Error(err))
		return err
	}
	for _, did := range descendants {
		if did == newParentID {
			return ErrDepartmentCyclicParent
		}
	}
	return nil
}

// ────────────────────── Delete / Restore ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return err
	}

	hasChildren, err := s.repo.Department.HasChildren(ctx, id)
	if err != nil {
		s.logger.Error("查询子部门失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if hasChildren {
		return ErrDepartmentHasChildren
	}

	userCount, err := s.repo.Department.CountUsers(ctx, id)
	if err != nil {
		s.logger.Error("查询部门用户数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if userCount > 0 {
		return ErrDepartmentHasUsers
	}

	if err := s.repo.Department.SoftDelete(ctx, id, callerID); err != nil {
		s.logger.Error("删除部门失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *departmentService) Restore(ctx context.Context, id, callerID string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetAnyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不存在的部门当前也不处于已删除状态
			return nil, ErrDepartmentNotDeleted
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !dept.IsDeleted {
		return nil, ErrDepartmentNotDeleted
	}

	if err := s.repo.Department.Restore(ctx, id, callerID); err != nil {
		s.logger.Error("恢复部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	dept.IsDeleted = false
	dept.DeletedBy = nil
	dept.UpdatedBy = &callerID

	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// ────────────────────── 批量操作 ──────────────────────
//
// 策略：尽力而为 + 逐项报告。每个 ID 独立校验、独立写入，
// 单项失败记录原因后继续处理其余项。

func (s *departmentService) BatchDelete(ctx context.Context, ids []string, callerID string) (*dto.BatchResult, error) {
	result := &dto.BatchResult{
		SucceededIDs: []string{},
		Failed:       []dto.BatchFailure{},
	}
	for _, id := range ids {
		if err := s.Delete(ctx, id, callerID); err != nil {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded++
		result.SucceededIDs = append(result.SucceededIDs, id)
	}
	return result, nil
}

func (s *departmentService) BatchRestore(ctx context.Context, ids []string, callerID string) (*dto.BatchResult, error) {
	result := &dto.BatchResult{
		SucceededIDs: []string{},
		Failed:       []dto.BatchFailure{},
	}
	for _, id := range ids {
		if _, err := s.Restore(ctx, id, callerID); err != nil {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded++
		result.SucceededIDs = append(result.SucceededIDs, id)
	}
	return result, nil
}

// ── 内部辅助方法 ──

func toDepartmentFilters(req *dto.DepartmentFilterRequest) *repository.DepartmentListFilters {
	return &repository.DepartmentListFilters{
		Keyword:        req.Keyword,
		IsActive:       req.IsActive,
		IncludeDeleted: req.IncludeDeleted,
	}
}

func toDepartmentResponse(dept *model.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:        dept.DepartmentID,
		Name:      dept.Name,
		Code:      dept.Code,
		Leader:    dept.Leader,
		Phone:     dept.Phone,
		Email:     dept.Email,
		Sort:      dept.Sort,
		IsActive:  dept.IsActive,
		IsDeleted: dept.IsDeleted,
		ParentID:  dept.ParentID,
		CreatedAt: dept.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: dept.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toDepartmentResponses(depts []model.Department) []dto.DepartmentResponse {
	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, toDepartmentResponse(&depts[i]))
	}
	return result
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}
