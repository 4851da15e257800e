package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lijianqiao/backend/internal/model"
)

// DepartmentListFilters 部门查询过滤条件。
// 软删除过滤作为显式参数下传，所有查询共用同一套语义。
type DepartmentListFilters struct {
	// Keyword 关键字，对 name / code / leader 三列做 OR 模糊匹配；空串不过滤
	Keyword string
	// IsActive 启用状态过滤；nil 不过滤
	IsActive *bool
	// IncludeDeleted 为 true 时结果包含已软删除的行
	IncludeDeleted bool
	// OnlyDeleted 为 true 时仅返回已软删除的行（回收站），优先于 IncludeDeleted
	OnlyDeleted bool
}

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	// GetByID 按 ID 查询未删除的部门
	GetByID(ctx context.Context, id string) (*model.Department, error)
	// GetAnyByID 按 ID 查询部门，包含已软删除的行（恢复路径使用）
	GetAnyByID(ctx context.Context, id string) (*model.Department, error)
	// List 分页查询，返回当前页与过滤后的总行数
	List(ctx context.Context, filters *DepartmentListFilters, offset, limit int) ([]model.Department, int64, error)
	// ListAll 不分页查询全部过滤结果（树构建需要完整行集）
	ListAll(ctx context.Context, filters *DepartmentListFilters) ([]model.Department, error)
	// ExistsByCode 检查编码在未删除行中是否已被占用；excludeID 非空时排除该行自身
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	// HasChildren 是否存在未删除的直接子部门
	HasChildren(ctx context.Context, id string) (bool, error)
	// CountUsers 统计挂在该部门下的用户数
	CountUsers(ctx context.Context, id string) (int64, error)
	// GetDescendantIDs 返回全部后代部门 ID（传递闭包，环检测使用）
	GetDescendantIDs(ctx context.Context, id string) ([]string, error)
	Update(ctx context.Context, dept *model.Department) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
	Restore(ctx context.Context, id, restoredBy string) error
}

// departmentRepo DepartmentRepository 的 GORM 实现
type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

// departmentOrder 稳定全序排序：sort 升序，created_at 降序，
// 时间戳碰撞时以主键兜底，保证任意两行可比。
const departmentOrder = "sort ASC, created_at DESC, department_id ASC"

// applyFilters 将过滤条件编译为查询谓词
func (r *departmentRepo) applyFilters(db *gorm.DB, f *DepartmentListFilters) *gorm.DB {
	switch {
	case f.OnlyDeleted:
		db = db.Where("is_deleted = ?", true)
	case !f.IncludeDeleted:
		db = db.Where("is_deleted = ?", false)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		db = db.Where("name ILIKE ? OR code ILIKE ? OR leader ILIKE ?", kw, kw, kw)
	}
	return db
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepo) GetByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND is_deleted = ?", id, false).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) GetAnyByID(ctx context.Context, id string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("department_id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context, filters *DepartmentListFilters, offset, limit int) ([]model.Department, int64, error) {
	var depts []model.Department
	var total int64

	db := r.applyFilters(r.db.WithContext(ctx).Model(&model.Department{}), filters)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order(departmentOrder).
		Offset(offset).Limit(limit).
		Find(&depts).Error; err != nil {
		return nil, 0, err
	}

	return depts, total, nil
}

func (r *departmentRepo) ListAll(ctx context.Context, filters *DepartmentListFilters) ([]model.Department, error) {
	var depts []model.Department
	err := r.applyFilters(r.db.WithContext(ctx).Model(&model.Department{}), filters).
		Order(departmentOrder).
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepo) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("code = ? AND is_deleted = ?", code, false)
	if excludeID != "" {
		db = db.Where("department_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *departmentRepo) HasChildren(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("parent_id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *departmentRepo) CountUsers(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("department_id = ?", id).
		Count(&count).Error
	return count, err
}

// GetDescendantIDs 递归 CTE 求传递闭包。
// UNION 去重使查询在数据异常成环时依然可终止。
func (r *departmentRepo) GetDescendantIDs(ctx context.Context, id string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Raw(`
		WITH RECURSIVE descendants AS (
			SELECT department_id FROM departments
			WHERE parent_id = ? AND is_deleted = false
			UNION
			SELECT d.department_id FROM departments d
			JOIN descendants s ON d.parent_id = s.department_id
			WHERE d.is_deleted = false
		)
		SELECT department_id FROM descendants`, id).
		Scan(&ids).Error
	return ids, err
}

func (r *departmentRepo) Update(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *departmentRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("department_id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_by": deletedBy,
			"updated_by": deletedBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *departmentRepo) Restore(ctx context.Context, id, restoredBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Department{}).
		Where("department_id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": false,
			"deleted_by": nil,
			"updated_by": restoredBy,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}
