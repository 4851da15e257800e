package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lijianqiao/backend/internal/dto"
	"github.com/lijianqiao/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoDepartments = errors.New("无符合条件的部门可导出")
	ErrExportGenerateFail  = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 部门列表导出为 Excel (.xlsx)，过滤语义与列表/树查询一致
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 上级部门列展示父部门名称，顶级部门留空
type ExportService interface {
	// ExportDepartments 导出部门列表为 Excel
	// 返回值：buf（Excel 内容）, filename（建议文件名）, error
	ExportDepartments(ctx context.Context, req *dto.DepartmentFilterRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportDepartments(ctx context.Context, req *dto.DepartmentFilterRequest) (*bytes.Buffer, string, error) {
	depts, err := s.repo.Department.ListAll(ctx, toDepartmentFilters(req))
	if err != nil {
		s.logger.Error("查询部门列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(depts) == 0 {
		return nil, "", ErrExportNoDepartments
	}

	// 父部门名称索引（导出行集内查找，集外的父显示为空）
	nameByID := make(map[string]string, len(depts))
	for i := range depts {
		nameByID[depts[i].DepartmentID] = depts[i].Name
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "部门列表"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"名称", "编码", "负责人", "电话", "邮箱", "排序", "状态", "上级部门", "创建时间"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, d := range depts {
		status := "启用"
		if !d.IsActive {
			status = "停用"
		}
		parentName := ""
		if d.ParentID != nil {
			parentName = nameByID[*d.ParentID]
		}
		values := []interface{}{
			d.Name, d.Code, d.Leader, d.Phone, d.Email,
			d.Sort, status, parentName,
			d.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("departments_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf, filename, nil
}
