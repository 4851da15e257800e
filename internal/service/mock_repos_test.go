package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lijianqiao/backend/internal/model"
	"github.com/lijianqiao/backend/internal/repository"
)

// ── Mock DepartmentRepository ──
//
// 过滤与排序语义和 GORM 实现保持一致：
// 关键字对 name/code/leader 做大小写不敏感的子串 OR 匹配，
// 排序为 sort 升序、created_at 降序、department_id 升序。

type mockDeptRepo struct {
	departments map[string]*model.Department
	userCounts  map[string]int64
	seq         int
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{
		departments: make(map[string]*model.Department),
		userCounts:  make(map[string]int64),
	}
}

var mockBaseTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	m.seq++
	if dept.DepartmentID == "" {
		dept.DepartmentID = fmt.Sprintf("dept-%03d", m.seq)
	}
	if dept.CreatedAt.IsZero() {
		dept.CreatedAt = mockBaseTime.Add(time.Duration(m.seq) * time.Minute)
	}
	copied := *dept
	m.departments[dept.DepartmentID] = &copied
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	d, ok := m.departments[id]
	if !ok || d.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *mockDeptRepo) GetAnyByID(_ context.Context, id string) (*model.Department, error) {
	d, ok := m.departments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *d
	return &copied, nil
}

func (m *mockDeptRepo) filtered(f *repository.DepartmentListFilters) []model.Department {
	result := make([]model.Department, 0, len(m.departments))
	for _, d := range m.departments {
		switch {
		case f.OnlyDeleted:
			if !d.IsDeleted {
				continue
			}
		case !f.IncludeDeleted:
			if d.IsDeleted {
				continue
			}
		}
		if f.IsActive != nil && d.IsActive != *f.IsActive {
			continue
		}
		if f.Keyword != "" {
			kw := strings.ToLower(f.Keyword)
			if !strings.Contains(strings.ToLower(d.Name), kw) &&
				!strings.Contains(strings.ToLower(d.Code), kw) &&
				!strings.Contains(strings.ToLower(d.Leader), kw) {
				continue
			}
		}
		result = append(result, *d)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Sort != result[j].Sort {
			return result[i].Sort < result[j].Sort
		}
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].DepartmentID < result[j].DepartmentID
	})
	return result
}

func (m *mockDeptRepo) List(_ context.Context, filters *repository.DepartmentListFilters, offset, limit int) ([]model.Department, int64, error) {
	all := m.filtered(filters)
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Department{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockDeptRepo) ListAll(_ context.Context, filters *repository.DepartmentListFilters) ([]model.Department, error) {
	return m.filtered(filters), nil
}

func (m *mockDeptRepo) ExistsByCode(_ context.Context, code, excludeID string) (bool, error) {
	for _, d := range m.departments {
		if d.IsDeleted || d.Code != code {
			continue
		}
		if excludeID != "" && d.DepartmentID == excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (m *mockDeptRepo) HasChildren(_ context.Context, id string) (bool, error) {
	for _, d := range m.departments {
		if d.IsDeleted || d.ParentID == nil {
			continue
		}
		if *d.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDeptRepo) CountUsers(_ context.Context, id string) (int64, error) {
	return m.userCounts[id], nil
}

func (m *mockDeptRepo) GetDescendantIDs(_ context.Context, id string) ([]string, error) {
	visited := map[string]bool{}
	queue := []string{id}
	var result []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range m.departments {
			if d.IsDeleted || d.ParentID == nil || *d.ParentID != current {
				continue
			}
			if visited[d.DepartmentID] {
				continue
			}
			visited[d.DepartmentID] = true
			result = append(result, d.DepartmentID)
			queue = append(queue, d.DepartmentID)
		}
	}
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	copied := *dept
	m.departments[dept.DepartmentID] = &copied
	return nil
}

func (m *mockDeptRepo) SoftDelete(_ context.Context, id, deletedBy string) error {
	if d, ok := m.departments[id]; ok {
		d.IsDeleted = true
		d.DeletedBy = &deletedBy
	}
	return nil
}

func (m *mockDeptRepo) Restore(_ context.Context, id, restoredBy string) error {
	if d, ok := m.departments[id]; ok {
		d.IsDeleted = false
		d.DeletedBy = nil
		d.UpdatedBy = &restoredBy
	}
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if filters != nil && filters.DepartmentID != "" {
			if u.DepartmentID == nil || *u.DepartmentID != filters.DepartmentID {
				continue
			}
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	total := int64(len(result))
	if offset >= len(result) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}
