package service

import (
	"github.com/lijianqiao/backend/internal/dto"
	"github.com/lijianqiao/backend/internal/model"
)

// buildDepartmentForest 将已过滤、已排序的扁平部门行集组装为森林。
//
// 根的判定：parent_id 为 NULL，或父节点不在行集中。关键字搜索命中子部门
// 而未命中其父时，子部门作为独立子树的根呈现，不丢弃、也不挂到更远的
// 祖先上 —— 结果只对过滤后的行集重新嵌套。
//
// 子列表保持输入行序（即仓储层 sort/created_at 的排序），不依赖 map 遍历顺序，
// 同一输入多次调用输出完全一致。
func buildDepartmentForest(depts []model.Department) []*dto.DepartmentTreeNode {
	nodes := make(map[string]*dto.DepartmentTreeNode, len(depts))
	for i := range depts {
		nodes[depts[i].DepartmentID] = &dto.DepartmentTreeNode{
			DepartmentResponse: toDepartmentResponse(&depts[i]),
			Children:           []*dto.DepartmentTreeNode{},
		}
	}

	childIDs := make(map[string][]string, len(depts))
	rootIDs := make([]string, 0, len(depts))
	for i := range depts {
		d := &depts[i]
		if d.ParentID == nil || nodes[*d.ParentID] == nil {
			rootIDs = append(rootIDs, d.DepartmentID)
			continue
		}
		childIDs[*d.ParentID] = append(childIDs[*d.ParentID], d.DepartmentID)
	}

	forest := make([]*dto.DepartmentTreeNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		root := nodes[id]
		attachChildren(root, nodes, childIDs, map[string]bool{id: true})
		forest = append(forest, root)
	}
	return forest
}

// attachChildren 按输入行序递归挂接子节点。
//
// visited 记录当前根到节点路径上的 ID。写路径已阻止成环，这里只防御
// 绕过写校验的脏数据（人工改库、迁移残留）：检测到环时截断该分支，
// 返回已组装的部分，读路径永远终止、永不报错。
func attachChildren(node *dto.DepartmentTreeNode, nodes map[string]*dto.DepartmentTreeNode, childIDs map[string][]string, visited map[string]bool) {
	for _, cid := range childIDs[node.ID] {
		if visited[cid] {
			continue
		}
		visited[cid] = true
		child := nodes[cid]
		attachChildren(child, nodes, childIDs, visited)
		delete(visited, cid)
		node.Children = append(node.Children, child)
	}
}
