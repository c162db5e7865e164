package model

import "sort"

// IndexMap 是 id ⇄ 稠密索引的双向查找表，由模型快照独占持有。
// 行/列位置不是偶然的数组下标，而是显式映射：协同相似度矩阵与
// 内容相似度矩阵共用同一份商品索引，绝不允许各自维护再错配。
type IndexMap struct {
	ids []int64
	pos map[int64]int
}

// NewIndexMap 对去重后的 id 集排序并建立双向映射。
func NewIndexMap(idSet map[int64]struct{}) *IndexMap {
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pos := make(map[int64]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return &IndexMap{ids: ids, pos: pos}
}

// Len 返回映射中的 id 数量。
func (m *IndexMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ids)
}

// IndexOf 返回 id 对应的稠密索引；不在训练集中返回 (0, false)。
func (m *IndexMap) IndexOf(id int64) (int, bool) {
	if m == nil {
		return 0, false
	}
	idx, ok := m.pos[id]
	return idx, ok
}

// IDAt 返回索引 idx 对应的 id，越界返回 0。
func (m *IndexMap) IDAt(idx int) int64 {
	if m == nil || idx < 0 || idx >= len(m.ids) {
		return 0
	}
	return m.ids[idx]
}

// IDs 返回升序的 id 列表（内部切片，调用方只读）。
func (m *IndexMap) IDs() []int64 {
	if m == nil {
		return nil
	}
	return m.ids
}
