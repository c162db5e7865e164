// Package model 负责模型快照的构建与持有：
// 一次训练原子地产出 {亲和矩阵, 协同相似度, 特征矩阵, 内容相似度, 索引映射}，
// 查询侧整体换用新快照，绝不原地改写正在被读的矩阵。
package model

import (
	"time"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/matrix"
)

// Snapshot 是一次训练产出的不可变模型快照。
//
// 生命周期：引擎构造时为空 → 一次训练整体填充 → 任意次查询 → 下次训练整体替换。
// 不存在部分更新；快照内的索引映射只对本快照的矩阵有效。
type Snapshot struct {
	// Users / Items 是 (user id, item id) 与矩阵行列索引的双向映射
	Users *IndexMap
	Items *IndexMap

	// Affinity 是稀疏的用户×商品亲和矩阵（加权行为求和）
	Affinity *matrix.Sparse

	// CFSim 是协同信号的商品相似度矩阵；商品数 < 2 时为 nil
	CFSim *matrix.Dense

	// Features 是商品特征矩阵（每行定宽 10 维），行序与 Items 对齐
	Features [][]float64

	// ContentSim 是内容信号的商品相似度矩阵；商品数 < 2 时为 nil
	ContentSim *matrix.Dense

	// Products 是训练商品集的目录记录，供内容策略与结果元信息使用
	Products map[int64]core.Product

	// TrainedAt 本次训练完成时间
	TrainedAt time.Time
}

// Trained 报告快照是否由一次成功的训练产出。
func (s *Snapshot) Trained() bool {
	return s != nil && s.Users.Len() > 0 && s.Items.Len() > 0
}

// UserRow 返回用户在亲和矩阵中的一行（商品索引 → 亲和权重）。
// 用户不在训练索引中返回 (nil, false)。
func (s *Snapshot) UserRow(userID int64) (map[int]float64, bool) {
	if !s.Trained() {
		return nil, false
	}
	idx, ok := s.Users.IndexOf(userID)
	if !ok {
		return nil, false
	}
	return s.Affinity.Row(idx), true
}

// Product 返回训练商品集中的目录记录。
func (s *Snapshot) Product(itemID int64) (core.Product, bool) {
	if s == nil || s.Products == nil {
		return core.Product{}, false
	}
	p, ok := s.Products[itemID]
	return p, ok
}
