package strategy

import (
	"context"
	"sort"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/model"
	"github.com/shopmall/recmall/pkg/utils"
)

// SimilarItem 按协同相似度推荐与查询商品相似的其他商品。
//
// 自相似在排序前强制清零，结果永远不包含查询商品本身。
// 协同相似度矩阵不存在或商品不在训练索引时返回空，
// 由链委托给基于内容的策略。
type SimilarItem struct {
	Model SnapshotProvider
}

func (s *SimilarItem) Name() string { return "strategy.similar" }

func (s *SimilarItem) Recommend(
	_ context.Context,
	rctx *core.RecommendContext,
	n int,
) ([]*core.Item, error) {
	if s.Model == nil || rctx == nil || n <= 0 {
		return nil, nil
	}

	snap := s.Model.Snapshot()
	if !snap.Trained() || snap.CFSim == nil {
		return nil, nil
	}
	iIdx, ok := snap.Items.IndexOf(rctx.ItemID)
	if !ok {
		return nil, nil
	}

	// 查询商品自身排除
	simRow := snap.CFSim.Row(iIdx)
	simRow[iIdx] = 0

	candidates := make([]int, 0, len(simRow)-1)
	for j := range simRow {
		if j == iIdx {
			continue
		}
		candidates = append(candidates, j)
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		if simRow[candidates[a]] != simRow[candidates[b]] {
			return simRow[candidates[a]] > simRow[candidates[b]]
		}
		return candidates[a] < candidates[b]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, idx := range candidates {
		it := core.NewItem(snap.Items.IDAt(idx))
		it.Score = simRow[idx]
		it.PutLabel(core.LabelStrategy, utils.Label{Value: TagSimilarItem, Source: "strategy"})
		enrichFromSnapshot(it, snap)
		out = append(out, it)
	}
	return out, nil
}

// enrichFromSnapshot 把目录元信息带到结果上，调用方免二次查目录。
func enrichFromSnapshot(it *core.Item, snap *model.Snapshot) {
	p, ok := snap.Product(it.ID)
	if !ok {
		return
	}
	it.PutMeta("brand", p.Brand)
	it.PutMeta("platform", p.Platform)
	it.PutMeta("price", p.Price)
}
