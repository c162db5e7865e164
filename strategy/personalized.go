package strategy

import (
	"context"
	"sort"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/utils"
)

// Personalized 是基于协同过滤的个性化策略（Item-CF 打分）。
//
// 候选分数 = Σ_已交互商品 ( 协同相似度(已交互, 候选) × 用户对已交互商品的亲和权重 )
//
// 已交互商品不出现在结果中。前置条件不满足（模型未训练、用户不在
// 训练索引）时返回空，由链委托给热门策略。
type Personalized struct {
	Model SnapshotProvider
}

func (s *Personalized) Name() string { return "strategy.personalized" }

func (s *Personalized) Recommend(
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
	userRow, ok := snap.UserRow(rctx.UserID)
	if !ok || len(userRow) == 0 {
		return nil, nil
	}

	// 对用户交互过的每个商品，按相似度加权累加到所有候选上
	scores := make([]float64, snap.Items.Len())
	for iIdx, affinity := range userRow {
		simRow := snap.CFSim.Row(iIdx)
		for j, sim := range simRow {
			scores[j] += sim * affinity
		}
	}

	// 已交互商品得分清零并从候选中剔除
	candidates := make([]int, 0, len(scores))
	for j := range scores {
		if _, interacted := userRow[j]; interacted {
			scores[j] = 0
			continue
		}
		candidates = append(candidates, j)
	}

	// 分数降序；同分按商品索引升序（即商品 id 升序），保证确定性
	sort.SliceStable(candidates, func(a, b int) bool {
		if scores[candidates[a]] != scores[candidates[b]] {
			return scores[candidates[a]] > scores[candidates[b]]
		}
		return candidates[a] < candidates[b]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	out := make([]*core.Item, 0, len(candidates))
	for _, idx := range candidates {
		it := core.NewItem(snap.Items.IDAt(idx))
		it.Score = scores[idx]
		it.PutLabel(core.LabelStrategy, utils.Label{Value: TagPersonalized, Source: "strategy"})
		enrichFromSnapshot(it, snap)
		out = append(out, it)
	}
	return out, nil
}
