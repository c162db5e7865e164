package strategy

import (
	"context"
	"sort"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/utils"
)

// ContentBased 按目录属性为查询商品找同类目的相似商品，
// 是 SimilarItem 的回退：模型未训练或商品不在训练集时仍然可用。
//
// 复合打分（降序）：
//   - 品牌一致 +3
//   - 价格接近 +2×(1−价差比)，价差比 = |价差| / max(两价)
//   - 平台一致 +1
//   - 每个取值相同的共有规格 key +0.5
//
// 同类目候选不足 n 个时返回空，由链委托给热门策略。
type ContentBased struct {
	Catalog core.CatalogStore
}

func (s *ContentBased) Name() string { return "strategy.content" }

func (s *ContentBased) Recommend(
	ctx context.Context,
	rctx *core.RecommendContext,
	n int,
) ([]*core.Item, error) {
	if s.Catalog == nil || rctx == nil || n <= 0 {
		return nil, nil
	}

	base, err := s.Catalog.FetchItems(ctx, []int64{rctx.ItemID})
	if err != nil {
		return nil, err
	}
	if len(base) == 0 {
		return nil, nil
	}
	query := base[0]

	all, err := s.Catalog.FetchItems(ctx, nil)
	if err != nil {
		return nil, err
	}
	candidates := make([]core.Product, 0, len(all))
	for _, p := range all {
		if p.ID != query.ID && p.CategoryID == query.CategoryID {
			candidates = append(candidates, p)
		}
	}

	// 同类目供给不足，让链回退到热门
	if len(candidates) < n {
		return nil, nil
	}

	type scored struct {
		product core.Product
		score   float64
	}
	scores := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		scores = append(scores, scored{product: p, score: contentScore(query, p)})
	}

	sort.SliceStable(scores, func(a, b int) bool {
		if scores[a].score != scores[b].score {
			return scores[a].score > scores[b].score
		}
		return scores[a].product.ID < scores[b].product.ID
	})
	if len(scores) > n {
		scores = scores[:n]
	}

	out := make([]*core.Item, 0, len(scores))
	for _, sc := range scores {
		it := core.NewItem(sc.product.ID)
		it.Score = sc.score
		// 内容回退对调用方仍是"相似商品"结果
		it.PutLabel(core.LabelStrategy, utils.Label{Value: TagSimilarItem, Source: "strategy"})
		it.PutMeta("brand", sc.product.Brand)
		it.PutMeta("platform", sc.product.Platform)
		it.PutMeta("price", sc.product.Price)
		out = append(out, it)
	}
	return out, nil
}

func contentScore(a, b core.Product) float64 {
	var score float64

	if b.Brand != "" && b.Brand == a.Brand {
		score += 3
	}

	if a.Price > 0 && b.Price > 0 {
		max := a.Price
		if b.Price > max {
			max = b.Price
		}
		gap := a.Price - b.Price
		if gap < 0 {
			gap = -gap
		}
		score += (1 - gap/max) * 2
	}

	if b.Platform != "" && b.Platform == a.Platform {
		score += 1
	}

	for k, v := range a.Spec {
		if bv, ok := b.Spec[k]; ok && bv == v {
			score += 0.5
		}
	}

	return score
}
