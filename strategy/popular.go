package strategy

import (
	"context"
	"sort"
	"strconv"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/utils"
)

// Popular 是热门策略：不依赖训练快照，模型为空时依然可用，
// 因此是多数回退链的兜底。
//
// 排序分三段补齐：
//  1. 有评价的商品：平均评分降序 → 评价数降序 → 商品 id 升序
//  2. 不足 n 时按总销量降序补齐（跳过已选）
//  3. 仍不足时按商品 id 升序补齐目录剩余商品（稳定兜底序）
//
// 可选：配置 HotStore + HotKey 后，先读运营维护的热门榜
// （有序集合，member 为商品 id），榜单命中的排在最前。
type Popular struct {
	Catalog core.CatalogStore
	Stats   core.StatsStore

	// HotStore / HotKey 运营热门榜（可选）
	HotStore core.KeyValueStore
	HotKey   string
}

func (s *Popular) Name() string { return "strategy.popular" }

func (s *Popular) Recommend(
	ctx context.Context,
	_ *core.RecommendContext,
	n int,
) ([]*core.Item, error) {
	if s.Catalog == nil || s.Stats == nil || n <= 0 {
		return nil, nil
	}

	all, err := s.Catalog.FetchItems(ctx, nil)
	if err != nil {
		return nil, err
	}
	products := make(map[int64]core.Product, len(all))
	for _, p := range all {
		products[p.ID] = p
	}

	reviews, err := s.Stats.FetchReviewStats(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, n)
	out := make([]*core.Item, 0, n)

	emit := func(id int64, score float64) bool {
		if _, dup := seen[id]; dup {
			return len(out) < n
		}
		seen[id] = struct{}{}
		it := core.NewItem(id)
		it.Score = score
		it.PutLabel(core.LabelStrategy, utils.Label{Value: TagPopular, Source: "strategy"})
		if stat, ok := reviews[id]; ok {
			it.PutMeta("review_count", stat.ReviewCount)
			it.PutMeta("avg_rating", stat.AvgRating)
		}
		if p, ok := products[id]; ok {
			it.PutMeta("brand", p.Brand)
			it.PutMeta("platform", p.Platform)
			it.PutMeta("price", p.Price)
		}
		out = append(out, it)
		return len(out) < n
	}

	// 0. 运营热门榜优先
	if s.HotStore != nil && s.HotKey != "" {
		members, err := s.HotStore.ZRange(ctx, s.HotKey, 0, int64(n-1))
		if err == nil {
			for _, m := range members {
				id, err := strconv.ParseInt(m, 10, 64)
				if err != nil {
					continue
				}
				if _, inCatalog := products[id]; !inCatalog {
					continue
				}
				if !emit(id, 0) {
					return out, nil
				}
			}
		}
	}

	// 1. 有评价的商品：平均评分 → 评价数 → id
	reviewed := make([]int64, 0, len(reviews))
	for id := range reviews {
		if _, inCatalog := products[id]; inCatalog {
			reviewed = append(reviewed, id)
		}
	}
	sort.Slice(reviewed, func(a, b int) bool {
		ra, rb := reviews[reviewed[a]], reviews[reviewed[b]]
		if ra.AvgRating != rb.AvgRating {
			return ra.AvgRating > rb.AvgRating
		}
		if ra.ReviewCount != rb.ReviewCount {
			return ra.ReviewCount > rb.ReviewCount
		}
		return reviewed[a] < reviewed[b]
	})
	for _, id := range reviewed {
		if !emit(id, reviews[id].AvgRating) {
			return out, nil
		}
	}

	// 2. 销量补齐
	sales, err := s.Stats.FetchSalesTotals(ctx)
	if err != nil {
		return nil, err
	}
	bySales := make([]int64, 0, len(sales))
	for id := range sales {
		if _, inCatalog := products[id]; inCatalog {
			bySales = append(bySales, id)
		}
	}
	sort.Slice(bySales, func(a, b int) bool {
		if sales[bySales[a]] != sales[bySales[b]] {
			return sales[bySales[a]] > sales[bySales[b]]
		}
		return bySales[a] < bySales[b]
	})
	for _, id := range bySales {
		if !emit(id, sales[id]) {
			return out, nil
		}
	}

	// 3. 既无评价也无销量的商品，按 id 稳定兜底
	rest := make([]int64, 0, len(products))
	for id := range products {
		if _, dup := seen[id]; !dup {
			rest = append(rest, id)
		}
	}
	sort.Slice(rest, func(a, b int) bool { return rest[a] < rest[b] })
	for _, id := range rest {
		if !emit(id, 0) {
			return out, nil
		}
	}

	return out, nil
}
