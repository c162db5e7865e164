package strategy

import (
	"context"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/filter"
)

// Chain 是回退链组合器：按序尝试策略，结果不足 n 条时继续向后补齐，
// 跳过已累积的商品 id，直到凑满 n 条或所有策略耗尽。
// 耗尽后不足 n 条不是错误，只是供给不足。
type Chain struct {
	// Strategies 按优先级排列的策略（索引越小优先级越高）
	Strategies []Strategy

	// Filters 应用在每个策略产出上的过滤器（黑名单、规则等），可为空
	Filters []filter.Filter
}

// NewChain 创建一条回退链。
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{Strategies: strategies}
}

// Recommend 执行整条链。
func (c *Chain) Recommend(
	ctx context.Context,
	rctx *core.RecommendContext,
	n int,
) ([]*core.Item, error) {
	if n <= 0 || len(c.Strategies) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{}, n)
	out := make([]*core.Item, 0, n)

	for _, s := range c.Strategies {
		if len(out) >= n {
			break
		}

		// 多要一些：同一策略内部可能有重复行（如一品多券），
		// 也可能和已累积的结果撞 id
		want := n + len(out)
		items, err := s.Recommend(ctx, rctx, want)
		if err != nil {
			return nil, err
		}

		items = c.applyFilters(ctx, rctx, items)

		for _, it := range items {
			if it == nil {
				continue
			}
			if _, dup := seen[it.ID]; dup {
				continue
			}
			seen[it.ID] = struct{}{}
			out = append(out, it)
			if len(out) >= n {
				break
			}
		}
	}

	return out, nil
}

func (c *Chain) applyFilters(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) []*core.Item {
	if len(c.Filters) == 0 || len(items) == 0 {
		return items
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		drop := false
		for _, f := range c.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, it)
			if err != nil {
				// 过滤器故障不阻断推荐，跳过该过滤器
				continue
			}
			if ok {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, it)
		}
	}
	return out
}
