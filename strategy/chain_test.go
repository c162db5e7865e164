package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/utils"
)

// stubStrategy 返回固定的商品 id 列表（截断到 n），用于链的组合测试。
type stubStrategy struct {
	name string
	ids  []int64
	err  error
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Recommend(
	_ context.Context,
	_ *core.RecommendContext,
	n int,
) ([]*core.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	ids := s.ids
	if len(ids) > n {
		ids = ids[:n]
	}
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		it := core.NewItem(id)
		it.PutLabel(core.LabelStrategy, utils.Label{Value: s.name, Source: "strategy"})
		out = append(out, it)
	}
	return out, nil
}

// dropFilter 按 id 过滤。
type dropFilter struct {
	ids map[int64]bool
	err error
}

func (f *dropFilter) Name() string { return "filter.drop" }

func (f *dropFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, it *core.Item) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.ids[it.ID], nil
}

func TestChainFallbackFills(t *testing.T) {
	c := NewChain(
		&stubStrategy{name: "primary", ids: []int64{1, 2}},
		&stubStrategy{name: "fallback", ids: []int64{3, 4, 5}},
	)
	items, err := c.Recommend(context.Background(), nil, 4)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	got := itemIDs(items)
	want := []int64{1, 2, 3, 4}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("结果 = %v, want %v", got, want)
		}
	}
	// 溯源标签保留各自的来源策略
	if items[0].Strategy() != "primary" || items[2].Strategy() != "fallback" {
		t.Errorf("溯源标签 = %q / %q", items[0].Strategy(), items[2].Strategy())
	}
}

func TestChainDeduplicates(t *testing.T) {
	c := NewChain(
		&stubStrategy{name: "primary", ids: []int64{1, 2, 3}},
		&stubStrategy{name: "fallback", ids: []int64{2, 3, 4, 5}},
	)
	items, err := c.Recommend(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	got := itemIDs(items)
	want := []int64{1, 2, 3, 4, 5}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("结果 = %v, want %v", got, want)
		}
	}
	seen := make(map[int64]bool)
	for _, id := range got {
		if seen[id] {
			t.Fatalf("重复商品 %d", id)
		}
		seen[id] = true
	}
}

func TestChainSkipsEmptyStrategy(t *testing.T) {
	c := NewChain(
		&stubStrategy{name: "empty"},
		&stubStrategy{name: "fallback", ids: []int64{7, 8}},
	)
	items, err := c.Recommend(context.Background(), nil, 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	got := itemIDs(items)
	if len(got) != 2 || got[0] != 7 || got[1] != 8 {
		t.Fatalf("结果 = %v, want [7 8]", got)
	}
}

func TestChainStopsAtN(t *testing.T) {
	c := NewChain(
		&stubStrategy{name: "primary", ids: []int64{1, 2, 3, 4, 5}},
		&stubStrategy{name: "never", err: errors.New("should not be called")},
	)
	items, err := c.Recommend(context.Background(), nil, 3)
	if err != nil {
		t.Fatalf("凑满后不应再调用后续策略: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
}

func TestChainUnderfill(t *testing.T) {
	c := NewChain(&stubStrategy{name: "only", ids: []int64{1}})
	items, err := c.Recommend(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// 供给不足不是错误
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}
}

func TestChainPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	c := NewChain(&stubStrategy{name: "bad", err: boom})
	_, err := c.Recommend(context.Background(), nil, 3)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestChainAppliesFilters(t *testing.T) {
	c := NewChain(&stubStrategy{name: "primary", ids: []int64{1, 2, 3}})
	c.Filters = append(c.Filters, &dropFilter{ids: map[int64]bool{2: true}})

	items, err := c.Recommend(context.Background(), nil, 3)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	got := itemIDs(items)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("结果 = %v, want [1 3]", got)
	}
}

func TestChainFilterErrorDoesNotBlock(t *testing.T) {
	c := NewChain(&stubStrategy{name: "primary", ids: []int64{1, 2}})
	c.Filters = append(c.Filters, &dropFilter{err: errors.New("redis down")})

	items, err := c.Recommend(context.Background(), nil, 2)
	if err != nil {
		t.Fatalf("过滤器故障不应阻断推荐: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}
