package store

import (
	"context"
	"sync"

	"github.com/shopmall/recmall/core"
)

// 本文件是"已物化快照"形态的数据源：协作方（网站后端、离线任务）
// 把账本/目录/统计整批灌入内存，引擎按只读集合消费（引擎内部无 I/O）。
// 三个类型分别实现 core.LedgerStore / core.CatalogStore / core.StatsStore。

// MemoryLedger 是内存行为账本。
type MemoryLedger struct {
	mu           sync.RWMutex
	interactions []core.Interaction
}

func NewMemoryLedger(interactions []core.Interaction) *MemoryLedger {
	return &MemoryLedger{interactions: interactions}
}

// Append 追加行为记录（灌数据用，训练读到的是调用时的整批）。
func (l *MemoryLedger) Append(interactions ...core.Interaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interactions = append(l.interactions, interactions...)
}

func (l *MemoryLedger) FetchAllInteractions(ctx context.Context) ([]core.Interaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Interaction, len(l.interactions))
	copy(out, l.interactions)
	return out, nil
}

var _ core.LedgerStore = (*MemoryLedger)(nil)

// MemoryCatalog 是内存商品目录。
type MemoryCatalog struct {
	mu        sync.RWMutex
	products  []core.Product
	discounts []core.Discount
}

func NewMemoryCatalog(products []core.Product, discounts []core.Discount) *MemoryCatalog {
	return &MemoryCatalog{products: products, discounts: discounts}
}

func (c *MemoryCatalog) FetchItems(ctx context.Context, ids []int64) ([]core.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if ids == nil {
		out := make([]core.Product, len(c.products))
		copy(out, c.products)
		return out, nil
	}

	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]core.Product, 0, len(ids))
	for _, p := range c.products {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) FetchDiscounts(ctx context.Context, itemID int64) ([]core.Discount, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]core.Discount, 0)
	for _, d := range c.discounts {
		if d.ItemID == itemID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) FetchAllDiscounts(ctx context.Context) ([]core.Discount, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.Discount, len(c.discounts))
	copy(out, c.discounts)
	return out, nil
}

var _ core.CatalogStore = (*MemoryCatalog)(nil)

// MemoryStats 是内存评价/销量统计。
type MemoryStats struct {
	mu      sync.RWMutex
	reviews map[int64]core.ReviewStat
	sales   map[int64]float64
}

func NewMemoryStats(reviews map[int64]core.ReviewStat, sales map[int64]float64) *MemoryStats {
	if reviews == nil {
		reviews = make(map[int64]core.ReviewStat)
	}
	if sales == nil {
		sales = make(map[int64]float64)
	}
	return &MemoryStats{reviews: reviews, sales: sales}
}

func (s *MemoryStats) FetchReviewStats(ctx context.Context) (map[int64]core.ReviewStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]core.ReviewStat, len(s.reviews))
	for id, st := range s.reviews {
		out[id] = st
	}
	return out, nil
}

func (s *MemoryStats) FetchSalesTotals(ctx context.Context) (map[int64]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]float64, len(s.sales))
	for id, v := range s.sales {
		out[id] = v
	}
	return out, nil
}

var _ core.StatsStore = (*MemoryStats)(nil)
