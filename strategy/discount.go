package strategy

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/utils"
)

// Discounted 按优惠力度推荐商品。
//
// 每条 (商品, 优惠) 记录是一个独立候选行，同一商品可能因多张券出现多次，
// 需要去重的调用方（如回退链）保留首个（优惠比例最高的）出现。
//
// 优惠金额：
//   - 满减：商品价 ≥ 门槛时直减 Value，否则 0
//   - 折扣：价 × (1 − Value/10)，Value 为 0-10 折数（9.0 折 ⇒ 10% off）
//   - 消费券：直减 Value
//
// 优惠比例 = 金额 / 价 × 100（价为 0 时取 0），按比例降序排序。
type Discounted struct {
	Catalog core.CatalogStore
}

func (s *Discounted) Name() string { return "strategy.discount" }

func (s *Discounted) Recommend(
	ctx context.Context,
	_ *core.RecommendContext,
	n int,
) ([]*core.Item, error) {
	if s.Catalog == nil || n <= 0 {
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

	discounts, err := s.Catalog.FetchAllDiscounts(ctx)
	if err != nil {
		return nil, err
	}

	type row struct {
		product    core.Product
		discount   core.Discount
		amount     float64
		percentage float64
	}
	rows := make([]row, 0, len(discounts))
	for _, d := range discounts {
		p, ok := products[d.ItemID]
		if !ok {
			continue
		}
		amount := DiscountAmount(p, d)
		pct := 0.0
		if p.Price > 0 {
			pct = amount / p.Price * 100
		}
		rows = append(rows, row{product: p, discount: d, amount: amount, percentage: pct})
	}

	// 比例降序；同比例保持输入顺序（稳定排序），同一快照上重复调用结果一致
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].percentage > rows[b].percentage
	})
	if len(rows) > n {
		rows = rows[:n]
	}

	out := make([]*core.Item, 0, len(rows))
	for _, r := range rows {
		it := core.NewItem(r.product.ID)
		it.Score = r.percentage
		it.PutLabel(core.LabelStrategy, utils.Label{Value: TagDiscounted, Source: "strategy"})
		it.PutMeta("brand", r.product.Brand)
		it.PutMeta("platform", r.product.Platform)
		it.PutMeta("price", r.product.Price)
		it.PutMeta("discount_amount", r.amount)
		it.PutMeta("discount_percentage", r.percentage)
		it.PutMeta("discount_desc", DiscountDesc(r.discount))
		out = append(out, it)
	}
	return out, nil
}

// DiscountAmount 计算一条优惠对一个商品的绝对优惠金额。
func DiscountAmount(p core.Product, d core.Discount) float64 {
	switch d.Type {
	case core.DiscountThreshold:
		if p.Price >= d.MinPurchase {
			return d.Value
		}
		return 0
	case core.DiscountPercent:
		return p.Price * (1 - d.Value/10)
	case core.DiscountCoupon:
		return d.Value
	default:
		return 0
	}
}

// DiscountDesc 生成展示用的优惠描述。
func DiscountDesc(d core.Discount) string {
	switch d.Type {
	case core.DiscountThreshold:
		return fmt.Sprintf("满%.0f减%.0f", d.MinPurchase, d.Value)
	case core.DiscountPercent:
		return fmt.Sprintf("%.1f折", d.Value)
	case core.DiscountCoupon:
		return fmt.Sprintf("减%.0f元", d.Value)
	default:
		return ""
	}
}
