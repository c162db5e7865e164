package strategy

import (
	"context"
	"math"
	"testing"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/store"
)

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name string
		p    core.Product
		d    core.Discount
		want float64
	}{
		{
			"满减达到门槛",
			core.Product{Price: 1000},
			core.Discount{Type: core.DiscountThreshold, Value: 100, MinPurchase: 900},
			100,
		},
		{
			"满减未达门槛",
			core.Product{Price: 800},
			core.Discount{Type: core.DiscountThreshold, Value: 100, MinPurchase: 900},
			0,
		},
		{
			"九折",
			core.Product{Price: 1000},
			core.Discount{Type: core.DiscountPercent, Value: 9.0},
			100,
		},
		{
			"五折",
			core.Product{Price: 200},
			core.Discount{Type: core.DiscountPercent, Value: 5.0},
			100,
		},
		{
			"消费券直减",
			core.Product{Price: 1000},
			core.Discount{Type: core.DiscountCoupon, Value: 50},
			50,
		},
		{
			"未知类型",
			core.Product{Price: 1000},
			core.Discount{Type: "unknown", Value: 50},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiscountAmount(tt.p, tt.d); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DiscountAmount = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscountDesc(t *testing.T) {
	tests := []struct {
		d    core.Discount
		want string
	}{
		{core.Discount{Type: core.DiscountThreshold, Value: 100, MinPurchase: 900}, "满900减100"},
		{core.Discount{Type: core.DiscountPercent, Value: 9.0}, "9.0折"},
		{core.Discount{Type: core.DiscountPercent, Value: 8.5}, "8.5折"},
		{core.Discount{Type: core.DiscountCoupon, Value: 50}, "减50元"},
		{core.Discount{Type: "unknown"}, ""},
	}

	for _, tt := range tests {
		if got := DiscountDesc(tt.d); got != tt.want {
			t.Errorf("DiscountDesc(%+v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDiscountedRanking(t *testing.T) {
	products := []core.Product{
		{ID: 101, Brand: "华为", Platform: "京东", Price: 1000},
		{ID: 102, Brand: "小米", Platform: "淘宝", Price: 1000},
		{ID: 103, Brand: "联想", Platform: "京东", Price: 500},
	}
	discounts := []core.Discount{
		// 101: 满900减100 → 金额 100，比例 10%
		{ItemID: 101, Type: core.DiscountThreshold, Value: 100, MinPurchase: 900},
		// 102: 9.0 折 → 金额 100，比例 10%（与 101 同比例，保持输入顺序）
		{ItemID: 102, Type: core.DiscountPercent, Value: 9.0},
		// 103: 减 200 元券 → 比例 40%，应排最前
		{ItemID: 103, Type: core.DiscountCoupon, Value: 200},
	}
	s := &Discounted{Catalog: store.NewMemoryCatalog(products, discounts)}

	items, err := s.Recommend(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	got := itemIDs(items)
	want := []int64{103, 101, 102}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("结果 = %v, want %v", got, want)
		}
	}

	if math.Abs(items[0].Score-40) > 1e-9 {
		t.Errorf("103 的优惠比例 = %v, want 40", items[0].Score)
	}
	if math.Abs(items[1].Score-10) > 1e-9 || math.Abs(items[2].Score-10) > 1e-9 {
		t.Errorf("同比例优惠的分数 = %v / %v, want 10 / 10", items[1].Score, items[2].Score)
	}
	if items[1].Meta["discount_desc"] != "满900减100" {
		t.Errorf("discount_desc = %v", items[1].Meta["discount_desc"])
	}
	if items[0].Strategy() != TagDiscounted {
		t.Errorf("策略标签 = %q", items[0].Strategy())
	}
}

func TestDiscountedMultipleDiscountsPerItem(t *testing.T) {
	products := []core.Product{{ID: 101, Price: 1000}}
	discounts := []core.Discount{
		{ItemID: 101, Type: core.DiscountCoupon, Value: 50},  // 5%
		{ItemID: 101, Type: core.DiscountPercent, Value: 8},  // 20%
		{ItemID: 102, Type: core.DiscountCoupon, Value: 999}, // 商品不在目录，跳过
	}
	s := &Discounted{Catalog: store.NewMemoryCatalog(products, discounts)}

	items, err := s.Recommend(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// 一品两券产出两行，力度大的在前
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != 101 || items[1].ID != 101 {
		t.Errorf("两行都应是商品 101: %v", itemIDs(items))
	}
	if math.Abs(items[0].Score-20) > 1e-9 {
		t.Errorf("首行比例 = %v, want 20", items[0].Score)
	}
}

func TestDiscountedZeroPrice(t *testing.T) {
	products := []core.Product{{ID: 101, Price: 0}}
	discounts := []core.Discount{{ItemID: 101, Type: core.DiscountCoupon, Value: 50}}
	s := &Discounted{Catalog: store.NewMemoryCatalog(products, discounts)}

	items, err := s.Recommend(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(items) != 1 || items[0].Score != 0 {
		t.Errorf("零价商品的优惠比例应为 0: %+v", items)
	}
}
