package core

import "github.com/shopmall/recmall/pkg/utils"

// Item 是推荐链路中的统一承载结构：分数、元信息、标签。
// Labels 用于解释与策略溯源（strategy 标签标记结果由哪个策略产出）；
// Score 用于排序决策，含义随策略不同（相似度、热度、优惠比例等）。
type Item struct {
	ID     int64
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id int64) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// LabelStrategy 是策略溯源标签的 key。
const LabelStrategy = "strategy"

// Strategy 返回产出该条结果的策略标签值；未标记时返回空串。
func (it *Item) Strategy() string {
	if it.Labels == nil {
		return ""
	}
	return it.Labels[LabelStrategy].Value
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// PutMeta 写入元信息（品牌/平台/价格等，供调用方免二次查目录）。
func (it *Item) PutMeta(key string, v any) {
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	it.Meta[key] = v
}
