package filter

import (
	"context"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/dsl"
)

// RuleFilter 是 CEL 规则过滤器：表达式命中（求值为 true）的结果被过滤掉。
//
// 示例规则：
//   - `meta.price != null && meta.price > 10000.0` 过滤高价商品
//   - `meta.platform == "unknown"` 过滤来源不明的平台
type RuleFilter struct {
	rule *dsl.Rule
}

// NewRuleFilter 编译表达式并创建规则过滤器。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	rule, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{rule: rule}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return f.rule.Eval(item, rctx)
}
