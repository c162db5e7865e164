// Package filter 提供推荐结果的过滤器：黑名单、CEL 规则等。
// 过滤发生在策略产出之后、回退链累积之前。
package filter

import (
	"context"

	"github.com/shopmall/recmall/core"
)

// Filter 是过滤器的抽象接口，用于判断一条推荐结果是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
