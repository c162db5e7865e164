package filter

import (
	"context"
	"strconv"

	"github.com/shopmall/recmall/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉黑名单中的商品（下架、违规等）。
// 黑名单可以是内存列表，也可以从 KV 存储的集合读取（member 为商品 id 的十进制串）。
type BlacklistFilter struct {
	// ItemIDs 是内存中的黑名单商品 id 列表
	ItemIDs []int64

	// Store 用于从存储中读取黑名单（可选）
	Store core.KeyValueStore

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.ItemIDs {
		if item.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		members, err := f.Store.ZRange(ctx, f.Key, 0, -1)
		if err == nil {
			for _, m := range members {
				if id, err := strconv.ParseInt(m, 10, 64); err == nil && id == item.ID {
					return true, nil
				}
			}
		}
	}

	return false, nil
}
