package core

import "context"

// 引擎消费的三个只读数据契约。引擎不关心数据落在哪里：
// 内存快照、关系库、Redis、Feast 均可，由 store / feast 包提供实现。
// 引擎内部不做任何阻塞 I/O 假设之外的事，实现方应在调用时已可物化数据。

// LedgerStore 是行为账本的读取接口。
type LedgerStore interface {
	// FetchAllInteractions 返回全量行为记录。
	// 训练按整批重建模型，不做增量。
	FetchAllInteractions(ctx context.Context) ([]Interaction, error)
}

// CatalogStore 是商品目录的读取接口。
type CatalogStore interface {
	// FetchItems 按 id 批量获取商品；ids 为 nil 时返回全量。
	FetchItems(ctx context.Context, ids []int64) ([]Product, error)

	// FetchDiscounts 获取某商品的全部优惠记录（可能为空，无顺序保证）。
	FetchDiscounts(ctx context.Context, itemID int64) ([]Discount, error)

	// FetchAllDiscounts 获取全量 (商品, 优惠) 记录，优惠策略整批消费。
	FetchAllDiscounts(ctx context.Context) ([]Discount, error)
}

// StatsStore 是评价/销量统计的读取接口（热门策略的数据源）。
type StatsStore interface {
	// FetchReviewStats 返回每个商品的 (评价数, 平均评分)。
	// 没有任何评价的商品不出现在结果里。
	FetchReviewStats(ctx context.Context) (map[int64]ReviewStat, error)

	// FetchSalesTotals 返回每个商品的总销量。
	FetchSalesTotals(ctx context.Context) (map[int64]float64, error)
}
