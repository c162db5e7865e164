// Package strategy 实现四种推荐排序策略与回退链（fallback chain）。
//
// 每个策略产出有序的推荐结果（最推荐的在前），并通过 Label 标记策略溯源。
// 策略"无法服务"时返回空结果而不是错误（模型未训练、实体不在索引等），
// 由 Chain 按显式顺序委托给下一个策略。回退链是可审计、可单测的
// 责任链，而不是藏在策略内部的嵌套分支。
package strategy

import (
	"context"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/model"
)

// 策略溯源标签值。
const (
	TagPersonalized = "personalized"
	TagSimilarItem  = "similar-item"
	TagPopular      = "popular"
	TagDiscounted   = "discounted"
)

// Strategy 表示一个可复用的推荐策略单元。
//
// 约定：
//   - 返回结果按推荐度降序，至多 n 条
//   - 策略自身无法服务（前置条件不满足）时返回 (nil, nil)，交给链上下一个
//   - 只有基础设施故障（存储读取失败等）才返回 error
type Strategy interface {
	Name() string
	Recommend(ctx context.Context, rctx *core.RecommendContext, n int) ([]*core.Item, error)
}

// SnapshotProvider 提供当前生效的模型快照。
// 策略每次查询只读取一次快照指针，之后的计算全部针对这一份快照，
// 和训练换入新快照互不干扰。
type SnapshotProvider interface {
	Snapshot() *model.Snapshot
}
