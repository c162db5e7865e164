// Package recmall 是比价站点的混合商品推荐引擎（Recommender for the mall）。
//
// 设计要点：
//   - 快照式模型：一次训练原子产出 {亲和矩阵, 两份相似度, 索引映射} 元组，
//     查询只读当前快照指针，训练在旁侧构建并整体换入，无撕裂读
//   - 策略链：个性化 / 相似商品 / 热门 / 特惠四种策略经回退链组合，
//     请求尽量凑满 N 条，供给耗尽才返回不足
//   - Labels-first：每条结果带策略溯源标签，支持 explain / 观测 / 规则过滤
package recmall

import "github.com/shopmall/recmall/core"

// 轻量 facade：便于用户直接 import "recmall" 使用核心抽象。
type Item = core.Item
type Interaction = core.Interaction
type Product = core.Product
type Discount = core.Discount
type Kind = core.Kind

const (
	KindView     = core.KindView
	KindFavorite = core.KindFavorite
	KindCart     = core.KindCart
	KindPurchase = core.KindPurchase
)
