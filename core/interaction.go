package core

import "time"

// Kind 表示用户行为类型。权重策略对四种行为类型是封闭的：
// 超出集合的行为类型视为协作方的数据完整性故障，必须上抛，不能静默降级。
type Kind string

const (
	KindView     Kind = "view"     // 浏览
	KindFavorite Kind = "favorite" // 收藏
	KindCart     Kind = "cart"     // 加购
	KindPurchase Kind = "purchase" // 购买
)

// Interaction 是一条用户行为记录：谁、对哪个商品、做了什么、何时。
// 同一 (user, item) 可以出现多条记录（先浏览后购买等），无唯一性约束。
type Interaction struct {
	UserID int64
	ItemID int64
	Kind   Kind
	At     time.Time
}

// ErrInvalidInteractionKind 表示行为类型不在四种定义之内。
// 静默吞掉会导致整个亲和矩阵权重失真，所以训练流程遇到它必须整体失败。
var ErrInvalidInteractionKind = NewDomainError(ModuleLedger, ErrorCodeInvalidInput, "ledger: invalid interaction kind")

// Weight 是行为权重策略：行为类型 → 亲和权重。
//
// 权重表：
//   - 浏览 view     = 1.0
//   - 收藏 favorite = 2.0
//   - 加购 cart     = 3.0
//   - 购买 purchase = 5.0
func Weight(kind Kind) (float64, error) {
	switch kind {
	case KindView:
		return 1.0, nil
	case KindFavorite:
		return 2.0, nil
	case KindCart:
		return 3.0, nil
	case KindPurchase:
		return 5.0, nil
	default:
		return 0, ErrInvalidInteractionKind
	}
}
