package core

import "github.com/shopmall/recmall/pkg/utils"

// RecommendContext 承载一次推荐请求的上下文，贯穿整条策略链透传。
type RecommendContext struct {
	// UserID 目标用户（个性化推荐需要；0 表示匿名）
	UserID int64

	// ItemID 查询商品（相似推荐需要；0 表示无）
	ItemID int64

	// Labels 是请求级标签，可驱动策略链行为（如新用户、价格敏感）
	Labels map[string]utils.Label

	// Params 请求级上下文参数（如 scene、device_type 等）
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
