package recmall

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/filter"
	"github.com/shopmall/recmall/model"
	"github.com/shopmall/recmall/strategy"
)

// Recommender 是引擎门面：持有数据源、训练器与当前模型快照，
// 暴露训练和四个推荐入口。
//
// 并发约定：查询之间可任意并发；训练与查询可并发（快照整体换入）；
// 训练之间内部串行化。
type Recommender struct {
	ledger  core.LedgerStore
	catalog core.CatalogStore
	stats   core.StatsStore

	trainer *model.Trainer
	logger  *zap.Logger

	trainMu sync.Mutex
	snap    atomic.Pointer[model.Snapshot]

	userChain     *strategy.Chain
	similarChain  *strategy.Chain
	popularChain  *strategy.Chain
	discountChain *strategy.Chain
}

// Option 配置 Recommender。
type Option func(*options)

type options struct {
	logger          *zap.Logger
	minInteractions int
	weights         map[core.Kind]float64
	filters         []filter.Filter
	hotStore        core.KeyValueStore
	hotKey          string
	chains          map[string][]string
}

// WithLogger 设置日志器（默认静默）。
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMinInteractions 覆盖训练门槛（默认 10 条行为记录）。
func WithMinInteractions(min int) Option {
	return func(o *options) { o.minInteractions = min }
}

// WithWeights 覆盖行为权重表；未覆盖的行为类型回落到固定表。
func WithWeights(weights map[core.Kind]float64) Option {
	return func(o *options) { o.weights = weights }
}

// WithFilters 设置应用在所有链上的结果过滤器（黑名单、CEL 规则等）。
func WithFilters(filters ...filter.Filter) Option {
	return func(o *options) { o.filters = append(o.filters, filters...) }
}

// WithHotStore 设置运营热门榜的 KV 存储与 key，热门策略优先消费。
func WithHotStore(kv core.KeyValueStore, key string) Option {
	return func(o *options) {
		o.hotStore = kv
		o.hotKey = key
	}
}

// WithChainOrder 覆盖某个入口的回退链顺序。
// op 取 "user" / "similar" / "popular" / "discounted"；
// names 是策略标签序列（strategy.TagXXX 及 "content"）。
func WithChainOrder(op string, names []string) Option {
	return func(o *options) {
		if o.chains == nil {
			o.chains = make(map[string][]string)
		}
		o.chains[op] = names
	}
}

// 默认回退链（与站点原有调用关系一致）。
var defaultChains = map[string][]string{
	"user":       {strategy.TagPersonalized, strategy.TagPopular},
	"similar":    {strategy.TagSimilarItem, "content", strategy.TagPopular},
	"popular":    {strategy.TagPopular},
	"discounted": {strategy.TagDiscounted, strategy.TagPopular},
}

// New 创建推荐引擎。引擎初始为空模型：训练前所有入口都会落到
// 热门/特惠等不依赖模型的策略上，不会报错。
func New(ledger core.LedgerStore, catalog core.CatalogStore, stats core.StatsStore, opts ...Option) *Recommender {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Recommender{
		ledger:  ledger,
		catalog: catalog,
		stats:   stats,
		logger:  logger,
		trainer: &model.Trainer{
			Ledger:          ledger,
			Catalog:         catalog,
			MinInteractions: o.minInteractions,
			Weights:         o.weights,
			Logger:          logger,
		},
	}

	// 策略实例表：标签名 → 策略
	byName := map[string]strategy.Strategy{
		strategy.TagPersonalized: &strategy.Personalized{Model: r},
		strategy.TagSimilarItem:  &strategy.SimilarItem{Model: r},
		"content":                &strategy.ContentBased{Catalog: catalog},
		strategy.TagPopular: &strategy.Popular{
			Catalog:  catalog,
			Stats:    stats,
			HotStore: o.hotStore,
			HotKey:   o.hotKey,
		},
		strategy.TagDiscounted: &strategy.Discounted{Catalog: catalog},
	}

	buildChain := func(op string) *strategy.Chain {
		names := defaultChains[op]
		if custom, ok := o.chains[op]; ok && len(custom) > 0 {
			names = custom
		}
		chain := &strategy.Chain{Filters: o.filters}
		for _, name := range names {
			if s, ok := byName[name]; ok {
				chain.Strategies = append(chain.Strategies, s)
			}
		}
		return chain
	}

	r.userChain = buildChain("user")
	r.similarChain = buildChain("similar")
	r.popularChain = buildChain("popular")
	r.discountChain = buildChain("discounted")
	return r
}

// Snapshot 返回当前生效的模型快照（可能为 nil，表示未训练）。
// 实现 strategy.SnapshotProvider。
func (r *Recommender) Snapshot() *model.Snapshot {
	return r.snap.Load()
}

// Train 执行一次全量训练并换入新快照。幂等：同一数据重复训练产出
// 等价快照。数据不足时保留旧快照（或保持空），不返回错误；
// 行为类型非法属于数据完整性故障，训练失败并返回错误，旧快照不受影响。
func (r *Recommender) Train(ctx context.Context) error {
	r.trainMu.Lock()
	defer r.trainMu.Unlock()

	snap, err := r.trainer.Train(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		// 数据不足：保留旧快照
		return nil
	}
	r.snap.Store(snap)
	return nil
}

// RecommendForUser 为用户返回 n 条个性化推荐。
// 模型未训练或用户不在训练索引时回退到热门策略。
func (r *Recommender) RecommendForUser(ctx context.Context, userID int64, n int) ([]*core.Item, error) {
	rctx := &core.RecommendContext{UserID: userID}
	return r.userChain.Recommend(ctx, rctx, n)
}

// RecommendSimilar 返回与商品相似的 n 个其他商品，结果不含该商品本身。
// 协同信号缺失时回退到内容相似，再回退到热门。
func (r *Recommender) RecommendSimilar(ctx context.Context, itemID int64, n int) ([]*core.Item, error) {
	rctx := &core.RecommendContext{ItemID: itemID}
	return r.similarChain.Recommend(ctx, rctx, n)
}

// RecommendPopular 返回 n 条热门推荐。
func (r *Recommender) RecommendPopular(ctx context.Context, n int) ([]*core.Item, error) {
	return r.popularChain.Recommend(ctx, &core.RecommendContext{}, n)
}

// RecommendDiscounted 返回优惠力度最大的 n 条推荐，不足时补热门。
func (r *Recommender) RecommendDiscounted(ctx context.Context, n int) ([]*core.Item, error) {
	return r.discountChain.Recommend(ctx, &core.RecommendContext{}, n)
}

var _ strategy.SnapshotProvider = (*Recommender)(nil)
