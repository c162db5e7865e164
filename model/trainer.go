package model

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/feature"
	"github.com/shopmall/recmall/pkg/matrix"
)

// DefaultMinInteractions 是训练所需的最少行为记录数。
// 少于该值时训练是 no-op：保留上一份快照（或保持空），不报错。
const DefaultMinInteractions = 10

// Trainer 执行一次完整训练：读全量行为账本 → 建索引映射 → 填亲和矩阵
// → 并行计算协同/内容两份相似度 → 产出新快照。
//
// 训练永远在旁侧构建新快照，成功后由持有方整体换入，
// 因此查询可以和训练并发，只要换入是原子的。
type Trainer struct {
	Ledger  core.LedgerStore
	Catalog core.CatalogStore

	// Vectorizer 商品特征向量化器，nil 时使用默认配置
	Vectorizer *feature.Vectorizer

	// MinInteractions 训练门槛，<= 0 时取 DefaultMinInteractions
	MinInteractions int

	// Weights 行为权重覆盖表，nil 时使用 core.Weight 的固定表。
	// 覆盖表同样对四种行为类型封闭：未覆盖的类型回落到固定表。
	Weights map[core.Kind]float64

	// Logger 训练日志，nil 时静默
	Logger *zap.Logger
}

// Train 执行一次训练。
//
// 返回值语义：
//   - (snap, nil)：训练成功，snap 为新快照
//   - (nil, nil)：数据不足（InsufficientData），调用方保留旧快照
//   - (nil, err)：账本读取失败，或行为类型非法（数据完整性故障，整个
//     训练 pass 失败，旧快照不受影响）
func (t *Trainer) Train(ctx context.Context) (*Snapshot, error) {
	interactions, err := t.Ledger.FetchAllInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("model: fetch interactions: %w", err)
	}

	min := t.MinInteractions
	if min <= 0 {
		min = DefaultMinInteractions
	}
	if len(interactions) < min {
		t.logger().Info("数据不足，跳过本次训练",
			zap.Int("interactions", len(interactions)),
			zap.Int("min", min),
		)
		return nil, nil
	}

	// 去重的用户/商品 id 集 → 排序索引映射
	userSet := make(map[int64]struct{})
	itemSet := make(map[int64]struct{})
	for _, b := range interactions {
		userSet[b.UserID] = struct{}{}
		itemSet[b.ItemID] = struct{}{}
	}
	users := NewIndexMap(userSet)
	items := NewIndexMap(itemSet)

	// 亲和矩阵：同一 (user, item) 的多次行为权重累加。
	// 行为类型非法时整体失败，静默降权会污染整个矩阵。
	affinity := matrix.NewSparse(users.Len(), items.Len())
	for _, b := range interactions {
		w, err := t.weight(b.Kind)
		if err != nil {
			return nil, fmt.Errorf("model: interaction (user=%d item=%d kind=%q): %w",
				b.UserID, b.ItemID, b.Kind, err)
		}
		uIdx, _ := users.IndexOf(b.UserID)
		iIdx, _ := items.IndexOf(b.ItemID)
		affinity.Add(uIdx, iIdx, w)
	}

	// 目录记录：内容特征与结果元信息都要用
	catalog, err := t.Catalog.FetchItems(ctx, items.IDs())
	if err != nil {
		return nil, fmt.Errorf("model: fetch items: %w", err)
	}
	products := make(map[int64]core.Product, len(catalog))
	for _, p := range catalog {
		products[p.ID] = p
	}

	vectorizer := t.Vectorizer
	if vectorizer == nil {
		vectorizer = feature.NewVectorizer()
	}
	vectors := vectorizer.Build(items.IDs(), products)

	// 两份相似度矩阵相互独立，并行计算
	var cfSim, contentSim *matrix.Dense
	if items.Len() >= 2 {
		eg, _ := errgroup.WithContext(ctx)
		eg.Go(func() error {
			cfSim = affinity.ColumnCosine()
			return nil
		})
		eg.Go(func() error {
			contentSim = feature.Similarity(vectors)
			return nil
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	snap := &Snapshot{
		Users:      users,
		Items:      items,
		Affinity:   affinity,
		CFSim:      cfSim,
		Features:   vectors,
		ContentSim: contentSim,
		Products:   products,
		TrainedAt:  time.Now(),
	}

	t.logger().Info("模型训练完成",
		zap.Int("users", users.Len()),
		zap.Int("items", items.Len()),
		zap.Int("interactions", len(interactions)),
	)
	return snap, nil
}

func (t *Trainer) weight(kind core.Kind) (float64, error) {
	if t.Weights != nil {
		if w, ok := t.Weights[kind]; ok {
			return w, nil
		}
	}
	return core.Weight(kind)
}

func (t *Trainer) logger() *zap.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return zap.NewNop()
}
