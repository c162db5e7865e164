// Package feast 把 Feast Feature Store 的在线特征适配成引擎的统计数据源。
//
// 站点的离线任务把评价/销量统计物化到 Feast 在线存储后，
// 热门策略可以直接在线消费，不必再回查关系库：
//   - item_stats:review_count 评价数
//   - item_stats:avg_rating   平均评分
//   - item_stats:total_sales  总销量
package feast

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/shopmall/recmall/core"
)

// 特征引用与实体键的默认约定。
const (
	FeatureReviewCount = "item_stats:review_count"
	FeatureAvgRating   = "item_stats:avg_rating"
	FeatureTotalSales  = "item_stats:total_sales"

	DefaultEntityKey = "product_id"
)

// StatsClient 是 Feast Feature Server 的 gRPC 客户端（官方 SDK）。
type StatsClient struct {
	client  *feastsdk.GrpcClient
	project string
}

// NewStatsClient 连接 Feast Feature Server。port 为 0 时用默认 gRPC 端口 6565。
func NewStatsClient(host string, port int, project string) (*StatsClient, error) {
	if port == 0 {
		port = 6565
	}
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast: connect %s:%d: %w", host, port, err)
	}
	return &StatsClient{client: client, project: project}, nil
}

// Close 关闭底层 gRPC 连接。
func (c *StatsClient) Close() error {
	return c.client.Close()
}

// fetch 按实体行批量拉取一组特征，返回 实体 id → 特征名 → 数值。
func (c *StatsClient) fetch(ctx context.Context, features []string, ids []int64, entityKey string) (map[int64]map[string]float64, error) {
	if len(ids) == 0 {
		return map[int64]map[string]float64{}, nil
	}

	entities := make([]feastsdk.Row, len(ids))
	for i, id := range ids {
		entities[i] = feastsdk.Row{entityKey: feastsdk.Int64Val(id)}
	}

	resp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: features,
		Entities: entities,
		Project:  c.project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast: get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) != len(ids) {
		return nil, fmt.Errorf("feast: response row count mismatch: expected %d, got %d", len(ids), len(rows))
	}

	out := make(map[int64]map[string]float64, len(ids))
	for i, row := range rows {
		values := make(map[string]float64, len(features))
		for _, name := range features {
			if v, ok := row[name]; ok {
				if f, ok := valueToFloat(v); ok {
					values[name] = f
				}
			}
		}
		out[ids[i]] = values
	}
	return out, nil
}

// valueToFloat 把 Feast 的 proto Value 统一转为 float64。
func valueToFloat(v *feasttypes.Value) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch x := v.GetVal().(type) {
	case *feasttypes.Value_Int32Val:
		return float64(x.Int32Val), true
	case *feasttypes.Value_Int64Val:
		return float64(x.Int64Val), true
	case *feasttypes.Value_FloatVal:
		return float64(x.FloatVal), true
	case *feasttypes.Value_DoubleVal:
		return x.DoubleVal, true
	default:
		return 0, false
	}
}

// StatsAdapter 把 Feast 在线特征适配成 core.StatsStore。
// 实体键集合来自商品目录（在线存储只按键取值，不支持枚举）。
type StatsAdapter struct {
	Client  *StatsClient
	Catalog core.CatalogStore

	// EntityKey 实体键名，空时用 DefaultEntityKey
	EntityKey string
}

func (a *StatsAdapter) entityKey() string {
	if a.EntityKey != "" {
		return a.EntityKey
	}
	return DefaultEntityKey
}

func (a *StatsAdapter) itemIDs(ctx context.Context) ([]int64, error) {
	products, err := a.Catalog.FetchItems(ctx, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (a *StatsAdapter) FetchReviewStats(ctx context.Context) (map[int64]core.ReviewStat, error) {
	ids, err := a.itemIDs(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := a.Client.fetch(ctx, []string{FeatureReviewCount, FeatureAvgRating}, ids, a.entityKey())
	if err != nil {
		return nil, err
	}

	out := make(map[int64]core.ReviewStat, len(rows))
	for id, values := range rows {
		count, ok := values[FeatureReviewCount]
		if !ok || count <= 0 {
			// 无评价的商品不出现在统计里
			continue
		}
		out[id] = core.ReviewStat{
			ReviewCount: int(count),
			AvgRating:   values[FeatureAvgRating],
		}
	}
	return out, nil
}

func (a *StatsAdapter) FetchSalesTotals(ctx context.Context) (map[int64]float64, error) {
	ids, err := a.itemIDs(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := a.Client.fetch(ctx, []string{FeatureTotalSales}, ids, a.entityKey())
	if err != nil {
		return nil, err
	}

	out := make(map[int64]float64, len(rows))
	for id, values := range rows {
		if total, ok := values[FeatureTotalSales]; ok && total > 0 {
			out[id] = total
		}
	}
	return out, nil
}

var _ core.StatsStore = (*StatsAdapter)(nil)
