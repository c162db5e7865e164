package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopmall/recmall/core"
)

// GormStore 从比价站点的关系库整批读取账本/目录/统计，
// 同时实现 core.LedgerStore、core.CatalogStore、core.StatsStore。
// 表结构沿用站点既有 schema（products / user_behaviors / user_reviews /
// product_sales / platform_discounts）。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 用已建好的 *gorm.DB 创建读取器（任意 gorm 方言均可）。
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// OpenSQLite 打开 SQLite 库并创建读取器（本地开发与测试数据集）。
func OpenSQLite(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	return &GormStore{db: db}, nil
}

// 表模型。只声明引擎要读的列。

type behaviorRow struct {
	UserID       int64  `gorm:"column:user_id"`
	ProductID    int64  `gorm:"column:product_id"`
	BehaviorType string `gorm:"column:behavior_type"`
}

func (behaviorRow) TableName() string { return "user_behaviors" }

type productRow struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	CategoryID int64   `gorm:"column:category_id"`
	Brand      string  `gorm:"column:brand"`
	Platform   string  `gorm:"column:platform"`
	Price      float64 `gorm:"column:price"`
	SpecJSON   string  `gorm:"column:spec_json"`
}

func (productRow) TableName() string { return "products" }

type discountRow struct {
	ProductID    int64   `gorm:"column:product_id"`
	DiscountType string  `gorm:"column:discount_type"`
	Value        float64 `gorm:"column:discount_value"`
	MinPurchase  float64 `gorm:"column:min_purchase"`
	Stackable    bool    `gorm:"column:stackable"`
}

func (discountRow) TableName() string { return "platform_discounts" }

// 行为类型列历史上存中文，新数据存英文，读取时统一到 core.Kind。
// 两边都对不上的原样透传，由训练流程按数据完整性故障上抛。
var behaviorKinds = map[string]core.Kind{
	"浏览":       core.KindView,
	"收藏":       core.KindFavorite,
	"加购":       core.KindCart,
	"购买":       core.KindPurchase,
	"view":     core.KindView,
	"favorite": core.KindFavorite,
	"cart":     core.KindCart,
	"purchase": core.KindPurchase,
}

// 优惠类型列同理。
var discountTypes = map[string]core.DiscountType{
	"满减":        core.DiscountThreshold,
	"折扣":        core.DiscountPercent,
	"消费券":       core.DiscountCoupon,
	"threshold": core.DiscountThreshold,
	"percent":   core.DiscountPercent,
	"coupon":    core.DiscountCoupon,
}

func (g *GormStore) FetchAllInteractions(ctx context.Context) ([]core.Interaction, error) {
	var rows []behaviorRow
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: fetch behaviors: %w", err)
	}

	out := make([]core.Interaction, 0, len(rows))
	for _, r := range rows {
		kind, ok := behaviorKinds[r.BehaviorType]
		if !ok {
			kind = core.Kind(r.BehaviorType)
		}
		out = append(out, core.Interaction{
			UserID: r.UserID,
			ItemID: r.ProductID,
			Kind:   kind,
		})
	}
	return out, nil
}

func (g *GormStore) FetchItems(ctx context.Context, ids []int64) ([]core.Product, error) {
	q := g.db.WithContext(ctx)
	if ids != nil {
		q = q.Where("id IN ?", ids)
	}

	var rows []productRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: fetch products: %w", err)
	}

	out := make([]core.Product, 0, len(rows))
	for _, r := range rows {
		spec := make(map[string]string)
		if r.SpecJSON != "" {
			// 规格 JSON 可能含数值 value，统一转字符串；坏 JSON 按空规格处理
			var raw map[string]any
			if json.Unmarshal([]byte(r.SpecJSON), &raw) == nil {
				for k, v := range raw {
					spec[k] = fmt.Sprintf("%v", v)
				}
			}
		}
		out = append(out, core.Product{
			ID:         r.ID,
			CategoryID: r.CategoryID,
			Brand:      r.Brand,
			Platform:   r.Platform,
			Price:      r.Price,
			Spec:       spec,
		})
	}
	return out, nil
}

func (g *GormStore) FetchDiscounts(ctx context.Context, itemID int64) ([]core.Discount, error) {
	var rows []discountRow
	if err := g.db.WithContext(ctx).Where("product_id = ?", itemID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: fetch discounts: %w", err)
	}
	return convertDiscounts(rows), nil
}

func (g *GormStore) FetchAllDiscounts(ctx context.Context) ([]core.Discount, error) {
	var rows []discountRow
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: fetch discounts: %w", err)
	}
	return convertDiscounts(rows), nil
}

func convertDiscounts(rows []discountRow) []core.Discount {
	out := make([]core.Discount, 0, len(rows))
	for _, r := range rows {
		typ, ok := discountTypes[r.DiscountType]
		if !ok {
			typ = core.DiscountType(r.DiscountType)
		}
		out = append(out, core.Discount{
			ItemID:      r.ProductID,
			Type:        typ,
			Value:       r.Value,
			MinPurchase: r.MinPurchase,
			Stackable:   r.Stackable,
		})
	}
	return out
}

func (g *GormStore) FetchReviewStats(ctx context.Context) (map[int64]core.ReviewStat, error) {
	var rows []struct {
		ProductID int64   `gorm:"column:product_id"`
		Count     int     `gorm:"column:review_count"`
		Avg       float64 `gorm:"column:avg_rating"`
	}
	err := g.db.WithContext(ctx).
		Table("user_reviews").
		Select("product_id, COUNT(id) AS review_count, AVG(rating) AS avg_rating").
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: fetch review stats: %w", err)
	}

	out := make(map[int64]core.ReviewStat, len(rows))
	for _, r := range rows {
		out[r.ProductID] = core.ReviewStat{ReviewCount: r.Count, AvgRating: r.Avg}
	}
	return out, nil
}

func (g *GormStore) FetchSalesTotals(ctx context.Context) (map[int64]float64, error) {
	var rows []struct {
		ProductID int64   `gorm:"column:product_id"`
		Total     float64 `gorm:"column:total_sales"`
	}
	err := g.db.WithContext(ctx).
		Table("product_sales").
		Select("product_id, SUM(sales_volume) AS total_sales").
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("store: fetch sales totals: %w", err)
	}

	out := make(map[int64]float64, len(rows))
	for _, r := range rows {
		out[r.ProductID] = r.Total
	}
	return out, nil
}

var (
	_ core.LedgerStore  = (*GormStore)(nil)
	_ core.CatalogStore = (*GormStore)(nil)
	_ core.StatsStore   = (*GormStore)(nil)
)
