package core

// Product 是商品目录中的一条商品记录。
// Spec 是自由格式的规格表（如 内存/存储/屏幕），key、value 均为字符串；
// 数值型规格由 feature 包按"只取数字字符"的规则解析，解析失败归一化为 0。
type Product struct {
	ID         int64
	CategoryID int64
	Brand      string
	Platform   string
	Price      float64 // 非负；0 或缺失按 0 参与归一化
	Spec       map[string]string
}

// DiscountType 表示优惠类型。
type DiscountType string

const (
	DiscountThreshold DiscountType = "threshold" // 满减：满 MinPurchase 减 Value
	DiscountPercent   DiscountType = "percent"   // 折扣：Value 为 0-10 折数（9.0 折 ⇒ 九折，即 10% off）
	DiscountCoupon    DiscountType = "coupon"    // 消费券：直减 Value
)

// Discount 是一条平台优惠记录。同一商品可以有零到多条优惠，无顺序保证。
//
// 注意：折扣 Value 沿用"折"的 0-10 制（9.0 ⇒ 10% off，7.0 ⇒ 30% off），
// 不是 0-1 或 0-100 的百分比制；各调用方均按此约定计算。
type Discount struct {
	ItemID      int64
	Type        DiscountType
	Value       float64
	MinPurchase float64
	Stackable   bool
}

// ReviewStat 是一个商品的评价统计。
type ReviewStat struct {
	ReviewCount int
	AvgRating   float64
}
