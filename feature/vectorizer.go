// Package feature 把商品目录属性编码为定宽数值特征向量，
// 供基于内容的相似度计算使用。
package feature

import (
	"sort"

	"github.com/shopmall/recmall/core"
	"github.com/shopmall/recmall/pkg/conv"
	"github.com/shopmall/recmall/pkg/matrix"
)

// VectorWidth 是特征向量的固定宽度。
// 无论实际提取出多少维特征：超出截断，不足补零。
const VectorWidth = 10

// 规格表中数值型字段的探测 key。目录数据历史上中英文混用，两边都查。
var (
	defaultMemoryKeys  = []string{"memory", "内存"}
	defaultStorageKeys = []string{"storage", "存储"}
)

// Vectorizer 把一组商品编码为 VectorWidth 维特征向量：
//
//	[3 维类目 one-hot | 归一化价格 | N 维平台 one-hot | 内存/16 | 存储/1024 | 补零]
//
// 平台 one-hot 的宽度 N 在每次向量化时由当前商品集的去重平台数决定，
// 所以特征向量只在同一次构建内可比，不同快照的向量不能混用。
type Vectorizer struct {
	// CategorySlots 类目 one-hot 槽位数，类目 id 超出 [1, CategorySlots] 的全零。
	CategorySlots int

	// MemoryDivisor / StorageDivisor 数值规格的归一化分母（GB 口径：16GB 内存、1TB 存储）。
	MemoryDivisor  float64
	StorageDivisor float64
}

// NewVectorizer 返回默认配置的 Vectorizer。
func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		CategorySlots:  3,
		MemoryDivisor:  16,
		StorageDivisor: 1024,
	}
}

// Build 按 itemIDs 的顺序为每个商品产出一条 VectorWidth 维向量。
// products 中缺失的商品产出零向量（目录与账本可能短暂不一致，不视为错误）。
func (v *Vectorizer) Build(itemIDs []int64, products map[int64]core.Product) [][]float64 {
	catSlots := v.CategorySlots
	if catSlots <= 0 {
		catSlots = 3
	}
	memDiv := v.MemoryDivisor
	if memDiv <= 0 {
		memDiv = 16
	}
	stoDiv := v.StorageDivisor
	if stoDiv <= 0 {
		stoDiv = 1024
	}

	// 价格归一化分母：有价商品的最大价，没有任何有价商品时取 1 避免除零
	maxPrice := 1.0
	for _, p := range products {
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	// 平台 one-hot 槽位：当前商品集中出现的去重平台，排序保证幂等
	platformSet := make(map[string]struct{})
	for _, p := range products {
		if p.Platform != "" {
			platformSet[p.Platform] = struct{}{}
		}
	}
	platforms := make([]string, 0, len(platformSet))
	for pf := range platformSet {
		platforms = append(platforms, pf)
	}
	sort.Strings(platforms)
	platformIdx := make(map[string]int, len(platforms))
	for i, pf := range platforms {
		platformIdx[pf] = i
	}

	out := make([][]float64, 0, len(itemIDs))
	for _, id := range itemIDs {
		p, ok := products[id]
		if !ok {
			out = append(out, make([]float64, VectorWidth))
			continue
		}

		vec := make([]float64, 0, VectorWidth)

		// 类目 one-hot
		cat := make([]float64, catSlots)
		if p.CategoryID >= 1 && p.CategoryID <= int64(catSlots) {
			cat[p.CategoryID-1] = 1
		}
		vec = append(vec, cat...)

		// 归一化价格
		vec = append(vec, p.Price/maxPrice)

		// 平台 one-hot
		pf := make([]float64, len(platforms))
		if idx, ok := platformIdx[p.Platform]; ok {
			pf[idx] = 1
		}
		vec = append(vec, pf...)

		// 数值规格：只取数字字符，解析失败归 0
		vec = append(vec, specValue(p.Spec, defaultMemoryKeys)/memDiv)
		vec = append(vec, specValue(p.Spec, defaultStorageKeys)/stoDiv)

		// 定宽：截断或补零到 VectorWidth
		for len(vec) < VectorWidth {
			vec = append(vec, 0)
		}
		out = append(out, vec[:VectorWidth])
	}
	return out
}

// Similarity 计算一组特征向量的内容相似度矩阵。
// 与协同相似度同样的存在规则：不足 2 个商品时返回 nil。
func Similarity(vectors [][]float64) *matrix.Dense {
	if len(vectors) < 2 {
		return nil
	}
	return matrix.RowCosine(vectors)
}

// specValue 依次探测 keys，返回第一个命中的规格字段解析值。
func specValue(spec map[string]string, keys []string) float64 {
	if spec == nil {
		return 0
	}
	for _, k := range keys {
		if raw, ok := spec[k]; ok {
			return conv.DigitsToFloat(raw)
		}
	}
	return 0
}
