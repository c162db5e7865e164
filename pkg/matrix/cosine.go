package matrix

import "math"

// Cosine 计算两个等长向量的余弦相似度。
// 任一向量为零向量时返回 0。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RowCosine 计算一组行向量两两之间的余弦相似度（内容相似度用）。
// rows 中各向量必须等长；返回 len(rows) × len(rows) 的对称矩阵。
func RowCosine(rows [][]float64) *Dense {
	n := len(rows)
	sim := NewDense(n)
	for i := 0; i < n; i++ {
		sim.Set(i, i, selfCosine(rows[i]))
		for j := i + 1; j < n; j++ {
			sim.Set(i, j, Cosine(rows[i], rows[j]))
		}
	}
	return sim
}

// selfCosine 对零向量返回 0，其余返回 1。
func selfCosine(v []float64) float64 {
	for _, x := range v {
		if x != 0 {
			return 1
		}
	}
	return 0
}
