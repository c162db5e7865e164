// Package matrix 提供推荐引擎用到的最小矩阵内核：
// 稀疏的用户×商品亲和矩阵、稠密对称相似度矩阵、余弦相似度计算。
// 引擎的数据规模由内存中的矩阵维度约束（相似度 O(items²)），不引入向量库。
package matrix

// Sparse 是按行组织的稀疏矩阵（行 = 用户索引，列 = 商品索引）。
// Add 对同一 (r, c) 累加，同一用户对同一商品的多次行为权重求和。
type Sparse struct {
	rows, cols int
	cells      []map[int]float64
}

// NewSparse 创建 rows × cols 的空稀疏矩阵。
func NewSparse(rows, cols int) *Sparse {
	cells := make([]map[int]float64, rows)
	return &Sparse{rows: rows, cols: cols, cells: cells}
}

// Rows 返回行数。
func (s *Sparse) Rows() int { return s.rows }

// Cols 返回列数。
func (s *Sparse) Cols() int { return s.cols }

// Add 向 (r, c) 累加 v。越界写入直接忽略，索引映射保证训练期不会越界。
func (s *Sparse) Add(r, c int, v float64) {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		return
	}
	if s.cells[r] == nil {
		s.cells[r] = make(map[int]float64)
	}
	s.cells[r][c] += v
}

// At 读取 (r, c)，缺失（或越界）返回 0。
func (s *Sparse) At(r, c int) float64 {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		return 0
	}
	if s.cells[r] == nil {
		return 0
	}
	return s.cells[r][c]
}

// Row 返回第 r 行的非零项（列索引 → 值）。返回的 map 为内部存储，调用方只读。
func (s *Sparse) Row(r int) map[int]float64 {
	if r < 0 || r >= s.rows {
		return nil
	}
	return s.cells[r]
}

// NNZ 返回非零项个数。
func (s *Sparse) NNZ() int {
	n := 0
	for _, row := range s.cells {
		n += len(row)
	}
	return n
}

// ColumnCosine 计算列与列之间的余弦相似度（即商品间相似度，
// 以所有用户的加权亲和为特征空间）。
//
// 实现按行扫描非零项累积列对的点积，复杂度 O(Σ 每行非零数²)，
// 对稀疏行为数据远优于逐列配对。权重非负，结果落在 [0, 1]。
func (s *Sparse) ColumnCosine() *Dense {
	sim := NewDense(s.cols)

	// dot[c1][c2] 与各列的模长平方
	norms := make([]float64, s.cols)
	for _, row := range s.cells {
		cols := make([]int, 0, len(row))
		for c := range row {
			cols = append(cols, c)
		}
		for i, c1 := range cols {
			v1 := row[c1]
			norms[c1] += v1 * v1
			for _, c2 := range cols[i+1:] {
				sim.add(c1, c2, v1*row[c2])
			}
		}
	}

	sim.finishCosine(norms)
	return sim
}
