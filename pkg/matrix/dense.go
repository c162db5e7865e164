package matrix

import "math"

// Dense 是 n × n 的稠密对称矩阵，用于保存商品间相似度。
// 对角线在构建时为 1（自相似），查询侧负责在排序前将自身清零。
type Dense struct {
	n    int
	data []float64
}

// NewDense 创建 n × n 的零矩阵。
func NewDense(n int) *Dense {
	return &Dense{n: n, data: make([]float64, n*n)}
}

// Dim 返回维度 n。
func (d *Dense) Dim() int { return d.n }

// At 读取 (i, j)，越界返回 0。
func (d *Dense) At(i, j int) float64 {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		return 0
	}
	return d.data[i*d.n+j]
}

// Set 对称写入 (i, j) 与 (j, i)。
func (d *Dense) Set(i, j int, v float64) {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		return
	}
	d.data[i*d.n+j] = v
	d.data[j*d.n+i] = v
}

// Row 返回第 i 行的副本（长度 n），调用方可就地改写（如清零自相似）。
func (d *Dense) Row(i int) []float64 {
	if i < 0 || i >= d.n {
		return nil
	}
	out := make([]float64, d.n)
	copy(out, d.data[i*d.n:(i+1)*d.n])
	return out
}

// add 上三角累加，供余弦计算内部使用。
func (d *Dense) add(i, j int, v float64) {
	d.data[i*d.n+j] += v
}

// finishCosine 把累积好的上三角点积除以模长、对称回填并置对角线为 1。
// 模长为 0 的列（无任何交互）相似度保持 0。
func (d *Dense) finishCosine(norms []float64) {
	for i := range norms {
		norms[i] = math.Sqrt(norms[i])
	}
	for i := 0; i < d.n; i++ {
		if norms[i] > 0 {
			d.data[i*d.n+i] = 1
		}
		for j := i + 1; j < d.n; j++ {
			dot := d.data[i*d.n+j]
			if dot == 0 || norms[i] == 0 || norms[j] == 0 {
				d.data[i*d.n+j] = 0
				d.data[j*d.n+i] = 0
				continue
			}
			v := dot / (norms[i] * norms[j])
			d.data[i*d.n+j] = v
			d.data[j*d.n+i] = v
		}
	}
}
