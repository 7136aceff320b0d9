// Package utils 提供引擎内部常用的数值工具函数
package utils

// Interpolation Functions (插值函数)
//
// 深度变换要求严格线性插值（不允许分段阈值），
// 否则拖拽预览和最终渲染之间会出现可见的尺寸跳变。

// Lerp 线性插值
// t ∈ [0, 1] 时返回 a 到 b 之间的插值；t 越界时按直线延伸
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InvLerp 反向线性插值
// 返回 v 在 [a, b] 区间内的归一化进度；a == b 时返回 0
func InvLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
