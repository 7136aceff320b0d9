package garden

import (
	"time"
)

// Health 花园的健康状态
//
// 健康是花园级状态而不是单株状态：浇水动作一次作用于整个共享花园，
// 所以所有花卉和装饰物共用同一个由 lastSuccessfulInteraction 驱动的衰减时钟。
// （生长阶段则是每株独立的，两套时钟的不对称是产品既定设计）
type Health int

const (
	// HealthFresh 健康
	HealthFresh Health = iota
	// HealthWilting 开始枯萎
	HealthWilting
	// HealthWilted 完全枯萎（浇水被阻断，需要付费复苏）
	HealthWilted
)

// String 返回健康状态的字符串表示
func (h Health) String() string {
	switch h {
	case HealthFresh:
		return "Fresh"
	case HealthWilting:
		return "Wilting"
	case HealthWilted:
		return "Wilted"
	default:
		return "Unknown"
	}
}

// ResolveHealth 根据最近一次成功互动时间计算花园健康状态
//
// 健康是 lastSuccessfulInteraction 和 now 的纯函数，永远不落盘。
// 没有显式的浇水/复苏事件时健康只会变差，不会自行恢复。
//
// 边界情况:
//   - lastSuccessfulInteraction 为零值（从未浇过水）按 Fresh 处理
//   - 负向时间差（时钟偏移）按 Fresh 处理
func (e *Engine) ResolveHealth(lastSuccessfulInteraction, now time.Time) Health {
	if lastSuccessfulInteraction.IsZero() {
		return HealthFresh
	}

	elapsed := now.Sub(lastSuccessfulInteraction)
	if elapsed < 0 {
		return HealthFresh
	}

	wilting := time.Duration(e.tuning.Health.WiltingHours) * time.Hour
	wilted := time.Duration(e.tuning.Health.WiltedHours) * time.Hour

	switch {
	case elapsed >= wilted:
		return HealthWilted
	case elapsed >= wilting:
		return HealthWilting
	default:
		return HealthFresh
	}
}
