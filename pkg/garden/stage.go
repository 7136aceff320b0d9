package garden

import (
	"time"

	"github.com/decker502/pairgarden/pkg/types"
)

// GrowthStage 植物的生长阶段
type GrowthStage int

const (
	// StageSapling 幼苗阶段
	StageSapling GrowthStage = iota
	// StageMature 成熟阶段
	StageMature
)

// String 返回生长阶段的字符串表示
func (s GrowthStage) String() string {
	switch s {
	case StageSapling:
		return "Sapling"
	case StageMature:
		return "Mature"
	default:
		return "Unknown"
	}
}

// ResolveGrowthStage 根据种植时间计算植物的生长阶段
//
// 阶段是 plantedAt 和 now 的纯函数，永远不落盘。
// 固定 plantedAt 下阶段单调：一旦成熟不会退回幼苗。
//
// 参数:
//   - category: 植物的生长类别
//   - plantedAt: 种植时间
//   - now: 注入的当前时间
//
// 返回:
//   - GrowthStage: 幼苗或成熟
func (e *Engine) ResolveGrowthStage(category types.PlantCategory, plantedAt, now time.Time) GrowthStage {
	elapsed := now.Sub(plantedAt)
	// 时钟偏移导致的负向时间按最早阶段处理，不崩溃
	if elapsed < 0 {
		return StageSapling
	}
	if elapsed < e.tuning.GrowthDuration(category) {
		return StageSapling
	}
	return StageMature
}

// FlowerStage 计算已种植花卉的生长阶段
func (e *Engine) FlowerStage(f *PlantedFlower, now time.Time) GrowthStage {
	return e.ResolveGrowthStage(flowerCategory(f.Type), f.PlantedAt, now)
}
