package garden

import (
	"math"
	"time"

	"github.com/decker502/pairgarden/pkg/config"
	"github.com/decker502/pairgarden/pkg/types"
)

// EntityKind 可放置实体的种类
type EntityKind int

const (
	// KindFlower 花卉
	KindFlower EntityKind = iota
	// KindDecor 装饰物
	KindDecor
	// KindLandmark 地标（不参与碰撞）
	KindLandmark
)

// Candidate 待放置的候选实体
type Candidate struct {
	Kind      EntityKind
	PlantType types.PlantType // Kind == KindFlower 时有效
	DecorType types.DecorType // Kind == KindDecor 时有效
}

// 放置失败原因
//
// 预期内的失败以结构化结果返回，不抛错误：放得太近是正常的可恢复结局
const (
	ReasonOutOfBounds = "out of bounds"
	ReasonTooClose    = "too close to existing object"
)

// PlacementResult 放置判定结果
type PlacementResult struct {
	Valid  bool
	Reason string // Valid 为 false 时的失败原因
}

// CanPlace 判定候选实体能否放置在 (x, y)
//
// 规则:
//   - 花卉和装饰物共享同一个碰撞空间（花卉可以挡住装饰物，反之亦然）
//   - 地标在独立的地平线层，完全不参与碰撞，只校验 x 边界
//   - 候选与任一已有实体的圆心距离小于双方有效半径之和时判定无效
//   - 有效半径 = 类别基础半径 × 类型微调系数，幼苗阶段再乘以幼苗缩放
//
// 判定与已有实体的遍历顺序无关：对同一快照任何顺序得到相同结果。
// 该校验只在创建时执行一次，已落盘的实体不会被重复校验。
func (e *Engine) CanPlace(snap *Snapshot, c Candidate, x, y float64, now time.Time) PlacementResult {
	layout := e.tuning.Layout

	if x < layout.EdgeMargin || x > layout.ScreenWidth-layout.EdgeMargin {
		return PlacementResult{Valid: false, Reason: ReasonOutOfBounds}
	}

	// 地标的 y 固定在地平线上，且不参与碰撞
	if c.Kind == KindLandmark {
		return PlacementResult{Valid: true}
	}

	if y < 0 || y > layout.MaxDepth {
		return PlacementResult{Valid: false, Reason: ReasonOutOfBounds}
	}

	// 新种下的花卉从幼苗开始，候选半径按幼苗占地计算
	candidateRadius := e.candidateRadius(c)

	for i := range snap.Flowers {
		f := &snap.Flowers[i]
		minDist := candidateRadius + e.flowerRadius(f, now)
		if dist(x, y, f.X, f.Y) < minDist {
			return PlacementResult{Valid: false, Reason: ReasonTooClose}
		}
	}
	for i := range snap.Decor {
		d := &snap.Decor[i]
		minDist := candidateRadius + e.decorRadius(d.Type)
		if dist(x, y, d.X, d.Y) < minDist {
			return PlacementResult{Valid: false, Reason: ReasonTooClose}
		}
	}

	return PlacementResult{Valid: true}
}

// AutoPlace 为候选实体搜索一个自动落点
//
// 未提供显式坐标时（如初次放置、用户尚未调整），按固定顺序扫描候选点：
// 先取平面中心，再以 AutoPlaceStep 为步长按方环逐圈外扩，
// 每圈内按 dy 升序、dx 升序遍历。给定相同的快照，结果可复现。
// 所有候选点都无效时兜底返回中心点，由用户随后手动调整。
//
// 这是尽力而为的启发式，不保证最优排布；
// 扫描顺序一旦改变，已有存档的默认落点也会跟着变，修改前要确认兼容性。
func (e *Engine) AutoPlace(snap *Snapshot, c Candidate, now time.Time) (float64, float64) {
	layout := e.tuning.Layout
	centerX := layout.ScreenWidth / 2
	centerY := layout.MaxDepth / 2

	if r := e.CanPlace(snap, c, centerX, centerY, now); r.Valid {
		return centerX, centerY
	}

	step := layout.AutoPlaceStep
	maxRing := int(math.Ceil(math.Max(layout.ScreenWidth, layout.MaxDepth) / step))

	for ring := 1; ring <= maxRing; ring++ {
		for dy := -ring; dy <= ring; dy++ {
			for dx := -ring; dx <= ring; dx++ {
				// 只取方环边缘上的点，内部的点在更小的圈里已经试过
				if max(abs(dx), abs(dy)) != ring {
					continue
				}
				x := centerX + float64(dx)*step
				y := centerY + float64(dy)*step
				if r := e.CanPlace(snap, c, x, y, now); r.Valid {
					return x, y
				}
			}
		}
	}

	return centerX, centerY
}

// candidateRadius 计算候选实体的有效碰撞半径
func (e *Engine) candidateRadius(c Candidate) float64 {
	switch c.Kind {
	case KindDecor:
		return e.decorRadius(c.DecorType)
	default:
		entry := config.GetPlantEntry(c.PlantType)
		// 新花卉以幼苗落地
		return e.tuning.BaseRadius(entry.Category) * entry.RadiusScale * e.tuning.Collision.SaplingScale
	}
}

// flowerRadius 计算已种植花卉在当前时刻的有效碰撞半径
func (e *Engine) flowerRadius(f *PlantedFlower, now time.Time) float64 {
	entry := config.GetPlantEntry(f.Type)
	radius := e.tuning.BaseRadius(entry.Category) * entry.RadiusScale
	if e.ResolveGrowthStage(entry.Category, f.PlantedAt, now) == StageSapling {
		radius *= e.tuning.Collision.SaplingScale
	}
	return radius
}

// decorRadius 计算装饰物的有效碰撞半径（装饰物始终按成熟占地）
func (e *Engine) decorRadius(t types.DecorType) float64 {
	return e.tuning.Collision.DecorRadius * config.GetDecorEntry(t).RadiusScale
}

// dist 计算两点间的欧几里得距离
func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
