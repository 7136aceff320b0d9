package garden

import (
	"sort"
	"time"
)

// EntityView 单个实体的渲染视图
//
// 渲染层只消费这里的派生值，不自己计算缩放或层级，
// 保证预览路径和落盘实体路径走同一套深度变换
type EntityView struct {
	ID      string
	Kind    EntityKind
	X       float64
	Y       float64
	Flipped bool

	Stage  GrowthStage // 装饰物和地标恒为 StageMature
	Health Health      // 花园级健康，所有实体一致
	Scale  float64
	ZOrder int
}

// DisplayState 计算整个花园的渲染视图
//
// 返回的切片已按 ZOrder 升序排序（后方实体在前），渲染层按序绘制即可。
// 地标的 Y 取配置中的地平线值。
func (e *Engine) DisplayState(snap *Snapshot, record *WateringRecord, now time.Time) []EntityView {
	health := e.ResolveHealth(record.LastSuccessfulInteraction, now)
	views := make([]EntityView, 0, len(snap.Flowers)+len(snap.Decor)+len(snap.Landmarks))

	for i := range snap.Flowers {
		f := &snap.Flowers[i]
		views = append(views, EntityView{
			ID:      f.ID,
			Kind:    KindFlower,
			X:       f.X,
			Y:       f.Y,
			Flipped: f.Flipped,
			Stage:   e.FlowerStage(f, now),
			Health:  health,
			Scale:   e.DepthScale(f.Y),
			ZOrder:  e.ZOrder(f.Y),
		})
	}

	for i := range snap.Decor {
		d := &snap.Decor[i]
		views = append(views, EntityView{
			ID:      d.ID,
			Kind:    KindDecor,
			X:       d.X,
			Y:       d.Y,
			Flipped: d.Flipped,
			// 装饰物没有幼苗阶段，这是刻意的例外而不是"时长为零"
			Stage:  StageMature,
			Health: health,
			Scale:  e.DepthScale(d.Y),
			ZOrder: e.ZOrder(d.Y),
		})
	}

	horizonY := e.tuning.Layout.LandmarkHorizonY
	for i := range snap.Landmarks {
		l := &snap.Landmarks[i]
		views = append(views, EntityView{
			ID:      l.ID,
			Kind:    KindLandmark,
			X:       l.X,
			Y:       horizonY,
			Flipped: l.Flipped,
			Stage:   StageMature,
			Health:  health,
			Scale:   e.DepthScale(horizonY),
			ZOrder:  e.LandmarkZOrder(l),
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ZOrder < views[j].ZOrder
	})

	return views
}
