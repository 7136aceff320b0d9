package garden

import (
	"math"

	"github.com/decker502/pairgarden/pkg/utils"
)

// 深度变换模型
//
// y ∈ [0, MaxDepth]，y=0 为最前方。视觉缩放随 y 从 FrontScale 严格线性
// 过渡到 BackScale。拖拽预览和最终渲染必须调用同一个函数，
// 否则两条路径的缩放会漂移，落点瞬间出现尺寸跳变。

// DepthScale 返回指定深度的视觉缩放系数
//
// y 越界时先钳制到 [0, MaxDepth] 再插值，保证缩放始终落在有效区间
func (e *Engine) DepthScale(y float64) float64 {
	layout := e.tuning.Layout
	t := utils.InvLerp(0, layout.MaxDepth, utils.Clamp(y, 0, layout.MaxDepth))
	return utils.Lerp(layout.FrontScale, layout.BackScale, t)
}

// ZOrder 返回指定深度的渲染层级
//
// y 越小（越靠近观察者）层级越高。ZOrderResolution 决定深度刻度密度：
// 默认每 0.1 个深度单位对应一个独立层级，有效范围内不同的 y 不会
// 产生肉眼可见的错误堆叠。
func (e *Engine) ZOrder(y float64) int {
	layout := e.tuning.Layout
	return int(math.Round((layout.MaxDepth - y) * layout.ZOrderResolution))
}

// LandmarkZOrder 返回地标的渲染层级
//
// 地标固定在地平线层，相互之间用 Order 字段排序；
// 基准层级取地平线深度，保证地标整体位于后方植物之后
func (e *Engine) LandmarkZOrder(l *PlantedLandmark) int {
	return e.ZOrder(e.tuning.Layout.LandmarkHorizonY) + l.Order
}
