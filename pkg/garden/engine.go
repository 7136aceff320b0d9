package garden

import (
	"github.com/decker502/pairgarden/pkg/config"
	"github.com/decker502/pairgarden/pkg/types"
)

// Engine 花园模拟引擎
//
// 引擎在构造时注入调参配置，之后的所有方法都是无副作用的纯函数。
// 同一个 Engine 实例可以被任意多个调用方并发使用。
type Engine struct {
	tuning *config.Tuning
}

// NewEngine 创建花园模拟引擎
//
// 参数:
//   - tuning: 调参配置，传 nil 时使用默认配置
func NewEngine(tuning *config.Tuning) *Engine {
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	return &Engine{tuning: tuning}
}

// Tuning 返回引擎当前使用的调参配置
func (e *Engine) Tuning() *config.Tuning {
	return e.tuning
}

// flowerCategory 返回花卉类型所属的生长类别（未知类型兜底为花卉类）
func flowerCategory(t types.PlantType) types.PlantCategory {
	return config.PlantCategoryOf(t)
}
