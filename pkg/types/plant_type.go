// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// PlantCategory 定义植物的生长类别
// 类别决定了成熟时长和幼苗阶段的碰撞半径缩放
type PlantCategory int

const (
	// CategoryUnknown 未知类别（配置缺失时的兜底值）
	CategoryUnknown PlantCategory = iota
	// CategoryFlower 花卉类（成熟最快）
	CategoryFlower
	// CategoryLargePlant 大型植物类（灌木、蕨类等）
	CategoryLargePlant
	// CategoryTree 树木类（成熟最慢）
	CategoryTree
)

// String 返回植物类别的字符串表示
func (c PlantCategory) String() string {
	switch c {
	case CategoryFlower:
		return "Flower"
	case CategoryLargePlant:
		return "LargePlant"
	case CategoryTree:
		return "Tree"
	default:
		return "Unknown"
	}
}

// PlantType 定义可种植花卉的类型ID
// 使用字符串ID是因为花园文档由外部同步层传入，字符串ID在序列化往返中保持稳定
type PlantType string

const (
	PlantDaisy      PlantType = "daisy"
	PlantRose       PlantType = "rose"
	PlantTulip      PlantType = "tulip"
	PlantLavender   PlantType = "lavender"
	PlantHydrangea  PlantType = "hydrangea"
	PlantFern       PlantType = "fern"
	PlantMapleTree  PlantType = "maple"
	PlantCherryTree PlantType = "cherryblossom"
	PlantWillowTree PlantType = "willow"
)
