// Package config 定义引擎的调参配置
//
// 设计原则：
//  1. 所有可调数值集中在 Tuning 结构体中，由调用方在构造引擎时注入
//  2. 代码内提供默认值（DefaultTuning），可用 YAML 文件整体覆盖（LoadTuning）
//  3. 引擎内部不读取任何全局可变状态，保证纯函数语义和可测试性
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/decker502/pairgarden/pkg/types"
	"gopkg.in/yaml.v3"
)

// Tuning 花园引擎调参配置
//
// 配置文件位置（可选）: data/garden_tuning.yaml
type Tuning struct {
	Growth    GrowthTuning    `yaml:"growth"`    // 生长阶段时长
	Health    HealthTuning    `yaml:"health"`    // 健康衰减阈值
	Collision CollisionTuning `yaml:"collision"` // 碰撞半径
	Layout    LayoutTuning    `yaml:"layout"`    // 平面布局与深度变换
	Watering  WateringTuning  `yaml:"watering"`  // 浇水冷却与奖励
}

// GrowthTuning 各类别的成熟时长（分钟）
type GrowthTuning struct {
	FlowerMinutes     int `yaml:"flowerMinutes"`     // 花卉类成熟时长
	LargePlantMinutes int `yaml:"largePlantMinutes"` // 大型植物类成熟时长
	TreeMinutes       int `yaml:"treeMinutes"`       // 树木类成熟时长
}

// HealthTuning 花园健康衰减阈值（小时）
//
// 健康是花园级状态：fresh < WiltingHours <= wilting < WiltedHours <= wilted
type HealthTuning struct {
	WiltingHours int `yaml:"wiltingHours"` // 开始枯萎的小时数
	WiltedHours  int `yaml:"wiltedHours"`  // 完全枯萎的小时数
}

// CollisionTuning 碰撞检测半径配置
//
// 实体的有效半径 = 类别基础半径 × 类型微调系数（见 plant_table.go）
// 幼苗阶段再乘以 SaplingScale，因为幼苗的渲染占地更小
type CollisionTuning struct {
	FlowerRadius     float64 `yaml:"flowerRadius"`     // 花卉类基础半径
	LargePlantRadius float64 `yaml:"largePlantRadius"` // 大型植物类基础半径
	TreeRadius       float64 `yaml:"treeRadius"`       // 树木类基础半径
	DecorRadius      float64 `yaml:"decorRadius"`      // 装饰物基础半径
	SaplingScale     float64 `yaml:"saplingScale"`     // 幼苗半径缩放系数 (0,1]
}

// LayoutTuning 种植平面与深度变换配置
//
// 种植平面为 x ∈ [0, ScreenWidth]，y ∈ [0, MaxDepth]
// y=0 为最前方（靠近观察者），y=MaxDepth 为最后方
type LayoutTuning struct {
	ScreenWidth      float64 `yaml:"screenWidth"`      // 平面宽度
	MaxDepth         float64 `yaml:"maxDepth"`         // 平面深度
	EdgeMargin       float64 `yaml:"edgeMargin"`       // 左右边缘留白，超出视为越界
	LandmarkHorizonY float64 `yaml:"landmarkHorizonY"` // 地标固定的地平线Y坐标
	FrontScale       float64 `yaml:"frontScale"`       // y=0 处的视觉缩放
	BackScale        float64 `yaml:"backScale"`        // y=MaxDepth 处的视觉缩放
	ZOrderResolution float64 `yaml:"zOrderResolution"` // 每单位深度对应的Z序刻度数

	// AutoPlaceStep 自动定位候选网格的步长
	// 自动定位从中心开始按固定顺序向外扫描，步长决定候选点密度
	AutoPlaceStep float64 `yaml:"autoPlaceStep"`
}

// WateringTuning 浇水状态机与奖励配置
type WateringTuning struct {
	CooldownHours    int `yaml:"cooldownHours"`    // 两次浇水之间的冷却小时数
	BaseCoins        int `yaml:"baseCoins"`        // 每次成功浇水的基础金币
	BaseWater        int `yaml:"baseWater"`        // 每次成功浇水获得的水滴
	StreakInterval   int `yaml:"streakInterval"`   // 连续天数奖励间隔（每N天一次）
	StreakCoins      int `yaml:"streakCoins"`      // 达到连续天数奖励时的金币
	HarmonyCoins     int `yaml:"harmonyCoins"`     // 双人同日浇水的和谐奖励金币
	ReviveCostCoins  int `yaml:"reviveCostCoins"`  // 复苏枯萎花园的金币花费
}

// DefaultTuning 返回默认调参配置
//
// 默认值对应产品当前的线上行为，修改前先确认已有存档不受影响
func DefaultTuning() *Tuning {
	return &Tuning{
		Growth: GrowthTuning{
			FlowerMinutes:     30,
			LargePlantMinutes: 360,
			TreeMinutes:       720,
		},
		Health: HealthTuning{
			WiltingHours: 12,
			WiltedHours:  24,
		},
		Collision: CollisionTuning{
			FlowerRadius:     30.0,
			LargePlantRadius: 45.0,
			TreeRadius:       60.0,
			DecorRadius:      25.0,
			SaplingScale:     0.5,
		},
		Layout: LayoutTuning{
			ScreenWidth:      400.0,
			MaxDepth:         240.0,
			EdgeMargin:       20.0,
			LandmarkHorizonY: 220.0,
			FrontScale:       0.9,
			BackScale:        0.7,
			ZOrderResolution: 10.0,
			AutoPlaceStep:    40.0,
		},
		Watering: WateringTuning{
			CooldownHours:   6,
			BaseCoins:       5,
			BaseWater:       1,
			StreakInterval:  3,
			StreakCoins:     15,
			HarmonyCoins:    20,
			ReviveCostCoins: 10,
		},
	}
}

// GrowthDuration 返回指定类别的成熟时长
//
// 未知类别兜底为花卉类时长，保证线上路径不会因配置缺失而崩溃
func (t *Tuning) GrowthDuration(category types.PlantCategory) time.Duration {
	switch category {
	case types.CategoryLargePlant:
		return time.Duration(t.Growth.LargePlantMinutes) * time.Minute
	case types.CategoryTree:
		return time.Duration(t.Growth.TreeMinutes) * time.Minute
	default:
		return time.Duration(t.Growth.FlowerMinutes) * time.Minute
	}
}

// BaseRadius 返回指定类别的碰撞基础半径
//
// 未知类别兜底为花卉类半径
func (t *Tuning) BaseRadius(category types.PlantCategory) float64 {
	switch category {
	case types.CategoryLargePlant:
		return t.Collision.LargePlantRadius
	case types.CategoryTree:
		return t.Collision.TreeRadius
	default:
		return t.Collision.FlowerRadius
	}
}

// LoadTuning 从 YAML 文件加载调参配置
//
// 参数:
//   - path: 配置文件路径（如 "data/garden_tuning.yaml"）
//
// 返回:
//   - *Tuning: 加载并通过校验的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}

	// 以默认值为基底，YAML 中出现的字段覆盖默认值
	tuning := DefaultTuning()
	if err := yaml.Unmarshal(data, tuning); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}

	if err := validateTuning(tuning); err != nil {
		return nil, fmt.Errorf("invalid tuning config: %w", err)
	}

	return tuning, nil
}

// validateTuning 验证配置的有效性
func validateTuning(t *Tuning) error {
	if t.Growth.FlowerMinutes <= 0 || t.Growth.LargePlantMinutes <= 0 || t.Growth.TreeMinutes <= 0 {
		return fmt.Errorf("growth durations must be positive, got flower=%d largePlant=%d tree=%d",
			t.Growth.FlowerMinutes, t.Growth.LargePlantMinutes, t.Growth.TreeMinutes)
	}

	if t.Health.WiltingHours <= 0 {
		return fmt.Errorf("health.wiltingHours must be positive, got %d", t.Health.WiltingHours)
	}
	if t.Health.WiltedHours <= t.Health.WiltingHours {
		return fmt.Errorf("health.wiltedHours (%d) must be greater than wiltingHours (%d)",
			t.Health.WiltedHours, t.Health.WiltingHours)
	}

	if t.Collision.FlowerRadius <= 0 || t.Collision.LargePlantRadius <= 0 ||
		t.Collision.TreeRadius <= 0 || t.Collision.DecorRadius <= 0 {
		return fmt.Errorf("collision radii must be positive")
	}
	if t.Collision.SaplingScale <= 0 || t.Collision.SaplingScale > 1 {
		return fmt.Errorf("collision.saplingScale must be in (0, 1], got %v", t.Collision.SaplingScale)
	}

	if t.Layout.ScreenWidth <= 0 || t.Layout.MaxDepth <= 0 {
		return fmt.Errorf("layout dimensions must be positive, got width=%v maxDepth=%v",
			t.Layout.ScreenWidth, t.Layout.MaxDepth)
	}
	if t.Layout.EdgeMargin < 0 || t.Layout.EdgeMargin*2 >= t.Layout.ScreenWidth {
		return fmt.Errorf("layout.edgeMargin (%v) must leave room within screenWidth (%v)",
			t.Layout.EdgeMargin, t.Layout.ScreenWidth)
	}
	if t.Layout.LandmarkHorizonY < 0 || t.Layout.LandmarkHorizonY > t.Layout.MaxDepth {
		return fmt.Errorf("layout.landmarkHorizonY (%v) must be within [0, maxDepth]", t.Layout.LandmarkHorizonY)
	}
	if t.Layout.FrontScale <= 0 || t.Layout.BackScale <= 0 {
		return fmt.Errorf("layout scales must be positive, got front=%v back=%v",
			t.Layout.FrontScale, t.Layout.BackScale)
	}
	if t.Layout.ZOrderResolution <= 0 {
		return fmt.Errorf("layout.zOrderResolution must be positive, got %v", t.Layout.ZOrderResolution)
	}
	if t.Layout.AutoPlaceStep <= 0 {
		return fmt.Errorf("layout.autoPlaceStep must be positive, got %v", t.Layout.AutoPlaceStep)
	}

	if t.Watering.CooldownHours <= 0 {
		return fmt.Errorf("watering.cooldownHours must be positive, got %d", t.Watering.CooldownHours)
	}
	if t.Watering.StreakInterval <= 0 {
		return fmt.Errorf("watering.streakInterval must be positive, got %d", t.Watering.StreakInterval)
	}
	if t.Watering.BaseCoins < 0 || t.Watering.BaseWater < 0 ||
		t.Watering.StreakCoins < 0 || t.Watering.HarmonyCoins < 0 {
		return fmt.Errorf("watering reward amounts must not be negative")
	}
	if t.Watering.ReviveCostCoins < 0 {
		return fmt.Errorf("watering.reviveCostCoins must not be negative, got %d", t.Watering.ReviveCostCoins)
	}

	return nil
}
