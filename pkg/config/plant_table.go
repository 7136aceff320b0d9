package config

import (
	"log"

	"github.com/decker502/pairgarden/pkg/types"
)

// PlantTypeEntry 植物类型配置（统一管理）
// 将植物的生长类别、碰撞微调系数等配置集中管理
type PlantTypeEntry struct {
	Category    types.PlantCategory // 生长类别，决定成熟时长和基础半径
	RadiusScale float64             // 碰撞半径微调系数（1.0 表示使用类别基础半径）
	Variants    int                 // 可选的外观变体数量
}

// PlantTypes 植物类型配置表（使用 types.PlantType 作为键）
var PlantTypes = map[types.PlantType]*PlantTypeEntry{
	types.PlantDaisy:      {Category: types.CategoryFlower, RadiusScale: 1.0, Variants: 3},
	types.PlantRose:       {Category: types.CategoryFlower, RadiusScale: 1.0, Variants: 4},
	types.PlantTulip:      {Category: types.CategoryFlower, RadiusScale: 0.9, Variants: 3},
	types.PlantLavender:   {Category: types.CategoryFlower, RadiusScale: 1.1, Variants: 2},
	types.PlantHydrangea:  {Category: types.CategoryLargePlant, RadiusScale: 1.0, Variants: 2},
	types.PlantFern:       {Category: types.CategoryLargePlant, RadiusScale: 0.8, Variants: 1},
	types.PlantMapleTree:  {Category: types.CategoryTree, RadiusScale: 1.0, Variants: 2},
	types.PlantCherryTree: {Category: types.CategoryTree, RadiusScale: 1.0, Variants: 1},
	types.PlantWillowTree: {Category: types.CategoryTree, RadiusScale: 1.2, Variants: 1},
}

// defaultPlantEntry 未知植物类型的兜底配置
// 按花卉类处理，保证旧客户端写入的新类型不会让引擎崩溃
var defaultPlantEntry = &PlantTypeEntry{
	Category:    types.CategoryFlower,
	RadiusScale: 1.0,
	Variants:    1,
}

// GetPlantEntry 获取植物类型配置
//
// 未知类型记录日志后返回兜底配置，调用方无需判空
func GetPlantEntry(plantType types.PlantType) *PlantTypeEntry {
	if entry, ok := PlantTypes[plantType]; ok {
		return entry
	}
	log.Printf("[Config] Warning: unknown plant type %q, falling back to flower defaults", plantType)
	return defaultPlantEntry
}

// PlantCategoryOf 返回植物类型所属的生长类别
func PlantCategoryOf(plantType types.PlantType) types.PlantCategory {
	return GetPlantEntry(plantType).Category
}

// DecorTypeEntry 装饰物类型配置
type DecorTypeEntry struct {
	RadiusScale float64 // 碰撞半径微调系数（基于 Collision.DecorRadius）
	Variants    int     // 可选的外观变体数量
}

// DecorTypes 装饰物类型配置表
var DecorTypes = map[types.DecorType]*DecorTypeEntry{
	types.DecorGnome:     {RadiusScale: 0.8, Variants: 3},
	types.DecorBirdbath:  {RadiusScale: 1.2, Variants: 1},
	types.DecorLantern:   {RadiusScale: 0.7, Variants: 2},
	types.DecorBench:     {RadiusScale: 1.6, Variants: 2},
	types.DecorStonePath: {RadiusScale: 1.0, Variants: 1},
	types.DecorWindmill:  {RadiusScale: 1.3, Variants: 1},
}

// defaultDecorEntry 未知装饰物类型的兜底配置
var defaultDecorEntry = &DecorTypeEntry{RadiusScale: 1.0, Variants: 1}

// GetDecorEntry 获取装饰物类型配置
//
// 未知类型记录日志后返回兜底配置
func GetDecorEntry(decorType types.DecorType) *DecorTypeEntry {
	if entry, ok := DecorTypes[decorType]; ok {
		return entry
	}
	log.Printf("[Config] Warning: unknown decor type %q, falling back to defaults", decorType)
	return defaultDecorEntry
}
