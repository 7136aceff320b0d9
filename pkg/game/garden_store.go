// Package game 提供花园文档的本地存取与动作应用
//
// GardenStore 是"外部同步层"在单进程内的对应物：
// 它持有共享花园文档，串行地应用引擎的纯判定结果，再整体持久化。
// 真正的多设备同步由外部协作方负责，但必须遵循这里的模式——
// 先对自己的最新快照做引擎校验，再原子写入。
package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/decker502/pairgarden/pkg/garden"
	"github.com/decker502/pairgarden/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Wallet 配对共享的货币余额
type Wallet struct {
	Coins int `yaml:"coins"`
	Water int `yaml:"water"`
}

// GardenDocument 共享花园文档
// 这是落盘的完整结构，派生值（阶段、健康、缩放）一律不落盘
type GardenDocument struct {
	Entities garden.Snapshot       `yaml:"entities"`
	Watering garden.WateringRecord `yaml:"watering"`
	Wallet   Wallet                `yaml:"wallet"`
}

// GardenStore 花园文档管理器
//
// 职责：
//   - 加载和保存花园文档
//   - 串行应用放置/浇水/复苏动作（引擎判定 + 文档写入 + 持久化）
//   - gdata 管理器为 nil 时进入降级模式（仅内存，不持久化，不报错）
type GardenStore struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager // 跨平台存储管理器，可为 nil（降级模式）
	engine       *garden.Engine
	doc          *GardenDocument
}

// 存储路径常量
const (
	gardenObject   = "garden"
	gardenProperty = "shared"
)

// NewGardenStore 创建花园文档管理器
//
// 参数:
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存文档）
//   - engine: 花园模拟引擎，传 nil 时使用默认配置的引擎
//
// 返回:
//   - *GardenStore: 管理器实例
//   - error: 加载已有文档失败时返回错误（不影响创建，使用空文档）
func NewGardenStore(gdataManager *gdata.Manager, engine *garden.Engine) (*GardenStore, error) {
	if engine == nil {
		engine = garden.NewEngine(nil)
	}

	gs := &GardenStore{
		gdataManager: gdataManager,
		engine:       engine,
		doc:          emptyDocument(),
	}

	if err := gs.Load(); err != nil {
		// 加载失败不是致命错误，从空文档开始
		log.Printf("[GardenStore] Warning: Failed to load garden document: %v (starting empty)", err)
	}

	return gs, nil
}

// emptyDocument 返回初始空文档
func emptyDocument() *GardenDocument {
	return &GardenDocument{
		Watering: garden.WateringRecord{
			LastWaterDayByUser: map[string]string{},
		},
	}
}

// Engine 返回管理器使用的引擎实例
func (gs *GardenStore) Engine() *garden.Engine {
	return gs.engine
}

// Load 从 gdata 加载花园文档
//
// 如果 gdataManager 为 nil 或文档不存在，使用空文档
func (gs *GardenStore) Load() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.gdataManager == nil {
		return nil
	}

	if !gs.gdataManager.ObjectPropExists(gardenObject, gardenProperty) {
		return nil
	}

	data, err := gs.gdataManager.LoadObjectProp(gardenObject, gardenProperty)
	if err != nil {
		return fmt.Errorf("failed to load garden document: %w", err)
	}

	var doc GardenDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal garden document: %w", err)
	}
	if doc.Watering.LastWaterDayByUser == nil {
		doc.Watering.LastWaterDayByUser = map[string]string{}
	}

	gs.doc = &doc
	log.Printf("[GardenStore] Garden document loaded (%d flowers, %d decor, %d landmarks)",
		len(doc.Entities.Flowers), len(doc.Entities.Decor), len(doc.Entities.Landmarks))
	return nil
}

// save 持久化当前文档，调用方必须已持有锁
//
// gdataManager 为 nil 时直接返回 nil（降级模式，不报错）
func (gs *GardenStore) save() error {
	if gs.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(gs.doc)
	if err != nil {
		return fmt.Errorf("failed to marshal garden document: %w", err)
	}

	if err := gs.gdataManager.SaveObjectProp(gardenObject, gardenProperty, data); err != nil {
		return fmt.Errorf("failed to save garden document: %w", err)
	}

	return nil
}

// Snapshot 返回当前实体快照的深拷贝
func (gs *GardenStore) Snapshot() garden.Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return copySnapshot(&gs.doc.Entities)
}

// WateringRecord 返回当前浇水记录的拷贝
func (gs *GardenStore) WateringRecord() garden.WateringRecord {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	record := gs.doc.Watering
	record.LastWaterDayByUser = make(map[string]string, len(gs.doc.Watering.LastWaterDayByUser))
	for user, day := range gs.doc.Watering.LastWaterDayByUser {
		record.LastWaterDayByUser[user] = day
	}
	return record
}

// Wallet 返回当前货币余额
func (gs *GardenStore) Wallet() Wallet {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.doc.Wallet
}

// PlaceFlower 校验并种下一株花卉
//
// x、y 传 NaN 以外的显式坐标时按坐标校验；
// 校验失败时返回的 PlacementResult 带失败原因，不产生 error。
// 校验基于锁内的最新文档快照，两次并发放置不会都通过校验后相互重叠。
func (gs *GardenStore) PlaceFlower(t types.PlantType, variant int, x, y float64, now time.Time) (garden.PlantedFlower, garden.PlacementResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	c := garden.Candidate{Kind: garden.KindFlower, PlantType: t}
	result := gs.engine.CanPlace(&gs.doc.Entities, c, x, y, now)
	if !result.Valid {
		return garden.PlantedFlower{}, result, nil
	}

	flower := garden.NewPlantedFlower(t, variant, x, y, now)
	gs.doc.Entities.Flowers = append(gs.doc.Entities.Flowers, flower)

	if err := gs.save(); err != nil {
		return flower, result, err
	}
	log.Printf("[GardenStore] Planted %s at (%.1f, %.1f)", t, x, y)
	return flower, result, nil
}

// PlaceFlowerAuto 以自动落点种下一株花卉
//
// 自动落点由引擎的确定性扫描产生，给定相同文档内容结果可复现
func (gs *GardenStore) PlaceFlowerAuto(t types.PlantType, variant int, now time.Time) (garden.PlantedFlower, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	c := garden.Candidate{Kind: garden.KindFlower, PlantType: t}
	x, y := gs.engine.AutoPlace(&gs.doc.Entities, c, now)

	flower := garden.NewPlantedFlower(t, variant, x, y, now)
	gs.doc.Entities.Flowers = append(gs.doc.Entities.Flowers, flower)

	if err := gs.save(); err != nil {
		return flower, err
	}
	log.Printf("[GardenStore] Auto-planted %s at (%.1f, %.1f)", t, x, y)
	return flower, nil
}

// PlaceDecor 校验并放置一个装饰物
func (gs *GardenStore) PlaceDecor(t types.DecorType, variant int, x, y float64, now time.Time) (garden.PlantedDecor, garden.PlacementResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	c := garden.Candidate{Kind: garden.KindDecor, DecorType: t}
	result := gs.engine.CanPlace(&gs.doc.Entities, c, x, y, now)
	if !result.Valid {
		return garden.PlantedDecor{}, result, nil
	}

	decor := garden.NewPlantedDecor(t, variant, x, y, now)
	gs.doc.Entities.Decor = append(gs.doc.Entities.Decor, decor)

	if err := gs.save(); err != nil {
		return decor, result, err
	}
	log.Printf("[GardenStore] Placed decor %s at (%.1f, %.1f)", t, x, y)
	return decor, result, nil
}

// PlaceLandmark 放置一个地标
//
// 地标不参与碰撞，只校验 x 边界；y 由渲染层固定到地平线
func (gs *GardenStore) PlaceLandmark(t types.LandmarkType, x float64, order int, now time.Time) (garden.PlantedLandmark, garden.PlacementResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	c := garden.Candidate{Kind: garden.KindLandmark}
	result := gs.engine.CanPlace(&gs.doc.Entities, c, x, 0, now)
	if !result.Valid {
		return garden.PlantedLandmark{}, result, nil
	}

	landmark := garden.NewPlantedLandmark(t, x, order)
	gs.doc.Entities.Landmarks = append(gs.doc.Entities.Landmarks, landmark)

	if err := gs.save(); err != nil {
		return landmark, result, err
	}
	return landmark, result, nil
}

// SetFlipped 翻转指定实体的朝向
// Flipped 是已放置实体唯一允许修改的字段
func (gs *GardenStore) SetFlipped(id string, flipped bool) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	for i := range gs.doc.Entities.Flowers {
		if gs.doc.Entities.Flowers[i].ID == id {
			gs.doc.Entities.Flowers[i].Flipped = flipped
			return gs.save()
		}
	}
	for i := range gs.doc.Entities.Decor {
		if gs.doc.Entities.Decor[i].ID == id {
			gs.doc.Entities.Decor[i].Flipped = flipped
			return gs.save()
		}
	}
	for i := range gs.doc.Entities.Landmarks {
		if gs.doc.Entities.Landmarks[i].ID == id {
			gs.doc.Entities.Landmarks[i].Flipped = flipped
			return gs.save()
		}
	}

	return fmt.Errorf("entity %q not found", id)
}

// RemoveEntity 删除指定实体（开发工具/修剪入口）
//
// 枯萎只是视觉状态，记录本身没有自动过期：删除永远是显式动作
func (gs *GardenStore) RemoveEntity(id string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	for i := range gs.doc.Entities.Flowers {
		if gs.doc.Entities.Flowers[i].ID == id {
			gs.doc.Entities.Flowers = append(gs.doc.Entities.Flowers[:i], gs.doc.Entities.Flowers[i+1:]...)
			return gs.save()
		}
	}
	for i := range gs.doc.Entities.Decor {
		if gs.doc.Entities.Decor[i].ID == id {
			gs.doc.Entities.Decor = append(gs.doc.Entities.Decor[:i], gs.doc.Entities.Decor[i+1:]...)
			return gs.save()
		}
	}
	for i := range gs.doc.Entities.Landmarks {
		if gs.doc.Entities.Landmarks[i].ID == id {
			gs.doc.Entities.Landmarks = append(gs.doc.Entities.Landmarks[:i], gs.doc.Entities.Landmarks[i+1:]...)
			return gs.save()
		}
	}

	return fmt.Errorf("entity %q not found", id)
}

// Water 应用一次浇水动作
//
// 引擎判定成功时更新浇水记录、入账奖励并持久化；
// 被阻断（冷却中/已枯萎）时原样返回判定结果，不产生 error
func (gs *GardenStore) Water(userID string, now time.Time) (garden.WaterResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	result := gs.engine.Water(&gs.doc.Watering, userID, now)
	if !result.OK {
		return result, nil
	}

	gs.doc.Watering = result.Record
	gs.doc.Wallet.Coins += result.Reward.Coins
	gs.doc.Wallet.Water += result.Reward.Water

	if err := gs.save(); err != nil {
		return result, err
	}
	log.Printf("[GardenStore] %s watered the garden (+%d coins, +%d water, streak=%d)",
		userID, result.Reward.Coins, result.Reward.Water, result.Record.StreakCount)
	return result, nil
}

// Revive 应用一次复苏动作
//
// 引擎校验枯萎状态和余额，成功时扣除金币、重置健康锚点并持久化
func (gs *GardenStore) Revive(now time.Time) (garden.ReviveResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	result := gs.engine.Revive(&gs.doc.Watering, gs.doc.Wallet.Coins, now)
	if !result.OK {
		return result, nil
	}

	gs.doc.Watering = result.Record
	gs.doc.Wallet.Coins -= result.CostCoins

	if err := gs.save(); err != nil {
		return result, err
	}
	log.Printf("[GardenStore] Garden revived (-%d coins)", result.CostCoins)
	return result, nil
}

// DisplayState 计算当前文档的渲染视图
func (gs *GardenStore) DisplayState(now time.Time) []garden.EntityView {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.engine.DisplayState(&gs.doc.Entities, &gs.doc.Watering, now)
}

// copySnapshot 深拷贝实体快照
func copySnapshot(snap *garden.Snapshot) garden.Snapshot {
	out := garden.Snapshot{
		Flowers:   make([]garden.PlantedFlower, len(snap.Flowers)),
		Decor:     make([]garden.PlantedDecor, len(snap.Decor)),
		Landmarks: make([]garden.PlantedLandmark, len(snap.Landmarks)),
	}
	copy(out.Flowers, snap.Flowers)
	copy(out.Decor, snap.Decor)
	copy(out.Landmarks, snap.Landmarks)
	return out
}
