package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/decker502/pairgarden/pkg/garden"
	"github.com/decker502/pairgarden/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建用于测试的 gdata Manager
// 创建失败（受限环境）时返回 nil，调用方据此跳过持久化断言
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	appName := fmt.Sprintf("pairgarden_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil
	}

	// 注册清理函数，测试结束后删除测试目录
	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			testDir := filepath.Join(homeDir, ".local", "share", appName)
			os.RemoveAll(testDir)
		}
	})

	return manager
}

func TestGardenStoreDegradedMode(t *testing.T) {
	// gdata 管理器为 nil 时进入仅内存模式，所有操作不报错
	gs, err := NewGardenStore(nil, nil)
	if err != nil {
		t.Fatalf("NewGardenStore(nil, nil) error: %v", err)
	}

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	flower, result, err := gs.PlaceFlower(types.PlantDaisy, 0, 200, 100, now)
	if err != nil {
		t.Fatalf("PlaceFlower error in degraded mode: %v", err)
	}
	if !result.Valid {
		t.Fatalf("placement rejected: %q", result.Reason)
	}
	if flower.ID == "" {
		t.Error("flower ID not generated")
	}

	snap := gs.Snapshot()
	if len(snap.Flowers) != 1 {
		t.Fatalf("snapshot flowers = %d, want 1", len(snap.Flowers))
	}
}

func TestGardenStorePlacement(t *testing.T) {
	gs, _ := NewGardenStore(nil, nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	if _, result, _ := gs.PlaceFlower(types.PlantDaisy, 0, 200, 100, now); !result.Valid {
		t.Fatalf("first placement rejected: %q", result.Reason)
	}

	// 紧挨着第一株（距离 20 < 幼苗 15 + 幼苗 15），被最新快照挡下
	_, result, _ := gs.PlaceFlower(types.PlantDaisy, 0, 220, 100, now)
	if result.Valid {
		t.Error("overlapping placement must be rejected against current snapshot")
	}
	if result.Reason != garden.ReasonTooClose {
		t.Errorf("reason = %q, want %q", result.Reason, garden.ReasonTooClose)
	}

	// 被拒绝的放置不产生实体
	if snap := gs.Snapshot(); len(snap.Flowers) != 1 {
		t.Errorf("flowers after rejected placement = %d, want 1", len(snap.Flowers))
	}

	// 自动落点避开已占用区域
	flower, err := gs.PlaceFlowerAuto(types.PlantRose, 0, now)
	if err != nil {
		t.Fatalf("PlaceFlowerAuto error: %v", err)
	}
	if flower.X == 200 && flower.Y == 100 {
		t.Error("auto placement landed on occupied spot")
	}

	// 装饰物与花卉共享碰撞空间
	_, result, _ = gs.PlaceDecor(types.DecorGnome, 0, 205, 105, now)
	if result.Valid {
		t.Error("decor overlapping flower must be rejected")
	}

	// 地标不参与碰撞
	if _, result, _ := gs.PlaceLandmark(types.LandmarkFountain, 200, 0, now); !result.Valid {
		t.Errorf("landmark placement rejected: %q", result.Reason)
	}
}

func TestGardenStoreFlipAndRemove(t *testing.T) {
	gs, _ := NewGardenStore(nil, nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	flower, _, _ := gs.PlaceFlower(types.PlantTulip, 1, 200, 100, now)

	if err := gs.SetFlipped(flower.ID, true); err != nil {
		t.Fatalf("SetFlipped error: %v", err)
	}
	if snap := gs.Snapshot(); !snap.Flowers[0].Flipped {
		t.Error("flower not flipped")
	}

	if err := gs.SetFlipped("no-such-id", true); err == nil {
		t.Error("SetFlipped on missing entity must fail")
	}

	if err := gs.RemoveEntity(flower.ID); err != nil {
		t.Fatalf("RemoveEntity error: %v", err)
	}
	if snap := gs.Snapshot(); len(snap.Flowers) != 0 {
		t.Error("flower not removed")
	}
	if err := gs.RemoveEntity(flower.ID); err == nil {
		t.Error("removing twice must fail")
	}
}

func TestGardenStoreWateringFlow(t *testing.T) {
	gs, _ := NewGardenStore(nil, nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	result, err := gs.Water("user-a", now)
	if err != nil || !result.OK {
		t.Fatalf("water failed: err=%v result=%+v", err, result)
	}

	wallet := gs.Wallet()
	if wallet.Coins != 5 || wallet.Water != 1 {
		t.Errorf("wallet after water = %+v, want {5 1}", wallet)
	}

	// 冷却中被阻断，余额不变
	blocked, err := gs.Water("user-a", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("water error: %v", err)
	}
	if blocked.OK || blocked.Reason != garden.ReasonCoolingDown {
		t.Errorf("water during cooldown = %+v", blocked)
	}
	if gs.Wallet().Coins != 5 {
		t.Error("blocked water must not change wallet")
	}

	// 双方同日浇水触发和谐奖励
	partner, err := gs.Water("user-b", now.Add(7*time.Hour))
	if err != nil || !partner.OK {
		t.Fatalf("partner water failed: err=%v result=%+v", err, partner)
	}
	if !partner.HarmonyGranted {
		t.Error("harmony not granted")
	}
	if gs.Wallet().Coins != 5+5+20 {
		t.Errorf("wallet coins = %d, want 30", gs.Wallet().Coins)
	}
}

func TestGardenStoreReviveFlow(t *testing.T) {
	gs, _ := NewGardenStore(nil, nil)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 攒一点金币再让花园枯萎
	if r, _ := gs.Water("user-a", start); !r.OK {
		t.Fatalf("setup water failed: %+v", r)
	}
	wilted := start.Add(26 * time.Hour)

	if r, _ := gs.Water("user-a", wilted); r.OK || r.Reason != garden.ReasonWilted {
		t.Fatalf("water on wilted garden = %+v, want blocked", r)
	}

	// 余额只有 5，复苏要 10
	if r, _ := gs.Revive(wilted); r.OK || r.Reason != garden.ReasonNotEnoughCoins {
		t.Fatalf("revive with 5 coins = %+v, want blocked", r)
	}

	// 手动补足余额后复苏成功并扣费
	gs.mu.Lock()
	gs.doc.Wallet.Coins = 10
	gs.mu.Unlock()

	revived, err := gs.Revive(wilted)
	if err != nil || !revived.OK {
		t.Fatalf("revive failed: err=%v result=%+v", err, revived)
	}
	if gs.Wallet().Coins != 0 {
		t.Errorf("coins after revive = %d, want 0", gs.Wallet().Coins)
	}

	// 复苏后浇水重新可用
	if r, _ := gs.Water("user-a", wilted.Add(time.Minute)); !r.OK {
		t.Errorf("water after revive blocked: %q", r.Reason)
	}
}

func TestGardenStorePersistence(t *testing.T) {
	manager := createTestGdataManager(t, "persist")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	gs1, err := NewGardenStore(manager, nil)
	if err != nil {
		t.Fatalf("NewGardenStore error: %v", err)
	}
	flower, result, err := gs1.PlaceFlower(types.PlantLavender, 1, 150, 80, now)
	if err != nil || !result.Valid {
		t.Fatalf("place failed: err=%v result=%+v", err, result)
	}
	if _, err := gs1.Water("user-a", now); err != nil {
		t.Fatalf("water failed: %v", err)
	}

	// 同一存储后端的新实例应当读回同一份文档
	gs2, err := NewGardenStore(manager, nil)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	snap := gs2.Snapshot()
	if len(snap.Flowers) != 1 || snap.Flowers[0].ID != flower.ID {
		t.Fatalf("reloaded snapshot = %+v, want the planted lavender", snap.Flowers)
	}
	if !snap.Flowers[0].PlantedAt.Equal(now) {
		t.Errorf("plantedAt round-trip = %v, want %v", snap.Flowers[0].PlantedAt, now)
	}
	record := gs2.WateringRecord()
	if record.StreakCount != 1 || record.LastStreakDay != garden.DayOf(now) {
		t.Errorf("reloaded record = %+v", record)
	}
	if gs2.Wallet().Coins != 5 {
		t.Errorf("reloaded coins = %d, want 5", gs2.Wallet().Coins)
	}
}

func TestGardenStoreSnapshotIsCopy(t *testing.T) {
	gs, _ := NewGardenStore(nil, nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	gs.PlaceFlower(types.PlantDaisy, 0, 200, 100, now)

	snap := gs.Snapshot()
	snap.Flowers[0].X = 999

	if gs.Snapshot().Flowers[0].X != 200 {
		t.Error("mutating a returned snapshot leaked into the store")
	}

	record := gs.WateringRecord()
	record.LastWaterDayByUser["intruder"] = "2025-06-10"
	if len(gs.WateringRecord().LastWaterDayByUser) != 0 {
		t.Error("mutating a returned record map leaked into the store")
	}
}
