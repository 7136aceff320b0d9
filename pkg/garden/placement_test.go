package garden

import (
	"fmt"
	"testing"
	"time"

	"github.com/decker502/pairgarden/pkg/types"
)

// matureFlower 构造一株早已成熟的花卉（种植于一天前）
func matureFlower(id string, t types.PlantType, x, y float64, now time.Time) PlantedFlower {
	return PlantedFlower{ID: id, Type: t, X: x, Y: y, PlantedAt: now.Add(-24 * time.Hour)}
}

func TestCanPlace(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// 两株成熟雏菊：成熟半径 30，幼苗候选半径 15，半径之和 45
	snap := &Snapshot{
		Flowers: []PlantedFlower{
			matureFlower("f1", types.PlantDaisy, 100, 20, now),
			matureFlower("f2", types.PlantDaisy, 140, 20, now),
		},
	}

	tests := []struct {
		name       string
		candidate  Candidate
		x, y       float64
		wantValid  bool
		wantReason string
	}{
		{
			name:       "between two flowers too close",
			candidate:  Candidate{Kind: KindFlower, PlantType: types.PlantDaisy},
			x: 120, y: 20,
			wantValid:  false,
			wantReason: ReasonTooClose,
		},
		{
			name:      "clear spot to the right",
			candidate: Candidate{Kind: KindFlower, PlantType: types.PlantDaisy},
			x: 250, y: 20,
			wantValid: true,
		},
		{
			name:       "decor blocked by flower",
			candidate:  Candidate{Kind: KindDecor, DecorType: types.DecorGnome},
			x: 110, y: 20,
			wantValid:  false,
			wantReason: ReasonTooClose,
		},
		{
			name:       "left of edge margin",
			candidate:  Candidate{Kind: KindFlower, PlantType: types.PlantDaisy},
			x: 10, y: 100,
			wantValid:  false,
			wantReason: ReasonOutOfBounds,
		},
		{
			name:       "beyond max depth",
			candidate:  Candidate{Kind: KindFlower, PlantType: types.PlantDaisy},
			x: 250, y: 300,
			wantValid:  false,
			wantReason: ReasonOutOfBounds,
		},
		{
			name:       "negative depth",
			candidate:  Candidate{Kind: KindFlower, PlantType: types.PlantDaisy},
			x: 250, y: -5,
			wantValid:  false,
			wantReason: ReasonOutOfBounds,
		},
		{
			// 地标不参与碰撞，直接压在花卉上也合法
			name:      "landmark overlaps flowers",
			candidate: Candidate{Kind: KindLandmark},
			x: 120, y: 0,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CanPlace(snap, tt.candidate, tt.x, tt.y, now)
			if got.Valid != tt.wantValid {
				t.Fatalf("CanPlace(%v, %.0f, %.0f) valid = %v, want %v (reason=%q)",
					tt.candidate.Kind, tt.x, tt.y, got.Valid, tt.wantValid, got.Reason)
			}
			if !tt.wantValid && got.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

// TestCanPlaceSymmetry 碰撞对称性：A 因 B 而无效，则交换两者后 B 也因 A 无效
// 用装饰物验证（装饰物候选与落盘后的半径一致，交换后半径之和不变）
func TestCanPlaceSymmetry(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	const px, py = 200.0, 100.0
	const qx, qy = 230.0, 100.0

	withBirdbath := &Snapshot{
		Decor: []PlantedDecor{{ID: "d1", Type: types.DecorBirdbath, X: qx, Y: qy, PlacedAt: now}},
	}
	gnomeAtP := engine.CanPlace(withBirdbath, Candidate{Kind: KindDecor, DecorType: types.DecorGnome}, px, py, now)

	withGnome := &Snapshot{
		Decor: []PlantedDecor{{ID: "d2", Type: types.DecorGnome, X: px, Y: py, PlacedAt: now}},
	}
	birdbathAtQ := engine.CanPlace(withGnome, Candidate{Kind: KindDecor, DecorType: types.DecorBirdbath}, qx, qy, now)

	if gnomeAtP.Valid != birdbathAtQ.Valid {
		t.Errorf("collision not symmetric: gnome@P=%v, birdbath@Q=%v", gnomeAtP.Valid, birdbathAtQ.Valid)
	}
	if gnomeAtP.Valid {
		t.Errorf("expected gnome at 30 units from birdbath to collide (radii 20+30)")
	}
}

// TestCanPlaceOrderIndependent 判定与已有实体的遍历顺序无关
func TestCanPlaceOrderIndependent(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	forward := &Snapshot{
		Flowers: []PlantedFlower{
			matureFlower("f1", types.PlantDaisy, 100, 20, now),
			matureFlower("f2", types.PlantRose, 300, 200, now),
			matureFlower("f3", types.PlantTulip, 200, 120, now),
		},
	}
	reversed := &Snapshot{
		Flowers: []PlantedFlower{forward.Flowers[2], forward.Flowers[1], forward.Flowers[0]},
	}

	c := Candidate{Kind: KindFlower, PlantType: types.PlantDaisy}
	for _, pos := range []struct{ x, y float64 }{{120, 20}, {250, 20}, {210, 130}, {350, 60}} {
		a := engine.CanPlace(forward, c, pos.x, pos.y, now)
		b := engine.CanPlace(reversed, c, pos.x, pos.y, now)
		if a != b {
			t.Errorf("result differs by iteration order at (%.0f, %.0f): %+v vs %+v", pos.x, pos.y, a, b)
		}
	}
}

// TestSaplingUsesReducedRadius 幼苗占地更小：挨着幼苗能种，挨着成株不能
func TestSaplingUsesReducedRadius(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// 幼苗半径 15 + 候选幼苗 15 = 30；成熟半径 30 + 候选幼苗 15 = 45
	// 距离取 40：对幼苗有效，对成株无效
	sapling := &Snapshot{
		Flowers: []PlantedFlower{{ID: "s1", Type: types.PlantDaisy, X: 200, Y: 100, PlantedAt: now}},
	}
	mature := &Snapshot{
		Flowers: []PlantedFlower{matureFlower("m1", types.PlantDaisy, 200, 100, now)},
	}

	c := Candidate{Kind: KindFlower, PlantType: types.PlantDaisy}
	if got := engine.CanPlace(sapling, c, 240, 100, now); !got.Valid {
		t.Errorf("candidate 40 units from sapling should be valid, got %+v", got)
	}
	if got := engine.CanPlace(mature, c, 240, 100, now); got.Valid {
		t.Errorf("candidate 40 units from mature flower should be invalid")
	}
}

func TestAutoPlace(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	c := Candidate{Kind: KindFlower, PlantType: types.PlantDaisy}

	t.Run("empty garden takes center", func(t *testing.T) {
		x, y := engine.AutoPlace(&Snapshot{}, c, now)
		if x != 200 || y != 120 {
			t.Errorf("AutoPlace(empty) = (%.1f, %.1f), want (200, 120)", x, y)
		}
	})

	t.Run("occupied center falls out deterministically", func(t *testing.T) {
		snap := &Snapshot{
			Flowers: []PlantedFlower{matureFlower("f1", types.PlantDaisy, 200, 120, now)},
		}
		x1, y1 := engine.AutoPlace(snap, c, now)
		x2, y2 := engine.AutoPlace(snap, c, now)
		if x1 != x2 || y1 != y2 {
			t.Fatalf("AutoPlace not reproducible: (%.1f,%.1f) vs (%.1f,%.1f)", x1, y1, x2, y2)
		}
		if x1 == 200 && y1 == 120 {
			t.Fatal("AutoPlace returned the occupied center")
		}
		if r := engine.CanPlace(snap, c, x1, y1, now); !r.Valid {
			t.Errorf("AutoPlace returned invalid position (%.1f, %.1f): %q", x1, y1, r.Reason)
		}
	})

	t.Run("crowded garden falls back to center", func(t *testing.T) {
		// 一株树占满中心附近，所有候选点都被挡住时兜底返回中心
		crowded := &Snapshot{Flowers: []PlantedFlower{}}
		for x := 20.0; x <= 380; x += 40 {
			for y := 0.0; y <= 240; y += 40 {
				id := fmt.Sprintf("w-%.0f-%.0f", x, y)
				crowded.Flowers = append(crowded.Flowers,
					matureFlower(id, types.PlantWillowTree, x, y, now))
			}
		}
		x, y := engine.AutoPlace(crowded, c, now)
		if x != 200 || y != 120 {
			t.Errorf("AutoPlace(crowded) = (%.1f, %.1f), want center fallback (200, 120)", x, y)
		}
	})
}
