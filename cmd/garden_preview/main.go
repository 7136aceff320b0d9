// Package main provides an interactive preview tool for the pair-garden
// simulation engine: it renders the shared garden as depth-scaled circles
// and visualizes placement validity in real time.
//
// Usage:
//
//	go run cmd/garden_preview/main.go [flags]
//
// Flags:
//
//	--tuning <path>   Load tuning overrides from a YAML file
//	--demo            Seed the garden with a demo layout on startup
//
// Controls:
//
//	Mouse Move        - Preview placement validity at cursor (绿色=可放置，红色=被挡)
//	Mouse Click       - Place the selected item at cursor
//	1/2/3             - Select daisy / hydrangea / maple
//	D                 - Toggle decor mode (places a gnome)
//	W                 - Water the garden as user A
//	E                 - Water the garden as user B
//	R                 - Revive a wilted garden
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/decker502/pairgarden/pkg/config"
	"github.com/decker502/pairgarden/pkg/game"
	"github.com/decker502/pairgarden/pkg/garden"
	"github.com/decker502/pairgarden/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	tuningFlag = flag.String("tuning", "", "path to a garden_tuning.yaml override")
	demoFlag   = flag.Bool("demo", false, "seed the garden with a demo layout")
)

// 预览窗口在种植平面四周留出的边框
const screenPadding = 40

var errQuit = errors.New("quit requested")

// 健康状态对应的底色
var healthColors = map[garden.Health]color.RGBA{
	garden.HealthFresh:   {0x4c, 0xaf, 0x50, 0xff},
	garden.HealthWilting: {0xc0, 0xca, 0x33, 0xff},
	garden.HealthWilted:  {0x8d, 0x6e, 0x63, 0xff},
}

// PreviewGame 预览工具的 ebiten 主循环
type PreviewGame struct {
	store  *game.GardenStore
	engine *garden.Engine

	selectedPlant types.PlantType
	decorMode     bool
	statusMessage string
}

// NewPreviewGame 创建预览工具实例
func NewPreviewGame(tuning *config.Tuning) (*PreviewGame, error) {
	engine := garden.NewEngine(tuning)
	// 预览工具不落盘，使用降级模式的内存文档
	store, err := game.NewGardenStore(nil, engine)
	if err != nil {
		return nil, fmt.Errorf("failed to create garden store: %w", err)
	}

	return &PreviewGame{
		store:         store,
		engine:        engine,
		selectedPlant: types.PlantDaisy,
		statusMessage: "1/2/3 select plant, D decor, click to place",
	}, nil
}

// seedDemo 铺一个演示花园
func (g *PreviewGame) seedDemo(now time.Time) {
	g.store.PlaceFlower(types.PlantDaisy, 0, 100, 40, now.Add(-2*time.Hour))
	g.store.PlaceFlower(types.PlantRose, 1, 300, 60, now.Add(-10*time.Minute))
	g.store.PlaceFlower(types.PlantMapleTree, 0, 200, 200, now.Add(-26*time.Hour))
	g.store.PlaceDecor(types.DecorBirdbath, 0, 320, 180, now)
	g.store.PlaceLandmark(types.LandmarkFountain, 120, 0, now)
	g.store.Water("user-a", now.Add(-time.Hour))
}

// candidate 返回当前选中的候选实体
func (g *PreviewGame) candidate() garden.Candidate {
	if g.decorMode {
		return garden.Candidate{Kind: garden.KindDecor, DecorType: types.DecorGnome}
	}
	return garden.Candidate{Kind: garden.KindFlower, PlantType: g.selectedPlant}
}

// cursorPlane 将鼠标坐标转换为种植平面坐标
func (g *PreviewGame) cursorPlane() (float64, float64) {
	mx, my := ebiten.CursorPosition()
	return float64(mx - screenPadding), float64(my - screenPadding)
}

func (g *PreviewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	now := time.Now()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.selectedPlant, g.decorMode = types.PlantDaisy, false
		g.statusMessage = "Selected: daisy"
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.selectedPlant, g.decorMode = types.PlantHydrangea, false
		g.statusMessage = "Selected: hydrangea"
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		g.selectedPlant, g.decorMode = types.PlantMapleTree, false
		g.statusMessage = "Selected: maple"
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.decorMode = !g.decorMode
		g.statusMessage = fmt.Sprintf("Decor mode: %v", g.decorMode)
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.applyWater("user-a", now)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.applyWater("user-b", now)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		result, _ := g.store.Revive(now)
		if result.OK {
			g.statusMessage = fmt.Sprintf("Revived (-%d coins)", result.CostCoins)
		} else {
			g.statusMessage = fmt.Sprintf("Revive blocked: %s", result.Reason)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.placeAtCursor(now)
	}

	return nil
}

// applyWater 执行一次浇水并更新状态栏
func (g *PreviewGame) applyWater(userID string, now time.Time) {
	result, _ := g.store.Water(userID, now)
	if !result.OK {
		g.statusMessage = fmt.Sprintf("Water blocked: %s", result.Reason)
		return
	}
	g.statusMessage = fmt.Sprintf("%s watered: +%d coins +%d water (streak %d, harmony %v)",
		userID, result.Reward.Coins, result.Reward.Water, result.Record.StreakCount, result.HarmonyGranted)
}

// placeAtCursor 在鼠标位置放置当前选中的实体
func (g *PreviewGame) placeAtCursor(now time.Time) {
	x, y := g.cursorPlane()
	if g.decorMode {
		_, result, _ := g.store.PlaceDecor(types.DecorGnome, 0, x, y, now)
		g.reportPlacement(result)
		return
	}
	_, result, _ := g.store.PlaceFlower(g.selectedPlant, 0, x, y, now)
	g.reportPlacement(result)
}

func (g *PreviewGame) reportPlacement(result garden.PlacementResult) {
	if result.Valid {
		g.statusMessage = "Placed"
		return
	}
	g.statusMessage = fmt.Sprintf("Invalid: %s", result.Reason)
}

func (g *PreviewGame) Draw(screen *ebiten.Image) {
	layout := g.engine.Tuning().Layout
	now := time.Now()

	// 种植平面边框
	vector.StrokeRect(screen, screenPadding, screenPadding,
		float32(layout.ScreenWidth), float32(layout.MaxDepth), 1,
		color.RGBA{0x55, 0x55, 0x55, 0xff}, true)

	// 已放置实体：DisplayState 已按 ZOrder 升序排好，后方实体先画
	for _, view := range g.store.DisplayState(now) {
		g.drawEntity(screen, view)
	}

	// 放置预览：预览和落盘走同一套 CanPlace / DepthScale
	x, y := g.cursorPlane()
	snap := g.store.Snapshot()
	result := g.engine.CanPlace(&snap, g.candidate(), x, y, now)
	previewColor := color.RGBA{0x2e, 0xcc, 0x71, 0x90}
	if !result.Valid {
		previewColor = color.RGBA{0xe7, 0x4c, 0x3c, 0x90}
	}
	radius := 14 * g.engine.DepthScale(y)
	vector.DrawFilledCircle(screen, float32(x+screenPadding), float32(y+screenPadding),
		float32(radius), previewColor, true)

	g.drawStatus(screen, now)
}

// drawEntity 按视图的缩放和类型绘制一个实体
func (g *PreviewGame) drawEntity(screen *ebiten.Image, view garden.EntityView) {
	base := 14.0
	switch view.Kind {
	case garden.KindDecor:
		base = 10.0
	case garden.KindLandmark:
		base = 18.0
	}
	if view.Stage == garden.StageSapling {
		base *= 0.6
	}

	clr := healthColors[view.Health]
	if view.Kind == garden.KindLandmark {
		clr = color.RGBA{0x78, 0x90, 0x9c, 0xff}
	}

	vector.DrawFilledCircle(screen,
		float32(view.X+screenPadding), float32(view.Y+screenPadding),
		float32(base*view.Scale), clr, true)
}

// drawStatus 绘制状态栏：余额、浇水状态、当前健康
func (g *PreviewGame) drawStatus(screen *ebiten.Image, now time.Time) {
	record := g.store.WateringRecord()
	wallet := g.store.Wallet()
	health := g.engine.ResolveHealth(record.LastSuccessfulInteraction, now)
	state := g.engine.WateringState(&record, now)

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("coins=%d water=%d streak=%d health=%s watering=%s",
			wallet.Coins, wallet.Water, record.StreakCount, health, state), 8, 4)
	ebitenutil.DebugPrintAt(screen, g.statusMessage, 8, 20)
}

func (g *PreviewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	layout := g.engine.Tuning().Layout
	return int(layout.ScreenWidth) + 2*screenPadding, int(layout.MaxDepth) + 2*screenPadding
}

func main() {
	flag.Parse()

	var tuning *config.Tuning
	if *tuningFlag != "" {
		loaded, err := config.LoadTuning(*tuningFlag)
		if err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
		tuning = loaded
	}

	previewGame, err := NewPreviewGame(tuning)
	if err != nil {
		log.Fatal("Failed to initialize preview:", err)
	}
	if *demoFlag {
		previewGame.seedDemo(time.Now())
	}

	layout := previewGame.engine.Tuning().Layout
	ebiten.SetWindowSize(int(layout.ScreenWidth)+2*screenPadding, int(layout.MaxDepth)+2*screenPadding)
	ebiten.SetWindowTitle("Pair Garden Preview")

	if err := ebiten.RunGame(previewGame); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}

	log.Println("Garden preview closed")
}
