// Package garden 实现共享花园的模拟引擎
//
// 引擎是一组基于调用方快照的纯函数：输入实体列表、浇水记录和注入的当前时间，
// 输出判定结果或派生值，自身不持有也不修改任何持久化状态。
// 所有对共享文档的写入由外部同步层（或本地的 GardenStore）串行执行。
package garden

import (
	"time"

	"github.com/decker502/pairgarden/pkg/types"
	"github.com/google/uuid"
)

// PlantedFlower 已种植的花卉
//
// ID 创建后不可变；除 Flipped 外其余字段创建后不再修改。
// 生长阶段和健康状态永远不落盘，始终由 PlantedAt / 浇水记录实时推导，
// 避免多设备同步下的状态过期问题。
type PlantedFlower struct {
	ID        string          `yaml:"id"`
	Type      types.PlantType `yaml:"type"`
	Variant   int             `yaml:"variant"` // 外观变体索引（纯装饰）
	X         float64         `yaml:"x"`
	Y         float64         `yaml:"y"`
	PlantedAt time.Time       `yaml:"plantedAt"`
	Flipped   bool            `yaml:"flipped"`
}

// PlantedDecor 已放置的装饰物
// 装饰物没有幼苗阶段（始终成熟），但健康视觉与花卉一致
type PlantedDecor struct {
	ID       string          `yaml:"id"`
	Type     types.DecorType `yaml:"type"`
	Variant  int             `yaml:"variant"`
	X        float64         `yaml:"x"`
	Y        float64         `yaml:"y"`
	PlacedAt time.Time       `yaml:"placedAt"`
	Flipped  bool            `yaml:"flipped"`
}

// PlantedLandmark 已放置的地标
//
// 地标固定在地平线层：Y 不由用户选择，只有 X 和前后层级 Order 可变。
// 地标不参与碰撞检测，允许相互重叠。
type PlantedLandmark struct {
	ID      string             `yaml:"id"`
	Type    types.LandmarkType `yaml:"type"`
	X       float64            `yaml:"x"`
	Order   int                `yaml:"order"` // 地标之间的前后层级
	Flipped bool               `yaml:"flipped"`
}

// Snapshot 花园的实体快照
// 引擎的所有判定都基于调用方传入的快照，引擎不修改快照内容
type Snapshot struct {
	Flowers   []PlantedFlower   `yaml:"flowers"`
	Decor     []PlantedDecor    `yaml:"decor"`
	Landmarks []PlantedLandmark `yaml:"landmarks"`
}

// WateringRecord 配对双方共享的浇水记录
//
// 日期字段使用 "2006-01-02" 格式的自然日字符串。
// 自然日基于注入的当前时间计算，调用方如需本地时区，应在注入前完成转换。
type WateringRecord struct {
	// LastWateredAt 最近一次成功浇水的时间，用于冷却判定（配对级）
	LastWateredAt time.Time `yaml:"lastWateredAt"`

	// LastSuccessfulInteraction 健康衰减的锚点时间，只会向前推进
	LastSuccessfulInteraction time.Time `yaml:"lastSuccessfulInteraction"`

	// StreakCount 连续合格天数
	StreakCount int `yaml:"streakCount"`

	// LastStreakDay 最近一次计入连续天数的自然日
	LastStreakDay string `yaml:"lastStreakDay"`

	// LastWaterDayByUser 每个用户最近一次浇水的自然日，用于和谐奖励判定
	LastWaterDayByUser map[string]string `yaml:"lastWaterDayByUser"`

	// LastHarmonyDay 最近一次发放和谐奖励的自然日，防止同日重复发放
	LastHarmonyDay string `yaml:"lastHarmonyDay"`
}

// NewEntityID 生成新实体的唯一ID
func NewEntityID() string {
	return uuid.NewString()
}

// NewPlantedFlower 构造一株新种下的花卉（ID 自动生成）
// 坐标必须已经通过放置校验，构造函数本身不做校验
func NewPlantedFlower(t types.PlantType, variant int, x, y float64, now time.Time) PlantedFlower {
	return PlantedFlower{
		ID:        NewEntityID(),
		Type:      t,
		Variant:   variant,
		X:         x,
		Y:         y,
		PlantedAt: now,
	}
}

// NewPlantedDecor 构造一个新放置的装饰物（ID 自动生成）
func NewPlantedDecor(t types.DecorType, variant int, x, y float64, now time.Time) PlantedDecor {
	return PlantedDecor{
		ID:       NewEntityID(),
		Type:     t,
		Variant:  variant,
		X:        x,
		Y:        y,
		PlacedAt: now,
	}
}

// NewPlantedLandmark 构造一个新放置的地标（ID 自动生成）
// 地标没有 Y 坐标：渲染时取配置中的地平线值
func NewPlantedLandmark(t types.LandmarkType, x float64, order int) PlantedLandmark {
	return PlantedLandmark{
		ID:    NewEntityID(),
		Type:  t,
		X:     x,
		Order: order,
	}
}

// dayLayout 自然日字符串格式
const dayLayout = "2006-01-02"

// DayOf 返回时间所在的自然日字符串
func DayOf(t time.Time) string {
	return t.Format(dayLayout)
}

// prevDay 返回指定自然日的前一天
// 输入非法时返回空字符串，调用方会将其视为"连续中断"
func prevDay(day string) string {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(dayLayout)
}
