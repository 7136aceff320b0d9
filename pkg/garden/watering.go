package garden

import (
	"time"
)

// WateringState 浇水状态机的状态
type WateringState int

const (
	// StateCanWater 可以浇水
	StateCanWater WateringState = iota
	// StateCoolingDown 冷却中
	StateCoolingDown
	// StateWiltedBlocked 花园已枯萎，浇水被阻断，只能复苏
	StateWiltedBlocked
)

// String 返回浇水状态的字符串表示
func (s WateringState) String() string {
	switch s {
	case StateCanWater:
		return "CanWater"
	case StateCoolingDown:
		return "CoolingDown"
	case StateWiltedBlocked:
		return "WiltedBlocked"
	default:
		return "Unknown"
	}
}

// 浇水/复苏被阻断的原因
const (
	ReasonCoolingDown    = "watering is cooling down"
	ReasonWilted         = "garden is wilted, revive required"
	ReasonNotWilted      = "garden is not wilted"
	ReasonNotEnoughCoins = "not enough coins"
)

// Reward 一次动作发放的奖励
type Reward struct {
	Coins int
	Water int
}

// WaterResult 浇水判定结果
//
// 引擎只做判定，不做写入：Record 是应当被调用方持久化的新记录。
// 对同一份输入记录重复执行判定不会重复发放奖励。
type WaterResult struct {
	OK     bool
	Reason string // OK 为 false 时的阻断原因

	State          WateringState // 动作之后的状态
	Record         WateringRecord
	Reward         Reward
	StreakUpdated  bool // 连续天数是否发生变化
	HarmonyGranted bool // 本次是否触发了和谐奖励
}

// ReviveResult 复苏判定结果
type ReviveResult struct {
	OK     bool
	Reason string

	Record    WateringRecord
	CostCoins int // 本次复苏需要的金币（由调用方扣除，引擎只上报）
}

// WateringState 计算当前的浇水状态
//
// 枯萎优先于冷却：花园枯萎时无论冷却与否都只能复苏
func (e *Engine) WateringState(record *WateringRecord, now time.Time) WateringState {
	if e.ResolveHealth(record.LastSuccessfulInteraction, now) == HealthWilted {
		return StateWiltedBlocked
	}
	if e.coolingDown(record, now) {
		return StateCoolingDown
	}
	return StateCanWater
}

// coolingDown 判断冷却是否仍在进行
func (e *Engine) coolingDown(record *WateringRecord, now time.Time) bool {
	if record.LastWateredAt.IsZero() {
		return false
	}
	elapsed := now.Sub(record.LastWateredAt)
	if elapsed < 0 {
		// 时钟偏移，按冷却已结束处理，不阻断用户
		return false
	}
	return elapsed < time.Duration(e.tuning.Watering.CooldownHours)*time.Hour
}

// Water 判定一次浇水动作
//
// 成功时返回更新后的浇水记录和应发奖励，由调用方原子地持久化。
// 连续天数和和谐奖励的记账都以记录中的自然日为准：
// 对同一份历史重复执行不会重复发放（幂等）。
//
// 参数:
//   - record: 当前浇水记录快照
//   - userID: 执行浇水的用户
//   - now: 注入的当前时间
func (e *Engine) Water(record *WateringRecord, userID string, now time.Time) WaterResult {
	switch e.WateringState(record, now) {
	case StateWiltedBlocked:
		return WaterResult{OK: false, Reason: ReasonWilted, State: StateWiltedBlocked, Record: *record}
	case StateCoolingDown:
		return WaterResult{OK: false, Reason: ReasonCoolingDown, State: StateCoolingDown, Record: *record}
	}

	updated := cloneRecord(record)
	today := DayOf(now)
	reward := Reward{
		Coins: e.tuning.Watering.BaseCoins,
		Water: e.tuning.Watering.BaseWater,
	}

	updated.LastWateredAt = now
	// 健康锚点只向前推进
	if now.After(updated.LastSuccessfulInteraction) {
		updated.LastSuccessfulInteraction = now
	}

	// 连续天数记账：同一天内的多次浇水不重复计数
	streakUpdated := false
	if updated.LastStreakDay != today {
		if updated.LastStreakDay == prevDay(today) {
			updated.StreakCount++
		} else {
			// 中断了一个合格日，从头开始
			updated.StreakCount = 1
		}
		updated.LastStreakDay = today
		streakUpdated = true

		// 每达到一个连续天数阈值整倍数，发放一次奖励；
		// 只在跨过阈值的那次浇水发放，重查不会再发
		if updated.StreakCount%e.tuning.Watering.StreakInterval == 0 {
			reward.Coins += e.tuning.Watering.StreakCoins
		}
	}

	updated.LastWaterDayByUser[userID] = today

	// 和谐奖励：配对双方在同一个自然日都浇过水，每天最多发放一次
	harmonyGranted := false
	if updated.LastHarmonyDay != today && bothWateredOn(updated.LastWaterDayByUser, today) {
		reward.Coins += e.tuning.Watering.HarmonyCoins
		updated.LastHarmonyDay = today
		harmonyGranted = true
	}

	return WaterResult{
		OK:             true,
		State:          StateCoolingDown,
		Record:         updated,
		Reward:         reward,
		StreakUpdated:  streakUpdated,
		HarmonyGranted: harmonyGranted,
	}
}

// Revive 判定一次复苏动作
//
// 只有花园处于枯萎状态时复苏才有效。引擎上报金币花费并校验余额，
// 实际扣费由调用方执行。成功时健康锚点重置到当前时间，
// 冷却周期随之重新打开（枯萎所需时长必然超过冷却时长）。
//
// 参数:
//   - record: 当前浇水记录快照
//   - availableCoins: 调用方持有的金币余额
//   - now: 注入的当前时间
func (e *Engine) Revive(record *WateringRecord, availableCoins int, now time.Time) ReviveResult {
	cost := e.tuning.Watering.ReviveCostCoins

	if e.ResolveHealth(record.LastSuccessfulInteraction, now) != HealthWilted {
		return ReviveResult{OK: false, Reason: ReasonNotWilted, Record: *record, CostCoins: cost}
	}
	if availableCoins < cost {
		return ReviveResult{OK: false, Reason: ReasonNotEnoughCoins, Record: *record, CostCoins: cost}
	}

	updated := cloneRecord(record)
	if now.After(updated.LastSuccessfulInteraction) {
		updated.LastSuccessfulInteraction = now
	}

	return ReviveResult{OK: true, Record: updated, CostCoins: cost}
}

// cloneRecord 深拷贝浇水记录，保证引擎不修改调用方的快照
func cloneRecord(record *WateringRecord) WateringRecord {
	updated := *record
	updated.LastWaterDayByUser = make(map[string]string, len(record.LastWaterDayByUser))
	for user, day := range record.LastWaterDayByUser {
		updated.LastWaterDayByUser[user] = day
	}
	return updated
}

// bothWateredOn 判断是否有至少两个不同用户在指定自然日浇过水
func bothWateredOn(lastDayByUser map[string]string, day string) bool {
	count := 0
	for _, d := range lastDayByUser {
		if d == day {
			count++
		}
	}
	return count >= 2
}
