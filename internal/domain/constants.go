package domain

// Режимы боя
type BattleMode string

const (
	ModePvE     BattleMode = "pve"
	ModePvP     BattleMode = "pvp"
	ModeSandbox BattleMode = "sandbox"
)

// Valid сообщает, известен ли режим.
func (m BattleMode) Valid() bool {
	return m == ModePvE || m == ModePvP || m == ModeSandbox
}

// Шкала заряда (CE)
const (
	MaxCE            = 100
	DefaultBurstCost = 50
)

// DefaultCETiers - пороги уровней заряда по умолчанию.
var DefaultCETiers = []int{25, 50, 75, 100}

// Параметры комбо
const (
	MomentumPerLink = 0.05
	MomentumCap     = 0.75
)

// Параметры генератора (31-битный генератор Лемера)
const (
	DefaultModulus    int64 = 1<<31 - 1
	DefaultMultiplier int64 = 48271
	DefaultIncrement  int64 = 0
)

// Прирост заряда для действий, не зависящих от навыка
const (
	CEGainCharge       = 18
	CEGainPassive      = 6 // wait / defend
	CEGainNoKit        = 8
	CEGainChargedSkill = 12
)

// Множители навыков по умолчанию
const (
	DefaultChargedMultiplier = 1.25
	DefaultBurstMultiplier   = 2.0
)
