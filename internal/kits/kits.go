// Package kits - статический реестр персонажей: базовые характеристики,
// пассивки, заряженный навык и burst. Данные лежат в kits.yaml и
// зашиваются в бинарник; после загрузки реестр только читается.
package kits

import (
	_ "embed"
	"fmt"

	"skirmish-server/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed kits.yaml
var rawKits []byte

// SkillKey - какой навык используется действием.
type SkillKey string

const (
	SkillBasic   SkillKey = "basic"
	SkillCharged SkillKey = "charged"
	SkillBurst   SkillKey = "burst"
)

// Passive срабатывает, когда актор выполняет действие OnAction
// (или на любое действие, если OnAction не задан).
type Passive struct {
	Name        string
	Description string
	OnAction    domain.ActionType // ActionUnknown = любое действие
	Effect      *domain.StatusEffect
}

// Matches - подходит ли пассивка к типу действия.
func (p Passive) Matches(a domain.ActionType) bool {
	return p.OnAction == domain.ActionUnknown || p.OnAction == a
}

// Skill - заряженный навык или burst. Nil-поля означают "значение по умолчанию".
type Skill struct {
	Name            string
	Description     string
	BonusMultiplier *float64
	CEGain          *int
	StatusApplies   []domain.StatusEffect
	HealPercent     float64
	BurstCost       int
}

// Kit - неизменяемая запись реестра.
type Kit struct {
	ID          string
	Title       string
	Description string
	BaseStats   domain.Stats
	Passives    []Passive
	Charged     Skill
	Burst       Skill
}

// Registry - таблица китов в порядке объявления.
type Registry struct {
	order []string
	kits  map[string]Kit
}

// --- YAML loading ---

type effectEntry struct {
	Type       string   `yaml:"type"`
	DurationMs int64    `yaml:"durationMs"`
	Stacks     int      `yaml:"stacks"`
	Potency    *float64 `yaml:"potency"`
}

type passiveEntry struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	OnAction    string       `yaml:"onAction"`
	Effect      *effectEntry `yaml:"effect"`
}

type skillEntry struct {
	Name            string        `yaml:"name"`
	Description     string        `yaml:"description"`
	BonusMultiplier *float64      `yaml:"bonusMultiplier"`
	CEGain          *int          `yaml:"ceGain"`
	HealPercent     float64       `yaml:"healPercent"`
	BurstCost       int           `yaml:"burstCost"`
	StatusApplies   []effectEntry `yaml:"statusApplies"`
}

type statsEntry struct {
	Health    int `yaml:"health"`
	MaxHealth int `yaml:"maxHealth"`
	Attack    int `yaml:"attack"`
	Defense   int `yaml:"defense"`
	Speed     int `yaml:"speed"`
}

type kitEntry struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	BaseStats   *statsEntry    `yaml:"baseStats"`
	Passives    []passiveEntry `yaml:"passives"`
	Charged     *skillEntry    `yaml:"chargedSkill"`
	Burst       *skillEntry    `yaml:"burst"`
}

type kitFile struct {
	Kits []kitEntry `yaml:"kits"`
}

// Load разбирает YAML-таблицу китов.
func Load(raw []byte) (*Registry, error) {
	var f kitFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse kits: %w", err)
	}

	r := &Registry{kits: make(map[string]Kit, len(f.Kits))}
	for _, e := range f.Kits {
		if e.ID == "" {
			return nil, fmt.Errorf("kit without id")
		}
		if _, dup := r.kits[e.ID]; dup {
			return nil, fmt.Errorf("duplicate kit %q", e.ID)
		}
		k, err := e.toKit()
		if err != nil {
			return nil, fmt.Errorf("kit %q: %w", e.ID, err)
		}
		r.kits[e.ID] = k
		r.order = append(r.order, e.ID)
	}
	return r, nil
}

func (e kitEntry) toKit() (Kit, error) {
	k := Kit{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		BaseStats:   domain.Stats{Health: 100, Attack: 10, Defense: 5, Speed: 10},
	}
	if k.Title == "" {
		k.Title = "Adventurer"
	}
	if e.BaseStats != nil {
		k.BaseStats = domain.Stats(*e.BaseStats)
	}

	for _, p := range e.Passives {
		passive := Passive{Name: p.Name, Description: p.Description}
		if p.OnAction != "" {
			passive.OnAction = domain.ParseAction(p.OnAction)
			if passive.OnAction == domain.ActionUnknown {
				return Kit{}, fmt.Errorf("passive %q: unknown action %q", p.Name, p.OnAction)
			}
		}
		if p.Effect != nil {
			eff, err := p.Effect.toStatus()
			if err != nil {
				return Kit{}, err
			}
			passive.Effect = &eff
		}
		k.Passives = append(k.Passives, passive)
	}

	var err error
	if k.Charged, err = e.Charged.toSkill(defaultCharged()); err != nil {
		return Kit{}, fmt.Errorf("charged skill: %w", err)
	}
	if k.Burst, err = e.Burst.toSkill(defaultBurst()); err != nil {
		return Kit{}, fmt.Errorf("burst: %w", err)
	}
	return k, nil
}

func (s *skillEntry) toSkill(fallback Skill) (Skill, error) {
	if s == nil {
		return fallback, nil
	}
	out := Skill{
		Name:            s.Name,
		Description:     s.Description,
		BonusMultiplier: s.BonusMultiplier,
		CEGain:          s.CEGain,
		HealPercent:     s.HealPercent,
		BurstCost:       s.BurstCost,
	}
	for _, st := range s.StatusApplies {
		eff, err := st.toStatus()
		if err != nil {
			return Skill{}, err
		}
		out.StatusApplies = append(out.StatusApplies, eff)
	}
	return out, nil
}

func (e effectEntry) toStatus() (domain.StatusEffect, error) {
	t := domain.StatusType(e.Type)
	if !t.Known() {
		return domain.StatusEffect{}, fmt.Errorf("unknown status type %q", e.Type)
	}
	eff := domain.StatusEffect{Type: t, Stacks: e.Stacks, DurationMs: e.DurationMs}
	if e.Potency != nil {
		eff.Potency = *e.Potency
	}
	return eff, nil
}

// Универсальные навыки для кита без явного описания
func defaultCharged() Skill {
	mult, gain := 1.3, 14
	return Skill{Name: "Technique", Description: "Generic charged attack", BonusMultiplier: &mult, CEGain: &gain}
}

func defaultBurst() Skill {
	mult, gain := 2.0, -domain.DefaultBurstCost
	return Skill{
		Name: "Burst", Description: "Generic burst",
		BonusMultiplier: &mult, CEGain: &gain, BurstCost: domain.DefaultBurstCost,
	}
}

// --- Доступ ---

// Get возвращает кит по ID персонажа.
func (r *Registry) Get(id string) (Kit, bool) {
	k, ok := r.kits[id]
	return k, ok
}

// All - все киты в порядке объявления.
func (r *Registry) All() []Kit {
	out := make([]Kit, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.kits[id])
	}
	return out
}

// Count возвращает количество загруженных китов.
func (r *Registry) Count() int {
	return len(r.kits)
}

var defaultRegistry = mustLoad(rawKits)

func mustLoad(raw []byte) *Registry {
	r, err := Load(raw)
	if err != nil {
		// Встроенная таблица битая - это ошибка сборки, а не игровая ситуация
		panic(err)
	}
	return r
}

// Default - реестр из встроенной таблицы.
func Default() *Registry { return defaultRegistry }

// Get ищет кит во встроенном реестре.
func Get(id string) (Kit, bool) { return defaultRegistry.Get(id) }

// All - все киты встроенного реестра.
func All() []Kit { return defaultRegistry.All() }
