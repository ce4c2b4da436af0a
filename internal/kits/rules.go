package kits

import "skirmish-server/internal/domain"

// Restriction запрещает навык персонажа в определенном режиме.
// Это балансные исключения, а не общая механика: каждое - отдельная запись.
type Restriction struct {
	CharacterID string
	Mode        domain.BattleMode
	Skill       SkillKey
}

// OliverAscended - персонаж, чей burst отключен в PvP.
const OliverAscended = "oliver_ascended"

var restrictions = []Restriction{
	{CharacterID: OliverAscended, Mode: domain.ModePvP, Skill: SkillBurst},
}

// Restrictions возвращает копию списка правил.
func Restrictions() []Restriction {
	out := make([]Restriction, len(restrictions))
	copy(out, restrictions)
	return out
}

// IsPrevented - запрещен ли навык для персонажа в этом режиме (независимо от CE).
func IsPrevented(characterID string, mode domain.BattleMode, skill SkillKey) bool {
	for _, r := range restrictions {
		if r.CharacterID == characterID && r.Mode == mode && r.Skill == skill {
			return true
		}
	}
	return false
}
