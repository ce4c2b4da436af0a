package kits

import (
	"fmt"

	"skirmish-server/internal/domain"
)

// NewEntity собирает бойца по киту: базовые статы, шкала CE с ценой burst из кита.
func NewEntity(characterID, id, name string, playerControlled bool) (domain.Entity, error) {
	k, ok := Get(characterID)
	if !ok {
		return domain.Entity{}, fmt.Errorf("unknown character %q", characterID)
	}

	ce := domain.NewChargeMeter()
	if k.Burst.BurstCost > 0 {
		ce.BurstCost = k.Burst.BurstCost
	}

	return domain.NormalizeEntity(domain.Entity{
		ID:                 id,
		Name:               name,
		IsPlayerControlled: playerControlled,
		CharacterID:        k.ID,
		Stats:              k.BaseStats,
		CE:                 ce,
	}), nil
}
