package kits

import (
	"testing"

	"skirmish-server/internal/domain"
)

func TestDefaultRegistry(t *testing.T) {
	want := []string{"sophia", "endrit", "grace", "nona", "grandma", "liya", "yohanna", "oliver_ascended"}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("Expected %d kits, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("kit %d: expected %s, got %s", i, id, all[i].ID)
		}
	}
}

func TestOliverKit(t *testing.T) {
	k, ok := Get(OliverAscended)
	if !ok {
		t.Fatal("oliver_ascended not found")
	}
	if k.Burst.BurstCost != 60 {
		t.Errorf("Expected burst cost 60, got %d", k.Burst.BurstCost)
	}
	if k.Burst.BonusMultiplier == nil || *k.Burst.BonusMultiplier != 2.8 {
		t.Errorf("Unexpected burst multiplier: %v", k.Burst.BonusMultiplier)
	}
	// Пассивка без эффекта
	if len(k.Passives) != 1 || k.Passives[0].Effect != nil {
		t.Errorf("Expected one effect-less passive, got %+v", k.Passives)
	}
	if !k.Passives[0].Matches(domain.ActionBurst) || k.Passives[0].Matches(domain.ActionAttack) {
		t.Error("Passive should trigger only on burst")
	}
}

func TestEffectPotencyOptional(t *testing.T) {
	k, _ := Get("endrit")
	if got := k.Charged.StatusApplies[0].Potency; got != 5 {
		t.Errorf("Expected explicit potency 5, got %v", got)
	}
	if got := k.Burst.StatusApplies[0].Potency; got != 0 {
		t.Errorf("Expected unset potency (0), got %v", got)
	}
	if k.Charged.CEGain != nil {
		t.Errorf("Expected no explicit ceGain, got %d", *k.Charged.CEGain)
	}
}

func TestIsPrevented(t *testing.T) {
	tests := []struct {
		name  string
		char  string
		mode  domain.BattleMode
		skill SkillKey
		want  bool
	}{
		{"oliver burst pvp", OliverAscended, domain.ModePvP, SkillBurst, true},
		{"oliver burst pve", OliverAscended, domain.ModePvE, SkillBurst, false},
		{"oliver charged pvp", OliverAscended, domain.ModePvP, SkillCharged, false},
		{"other burst pvp", "sophia", domain.ModePvP, SkillBurst, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPrevented(tt.char, tt.mode, tt.skill); got != tt.want {
				t.Errorf("IsPrevented() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad yaml", "kits: ["},
		{"missing id", "kits:\n  - title: x\n"},
		{"duplicate", "kits:\n  - id: a\n  - id: a\n"},
		{"unknown status", "kits:\n  - id: a\n    burst:\n      statusApplies:\n        - { type: Frozen, stacks: 1 }\n"},
		{"unknown action", "kits:\n  - id: a\n    passives:\n      - name: p\n        onAction: dance\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.raw)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	r, err := Load([]byte("kits:\n  - id: plain\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k, _ := r.Get("plain")
	if k.Title != "Adventurer" || k.BaseStats.Health != 100 {
		t.Errorf("Unexpected defaults: %+v", k)
	}
	if k.Burst.BurstCost != domain.DefaultBurstCost || *k.Charged.CEGain != 14 {
		t.Errorf("Unexpected default skills: %+v / %+v", k.Burst, k.Charged)
	}
}

func TestNewEntity(t *testing.T) {
	e, err := NewEntity("nona", "p1", "Nona", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Stats.Speed != 14 || e.Stats.MaxHealth != 105 {
		t.Errorf("Unexpected stats: %+v", e.Stats)
	}
	if e.CE.BurstCost != 40 {
		t.Errorf("Expected burst cost 40, got %d", e.CE.BurstCost)
	}
	if _, err := NewEntity("nobody", "x", "x", false); err == nil {
		t.Error("expected error for unknown character")
	}
}
