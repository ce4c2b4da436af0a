package engine

import (
	"reflect"
	"testing"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/kits"
)

// Helper: стандартная песочница Hero против Goblin, сид 1337
func sandboxState() domain.CombatState {
	return CreateCombatState([]domain.Entity{
		{
			ID: "player-sandbox", Name: "Hero", IsPlayerControlled: true,
			Stats: domain.Stats{Health: 30, Attack: 8, Defense: 3, Speed: 6},
		},
		{
			ID: "enemy-sandbox", Name: "Goblin",
			Stats: domain.Stats{Health: 18, Attack: 5, Defense: 2, Speed: 4},
		},
	}, domain.RngSeed{Seed: 1337}, domain.ModeSandbox)
}

func sandboxConfig() Config {
	return Config{Mode: domain.ModeSandbox}
}

func heroAttack() domain.Action {
	return domain.Action{ActorID: "player-sandbox", TargetID: "enemy-sandbox", Type: domain.ActionAttack}
}

func TestCreateCombatState(t *testing.T) {
	s := sandboxState()

	if s.Round != 1 || s.TimeMs != 0 {
		t.Errorf("Expected round 1 at time 0, got round %d at %d", s.Round, s.TimeMs)
	}
	if !reflect.DeepEqual(s.Initiative.Order, []string{"player-sandbox", "enemy-sandbox"}) {
		t.Errorf("Unexpected initiative: %v", s.Initiative.Order)
	}
	if s.Entities["enemy-sandbox"].Stats.MaxHealth != 18 {
		t.Errorf("Expected maxHealth defaulted to 18, got %d", s.Entities["enemy-sandbox"].Stats.MaxHealth)
	}
	if s.Rng.Last != 1337 || s.Mode != domain.ModeSandbox {
		t.Errorf("Unexpected rng/mode: %+v %s", s.Rng, s.Mode)
	}
	if len(s.Log) != 0 || s.Log == nil {
		t.Error("Expected empty, non-nil log")
	}
}

func TestApplyAction_SandboxOpening(t *testing.T) {
	s := sandboxState()
	res := ApplyAction(s, heroAttack(), sandboxConfig())

	goblin := res.State.Entities["enemy-sandbox"]
	if goblin.Stats.Health != 11 {
		t.Errorf("Expected Goblin at 11, got %d", goblin.Stats.Health)
	}
	if res.Entry == nil {
		t.Fatal("Expected log entry")
	}
	if res.Entry.Description != "Attack hits for 7" || res.Entry.Delta != -7 {
		t.Errorf("Unexpected entry: %+v", *res.Entry)
	}
	if res.State.Rng.Last != 64538327 {
		t.Errorf("Expected exactly one draw, last=%d", res.State.Rng.Last)
	}

	hero := res.State.Entities["player-sandbox"]
	// 8 (без кита) + round(0.05*10)
	if hero.CE.Current != 9 {
		t.Errorf("Expected CE 9, got %d", hero.CE.Current)
	}
	if !reflect.DeepEqual(hero.Combo.Chain, []string{"attack:basic"}) || hero.Combo.ExpiresAt != 4500 {
		t.Errorf("Unexpected combo: %+v", hero.Combo)
	}

	// Исходное состояние не тронуто
	if s.Entities["enemy-sandbox"].Stats.Health != 18 || len(s.Log) != 0 || s.Rng.Last != 1337 {
		t.Error("ApplyAction mutated its input state")
	}
}

func TestApplyAction_NoOps(t *testing.T) {
	s := sandboxState()

	tests := []struct {
		name   string
		state  domain.CombatState
		action domain.Action
	}{
		{"unknown actor", s, domain.Action{ActorID: "ghost", TargetID: "enemy-sandbox", Type: domain.ActionAttack}},
		{"unknown target", s, domain.Action{ActorID: "player-sandbox", TargetID: "ghost", Type: domain.ActionAttack}},
		{"dead actor", func() domain.CombatState {
			d := s.Clone()
			hero := d.Entities["player-sandbox"]
			hero.Stats.Health = 0
			d.Entities["player-sandbox"] = hero
			return d
		}(), heroAttack()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ApplyAction(tt.state, tt.action, sandboxConfig())
			if res.Entry != nil {
				t.Errorf("Expected no entry, got %+v", *res.Entry)
			}
			if !reflect.DeepEqual(res.State, tt.state) {
				t.Error("Expected state unchanged")
			}
		})
	}
}

func TestApplyAction_BindForcesWait(t *testing.T) {
	s := sandboxState()
	hero := s.Entities["player-sandbox"]
	hero.Statuses = []domain.StatusEffect{{Type: domain.StatusBind, Stacks: 1, DurationMs: 2000}}
	s.Entities["player-sandbox"] = hero

	res := ApplyAction(s, heroAttack(), sandboxConfig())
	if res.Entry.Action != domain.ActionWait || res.Entry.Description != "Waits for an opening" {
		t.Errorf("Expected forced wait, got %+v", *res.Entry)
	}
	if res.State.Entities["enemy-sandbox"].Stats.Health != 18 {
		t.Error("Bound actor must not deal damage")
	}
	// 6 за ожидание + 1 за импульс
	if got := res.State.Entities["player-sandbox"].CE.Current; got != 7 {
		t.Errorf("Expected CE 7, got %d", got)
	}
}

func TestApplyAction_SelfTarget(t *testing.T) {
	s := sandboxState()
	res := ApplyAction(s, domain.Action{ActorID: "player-sandbox", Type: domain.ActionAttack}, sandboxConfig())

	if res.Entry.TargetID != "player-sandbox" {
		t.Errorf("Expected self target, got %q", res.Entry.TargetID)
	}
	// round(8*1.05*0.859016 - 3*0.35) = 6 попадает в лог, но не в здоровье
	if res.Entry.Delta != -6 {
		t.Errorf("Expected logged delta -6, got %d", res.Entry.Delta)
	}
	hero := res.State.Entities["player-sandbox"]
	if hero.Stats.Health != 30 {
		t.Errorf("Expected hero to stay at 30, got %d", hero.Stats.Health)
	}
	if hero.CE.Current != 9 {
		t.Errorf("Expected CE 9, got %d", hero.CE.Current)
	}
}

func TestCreateCombatState_NormalizesStatuses(t *testing.T) {
	s := CreateCombatState([]domain.Entity{
		{
			ID: "burning", Name: "Burning", IsPlayerControlled: true,
			Stats: domain.Stats{Health: 50, Attack: 5, Defense: 1, Speed: 5},
			Statuses: []domain.StatusEffect{
				{Type: domain.StatusBurn, Stacks: 9, DurationMs: 5000},
				{Type: domain.StatusBind, Stacks: 0, DurationMs: 5000},
			},
		},
		{ID: "dummy", Name: "Dummy", Stats: domain.Stats{Health: 10, Speed: 1}},
	}, domain.RngSeed{Seed: 3}, domain.ModePvE)

	e := s.Entities["burning"]
	for _, st := range e.Statuses {
		maxStacks := st.Type.Defaults().MaxStacks
		if st.Stacks < 1 || st.Stacks > maxStacks {
			t.Errorf("%s stacks %d out of [1,%d]", st.Type, st.Stacks, maxStacks)
		}
		if st.Potency == 0 {
			t.Errorf("%s potency not defaulted", st.Type)
		}
	}

	// Bind со стаком 0 после нормализации связывает
	res := ApplyAction(s, domain.Action{ActorID: "burning", TargetID: "dummy", Type: domain.ActionAttack}, Config{})
	if res.Entry.Action != domain.ActionWait {
		t.Errorf("Expected forced wait, got %v", res.Entry.Action)
	}

	// Burn 4*5, а не 4*9
	after := AdvanceTime(s, 1000)
	if got := after.Entities["burning"].Stats.Health; got != 30 {
		t.Errorf("Expected 50-20=30 after one burn tick, got %d", got)
	}
}

func TestApplyAction_PvPBurstPrevented(t *testing.T) {
	oliver, err := kits.NewEntity(kits.OliverAscended, "player-oliver", "Oliver", true)
	if err != nil {
		t.Fatal(err)
	}
	oliver.CE.Current = 100
	rival, _ := kits.NewEntity("sophia", "player-sophia", "Sophia", true)

	s := CreateCombatState([]domain.Entity{oliver, rival}, domain.RngSeed{Seed: 7}, domain.ModePvP)
	burst := domain.Action{ActorID: "player-oliver", TargetID: "player-sophia", Type: domain.ActionBurst}

	res := ApplyAction(s, burst, Config{Mode: domain.ModePvP})
	if res.Entry.Description != "Skill prevented by PvP rules" || res.Entry.Delta != 0 {
		t.Errorf("Unexpected entry: %+v", *res.Entry)
	}
	if res.State.Entities["player-oliver"].CE.Current != 100 {
		t.Error("Prevented burst must not spend CE")
	}
	if res.State.Entities["player-sophia"].Stats.Health != 120 {
		t.Error("Prevented burst must not deal damage")
	}
	if res.State.Rng == s.Rng {
		t.Error("Prevented action still consumes the variance draw")
	}

	// В PvE тот же burst проходит
	res = ApplyAction(s, burst, Config{Mode: domain.ModePvE})
	if res.Entry.Description == "Skill prevented by PvP rules" {
		t.Error("Burst must be allowed outside PvP")
	}
	if got := res.State.Entities["player-oliver"].CE.Current; got != 100-60+1 {
		t.Errorf("Expected CE %d after burst, got %d", 100-60+1, got)
	}
}

func TestApplyAction_BurstWithoutCE(t *testing.T) {
	s := sandboxState()
	res := ApplyAction(s, domain.Action{ActorID: "player-sandbox", TargetID: "enemy-sandbox", Type: domain.ActionBurst}, sandboxConfig())

	if res.Entry.Description != "Burst failed (insufficient CE)" {
		t.Errorf("Unexpected entry: %+v", *res.Entry)
	}
	if res.State.Entities["enemy-sandbox"].Stats.Health != 18 {
		t.Error("Failed burst must not deal damage")
	}
}

func TestAdvanceTurn(t *testing.T) {
	s := sandboxState()

	s = AdvanceTurn(s, sandboxConfig())
	if s.Initiative.CurrentIndex != 1 || s.Round != 1 {
		t.Errorf("Expected index 1 in round 1, got %d/%d", s.Initiative.CurrentIndex, s.Round)
	}
	s = AdvanceTurn(s, sandboxConfig())
	if s.Initiative.CurrentIndex != 0 || s.Round != 2 {
		t.Errorf("Expected wrap to round 2, got %d/%d", s.Initiative.CurrentIndex, s.Round)
	}

	// Пустой порядок не паникует
	empty := CreateCombatState(nil, domain.RngSeed{Seed: 1}, domain.ModePvE)
	if got := AdvanceTurn(empty, Config{}); got.Round != 1 {
		t.Errorf("Expected round unchanged, got %d", got.Round)
	}
}

func TestAdvanceTime(t *testing.T) {
	s := sandboxState()
	goblin := s.Entities["enemy-sandbox"]
	goblin.Statuses = []domain.StatusEffect{{Type: domain.StatusBurn, Stacks: 1, DurationMs: 1500}}
	s.Entities["enemy-sandbox"] = goblin

	s = AdvanceTime(s, 1000)
	if s.TimeMs != 1000 {
		t.Errorf("Expected time 1000, got %d", s.TimeMs)
	}
	if got := s.Entities["enemy-sandbox"].Stats.Health; got != 14 {
		t.Errorf("Expected Burn to deal 4, health %d", got)
	}
	if len(s.Log) != 1 || s.Log[0].Description != "Burn tick" {
		t.Errorf("Unexpected log: %+v", s.Log)
	}
}

func TestSimulateRound_CompletesOnMaxRounds(t *testing.T) {
	actions := []domain.Action{
		heroAttack(),
		{ActorID: "enemy-sandbox", TargetID: "player-sandbox", Type: domain.ActionAttack},
	}
	res := SimulateRound(sandboxState(), actions, Config{MaxRounds: 1})
	if !res.Completed {
		t.Error("Expected simulation to complete after round 1")
	}
	if res.State.Round != 2 {
		t.Errorf("Expected round 2, got %d", res.State.Round)
	}
	if res.State.Mode != domain.ModePvE {
		t.Errorf("Expected configured mode to be stamped, got %s", res.State.Mode)
	}
}

func TestSimulateRound_Deterministic(t *testing.T) {
	var actions []domain.Action
	for i := 0; i < 6; i++ {
		actions = append(actions, heroAttack(),
			domain.Action{ActorID: "enemy-sandbox", TargetID: "player-sandbox", Type: domain.ActionCharge})
	}

	a := SimulateRound(sandboxState(), actions, Config{MaxRounds: 20})
	b := SimulateRound(sandboxState(), actions, Config{MaxRounds: 20})
	if !reflect.DeepEqual(a, b) {
		t.Error("Same seed and actions must produce identical results")
	}
	if !a.Completed {
		t.Error("Goblin should fall within six attacks")
	}
}

func TestBoundsHold(t *testing.T) {
	roster := make([]domain.Entity, 0, 4)
	for i, id := range []string{"sophia", "endrit", "grace", "nona"} {
		e, err := kits.NewEntity(id, id, id, i%2 == 0)
		if err != nil {
			t.Fatal(err)
		}
		roster = append(roster, e)
	}
	s := CreateCombatState(roster, domain.RngSeed{Seed: 99}, domain.ModePvE)
	types := []domain.ActionType{domain.ActionAttack, domain.ActionAbility, domain.ActionCharge, domain.ActionBurst, domain.ActionDefend}

	for i := 0; i < 200; i++ {
		actor := s.Initiative.Current()
		target := roster[(i+1)%len(roster)].ID
		s = Step(s, domain.Action{ActorID: actor, TargetID: target, Type: types[i%len(types)]}, Config{})

		for _, e := range s.Entities {
			if e.Stats.Health < 0 || e.Stats.Health > e.Stats.MaxHealth {
				t.Fatalf("step %d: %s health out of bounds: %d", i, e.ID, e.Stats.Health)
			}
			if e.CE.Current < 0 || e.CE.Current > domain.MaxCE {
				t.Fatalf("step %d: %s CE out of bounds: %d", i, e.ID, e.CE.Current)
			}
			for _, st := range e.Statuses {
				if st.Stacks < 1 || st.Stacks > st.Type.Defaults().MaxStacks {
					t.Fatalf("step %d: %s %s stacks out of bounds: %d", i, e.ID, st.Type, st.Stacks)
				}
			}
		}
	}
}
