package engine

import (
	"encoding/json"
	"reflect"
	"testing"

	"skirmish-server/internal/domain"
)

func TestPlayTurn_RunsAITurn(t *testing.T) {
	s := sandboxState()
	res := PlayTurn(s, heroAttack(), sandboxConfig())

	if got := res.State.Initiative.Current(); got != "player-sandbox" {
		t.Errorf("Expected turn back to the hero, got %s", got)
	}
	if res.State.Round != 2 {
		t.Errorf("Expected round 2, got %d", res.State.Round)
	}
	if len(res.Entries) < 2 {
		t.Fatalf("Expected hero and goblin entries, got %+v", res.Entries)
	}
	last := res.Entries[len(res.Entries)-1]
	if last.ActorID != "enemy-sandbox" || last.Action != domain.ActionAttack {
		t.Errorf("Expected goblin attack last, got %+v", last)
	}
	if res.Outcome.Finished {
		t.Error("Combat should not be finished after one exchange")
	}
}

func TestPlayTurn_FinishesCombat(t *testing.T) {
	s := sandboxState()
	var res TurnResult
	for i := 0; i < 20; i++ {
		res = PlayTurn(s, heroAttack(), sandboxConfig())
		s = res.State
		if res.Outcome.Finished {
			break
		}
	}
	if !res.Outcome.Finished {
		t.Fatal("Expected combat to finish")
	}
	if len(res.Outcome.Winners) != 1 {
		t.Errorf("Expected a single winner, got %v", res.Outcome.Winners)
	}
}

func TestResolveOutcome(t *testing.T) {
	player := func(id string, hp int) domain.Entity {
		return domain.Entity{ID: id, IsPlayerControlled: true, Stats: domain.Stats{Health: hp, Speed: 1}}
	}

	tests := []struct {
		name     string
		roster   []domain.Entity
		finished bool
		winners  []string
	}{
		{"pvp ongoing", []domain.Entity{player("a", 10), player("b", 10)}, false, []string{}},
		{"pvp decided", []domain.Entity{player("a", 10), player("b", 0)}, true, []string{"a"}},
		{"pve enemies dead", []domain.Entity{player("a", 10), {ID: "g", Stats: domain.Stats{Health: 0}}}, true, []string{"a"}},
		{"pve players dead", []domain.Entity{player("a", 0), {ID: "g", Stats: domain.Stats{Health: 5}}}, true, []string{"g"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := CreateCombatState(tt.roster, domain.RngSeed{Seed: 1}, domain.ModePvE)
			got := ResolveOutcome(s)
			if got.Finished != tt.finished || !reflect.DeepEqual(got.Winners, tt.winners) {
				t.Errorf("Expected %v %v, got %+v", tt.finished, tt.winners, got)
			}
		})
	}
}

func TestStartMatch_AIOpens(t *testing.T) {
	fast := domain.Entity{ID: "wolf", Name: "Wolf", Stats: domain.Stats{Health: 20, Attack: 4, Defense: 1, Speed: 9}}
	hero := domain.Entity{ID: "hero", Name: "Hero", IsPlayerControlled: true, Stats: domain.Stats{Health: 30, Attack: 8, Defense: 3, Speed: 6}}

	s := StartMatch([]domain.Entity{hero, fast}, domain.RngSeed{Seed: 5}, Config{Mode: domain.ModePvE})
	if s.Initiative.Current() != "hero" {
		t.Errorf("Expected hero to be waiting for input, got %s", s.Initiative.Current())
	}
	if len(s.Log) == 0 || s.Log[0].ActorID != "wolf" {
		t.Errorf("Expected wolf to act first, log %+v", s.Log)
	}
}

func TestReplay_ReproducesSession(t *testing.T) {
	roster := []domain.Entity{
		{ID: "player-sandbox", Name: "Hero", IsPlayerControlled: true, Stats: domain.Stats{Health: 30, Attack: 8, Defense: 3, Speed: 6}},
		{ID: "enemy-sandbox", Name: "Goblin", Stats: domain.Stats{Health: 18, Attack: 5, Defense: 2, Speed: 4}},
	}
	seed := domain.RngSeed{Seed: 1337}
	cfg := sandboxConfig()

	live := StartMatch(roster, seed, cfg)
	rec := domain.ReplaySession{MatchID: "sandbox", Seed: seed, Mode: domain.ModeSandbox}
	rec.Roster, _ = json.Marshal(roster)

	for _, a := range []domain.Action{heroAttack(), heroAttack()} {
		ra, err := domain.NewReplayAction(live.Round, a)
		if err != nil {
			t.Fatal(err)
		}
		rec.Actions = append(rec.Actions, ra)
		live = PlayTurn(live, a, cfg).State
	}

	replayed, err := Replay(rec, Config{})
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if !reflect.DeepEqual(replayed, live) {
		t.Error("Replayed state differs from the live session")
	}
}

func TestReplay_BadRoster(t *testing.T) {
	_, err := Replay(domain.ReplaySession{Roster: json.RawMessage(`{`)}, Config{})
	if err == nil {
		t.Error("Expected roster decode error")
	}
}
