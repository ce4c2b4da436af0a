package systems

import (
	"testing"

	"skirmish-server/internal/domain"
)

func TestUpdateChargeMeter(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		delta    int
		wantCur  int
		wantTier int
	}{
		{"below first tier", 0, 20, 20, 0},
		{"first tier", 0, 30, 30, 1},
		{"exact threshold", 25, 25, 50, 2},
		{"capped", 90, 200, 100, 4},
		{"floored", 40, -500, 0, 0},
		{"burst spend", 75, -50, 25, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := domain.NewChargeMeter()
			ce.Current = tt.start
			got := UpdateChargeMeter(ce, tt.delta)
			if got.Current != tt.wantCur || got.Tier != tt.wantTier {
				t.Errorf("Expected %d/%d, got %d/%d", tt.wantCur, tt.wantTier, got.Current, got.Tier)
			}
		})
	}
}

func TestUpdateCombo(t *testing.T) {
	c := UpdateCombo(domain.ComboState{}, "attack:basic", 0, 4500)
	if len(c.Chain) != 1 || c.ExpiresAt != 4500 || c.Momentum != 0.05 {
		t.Fatalf("Unexpected first link: %+v", c)
	}

	c = UpdateCombo(c, "attack:basic", 1000, 4500)
	if len(c.Chain) != 2 || c.ExpiresAt != 5500 {
		t.Errorf("Expected chain to grow, got %+v", c)
	}

	// Окно истекло - цепочка начинается заново
	c = UpdateCombo(c, "charge:basic", 6000, 4500)
	if len(c.Chain) != 1 || c.Chain[0] != "charge:basic" {
		t.Errorf("Expected chain reset, got %+v", c.Chain)
	}
}

func TestUpdateCombo_MomentumCap(t *testing.T) {
	c := domain.ComboState{}
	for i := 0; i < 30; i++ {
		c = UpdateCombo(c, "attack:basic", int64(i*100), 4500)
	}
	if c.Momentum != domain.MomentumCap {
		t.Errorf("Expected momentum capped at %v, got %v", domain.MomentumCap, c.Momentum)
	}
}
