package systems

import "skirmish-server/internal/domain"

// NewRngState создаёт генератор из описания сида. Нулевые параметры заменяются
// стандартными (31-битный генератор Лемера).
func NewRngState(seed domain.RngSeed) domain.RngState {
	s := domain.RngState{
		Seed:       seed.Seed,
		Modulus:    seed.Modulus,
		Multiplier: seed.Multiplier,
		Increment:  seed.Increment,
		Last:       seed.Seed,
	}
	if s.Modulus <= 0 {
		s.Modulus = domain.DefaultModulus
	}
	if s.Multiplier == 0 {
		s.Multiplier = domain.DefaultMultiplier
	}
	return s
}

// NextRandom - чистая функция: возвращает следующее состояние и число в [0, 1).
// Нулевое значение заменяется на Increment, чтобы генератор не застрял в нуле.
func NextRandom(rng domain.RngState) (domain.RngState, float64) {
	next := (rng.Multiplier*rng.Last + rng.Increment) % rng.Modulus
	if next == 0 {
		next = rng.Increment
	}
	rng.Last = next
	return rng, float64(next) / float64(rng.Modulus)
}
