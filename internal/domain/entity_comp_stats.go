package domain

// WithDamage возвращает характеристики после урона. Отрицательный урон лечит.
// Здоровье всегда остается в [0, MaxHealth].
func (s Stats) WithDamage(amount int) Stats {
	s.Health = s.capHealth(s.Health - amount)
	return s
}

// WithHealing лечит, но не выше MaxHealth.
func (s Stats) WithHealing(amount int) Stats {
	if amount < 0 {
		amount = 0
	}
	s.Health = s.capHealth(s.Health + amount)
	return s
}

func (s Stats) capHealth(hp int) int {
	if s.MaxHealth <= 0 {
		// Не нормализованная сущность: ограничиваем только снизу
		if hp < 0 {
			return 0
		}
		return hp
	}
	return clampInt(hp, 0, s.MaxHealth)
}
