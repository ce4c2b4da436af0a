package domain

// RngSeed - описание генератора. Нулевые поля заменяются значениями по умолчанию.
type RngSeed struct {
	Seed       int64 `json:"seed"`
	Modulus    int64 `json:"modulus,omitempty"`
	Multiplier int64 `json:"multiplier,omitempty"`
	Increment  int64 `json:"increment,omitempty"`
}

// RngState - неизменяемое состояние генератора. Last - последнее выданное сырое значение.
type RngState struct {
	Seed       int64 `json:"seed"`
	Modulus    int64 `json:"modulus"`
	Multiplier int64 `json:"multiplier"`
	Increment  int64 `json:"increment"`
	Last       int64 `json:"last"`
}

// InitiativeTrack - порядок ходов текущего раунда.
type InitiativeTrack struct {
	Order        []string `json:"order"`
	CurrentIndex int      `json:"currentIndex"`
}

// Current возвращает ID того, чей сейчас ход.
func (t InitiativeTrack) Current() string {
	if len(t.Order) == 0 || t.CurrentIndex < 0 || t.CurrentIndex >= len(t.Order) {
		return ""
	}
	return t.Order[t.CurrentIndex]
}

// CombatLogEntry - запись боевого лога.
type CombatLogEntry struct {
	Round       int        `json:"round"`
	ActorID     string     `json:"actorId"`
	TargetID    string     `json:"targetId,omitempty"`
	Action      ActionType `json:"action"`
	Delta       int        `json:"delta"`
	Description string     `json:"description"`
}

// CombatState - авторитетное состояние боя. Это значение: каждый переход
// возвращает новое состояние, старое не меняется.
type CombatState struct {
	Round      int               `json:"round"`
	Entities   map[string]Entity `json:"entities"`
	Initiative InitiativeTrack   `json:"initiative"`
	Log        []CombatLogEntry  `json:"log"`
	Rng        RngState          `json:"rng"`
	TimeMs     int64             `json:"timeMs"`
	Mode       BattleMode        `json:"mode"`

	// EntityOrder - порядок добавления сущностей. Карта в Go не упорядочена,
	// а от порядка обхода зависят тики статусов и расход RNG.
	EntityOrder []string `json:"entityOrder"`
}

// Clone - глубокая копия состояния.
func (s CombatState) Clone() CombatState {
	out := s
	out.Entities = make(map[string]Entity, len(s.Entities))
	for id, e := range s.Entities {
		out.Entities[id] = e.Clone()
	}
	out.Initiative.Order = cloneIDs(s.Initiative.Order)
	out.Log = make([]CombatLogEntry, len(s.Log))
	copy(out.Log, s.Log)
	out.EntityOrder = cloneIDs(s.EntityOrder)
	return out
}

func cloneIDs(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// OrderedEntities возвращает сущности в порядке добавления.
func (s CombatState) OrderedEntities() []Entity {
	out := make([]Entity, 0, len(s.EntityOrder))
	for _, id := range s.EntityOrder {
		if e, ok := s.Entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Entity - поиск по ID.
func (s CombatState) Entity(id string) (Entity, bool) {
	e, ok := s.Entities[id]
	return e, ok
}
