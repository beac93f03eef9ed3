package game

// PokemonStats is the immutable battle-side view of one catalog entry.
// Derived battle stats follow the fixed formulas used across the simulator:
// every non-HP stat is base*2+5, HP is base*2+110.
type PokemonStats struct {
	PokemonID  int    `json:"pokemon_id"`
	Name       string `json:"name"`
	NameEN     string `json:"name_en"`
	SpritePath string `json:"sprite_path"`

	BaseHP        int `json:"-"`
	BaseAttack    int `json:"-"`
	BaseDefense   int `json:"-"`
	BaseSpAttack  int `json:"-"`
	BaseSpDefense int `json:"-"`
	BaseSpeed     int `json:"-"`

	Type1 string `json:"type1"`
	// Type2 is empty for single-typed Pokémon.
	Type2 string `json:"type2"`
}

func (s PokemonStats) BattleHP() int        { return s.BaseHP*2 + 110 }
func (s PokemonStats) BattleAttack() int    { return s.BaseAttack*2 + 5 }
func (s PokemonStats) BattleDefense() int   { return s.BaseDefense*2 + 5 }
func (s PokemonStats) BattleSpAttack() int  { return s.BaseSpAttack*2 + 5 }
func (s PokemonStats) BattleSpDefense() int { return s.BaseSpDefense*2 + 5 }
func (s PokemonStats) BattleSpeed() int     { return s.BaseSpeed*2 + 5 }

// Combatant is one creature instance inside a match. Current HP is mutable
// and owned exclusively by the battle engine for the duration of the match.
type Combatant struct {
	Stats     PokemonStats
	Team      int
	Index     int
	CurrentHP int
	MaxHP     int
	Alive     bool
}

func NewCombatant(stats PokemonStats, team, index int) *Combatant {
	hp := stats.BattleHP()
	return &Combatant{
		Stats:     stats,
		Team:      team,
		Index:     index,
		CurrentHP: hp,
		MaxHP:     hp,
		Alive:     true,
	}
}

// NewTeam builds a slice of combatants preserving the given stats order as
// the team slot order.
func NewTeam(stats []PokemonStats, team int) []*Combatant {
	out := make([]*Combatant, 0, len(stats))
	for i, s := range stats {
		out = append(out, NewCombatant(s, team, i))
	}
	return out
}

// DisplayName prefers the localized name and falls back to English.
func (c *Combatant) DisplayName() string {
	if c.Stats.Name != "" {
		return c.Stats.Name
	}
	return c.Stats.NameEN
}

// CombatantView is the client-facing snapshot of a combatant.
type CombatantView struct {
	PokemonID  int    `json:"pokemon_id"`
	Name       string `json:"name"`
	NameEN     string `json:"name_en"`
	SpritePath string `json:"sprite_path"`
	Team       int    `json:"team"`
	Index      int    `json:"index"`
	CurrentHP  int    `json:"current_hp"`
	MaxHP      int    `json:"max_hp"`
	Alive      bool   `json:"alive"`
	Type1      string `json:"type1"`
	Type2      string `json:"type2"`
	Speed      int    `json:"speed"`
}

func (c *Combatant) View() CombatantView {
	return CombatantView{
		PokemonID:  c.Stats.PokemonID,
		Name:       c.DisplayName(),
		NameEN:     c.Stats.NameEN,
		SpritePath: c.Stats.SpritePath,
		Team:       c.Team,
		Index:      c.Index,
		CurrentHP:  c.CurrentHP,
		MaxHP:      c.MaxHP,
		Alive:      c.Alive,
		Type1:      c.Stats.Type1,
		Type2:      c.Stats.Type2,
		Speed:      c.Stats.BattleSpeed(),
	}
}

// TurnEvent is the immutable record of one resolved attack.
type TurnEvent struct {
	Turn          int     `json:"turn"`
	Type          string  `json:"type"`
	AttackerName  string  `json:"attacker_name"`
	DefenderName  string  `json:"defender_name"`
	AttackType    string  `json:"attack_type"`
	Damage        int     `json:"damage"`
	Effectiveness float64 `json:"effectiveness"`
	DefenderHP    int     `json:"defender_hp"`
	DefenderMaxHP int     `json:"defender_max_hp"`
	IsFainted     bool    `json:"is_fainted"`
	AttackerTeam  int     `json:"attacker_team"`
	DefenderTeam  int     `json:"defender_team"`
}

const TurnEventAttack = "attack"
