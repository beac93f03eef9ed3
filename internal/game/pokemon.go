package game

// Pokemon is the persisted catalog entry. The primary key is the canonical
// national-dex id supplied by the upstream data source, not an
// auto-increment, so battle and validation lookups can use client ids
// directly.
type Pokemon struct {
	ID         int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	NameEN     string `json:"name_en" gorm:"index"`
	NameZH     string `json:"name_zh"`
	Type1      string `json:"type1"`
	Type2      string `json:"type2"` // empty when single-typed
	SpritePath string `json:"sprite_path"`
	Generation int    `json:"generation"`

	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"sp_attack"`
	SpDefense int `json:"sp_defense"`
	Speed     int `json:"speed"`
	Total     int `json:"total"`

	IsLegendary    bool `json:"is_legendary"`
	IsMythical     bool `json:"is_mythical"`
	IsFullyEvolved bool `json:"is_fully_evolved"`
}

func (Pokemon) TableName() string { return "pokemon" }

// BattleStats projects the persisted row into the immutable battle view.
func (p Pokemon) BattleStats() PokemonStats {
	name := p.NameZH
	if name == "" {
		name = p.NameEN
	}
	return PokemonStats{
		PokemonID:     p.ID,
		Name:          name,
		NameEN:        p.NameEN,
		SpritePath:    p.SpritePath,
		BaseHP:        p.HP,
		BaseAttack:    p.Attack,
		BaseDefense:   p.Defense,
		BaseSpAttack:  p.SpAttack,
		BaseSpDefense: p.SpDefense,
		BaseSpeed:     p.Speed,
		Type1:         p.Type1,
		Type2:         p.Type2,
	}
}

// Facts projects the persisted row into the rule-checking record.
func (p Pokemon) Facts() TeamMemberFacts {
	return TeamMemberFacts{
		ID:             p.ID,
		Total:          p.Total,
		IsLegendary:    p.IsLegendary,
		IsMythical:     p.IsMythical,
		IsFullyEvolved: p.IsFullyEvolved,
	}
}

// PokemonSummary is the flat catalog row served to the team picker.
type PokemonSummary struct {
	ID         int    `json:"id"`
	NameEN     string `json:"name_en"`
	NameZH     string `json:"name_zh"`
	Type1      string `json:"type1"`
	Type2      string `json:"type2"`
	Total      int    `json:"total"`
	SpritePath string `json:"sprite_path"`
	Generation int    `json:"generation"`
}
