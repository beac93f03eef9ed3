package engine

import "strings"

// typeChart holds the standard 18-type effectiveness multipliers. Only
// matchups that differ from 1.0 are listed; lookups default to neutral.
// Keys are lower-case English type names (attacker -> defender -> multiplier).
var typeChart = map[string]map[string]float64{
	"normal":   {"rock": 0.5, "ghost": 0, "steel": 0.5},
	"fire":     {"fire": 0.5, "water": 0.5, "grass": 2, "ice": 2, "bug": 2, "rock": 0.5, "dragon": 0.5, "steel": 2},
	"water":    {"fire": 2, "water": 0.5, "grass": 0.5, "ground": 2, "rock": 2, "dragon": 0.5},
	"electric": {"water": 2, "electric": 0.5, "grass": 0.5, "ground": 0, "flying": 2, "dragon": 0.5},
	"grass":    {"fire": 0.5, "water": 2, "grass": 0.5, "poison": 0.5, "ground": 2, "flying": 0.5, "bug": 0.5, "rock": 2, "dragon": 0.5, "steel": 0.5},
	"ice":      {"fire": 0.5, "water": 0.5, "grass": 2, "ice": 0.5, "ground": 2, "flying": 2, "dragon": 2, "steel": 0.5},
	"fighting": {"normal": 2, "ice": 2, "poison": 0.5, "flying": 0.5, "psychic": 0.5, "bug": 0.5, "rock": 2, "ghost": 0, "dark": 2, "steel": 2, "fairy": 0.5},
	"poison":   {"grass": 2, "poison": 0.5, "ground": 0.5, "rock": 0.5, "ghost": 0.5, "steel": 0, "fairy": 2},
	"ground":   {"fire": 2, "electric": 2, "grass": 0.5, "poison": 2, "flying": 0, "bug": 0.5, "rock": 2, "steel": 2},
	"flying":   {"electric": 0.5, "grass": 2, "fighting": 2, "bug": 2, "rock": 0.5, "steel": 0.5},
	"psychic":  {"fighting": 2, "poison": 2, "psychic": 0.5, "dark": 0, "steel": 0.5},
	"bug":      {"fire": 0.5, "grass": 2, "fighting": 0.5, "poison": 0.5, "flying": 0.5, "psychic": 2, "ghost": 0.5, "dark": 2, "steel": 0.5, "fairy": 0.5},
	"rock":     {"fire": 2, "ice": 2, "fighting": 0.5, "ground": 0.5, "flying": 2, "bug": 2, "steel": 0.5},
	"ghost":    {"normal": 0, "psychic": 2, "ghost": 2, "dark": 0.5},
	"dragon":   {"dragon": 2, "steel": 0.5, "fairy": 0},
	"dark":     {"fighting": 0.5, "psychic": 2, "ghost": 2, "dark": 0.5, "fairy": 0.5},
	"steel":    {"fire": 0.5, "water": 0.5, "electric": 0.5, "ice": 2, "rock": 2, "steel": 0.5, "fairy": 2},
	"fairy":    {"fire": 0.5, "fighting": 2, "poison": 0.5, "dragon": 2, "dark": 2, "steel": 0.5},
}

// Effectiveness returns the chart multiplier for a single attack type
// against a single defending type. Unknown types are treated as neutral.
func Effectiveness(attackType, defenderType string) float64 {
	row, ok := typeChart[strings.ToLower(attackType)]
	if !ok {
		return 1.0
	}
	mult, ok := row[strings.ToLower(defenderType)]
	if !ok {
		return 1.0
	}
	return mult
}

// multiplierAgainst computes the combined multiplier of one attack type
// against a possibly dual-typed defender. An absent second type contributes
// a neutral 1.0.
func multiplierAgainst(attackType, defType1, defType2 string) float64 {
	mult := Effectiveness(attackType, defType1)
	if defType2 != "" {
		mult *= Effectiveness(attackType, defType2)
	}
	return mult
}

// BestAttackType picks, among the attacker's one or two types, the one with
// the highest combined multiplier against the defender. Ties go to the
// attacker's first-listed type.
func BestAttackType(atkType1, atkType2, defType1, defType2 string) (string, float64) {
	best := atkType1
	bestMult := multiplierAgainst(atkType1, defType1, defType2)
	if atkType2 != "" {
		if mult := multiplierAgainst(atkType2, defType1, defType2); mult > bestMult {
			best = atkType2
			bestMult = mult
		}
	}
	return best, bestMult
}
