package engine

import (
	"math"
	"math/rand"
	"strings"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
)

// CalculateDamage resolves a single fixed-power attack. The attack type is
// the attacker's best type against the defender; the physical/special split
// follows the attacker's higher base offensive stat. The rng draw is the
// only source of nondeterminism, so callers inject it.
func CalculateDamage(attacker, defender *game.Combatant, cfg game.BattleConfig, rng *rand.Rand) (int, float64, string) {
	aStats := attacker.Stats
	dStats := defender.Stats

	attackType, typeMult := BestAttackType(aStats.Type1, aStats.Type2, dStats.Type1, dStats.Type2)

	var atkVal, defVal int
	if aStats.BaseAttack >= aStats.BaseSpAttack {
		atkVal = aStats.BattleAttack()
		defVal = dStats.BattleDefense()
	} else {
		atkVal = aStats.BattleSpAttack()
		defVal = dStats.BattleSpDefense()
	}

	level := float64(cfg.Level)
	power := float64(cfg.MovePower)
	raw := math.Floor((2*level/5+2)*power*float64(atkVal)/(float64(defVal)*50) + 2)

	stab := 1.0
	if isStab(attackType, aStats) {
		stab = cfg.StabBonus
	}
	randFactor := cfg.RandomMin + rng.Float64()*(cfg.RandomMax-cfg.RandomMin)

	damage := int(math.Floor(raw * typeMult * stab * randFactor))
	if damage < 1 {
		damage = 1
	}
	return damage, typeMult, attackType
}

func isStab(attackType string, stats game.PokemonStats) bool {
	if strings.EqualFold(attackType, stats.Type1) {
		return true
	}
	return stats.Type2 != "" && strings.EqualFold(attackType, stats.Type2)
}
