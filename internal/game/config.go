package game

import "time"

// BattleConfig carries the tunable parameters of a match. Values are fixed
// once a battle starts.
type BattleConfig struct {
	Level         int           `json:"level"`
	MovePower     int           `json:"move_power"`
	StabBonus     float64       `json:"stab_bonus"`
	RandomMin     float64       `json:"random_min"`
	RandomMax     float64       `json:"random_max"`
	TeamMin       int           `json:"team_min"`
	TeamMax       int           `json:"team_max"`
	TurnDelay     time.Duration `json:"-"`
	SwitchTimeout time.Duration `json:"-"`
}

// DefaultBattleConfig returns the standard tuning used when the server
// configuration does not override it.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		Level:         50,
		MovePower:     80,
		StabBonus:     1.5,
		RandomMin:     0.85,
		RandomMax:     1.0,
		TeamMin:       1,
		TeamMax:       6,
		TurnDelay:     3500 * time.Millisecond,
		SwitchTimeout: 30 * time.Second,
	}
}
