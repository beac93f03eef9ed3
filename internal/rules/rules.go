// Package rules parses room rule presets and validates candidate teams
// against them. Parsing is forgiving: anything outside the closed allow-list
// of values falls back to the unrestricted default instead of erroring.
package rules

import (
	"fmt"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
)

const (
	PresetUnrestricted = "unrestricted"
	PresetStandard     = "standard"
	PresetStrict       = "strict"
	PresetCustom       = "custom"
)

// Default is the unrestricted rule set applied when a room supplies no
// rules or invalid ones.
var Default = game.RoomRules{PresetName: PresetUnrestricted}

var presets = map[string]game.RoomRules{
	PresetUnrestricted: Default,
	PresetStandard: {
		MaxLegendary: intPtr(2),
		MaxStatTotal: intPtr(600),
		PresetName:   PresetStandard,
	},
	PresetStrict: {
		MaxLegendary:     intPtr(0),
		MaxStatTotal:     intPtr(540),
		FullyEvolvedOnly: true,
		PresetName:       PresetStrict,
	},
}

var (
	allowedLegendaryCaps = map[int]bool{0: true, 1: true, 2: true}
	allowedStatCaps      = map[int]bool{500: true, 540: true, 600: true}
)

// Input is the client-submitted rules payload attached to room creation.
type Input struct {
	Preset           string `json:"preset"`
	MaxLegendary     *int   `json:"max_legendary"`
	MaxStatTotal     *int   `json:"max_stat_total"`
	FullyEvolvedOnly bool   `json:"fully_evolved_only"`
}

// Preset returns the named preset rule set.
func Preset(name string) (game.RoomRules, bool) {
	r, ok := presets[name]
	return r, ok
}

// Parse converts client input into an immutable rule set. A known preset
// name wins over custom fields; custom caps outside the allow-lists are
// dropped (treated as unrestricted) rather than rejected.
func Parse(in *Input) game.RoomRules {
	if in == nil {
		return Default
	}
	if r, ok := presets[in.Preset]; ok {
		return r
	}

	out := game.RoomRules{PresetName: PresetCustom, FullyEvolvedOnly: in.FullyEvolvedOnly}
	if in.MaxLegendary != nil && allowedLegendaryCaps[*in.MaxLegendary] {
		out.MaxLegendary = intPtr(*in.MaxLegendary)
	}
	if in.MaxStatTotal != nil && allowedStatCaps[*in.MaxStatTotal] {
		out.MaxStatTotal = intPtr(*in.MaxStatTotal)
	}
	return out
}

// ValidateTeam checks every member against the rule set and returns one
// message per violation. An empty result means the team passes. Validation
// collects all violations rather than stopping at the first.
func ValidateTeam(r game.RoomRules, team []game.TeamMemberFacts) []string {
	var errs []string

	if r.MaxLegendary != nil {
		count := 0
		for _, m := range team {
			if m.IsLegendary || m.IsMythical {
				count++
			}
		}
		if count > *r.MaxLegendary {
			if *r.MaxLegendary == 0 {
				errs = append(errs, "legendary and mythical Pokémon are not allowed in this room")
			} else {
				errs = append(errs, fmt.Sprintf("at most %d legendary/mythical Pokémon allowed (team has %d)", *r.MaxLegendary, count))
			}
		}
	}

	if r.MaxStatTotal != nil {
		for _, m := range team {
			if m.Total > *r.MaxStatTotal {
				errs = append(errs, fmt.Sprintf("#%d: stat total %d exceeds the limit of %d", m.ID, m.Total, *r.MaxStatTotal))
			}
		}
	}

	if r.FullyEvolvedOnly {
		for _, m := range team {
			if !m.IsFullyEvolved {
				errs = append(errs, fmt.Sprintf("#%d is not fully evolved", m.ID))
			}
		}
	}

	return errs
}

func intPtr(v int) *int { return &v }
