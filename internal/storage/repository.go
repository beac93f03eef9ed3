package storage

import (
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
)

// Repository is the read surface the battle service consumes from the
// catalog store. The catalog itself is populated by the separate ingestion
// tooling; this service only reads it.
type Repository interface {
	// FetchBattleStats returns battle stats for the given ids, preserving
	// input order and silently omitting unknown ids.
	FetchBattleStats(ids []int) ([]game.PokemonStats, error)
	// FetchTeamValidationData returns rule-checking facts for the given
	// ids in input order. A result shorter than ids means at least one id
	// does not exist.
	FetchTeamValidationData(ids []int) ([]game.TeamMemberFacts, error)
	// ListPokemon returns the flat catalog used by the team picker.
	ListPokemon() ([]game.PokemonSummary, error)
	// ListTypes returns the distinct type names present in the catalog.
	ListTypes() ([]string, error)
	CountPokemon() (int64, error)
}
