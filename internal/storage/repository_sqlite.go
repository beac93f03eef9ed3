package storage

import (
	"sort"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) FetchBattleStats(ids []int) ([]game.PokemonStats, error) {
	rows, err := r.fetchByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]game.PokemonStats, 0, len(ids))
	for _, id := range ids {
		if row, ok := rows[id]; ok {
			out = append(out, row.BattleStats())
		}
	}
	return out, nil
}

func (r *sqliteRepository) FetchTeamValidationData(ids []int) ([]game.TeamMemberFacts, error) {
	rows, err := r.fetchByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]game.TeamMemberFacts, 0, len(ids))
	for _, id := range ids {
		if row, ok := rows[id]; ok {
			out = append(out, row.Facts())
		}
	}
	return out, nil
}

func (r *sqliteRepository) fetchByIDs(ids []int) (map[int]game.Pokemon, error) {
	if len(ids) == 0 {
		return map[int]game.Pokemon{}, nil
	}
	var rows []game.Pokemon
	if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[int]game.Pokemon, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	return byID, nil
}

func (r *sqliteRepository) ListPokemon() ([]game.PokemonSummary, error) {
	var rows []game.Pokemon
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]game.PokemonSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, game.PokemonSummary{
			ID:         p.ID,
			NameEN:     p.NameEN,
			NameZH:     p.NameZH,
			Type1:      p.Type1,
			Type2:      p.Type2,
			Total:      p.Total,
			SpritePath: p.SpritePath,
			Generation: p.Generation,
		})
	}
	return out, nil
}

func (r *sqliteRepository) ListTypes() ([]string, error) {
	var primary, secondary []string
	if err := r.db.Model(&game.Pokemon{}).Distinct().Pluck("type1", &primary).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&game.Pokemon{}).Where("type2 != ''").Distinct().Pluck("type2", &secondary).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(primary)+len(secondary))
	out := make([]string, 0, len(primary)+len(secondary))
	for _, t := range append(primary, secondary...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func (r *sqliteRepository) CountPokemon() (int64, error) {
	var count int64
	err := r.db.Model(&game.Pokemon{}).Count(&count).Error
	return count, err
}
