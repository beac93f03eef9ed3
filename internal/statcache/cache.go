// Package statcache keeps battle stats in memory in front of the catalog
// repository. Stats are immutable, so entries never expire; a singleflight
// group collapses concurrent loads of the same id so simultaneous battle
// starts hit the database once per creature.
package statcache

import (
	"strconv"
	"sync"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"

	"golang.org/x/sync/singleflight"
)

type statsFetcher interface {
	FetchBattleStats(ids []int) ([]game.PokemonStats, error)
}

type Cache struct {
	repo  statsFetcher
	group singleflight.Group

	mu   sync.RWMutex
	byID map[int]game.PokemonStats
}

func New(repo statsFetcher) *Cache {
	return &Cache{repo: repo, byID: make(map[int]game.PokemonStats)}
}

// FetchBattleStats mirrors the repository contract: input order preserved,
// unknown ids omitted.
func (c *Cache) FetchBattleStats(ids []int) ([]game.PokemonStats, error) {
	out := make([]game.PokemonStats, 0, len(ids))
	for _, id := range ids {
		stats, ok, err := c.get(id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, stats)
		}
	}
	return out, nil
}

func (c *Cache) get(id int) (game.PokemonStats, bool, error) {
	c.mu.RLock()
	stats, ok := c.byID[id]
	c.mu.RUnlock()
	if ok {
		return stats, true, nil
	}

	v, err, _ := c.group.Do(strconv.Itoa(id), func() (interface{}, error) {
		c.mu.RLock()
		stats, ok := c.byID[id]
		c.mu.RUnlock()
		if ok {
			return stats, nil
		}

		rows, err := c.repo.FetchBattleStats([]int{id})
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			// unknown id; not cached so a later import is picked up
			return nil, nil
		}
		c.mu.Lock()
		c.byID[id] = rows[0]
		c.mu.Unlock()
		return rows[0], nil
	})
	if err != nil {
		return game.PokemonStats{}, false, err
	}
	if v == nil {
		return game.PokemonStats{}, false, nil
	}
	return v.(game.PokemonStats), true, nil
}
