package statcache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
)

type fakeRepo struct {
	mu    sync.Mutex
	stats map[int]game.PokemonStats
	calls int32
	err   error
}

func (f *fakeRepo) FetchBattleStats(ids []int) ([]game.PokemonStats, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]game.PokemonStats, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.stats[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func newFakeRepo(ids ...int) *fakeRepo {
	stats := make(map[int]game.PokemonStats, len(ids))
	for _, id := range ids {
		stats[id] = game.PokemonStats{PokemonID: id, NameEN: "p", Type1: "normal", BaseHP: id}
	}
	return &fakeRepo{stats: stats}
}

func TestFetchBattleStats_CachesAfterFirstLoad(t *testing.T) {
	repo := newFakeRepo(25)
	cache := New(repo)

	for i := 0; i < 3; i++ {
		rows, err := cache.FetchBattleStats([]int{25})
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if len(rows) != 1 || rows[0].PokemonID != 25 {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	}
	if got := atomic.LoadInt32(&repo.calls); got != 1 {
		t.Fatalf("expected a single repository call, got %d", got)
	}
}

func TestFetchBattleStats_PreservesOrderSkipsUnknown(t *testing.T) {
	repo := newFakeRepo(1, 2, 3)
	cache := New(repo)

	rows, err := cache.FetchBattleStats([]int{3, 999, 1})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 2 || rows[0].PokemonID != 3 || rows[1].PokemonID != 1 {
		t.Fatalf("expected ids [3 1], got %+v", rows)
	}
}

func TestFetchBattleStats_UnknownIDNotCached(t *testing.T) {
	repo := newFakeRepo()
	cache := New(repo)

	if rows, err := cache.FetchBattleStats([]int{7}); err != nil || len(rows) != 0 {
		t.Fatalf("expected empty result, got %v %v", rows, err)
	}

	// a later import of the id must be visible
	repo.mu.Lock()
	repo.stats[7] = game.PokemonStats{PokemonID: 7, NameEN: "p", Type1: "water"}
	repo.mu.Unlock()

	rows, err := cache.FetchBattleStats([]int{7})
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected the imported row, got %v %v", rows, err)
	}
}

func TestFetchBattleStats_PropagatesErrors(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	cache := New(repo)

	if _, err := cache.FetchBattleStats([]int{1}); err == nil {
		t.Fatal("expected the repository error to surface")
	}
	if got := atomic.LoadInt32(&repo.calls); got != 1 {
		t.Fatalf("expected one call, got %d", got)
	}
	// errors are not cached either
	cache.FetchBattleStats([]int{1})
	if got := atomic.LoadInt32(&repo.calls); got != 2 {
		t.Fatalf("expected a retry on the next fetch, got %d calls", got)
	}
}

func TestFetchBattleStats_ConcurrentLoadsCollapse(t *testing.T) {
	repo := newFakeRepo(150)
	cache := New(repo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows, err := cache.FetchBattleStats([]int{150})
			if err != nil || len(rows) != 1 {
				t.Errorf("fetch: rows=%v err=%v", rows, err)
			}
		}()
	}
	wg.Wait()

	// collapsed loads plus at most a few stragglers that missed the window
	if got := atomic.LoadInt32(&repo.calls); got > 5 {
		t.Fatalf("expected collapsed loads, got %d repository calls", got)
	}
}
