package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
)

// State is the turn machine state of a match.
type State string

const (
	StateReady         State = "ready"
	StateWaitingSwitch State = "waiting_switch"
	StateFinished      State = "finished"
)

// Engine resolves a 1v1 match one turn at a time.
//
// States: ready -> (waiting_switch) -> ready -> ... -> finished.
//
// The engine is safe for concurrent use: the room's turn loop drives it,
// while switch selections and disconnect teardown arrive from connection
// handlers.
type Engine struct {
	mu  sync.Mutex
	cfg game.BattleConfig
	rng *rand.Rand

	team1 []*game.Combatant
	team2 []*game.Combatant

	active1 *game.Combatant
	active2 *game.Combatant

	turn        int
	state       State
	finished    bool
	winnerTeam  int // 0 until decided
	waitingTeam int // 0 unless state is waiting_switch
}

// New creates an engine over two non-empty teams. A nil rng gets a
// time-seeded source; tests pass a fixed seed.
func New(team1, team2 []*game.Combatant, cfg game.BattleConfig, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		cfg:     cfg,
		rng:     rng,
		team1:   team1,
		team2:   team2,
		active1: team1[0],
		active2: team2[0],
		state:   StateReady,
	}
}

// ExecuteTurn resolves one turn: both active combatants attack in speed
// order, faster first, equal speed decided by a coin flip. A fainting
// defender suppresses the counter-attack. Returns the events generated, or
// nothing when the engine is not ready.
func (e *Engine) ExecuteTurn() []game.TurnEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished || e.state != StateReady {
		return nil
	}

	e.turn++
	events := make([]game.TurnEvent, 0, 2)

	first, second := e.active1, e.active2
	speed1 := first.Stats.BattleSpeed()
	speed2 := second.Stats.BattleSpeed()
	if speed2 > speed1 || (speed1 == speed2 && e.rng.Intn(2) == 1) {
		first, second = second, first
	}

	attackEvent := e.doAttack(first, second)
	events = append(events, attackEvent)

	if attackEvent.IsFainted {
		if e.teamDefeated(second.Team) {
			e.finish(first.Team)
			return events
		}
		e.waitingTeam = second.Team
		e.state = StateWaitingSwitch
		return events
	}

	counterEvent := e.doAttack(second, first)
	events = append(events, counterEvent)

	if counterEvent.IsFainted {
		if e.teamDefeated(first.Team) {
			e.finish(second.Team)
			return events
		}
		e.waitingTeam = first.Team
		e.state = StateWaitingSwitch
	}

	return events
}

// SwitchPokemon activates the living teammate at index for the given team.
// On a bad index or a fainted target it reports false and leaves the state
// unchanged; on success it returns a snapshot of the new active combatant.
func (e *Engine) SwitchPokemon(team, index int) (game.CombatantView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.switchLocked(team, index)
}

// AutoSwitch activates the first living teammate by slot order. Used as the
// timeout fallback when a player does not choose in time.
func (e *Engine) AutoSwitch(team int) (game.CombatantView, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range e.teamOf(team) {
		if c.Alive {
			return e.switchLocked(team, c.Index)
		}
	}
	return game.CombatantView{}, false
}

// ForceFinish terminates the match immediately, recording winnerTeam (0 for
// no winner). Used when a player leaves or the turn loop fails.
func (e *Engine) ForceFinish(winnerTeam int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished {
		return
	}
	e.finish(winnerTeam)
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished
}

func (e *Engine) Turn() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.turn
}

func (e *Engine) WinnerTeam() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.winnerTeam
}

// WaitingSwitchTeam returns the team that must nominate a replacement, or 0.
func (e *Engine) WaitingSwitchTeam() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.waitingTeam
}

// ActiveView snapshots the active combatant of a team.
func (e *Engine) ActiveView(team int) game.CombatantView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeOf(team).View()
}

// TeamViews snapshots a whole team in slot order.
func (e *Engine) TeamViews(team int) []game.CombatantView {
	e.mu.Lock()
	defer e.mu.Unlock()

	members := e.teamOf(team)
	out := make([]game.CombatantView, 0, len(members))
	for _, c := range members {
		out = append(out, c.View())
	}
	return out
}

// AliveViews snapshots the living members of a team in slot order.
func (e *Engine) AliveViews(team int) []game.CombatantView {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []game.CombatantView{}
	for _, c := range e.teamOf(team) {
		if c.Alive {
			out = append(out, c.View())
		}
	}
	return out
}

func (e *Engine) TeamSize(team int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.teamOf(team))
}

// --- internal (callers hold e.mu) --------------------------------------

func (e *Engine) teamOf(team int) []*game.Combatant {
	if team == 1 {
		return e.team1
	}
	return e.team2
}

func (e *Engine) activeOf(team int) *game.Combatant {
	if team == 1 {
		return e.active1
	}
	return e.active2
}

func (e *Engine) teamDefeated(team int) bool {
	for _, c := range e.teamOf(team) {
		if c.Alive {
			return false
		}
	}
	return true
}

func (e *Engine) switchLocked(team, index int) (game.CombatantView, bool) {
	members := e.teamOf(team)
	if index < 0 || index >= len(members) {
		return game.CombatantView{}, false
	}
	chosen := members[index]
	if !chosen.Alive {
		return game.CombatantView{}, false
	}

	if team == 1 {
		e.active1 = chosen
	} else {
		e.active2 = chosen
	}
	e.waitingTeam = 0
	e.state = StateReady
	return chosen.View(), true
}

func (e *Engine) doAttack(attacker, defender *game.Combatant) game.TurnEvent {
	damage, effectiveness, attackType := CalculateDamage(attacker, defender, e.cfg, e.rng)

	defender.CurrentHP -= damage
	if defender.CurrentHP < 0 {
		defender.CurrentHP = 0
	}
	fainted := defender.CurrentHP == 0
	if fainted {
		defender.Alive = false
	}

	return game.TurnEvent{
		Turn:          e.turn,
		Type:          game.TurnEventAttack,
		AttackerName:  attacker.DisplayName(),
		DefenderName:  defender.DisplayName(),
		AttackType:    attackType,
		Damage:        damage,
		Effectiveness: effectiveness,
		DefenderHP:    defender.CurrentHP,
		DefenderMaxHP: defender.MaxHP,
		IsFainted:     fainted,
		AttackerTeam:  attacker.Team,
		DefenderTeam:  defender.Team,
	}
}

func (e *Engine) finish(winnerTeam int) {
	e.finished = true
	e.winnerTeam = winnerTeam
	e.waitingTeam = 0
	e.state = StateFinished
}
