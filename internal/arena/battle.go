package arena

import (
	"fmt"
	"time"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/constants"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/engine"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/logging"
)

// startBattle builds the engine for a room whose players are both ready and
// kicks off the turn loop. Each player receives a private snapshot showing
// their own full roster and only the opponent's active combatant.
func (h *Hub) startBattle(code string) {
	if !h.rooms.BeginBattle(code) {
		return
	}

	players := h.rooms.RoomPlayers(code)
	if len(players) != 2 {
		h.abortStart(code)
		return
	}
	p1, p2 := players[0], players[1]

	stats1, err1 := h.stats.FetchBattleStats(p1.TeamIDs)
	stats2, err2 := h.stats.FetchBattleStats(p2.TeamIDs)
	if err1 != nil || err2 != nil || len(stats1) == 0 || len(stats2) == 0 {
		if err1 != nil {
			logging.Error("battle stats lookup failed", err1, logging.Fields{constants.LogFieldRoom: code})
		}
		if err2 != nil {
			logging.Error("battle stats lookup failed", err2, logging.Fields{constants.LogFieldRoom: code})
		}
		h.abortStart(code)
		return
	}

	eng := engine.New(game.NewTeam(stats1, 1), game.NewTeam(stats2, 2), h.cfg, nil)
	h.mu.Lock()
	h.engines[code] = eng
	h.mu.Unlock()

	h.emitTo(p1.SID, constants.EventBattleStart, battleStartPayload{
		YourTeamNum:    1,
		YourTeam:       eng.TeamViews(1),
		EnemyActive:    eng.ActiveView(2),
		EnemyTeamCount: eng.TeamSize(2),
		Player1:        p1.Nickname,
		Player2:        p2.Nickname,
	})
	h.emitTo(p2.SID, constants.EventBattleStart, battleStartPayload{
		YourTeamNum:    2,
		YourTeam:       eng.TeamViews(2),
		EnemyActive:    eng.ActiveView(1),
		EnemyTeamCount: eng.TeamSize(1),
		Player1:        p1.Nickname,
		Player2:        p2.Nickname,
	})
	logging.Info("battle started", logging.Fields{constants.LogFieldRoom: code})

	go h.runTurnLoop(code, eng)
}

// abortStart rolls a room back to waiting when its teams cannot be
// materialized (ids vanished from the catalog between validation and start).
func (h *Hub) abortStart(code string) {
	view, ok := h.rooms.ResetToWaiting(code)
	if !ok {
		return
	}
	h.broadcastRoom(code, constants.EventError, errorPayload{Message: constants.ErrMsgTeamDataMissing})
	h.broadcastRoom(code, constants.EventRoomUpdate, view)
}

// runTurnLoop drives one match to completion. It is the only goroutine that
// advances the engine; connection handlers interact with the match solely
// through the engine's own methods and the switch signal channel.
func (h *Hub) runTurnLoop(code string, eng *engine.Engine) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("turn loop crashed", fmt.Errorf("%v", r), logging.Fields{constants.LogFieldRoom: code})
			h.broadcastRoom(code, constants.EventError, errorPayload{Message: constants.ErrMsgBattleError})
			eng.ForceFinish(0)
		}
		h.rooms.FinishRoom(code)
		h.mu.Lock()
		delete(h.engines, code)
		delete(h.switchCh, code)
		h.mu.Unlock()
	}()

	time.Sleep(h.pace.battleStart)

	for !eng.Finished() {
		events := eng.ExecuteTurn()
		h.rooms.SetTurn(code, eng.Turn())
		if len(events) > 0 {
			h.broadcastRoom(code, constants.EventTurnResult, turnResultPayload{Turn: eng.Turn(), Events: events})
		}

		if eng.State() == engine.StateWaitingSwitch {
			h.resolveSwitch(code, eng)
			if eng.Finished() {
				break
			}
			time.Sleep(h.pace.resume)
		} else {
			time.Sleep(h.cfg.TurnDelay)
		}
	}

	winnerTeam := eng.WinnerTeam()
	winnerName := ""
	if winnerTeam != 0 {
		if p, ok := h.rooms.TeamPlayer(code, winnerTeam); ok {
			winnerName = p.Nickname
		}
	}
	h.broadcastRoom(code, constants.EventBattleEnd, battleEndPayload{
		WinnerName: winnerName,
		WinnerTeam: winnerTeam,
		TotalTurns: eng.Turn(),
	})
	logging.Info("battle finished", logging.Fields{constants.LogFieldRoom: code, "winner_team": winnerTeam, "turns": eng.Turn()})
}

// resolveSwitch handles the waiting_switch state: auto-switch when only one
// candidate remains, otherwise ask the affected player and wait (bounded)
// for their choice.
func (h *Hub) resolveSwitch(code string, eng *engine.Engine) {
	team := eng.WaitingSwitchTeam()
	remaining := eng.AliveViews(team)

	if len(remaining) == 1 {
		// no choice to make; pause so the faint animation can play out
		time.Sleep(h.pace.faintAuto)
		if next, ok := eng.SwitchPokemon(team, remaining[0].Index); ok {
			h.broadcastRoom(code, constants.EventPokemonSwitched, pokemonSwitchedPayload{Team: team, Pokemon: next})
		}
		return
	}

	// register the channel before asking, so a selection arriving the
	// instant the prompt lands always has something to signal
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.switchCh[code] = ch
	h.mu.Unlock()

	if p, ok := h.rooms.TeamPlayer(code, team); ok {
		h.emitTo(p.SID, constants.EventRequestSwitch, requestSwitchPayload{Reason: "fainted", Remaining: remaining})
	}

	select {
	case <-ch:
	case <-time.After(h.cfg.SwitchTimeout):
	}

	h.mu.Lock()
	delete(h.switchCh, code)
	h.mu.Unlock()

	// losing the race to the client's selection is the common case; only
	// fall back when nobody switched
	if eng.State() == engine.StateWaitingSwitch {
		if next, ok := eng.AutoSwitch(team); ok {
			h.broadcastRoom(code, constants.EventPokemonSwitched, pokemonSwitchedPayload{Team: team, Pokemon: next})
		}
	}
}
