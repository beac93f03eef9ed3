package arena

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/constants"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/engine"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/logging"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/room"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/rules"
)

func (h *Hub) handleSetNickname(s *session, data json.RawMessage) {
	var req setNicknameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.emitError(s, constants.ErrMsgNicknameEmpty)
		return
	}
	nickname := truncateRunes(strings.TrimSpace(req.Nickname), constants.MaxNicknameLen)
	if nickname == "" {
		h.emitError(s, constants.ErrMsgNicknameEmpty)
		return
	}
	h.rooms.SetNickname(s.id, nickname)
	h.emitTo(s.id, constants.EventNicknameSet, nicknameSetPayload{Success: true, Nickname: nickname})
}

func (h *Hub) handleCreateRoom(s *session, data json.RawMessage) {
	var req createRoomRequest
	if len(data) > 0 {
		// malformed rules degrade to the unrestricted default
		_ = json.Unmarshal(data, &req)
	}
	roomRules := rules.Parse(req.Rules)

	view, err := h.rooms.CreateRoom(s.id, roomRules)
	if err != nil {
		if errors.Is(err, room.ErrCodeSpaceExhausted) {
			logging.Error("room code allocation failed", err, nil)
		}
		h.emitError(s, createErrorMessage(err))
		return
	}
	h.emitTo(s.id, constants.EventRoomCreated, roomCreatedPayload{RoomCode: view.Code})
	h.emitTo(s.id, constants.EventRoomUpdate, view)
	logging.Info("room created", logging.Fields{constants.LogFieldRoom: view.Code, "rules": roomRules.PresetName})
}

func (h *Hub) handleJoinRoom(s *session, data json.RawMessage) {
	var req joinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.emitTo(s.id, constants.EventRoomJoined, roomJoinedPayload{Success: false, Error: "invalid room code"})
		return
	}

	view, err := h.rooms.JoinRoom(s.id, strings.TrimSpace(req.RoomCode))
	if err != nil {
		h.emitTo(s.id, constants.EventRoomJoined, roomJoinedPayload{Success: false, Error: joinErrorMessage(err)})
		return
	}
	h.emitTo(s.id, constants.EventRoomJoined, roomJoinedPayload{Success: true})
	h.broadcastRoom(view.Code, constants.EventRoomUpdate, view)
}

func createErrorMessage(err error) string {
	switch {
	case errors.Is(err, room.ErrNicknameRequired):
		return constants.ErrMsgNicknameRequired
	case errors.Is(err, room.ErrAlreadyInRoom):
		return "you are already in a room"
	default:
		return "could not create a room"
	}
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, room.ErrNicknameRequired):
		return "set a nickname first"
	case errors.Is(err, room.ErrAlreadyInRoom):
		return "you are already in a room"
	case errors.Is(err, room.ErrRoomNotFound):
		return "room does not exist"
	case errors.Is(err, room.ErrRoomFull):
		return "room is full"
	case errors.Is(err, room.ErrRoomStarted):
		return "battle already started"
	default:
		return "could not join the room"
	}
}

func (h *Hub) handleSetTeam(s *session, data json.RawMessage) {
	code, ok := h.rooms.RoomCodeBySid(s.id)
	if !ok {
		h.emitError(s, constants.ErrMsgNotInRoom)
		return
	}

	var req setTeamRequest
	if err := json.Unmarshal(data, &req); err != nil || req.PokemonIDs == nil {
		h.emitError(s, constants.ErrMsgInvalidTeamData)
		return
	}

	ids := req.PokemonIDs
	if len(ids) > h.cfg.TeamMax {
		ids = ids[:h.cfg.TeamMax]
	}
	for _, id := range ids {
		if id <= 0 || id > h.catalogSize {
			h.emitError(s, constants.ErrMsgInvalidPokemonID)
			return
		}
	}
	if len(ids) < h.cfg.TeamMin {
		h.emitError(s, constants.ErrMsgInvalidTeamData)
		return
	}

	facts, err := h.teamData.FetchTeamValidationData(ids)
	if err != nil {
		logging.Error("team validation lookup failed", err, logging.Fields{constants.LogFieldRoom: code})
		h.emitError(s, constants.ErrMsgTeamDataMissing)
		return
	}
	if len(facts) != len(ids) {
		h.emitError(s, constants.ErrMsgUnknownPokemonID)
		return
	}

	roomRules, _ := h.rooms.Rules(code)
	if violations := rules.ValidateTeam(roomRules, facts); len(violations) > 0 {
		h.emitTo(s.id, constants.EventTeamInvalid, teamInvalidPayload{Errors: violations})
		return
	}

	view, err := h.rooms.SetTeam(s.id, ids)
	if err != nil {
		h.emitError(s, constants.ErrMsgNotInRoom)
		return
	}
	h.broadcastRoom(code, constants.EventRoomUpdate, view)
}

func (h *Hub) handleToggleReady(s *session, _ json.RawMessage) {
	view, allReady, err := h.rooms.ToggleReady(s.id)
	if err != nil {
		if errors.Is(err, room.ErrNoTeam) {
			h.emitError(s, "choose a team first")
		}
		return
	}
	h.broadcastRoom(view.Code, constants.EventRoomUpdate, view)

	if allReady {
		h.startBattle(view.Code)
	}
}

func (h *Hub) handleLeaveRoom(s *session, _ json.RawMessage) {
	code, view, empty, left := h.leaveCurrentRoom(s.id)
	if left && !empty {
		h.broadcastRoom(code, constants.EventRoomUpdate, view)
	}
	h.emitTo(s.id, constants.EventLeftRoom, leftRoomPayload{Success: true})
}

func (h *Hub) handleSendChat(s *session, data json.RawMessage) {
	code, ok := h.rooms.RoomCodeBySid(s.id)
	if !ok {
		return
	}
	if !h.allowChat(s.id, time.Now()) {
		return
	}

	var req chatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}
	message := truncateRunes(strings.TrimSpace(req.Message), constants.MaxChatLen)
	if message == "" {
		return
	}

	nickname := h.rooms.Nickname(s.id)
	if nickname == "" {
		nickname = "???"
	}
	h.broadcastRoom(code, constants.EventChatMessage, chatMessagePayload{Nickname: nickname, Message: message})
}

// handleSelectPokemon fulfils a pending switch wait. The selection must
// come from the player owning the team the engine is blocked on.
func (h *Hub) handleSelectPokemon(s *session, data json.RawMessage) {
	code, team, ok := h.rooms.PlayerTeamNumber(s.id)
	if !ok {
		return
	}

	h.mu.Lock()
	eng := h.engines[code]
	h.mu.Unlock()
	if eng == nil || eng.State() != engine.StateWaitingSwitch {
		return
	}
	if eng.WaitingSwitchTeam() != team {
		return
	}

	var req selectPokemonRequest
	if err := json.Unmarshal(data, &req); err != nil || req.PokemonIndex == nil {
		return
	}

	next, switched := eng.SwitchPokemon(team, *req.PokemonIndex)
	if !switched {
		h.emitError(s, constants.ErrMsgInvalidSwitch)
		return
	}

	h.broadcastRoom(code, constants.EventPokemonSwitched, pokemonSwitchedPayload{Team: team, Pokemon: next})

	h.mu.Lock()
	ch := h.switchCh[code]
	h.mu.Unlock()
	signal(ch)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
