// Package room owns the registry of active battle rooms and their players.
// The registry is the single shared mutable resource of the session layer,
// so every operation serializes on the manager mutex; callers only ever see
// snapshot views.
package room

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
)

var (
	ErrNicknameRequired   = errors.New("nickname not set")
	ErrAlreadyInRoom      = errors.New("already in a room")
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrRoomStarted        = errors.New("battle already started")
	ErrNotInRoom          = errors.New("not in a room")
	ErrNoTeam             = errors.New("no team chosen")
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique room code")
)

const codeAttempts = 100

type Manager struct {
	mu        sync.Mutex
	rng       *rand.Rand
	rooms     map[string]*game.Room
	sidToRoom map[string]string
	sidToNick map[string]string
}

func NewManager() *Manager {
	return &Manager{
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		rooms:     make(map[string]*game.Room),
		sidToRoom: make(map[string]string),
		sidToNick: make(map[string]string),
	}
}

// SetNickname stores or overwrites the display name for a session.
func (m *Manager) SetNickname(sid, nickname string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sidToNick[sid] = nickname
}

func (m *Manager) Nickname(sid string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sidToNick[sid]
}

// CreateRoom allocates a room with the caller as host. The caller must have
// a nickname and must not already occupy a room.
func (m *Manager) CreateRoom(sid string, rules game.RoomRules) (game.RoomView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nickname, ok := m.sidToNick[sid]
	if !ok || nickname == "" {
		return game.RoomView{}, ErrNicknameRequired
	}
	if _, ok := m.sidToRoom[sid]; ok {
		return game.RoomView{}, ErrAlreadyInRoom
	}

	code, err := m.uniqueCode()
	if err != nil {
		return game.RoomView{}, err
	}

	room := &game.Room{
		Code:    code,
		Players: []*game.Player{{SID: sid, Nickname: nickname}},
		Status:  game.RoomWaiting,
		Rules:   rules,
	}
	m.rooms[code] = room
	m.sidToRoom[sid] = code
	return room.View(), nil
}

// JoinRoom appends the caller to an existing waiting room.
func (m *Manager) JoinRoom(sid, code string) (game.RoomView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nickname, ok := m.sidToNick[sid]
	if !ok || nickname == "" {
		return game.RoomView{}, ErrNicknameRequired
	}
	if _, ok := m.sidToRoom[sid]; ok {
		return game.RoomView{}, ErrAlreadyInRoom
	}
	room, ok := m.rooms[code]
	if !ok {
		return game.RoomView{}, ErrRoomNotFound
	}
	if room.IsFull() {
		return game.RoomView{}, ErrRoomFull
	}
	if room.Status != game.RoomWaiting {
		return game.RoomView{}, ErrRoomStarted
	}

	room.Players = append(room.Players, &game.Player{SID: sid, Nickname: nickname})
	m.sidToRoom[sid] = code
	return room.View(), nil
}

// LeaveRoom removes the session from its room. An emptied room is
// destroyed; otherwise the remaining player's ready flag is cleared and the
// room drops back to waiting (any departure invalidates a battle).
// left reports whether the session was in a room at all.
func (m *Manager) LeaveRoom(sid string) (code string, view game.RoomView, empty, left bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, ok := m.sidToRoom[sid]
	if !ok {
		return "", game.RoomView{}, false, false
	}
	delete(m.sidToRoom, sid)

	room, ok := m.rooms[code]
	if !ok {
		return code, game.RoomView{}, false, true
	}

	kept := room.Players[:0]
	for _, p := range room.Players {
		if p.SID != sid {
			kept = append(kept, p)
		}
	}
	room.Players = kept

	if len(room.Players) == 0 {
		delete(m.rooms, code)
		return code, game.RoomView{}, true, true
	}

	for _, p := range room.Players {
		p.Ready = false
	}
	room.Status = game.RoomWaiting
	return code, room.View(), false, true
}

// SetTeam records a player's chosen creature ids and clears the ready flag.
func (m *Manager) SetTeam(sid string, ids []int) (game.RoomView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, player, err := m.playerLocked(sid)
	if err != nil {
		return game.RoomView{}, err
	}
	player.TeamIDs = append([]int(nil), ids...)
	player.Ready = false
	return room.View(), nil
}

// ToggleReady flips the caller's ready flag. allReady reports whether the
// room can start a battle now.
func (m *Manager) ToggleReady(sid string) (view game.RoomView, allReady bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, player, err := m.playerLocked(sid)
	if err != nil {
		return game.RoomView{}, false, err
	}
	if len(player.TeamIDs) == 0 {
		return game.RoomView{}, false, ErrNoTeam
	}
	player.Ready = !player.Ready
	return room.View(), room.AllReady(), nil
}

// BeginBattle moves a room into battling status. Returns false when the
// room is gone or not ready to start.
func (m *Manager) BeginBattle(code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok || room.Status != game.RoomWaiting || !room.AllReady() {
		return false
	}
	room.Status = game.RoomBattling
	room.Turn = 0
	return true
}

// ResetToWaiting aborts a starting battle: ready flags cleared, status back
// to waiting.
func (m *Manager) ResetToWaiting(code string) (game.RoomView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok {
		return game.RoomView{}, false
	}
	for _, p := range room.Players {
		p.Ready = false
	}
	room.Status = game.RoomWaiting
	return room.View(), true
}

// FinishRoom marks a room's battle as over. The room keeps existing so the
// players can chat or leave at their own pace.
func (m *Manager) FinishRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok := m.rooms[code]; ok {
		room.Status = game.RoomFinished
	}
}

func (m *Manager) SetTurn(code string, turn int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if room, ok := m.rooms[code]; ok {
		room.Turn = turn
	}
}

func (m *Manager) RoomView(code string) (game.RoomView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[code]
	if !ok {
		return game.RoomView{}, false
	}
	return room.View(), true
}

// RoomCodeBySid returns the code of the room the session occupies.
func (m *Manager) RoomCodeBySid(sid string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.sidToRoom[sid]
	return code, ok
}

func (m *Manager) Rules(code string) (game.RoomRules, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[code]
	if !ok {
		return game.RoomRules{}, false
	}
	return room.Rules, true
}

// RoomPlayers snapshots the occupants in join order (host first).
func (m *Manager) RoomPlayers(code string) []game.PlayerInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok {
		return nil
	}
	out := make([]game.PlayerInfo, 0, len(room.Players))
	for _, p := range room.Players {
		out = append(out, game.PlayerInfo{
			SID:      p.SID,
			Nickname: p.Nickname,
			TeamIDs:  append([]int(nil), p.TeamIDs...),
		})
	}
	return out
}

// PlayerTeamNumber maps a session to its room code and team number (1 for
// the host, 2 for the joiner).
func (m *Manager) PlayerTeamNumber(sid string) (code string, team int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, ok = m.sidToRoom[sid]
	if !ok {
		return "", 0, false
	}
	room, ok := m.rooms[code]
	if !ok {
		return "", 0, false
	}
	for i, p := range room.Players {
		if p.SID == sid {
			return code, i + 1, true
		}
	}
	return "", 0, false
}

// TeamPlayer returns the occupant holding the given team number.
func (m *Manager) TeamPlayer(code string, team int) (game.PlayerInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[code]
	if !ok || team < 1 || team > len(room.Players) {
		return game.PlayerInfo{}, false
	}
	p := room.Players[team-1]
	return game.PlayerInfo{
		SID:      p.SID,
		Nickname: p.Nickname,
		TeamIDs:  append([]int(nil), p.TeamIDs...),
	}, true
}

// RemoveSid clears the nickname and room bookkeeping for a session. Callers
// run LeaveRoom first on disconnect.
func (m *Manager) RemoveSid(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sidToNick, sid)
	delete(m.sidToRoom, sid)
}

func (m *Manager) playerLocked(sid string) (*game.Room, *game.Player, error) {
	code, ok := m.sidToRoom[sid]
	if !ok {
		return nil, nil, ErrNotInRoom
	}
	room, ok := m.rooms[code]
	if !ok {
		return nil, nil, ErrNotInRoom
	}
	player := room.GetPlayer(sid)
	if player == nil {
		return nil, nil, ErrNotInRoom
	}
	return room, player, nil
}

// uniqueCode draws 4-digit codes until one misses the live room set. The
// code space is large relative to concurrent rooms, so running out of
// attempts indicates a deployment problem, not a user error.
func (m *Manager) uniqueCode() (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := fmt.Sprintf("%04d", m.rng.Intn(10000))
		if _, taken := m.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
