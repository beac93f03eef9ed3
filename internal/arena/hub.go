// Package arena is the real-time session layer: it bridges websocket
// clients to the room registry, the rule engine and the battle engine, and
// runs one turn-loop goroutine per active match.
package arena

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/constants"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/engine"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/game"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/logging"
	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/room"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type battleStatsFetcher interface {
	FetchBattleStats(ids []int) ([]game.PokemonStats, error)
}

type teamDataFetcher interface {
	FetchTeamValidationData(ids []int) ([]game.TeamMemberFacts, error)
}

// pacing bundles the client-facing delays of the turn loop. Kept apart from
// BattleConfig so tests can zero them.
type pacing struct {
	battleStart  time.Duration
	faintAuto    time.Duration
	resume       time.Duration
	chatInterval time.Duration
}

func defaultPacing() pacing {
	return pacing{
		battleStart:  1500 * time.Millisecond,
		faintAuto:    2 * time.Second,
		resume:       1500 * time.Millisecond,
		chatInterval: time.Second,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The battle frontend is served from a separate origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub owns all live sessions and per-match state. The registries are
// process-wide: entries appear on connect/room creation and disappear on
// disconnect/match end.
type Hub struct {
	cfg         game.BattleConfig
	catalogSize int
	pace        pacing

	rooms    *room.Manager
	stats    battleStatsFetcher
	teamData teamDataFetcher

	mu       sync.Mutex
	sessions map[string]*session
	engines  map[string]*engine.Engine
	switchCh map[string]chan struct{}
	chatLast map[string]time.Time

	// sendFn delivers one event to one session; replaced in tests.
	sendFn func(sid, event string, data interface{})
}

func NewHub(cfg game.BattleConfig, catalogSize int, rooms *room.Manager, stats battleStatsFetcher, teamData teamDataFetcher) *Hub {
	h := &Hub{
		cfg:         cfg,
		catalogSize: catalogSize,
		pace:        defaultPacing(),
		rooms:       rooms,
		stats:       stats,
		teamData:    teamData,
		sessions:    make(map[string]*session),
		engines:     make(map[string]*engine.Engine),
		switchCh:    make(map[string]chan struct{}),
		chatLast:    make(map[string]time.Time),
	}
	h.sendFn = h.sendToSession
	return h
}

// HandleWS upgrades an HTTP request into an arena session and serves it
// until the connection drops.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, nil)
		return
	}

	s := &session{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
	logging.Info("client connected", logging.Fields{constants.LogFieldSID: s.id})

	go s.writePump()
	s.readPump()
}

// handlers is the flat dispatch table from client event names to handlers.
var handlers = map[string]func(*Hub, *session, json.RawMessage){
	constants.EventSetNickname:   (*Hub).handleSetNickname,
	constants.EventCreateRoom:    (*Hub).handleCreateRoom,
	constants.EventJoinRoom:      (*Hub).handleJoinRoom,
	constants.EventSetTeam:       (*Hub).handleSetTeam,
	constants.EventToggleReady:   (*Hub).handleToggleReady,
	constants.EventLeaveRoom:     (*Hub).handleLeaveRoom,
	constants.EventSendChat:      (*Hub).handleSendChat,
	constants.EventSelectPokemon: (*Hub).handleSelectPokemon,
}

func (h *Hub) dispatch(s *session, env envelope) {
	fn, ok := handlers[env.Event]
	if !ok {
		return
	}
	fn(h, s, env.Data)
}

// disconnect tears a session down: leave the room (forcing any running
// battle to finish), notify the remaining player, drop all bookkeeping.
func (h *Hub) disconnect(s *session) {
	h.mu.Lock()
	if _, ok := h.sessions[s.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s.id)
	delete(h.chatLast, s.id)
	h.mu.Unlock()

	code, view, empty, left := h.leaveCurrentRoom(s.id)
	if left && !empty {
		h.broadcastRoom(code, constants.EventRoomUpdate, view)
	}
	h.rooms.RemoveSid(s.id)
	logging.Info("client disconnected", logging.Fields{constants.LogFieldSID: s.id})
}

// leaveCurrentRoom removes the session from its room and unblocks any match
// that room was running. The turn loop observes the forced finish on its
// next check; the switch signal wakes it if it is parked.
func (h *Hub) leaveCurrentRoom(sid string) (code string, view game.RoomView, empty, left bool) {
	code, view, empty, left = h.rooms.LeaveRoom(sid)
	if !left {
		return
	}

	h.mu.Lock()
	eng := h.engines[code]
	delete(h.engines, code)
	ch := h.switchCh[code]
	h.mu.Unlock()

	if eng != nil {
		eng.ForceFinish(0)
	}
	signal(ch)
	return
}

func signal(ch chan struct{}) {
	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (h *Hub) sendToSession(sid, event string, data interface{}) {
	h.mu.Lock()
	s, ok := h.sessions[sid]
	h.mu.Unlock()
	if ok {
		s.queue(event, data)
	}
}

func (h *Hub) emitTo(sid, event string, data interface{}) {
	h.sendFn(sid, event, data)
}

func (h *Hub) broadcastRoom(code, event string, data interface{}) {
	for _, p := range h.rooms.RoomPlayers(code) {
		h.sendFn(p.SID, event, data)
	}
}

func (h *Hub) emitError(s *session, message string) {
	h.emitTo(s.id, constants.EventError, errorPayload{Message: message})
}

// allowChat enforces the per-sender minimum interval between chat messages.
func (h *Hub) allowChat(sid string, now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if last, ok := h.chatLast[sid]; ok && now.Sub(last) < h.pace.chatInterval {
		return false
	}
	h.chatLast[sid] = now
	return true
}
