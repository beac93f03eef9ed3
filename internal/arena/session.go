package arena

import (
	"encoding/json"
	"time"

	"github.com/fnytn2p5zc-star/pokemon-dictionary/internal/logging"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// session is one websocket connection. The write side is owned by
// writePump; everything else queues frames on the send channel.
type session struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// queue serializes an event for this session. A session whose buffer is
// full is dropped rather than allowed to stall the rest of the room.
func (s *session) queue(event string, data interface{}) {
	b, err := json.Marshal(outEnvelope{Event: event, Data: data})
	if err != nil {
		logging.Error("failed to marshal event", err, logging.Fields{"event": event})
		return
	}
	select {
	case s.send <- b:
	default:
		logging.Warn("session send buffer full, closing", logging.Fields{"sid": s.id})
		s.conn.Close()
	}
}

func (s *session) readPump() {
	defer func() {
		s.hub.disconnect(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("websocket read error", logging.Fields{"sid": s.id, "error": err.Error()})
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(message, &env); err != nil || env.Event == "" {
			continue
		}
		s.hub.dispatch(s, env)
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
