// Package transport provides network-backed gesture.Sensor implementations.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pqnet/gestit/gesture"
)

// frame is the wire format: one JSON object per event, one event per
// websocket message.
// Payload is passed through to the predicate layer untouched.
type frame struct {
	Feature string          `json:"feature"`
	Payload json.RawMessage `json:"payload"`
}

// WebsocketSensor is a gesture.Sensor backed by a single long-lived
// WebSocket connection. Every frame it reads is dispatched, on the read
// goroutine, to every handler subscribed for that frame's feature — so a
// given WebsocketSensor only ever calls into a compiled network from one
// goroutine at a time, matching the network's non-concurrent contract.
//
// Feature values are plain strings on the wire; WebsocketSensor compares
// them against the string form of the gesture.Feature a caller subscribed
// with, via fmt.Sprint.
type WebsocketSensor struct {
	url    string
	conn   *websocket.Conn
	connMu sync.Mutex

	handlersMu sync.Mutex
	handlers   map[string][]*wsSubscription

	logger *slog.Logger
}

type wsSubscription struct {
	feature string
	handler gesture.Handler
	live    bool
}

// Cancel marks the subscription inactive. Matching frames stop being
// delivered to it on the next dispatch; a frame already mid-dispatch still
// completes.
func (s *wsSubscription) Cancel() { s.live = false }

// NewWebsocketSensor dials wsURL and starts its read loop. wsURL must be a
// ws:// or wss:// URL.
func NewWebsocketSensor(ctx context.Context, wsURL string, logger *slog.Logger) (*WebsocketSensor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := url.Parse(wsURL); err != nil {
		return nil, fmt.Errorf("transport: parse url: %w", err)
	}

	dialer := websocket.Dialer{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 16 * 1024,
	}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: dial: %w", err)
	}

	s := &WebsocketSensor{
		url:      wsURL,
		conn:     conn,
		handlers: make(map[string][]*wsSubscription),
		logger:   logger,
	}
	go s.readLoop()
	return s, nil
}

// Subscribe registers h for every frame whose feature field matches
// fmt.Sprint(feature). It never fails once the sensor is connected: the
// websocket connection itself is established at construction, so there is
// no per-feature handshake that can reject a subscription.
func (s *WebsocketSensor) Subscribe(feature gesture.Feature, h gesture.Handler) (gesture.Subscription, error) {
	key := fmt.Sprint(feature)
	sub := &wsSubscription{feature: key, handler: h, live: true}

	s.handlersMu.Lock()
	s.handlers[key] = append(s.handlers[key], sub)
	s.handlersMu.Unlock()

	return sub, nil
}

// Close terminates the underlying connection and stops the read loop.
func (s *WebsocketSensor) Close() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *WebsocketSensor) readLoop() {
	for {
		s.connMu.Lock()
		conn := s.conn
		s.connMu.Unlock()
		if conn == nil {
			return
		}

		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Info("gesture websocket sensor closed normally")
				return
			}
			s.logger.Error("gesture websocket sensor read error, stopping", "error", err)
			return
		}

		var payload interface{}
		if len(f.Payload) > 0 {
			if err := json.Unmarshal(f.Payload, &payload); err != nil {
				s.logger.Warn("gesture websocket sensor: undecodable payload, dropping frame", "feature", f.Feature, "error", err)
				continue
			}
		}

		s.dispatch(f.Feature, payload)
	}
}

func (s *WebsocketSensor) dispatch(feature string, payload interface{}) {
	s.handlersMu.Lock()
	subs := make([]*wsSubscription, len(s.handlers[feature]))
	copy(subs, s.handlers[feature])
	s.handlersMu.Unlock()

	event := gesture.Event{Feature: feature, Payload: payload}
	for _, sub := range subs {
		if sub.live {
			sub.handler(event)
		}
	}
}

// WriteFrame publishes a frame over the connection. Exposed for symmetric
// test harnesses and for a sending peer sharing the same connection type;
// the gesture engine itself never calls it.
func (s *WebsocketSensor) WriteFrame(feature string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("transport: marshal payload: %w", err)
	}

	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn == nil {
		return fmt.Errorf("transport: connection closed")
	}
	deadline := time.Now().Add(5 * time.Second)
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("transport: set write deadline: %w", err)
	}
	return s.conn.WriteJSON(frame{Feature: feature, Payload: raw})
}
