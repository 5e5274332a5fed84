package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"routeviz/internal/logging"
	"routeviz/internal/metrics"
	"routeviz/internal/model"
	"routeviz/internal/store"
)

// Playback protocol over WebSocket. The client selects a vehicle, then sends
// play, pause or seek; the server pushes one frame per tick while playing.

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

type wsMessage struct {
	Type    string          `json:"type"`
	Vehicle string          `json:"vehicle,omitempty"`
	Frame   int             `json:"frame,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type framePayload struct {
	Index int         `json:"index"`
	Total int         `json:"total"`
	Frame model.Frame `json:"frame"`
}

func errorMessage(msg string) wsMessage {
	b, _ := json.Marshal(map[string]string{"message": msg})
	return wsMessage{Type: "error", Payload: b}
}

// playback is the per-connection animation state. It is owned by one goroutine.
type playback struct {
	vehicle string
	frames  []model.Frame
	next    int
	playing bool
}

// apply handles a control message and returns the replies to send.
func (p *playback) apply(ctx context.Context, s *Server, msg wsMessage) []wsMessage {
	switch msg.Type {
	case "ping":
		return []wsMessage{{Type: "pong"}}
	case "select":
		fig, err := s.Renderer.Figure(ctx, msg.Vehicle)
		if errors.Is(err, store.ErrNotFound) {
			return []wsMessage{errorMessage("vehicle not found")}
		}
		if err != nil {
			return []wsMessage{errorMessage(err.Error())}
		}
		p.vehicle, p.frames, p.next, p.playing = fig.Vehicle, fig.Frames, 0, false
		b, _ := json.Marshal(fig)
		return []wsMessage{{Type: "figure", Vehicle: fig.Vehicle, Payload: b}}
	case "play":
		if p.vehicle == "" {
			return []wsMessage{errorMessage("select a vehicle first")}
		}
		if p.next >= len(p.frames) {
			p.next = 0
		}
		p.playing = len(p.frames) > 0
		if !p.playing {
			return []wsMessage{{Type: "done", Vehicle: p.vehicle}}
		}
		return []wsMessage{{Type: "playing", Vehicle: p.vehicle}}
	case "pause":
		p.playing = false
		return []wsMessage{{Type: "paused", Vehicle: p.vehicle, Frame: p.next}}
	case "seek":
		if msg.Frame < 0 || msg.Frame >= len(p.frames) {
			return []wsMessage{errorMessage("frame out of range")}
		}
		p.next = msg.Frame
		return []wsMessage{p.frameMessage()}
	default:
		return []wsMessage{errorMessage("unknown message type " + msg.Type)}
	}
}

// tick emits the next frame while playing and "done" after the last one.
func (p *playback) tick() []wsMessage {
	if !p.playing {
		return nil
	}
	if p.next >= len(p.frames) {
		p.playing = false
		p.next = 0
		return []wsMessage{{Type: "done", Vehicle: p.vehicle}}
	}
	out := []wsMessage{p.frameMessage()}
	p.next++
	return out
}

func (p *playback) frameMessage() wsMessage {
	b, _ := json.Marshal(framePayload{Index: p.next, Total: len(p.frames), Frame: p.frames[p.next]})
	return wsMessage{Type: "frame", Vehicle: p.vehicle, Frame: p.next, Payload: b}
}

// PlaybackWSHandler handles /v1/playback/ws
func (s *Server) PlaybackWSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()
	metrics.PlaybackSessions.Inc()
	defer metrics.PlaybackSessions.Dec()

	conn.SetReadLimit(1 << 16)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error { _ = conn.SetReadDeadline(time.Now().Add(60 * time.Second)); return nil })

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Read loop feeds control messages to the session goroutine below.
	in := make(chan wsMessage)
	go func() {
		defer close(in)
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			select {
			case in <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	interval := time.Duration(s.Config.Map.FrameDurationMs) * time.Millisecond
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	keepalive := time.NewTicker(20 * time.Second)
	defer keepalive.Stop()

	var p playback
	send := func(msgs []wsMessage) bool {
		for _, m := range msgs {
			if err := conn.WriteJSON(m); err != nil {
				s.Log.Debug("playback write failed", zap.String(logging.FieldVehicle, p.vehicle), zap.Error(err))
				return false
			}
		}
		return true
	}
	for {
		select {
		case msg, ok := <-in:
			if !ok {
				return
			}
			if !send(p.apply(ctx, s, msg)) {
				return
			}
		case <-ticker.C:
			if !send(p.tick()) {
				return
			}
		case <-keepalive.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
