package client

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"go-safecity-ws/internal/ws"
)

// Handler receives one realtime frame. Payload is raw JSON so handlers
// decode only the shapes they care about.
type Handler func(payload json.RawMessage)

// RealtimeConfig tunes the realtime channel. Zero values get sensible
// defaults from NewRealtime.
type RealtimeConfig struct {
	// URL is the WebSocket endpoint, e.g. ws://host:3000/ws.
	URL string

	// TokenFunc supplies the bearer token for each (re)connection, so a
	// rotated token is picked up on the next dial rather than reusing
	// the one from startup.
	TokenFunc func() string

	// ReconnectBase is the first retry delay. Default 3s.
	ReconnectBase time.Duration

	// ReconnectMax caps the backoff. Default 60s.
	ReconnectMax time.Duration

	// MaxRetries bounds consecutive failed dials. 0 means retry forever.
	MaxRetries int

	OnConnect    func()
	OnDisconnect func(err error)

	// OnDown fires once when MaxRetries is exhausted and the channel
	// gives up for good.
	OnDown func()
}

// Realtime maintains a WebSocket connection to the portal's push
// channel, redialing with capped exponential backoff when it drops.
type Realtime struct {
	cfg RealtimeConfig

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[ws.MessageType][]Handler
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
}

func NewRealtime(cfg RealtimeConfig) *Realtime {
	if cfg.ReconnectBase <= 0 {
		cfg.ReconnectBase = 3 * time.Second
	}
	if cfg.ReconnectMax <= 0 {
		cfg.ReconnectMax = 60 * time.Second
	}
	return &Realtime{
		cfg:      cfg,
		handlers: make(map[ws.MessageType][]Handler),
		done:     make(chan struct{}),
	}
}

// On registers a handler for one message type. Must be called before
// Start.
func (r *Realtime) On(t ws.MessageType, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = append(r.handlers[t], h)
}

// Start opens the channel and keeps it alive until Close. It returns
// immediately; connection state is reported through the callbacks.
func (r *Realtime) Start() error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return errors.New("realtime channel already started")
	}
	r.started = true
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	go r.run(ctx)
	return nil
}

// Close tears the channel down and stops reconnecting.
func (r *Realtime) Close() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	cancel := r.cancel
	conn := r.conn
	r.conn = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close()
	}
	<-r.done
	return nil
}

// Send pushes one frame to the server. Delivery is best-effort: while
// disconnected the frame is dropped and a NetworkError returned, never
// queued.
func (r *Realtime) Send(t ws.MessageType, payload any) error {
	r.mu.Lock()
	conn := r.conn
	r.mu.Unlock()

	if conn == nil {
		return &NetworkError{Err: errors.New("realtime channel is down")}
	}

	data, err := json.Marshal(ws.Message{Type: t, Payload: payload})
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return &NetworkError{Err: err}
	}
	return nil
}

func (r *Realtime) run(ctx context.Context) {
	defer close(r.done)

	attempt := 0
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := r.dial(ctx)
		if err != nil {
			attempt++
			if r.cfg.MaxRetries > 0 && attempt >= r.cfg.MaxRetries {
				if r.cfg.OnDown != nil {
					r.cfg.OnDown()
				}
				return
			}
			if !r.sleep(ctx, backoff(r.cfg.ReconnectBase, r.cfg.ReconnectMax, attempt)) {
				return
			}
			continue
		}

		attempt = 0
		r.mu.Lock()
		r.conn = conn
		r.mu.Unlock()

		if r.cfg.OnConnect != nil {
			r.cfg.OnConnect()
		}

		err = r.readLoop(conn)

		r.mu.Lock()
		r.conn = nil
		r.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		if r.cfg.OnDisconnect != nil {
			r.cfg.OnDisconnect(err)
		}

		attempt = 1
		if !r.sleep(ctx, backoff(r.cfg.ReconnectBase, r.cfg.ReconnectMax, attempt)) {
			return
		}
	}
}

func (r *Realtime) dial(ctx context.Context) (*websocket.Conn, error) {
	url := r.cfg.URL
	if r.cfg.TokenFunc != nil {
		if token := r.cfg.TokenFunc(); token != "" {
			url += "?token=" + token
		}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (r *Realtime) readLoop(conn *websocket.Conn) error {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg struct {
			Type    ws.MessageType  `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("realtime: dropping malformed frame: %v", err)
			continue
		}

		// Unknown tags are skipped so old clients survive new server
		// message kinds.
		if !msg.Type.Known() {
			continue
		}

		r.mu.Lock()
		handlers := r.handlers[msg.Type]
		r.mu.Unlock()

		for _, h := range handlers {
			h(msg.Payload)
		}
	}
}

func (r *Realtime) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// backoff grows the delay exponentially from base, capped at max, with
// up to 25% jitter so a fleet of clients does not redial in lockstep.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= max {
			d = max
			break
		}
	}
	jitter := time.Duration(rand.Int63n(int64(d)/4 + 1))
	d += jitter
	if d > max {
		d = max
	}
	return d
}
