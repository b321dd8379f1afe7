// Package facade implements the network-facing host (C14): a websocket
// server that decodes the client Action stream, pushes every Action onto a
// single buffered channel the World's host loop drains once per tick, and
// writes each tick's per-player WorldMessage back out. The façade never
// touches a World directly, preserving the core's single-writer guarantee.
package facade

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/tile-ward/gridworld/action"
	"github.com/tile-ward/gridworld/playerid"
	"github.com/tile-ward/gridworld/view"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 8192

	// sessionTTL is the redis key lifetime, refreshed once per tick by
	// whichever façade instance owns the live connection.
	sessionTTL = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// inboundFrame is the wire shape of one client-sent Action, matching §6's
// Action stream encoding.
type inboundFrame struct {
	Kind    string              `json:"kind"`
	Name    string              `json:"name,omitempty"`
	Token   string              `json:"token,omitempty"`
	Config  action.PlayerConfig `json:"config,omitempty"`
	Control action.Control      `json:"control,omitempty"`
}

// Server owns every live client connection and the single Actions channel
// the host loop reads from.
type Server struct {
	log     *slog.Logger
	actions chan action.Action
	redis   *redis.Client
	tokens  map[playerid.PlayerId][]byte // bcrypt hash, optional per-player join token

	mu      sync.Mutex
	clients map[playerid.PlayerId]*client
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithSessionRegistry wires a redis client used to reject duplicate Joins
// for a PlayerId already holding a session on another façade instance.
func WithSessionRegistry(rdb *redis.Client) Option {
	return func(s *Server) { s.redis = rdb }
}

// WithJoinToken requires id's Join frames to carry a token matching
// bcryptHash.
func WithJoinToken(id playerid.PlayerId, bcryptHash []byte) Option {
	return func(s *Server) { s.tokens[id] = bcryptHash }
}

// New constructs a Server with a buffered Actions channel of the given
// capacity (one tick's worth of inbound controls is the usual sizing).
func New(actionBuffer int, opts ...Option) *Server {
	s := &Server{
		log:     slog.Default(),
		actions: make(chan action.Action, actionBuffer),
		tokens:  make(map[playerid.PlayerId][]byte),
		clients: make(map[playerid.PlayerId]*client),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Actions returns the channel the host loop drains once per tick.
func (s *Server) Actions() <-chan action.Action {
	return s.actions
}

// ServeHTTP upgrades the request to a websocket and runs the connection's
// read/write pumps until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("facade: upgrade failed", "err", err)
		return
	}
	c := &client{
		connID: uuid.New(),
		conn:   conn,
		send:   make(chan view.WorldMessage, 16),
	}
	s.log.Info("facade: connection opened", "conn", c.connID)
	go s.readPump(c)
	go c.writePump()
}

// client is one live websocket connection. connID identifies it from the
// moment the socket opens; id is only set once its Join frame is accepted.
type client struct {
	connID uuid.UUID
	id     playerid.PlayerId
	conn   *websocket.Conn
	send   chan view.WorldMessage
}

func (s *Server) readPump(c *client) {
	defer s.disconnect(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame inboundFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("facade: read error", "err", err)
			}
			return
		}
		act, ok := s.decode(c, frame)
		if !ok {
			continue
		}
		s.actions <- act
	}
}

func (s *Server) decode(c *client, frame inboundFrame) (action.Action, bool) {
	switch frame.Kind {
	case "join":
		return s.handleJoin(c, frame)
	case "configure":
		return action.Action{Kind: action.Configure, Player: c.id, Config: frame.Config}, true
	case "leave":
		s.forgetSession(c.id)
		return action.Action{Kind: action.Leave, Player: c.id}, true
	case "input":
		return action.Action{Kind: action.Input, Player: c.id, Control: frame.Control}, true
	default:
		s.log.Warn("facade: unknown frame kind", "kind", frame.Kind)
		return action.Action{}, false
	}
}

func (s *Server) handleJoin(c *client, frame inboundFrame) (action.Action, bool) {
	id, err := playerid.New(frame.Name)
	if err != nil {
		s.log.Warn("facade: rejected join", "name", frame.Name, "err", err)
		return action.Action{}, false
	}
	if hash, required := s.tokens[id]; required {
		if bcrypt.CompareHashAndPassword(hash, []byte(frame.Token)) != nil {
			s.log.Warn("facade: join token mismatch", "player", id)
			return action.Action{}, false
		}
	}
	if !s.claimSession(id) {
		s.log.Warn("facade: duplicate join rejected", "player", id)
		return action.Action{}, false
	}

	s.mu.Lock()
	c.id = id
	s.clients[id] = c
	s.mu.Unlock()

	return action.Action{Kind: action.Join, Player: id, Name: string(id), Config: frame.Config}, true
}

// claimSession reports whether id was successfully registered as this
// façade's live session, via a redis SETNX. With no registry configured,
// every join is accepted (single-instance deployment).
func (s *Server) claimSession(id playerid.PlayerId) bool {
	if s.redis == nil {
		return true
	}
	ok, err := s.redis.SetNX(context.Background(), sessionKey(id), 1, sessionTTL).Result()
	if err != nil {
		s.log.Warn("facade: session registry error", "player", id, "err", err)
		return false
	}
	return ok
}

func (s *Server) forgetSession(id playerid.PlayerId) {
	if s.redis == nil || id == "" {
		return
	}
	if err := s.redis.Del(context.Background(), sessionKey(id)).Err(); err != nil {
		s.log.Warn("facade: session release error", "player", id, "err", err)
	}
}

// RefreshSessions extends every locally-registered player's session TTL.
// The host calls this once per tick so a live connection's key never
// expires out from under it.
func (s *Server) RefreshSessions() {
	if s.redis == nil {
		return
	}
	s.mu.Lock()
	ids := make([]playerid.PlayerId, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	ctx := context.Background()
	for _, id := range ids {
		if err := s.redis.Expire(ctx, sessionKey(id), sessionTTL).Err(); err != nil {
			s.log.Warn("facade: session refresh error", "player", id, "err", err)
		}
	}
}

func sessionKey(id playerid.PlayerId) string {
	return "session:" + string(id)
}

func (s *Server) disconnect(c *client) {
	_ = c.conn.Close()
	s.log.Info("facade: connection closed", "conn", c.connID)
	if c.id != "" {
		s.mu.Lock()
		delete(s.clients, c.id)
		s.mu.Unlock()
		s.forgetSession(c.id)
		s.actions <- action.Action{Kind: action.Leave, Player: c.id}
	}
	close(c.send)
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Deliver routes msgs (the host's per-tick World.View output) to each
// connected player's own writer goroutine. Players with no live connection
// are silently skipped.
func (s *Server) Deliver(msgs map[playerid.PlayerId]view.WorldMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, msg := range msgs {
		c, ok := s.clients[id]
		if !ok {
			continue
		}
		select {
		case c.send <- msg:
		default:
			s.log.Warn("facade: dropping message, slow consumer", "player", id)
		}
	}
}
