package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"trivia/internal/engine"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsSendBuffer   = 16
)

type wsMessage struct {
	Type  string        `json:"type"`
	Game  *gameSnapshot `json:"game,omitempty"`
	Error *errorBody    `json:"error,omitempty"`
}

// wsClient owns one connection. Only writePump writes to conn; everyone
// else queues on out, which never blocks.
type wsClient struct {
	id        string
	userID    uint
	conn      *websocket.Conn
	out       chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newWSClient(conn *websocket.Conn, userID uint) *wsClient {
	return &wsClient{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		out:    make(chan []byte, wsSendBuffer),
		done:   make(chan struct{}),
	}
}

// enqueue reports false when the client is closed or its buffer is full.
func (c *wsClient) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.out <- data:
		return true
	default:
		return false
	}
}

func (c *wsClient) sendMessage(msg wsMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws marshal failed conn_id=%s error=%v", c.id, err)
		return false
	}
	return c.enqueue(data)
}

func (c *wsClient) writePump() {
	defer c.conn.Close()
	for {
		select {
		case data := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsClient) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

type wsHub struct {
	mu     sync.Mutex
	groups map[string]map[*wsClient]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{
		groups: make(map[string]map[*wsClient]struct{}),
	}
}

// Add registers the client and queues initial under the hub lock, so no
// broadcast can be queued between the two.
func (h *wsHub) Add(code string, client *wsClient, initial func() wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	group := h.groups[code]
	if group == nil {
		group = make(map[*wsClient]struct{})
		h.groups[code] = group
	}
	group[client] = struct{}{}
	if initial != nil {
		client.sendMessage(initial())
	}
}

func (h *wsHub) Remove(code string, client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(code, client)
}

func (h *wsHub) removeLocked(code string, client *wsClient) {
	client.close()
	group := h.groups[code]
	if group == nil {
		return
	}
	delete(group, client)
	if len(group) == 0 {
		delete(h.groups, code)
	}
}

func (h *wsHub) Count(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[code])
}

// Broadcast queues payload for every client of the game without waiting on
// the network. Clients that are too far behind are dropped.
func (h *wsHub) Broadcast(code string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ws marshal failed code=%s error=%v", code, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.groups[code] {
		if !client.enqueue(data) {
			log.Printf("ws client dropped code=%s conn_id=%s user_id=%d", code, client.id, client.userID)
			h.removeLocked(code, client)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleWebsocket(c *gin.Context) {
	user, err := s.authenticate(c, c.Query("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	runner, ok := s.runnerFor(c)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	client := newWSClient(conn, user.ID)
	go client.writePump()
	s.ws.Add(runner.code, client, func() wsMessage {
		game := snapshot(runner.Current())
		return wsMessage{Type: "snapshot", Game: &game}
	})
	log.Printf("ws connected code=%s conn_id=%s user_id=%d remote=%s clients=%d", runner.code, client.id, user.ID, c.ClientIP(), s.ws.Count(runner.code))
	go s.readWS(runner, client, user)
}

// readWS accepts action requests from the connection until it closes.
// Committed actions reach every client through the broadcast; rejections
// are sent to the requesting client only.
func (s *Server) readWS(runner *gameRunner, client *wsClient, user engine.User) {
	defer s.ws.Remove(runner.code, client)
	for {
		_, payload, err := client.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected code=%s conn_id=%s user_id=%d error=%v", runner.code, client.id, client.userID, err)
			return
		}
		if err := s.performWS(runner, user, payload); err != nil {
			_, body := describeError(err)
			client.sendMessage(wsMessage{Type: "error", Error: &body})
		}
	}
}

func (s *Server) performWS(runner *gameRunner, user engine.User, payload []byte) error {
	var req actionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return engine.Wrap(engine.KindInvalidRequest, "invalid action", err)
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return resolveBindError(err, actionMessages, "invalid action")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := s.perform(ctx, runner, user, req)
	return err
}

func (s *Server) broadcastGameUpdate(game *engine.Game) {
	if s.ws == nil {
		return
	}
	view := snapshot(game)
	s.ws.Broadcast(game.Code, wsMessage{Type: "snapshot", Game: &view})
}
