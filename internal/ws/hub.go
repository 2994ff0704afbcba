package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/yourusername/quizverse-api/internal/service"
)

// Event is the envelope for every message pushed over a socket.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub tracks connected clients per user id and fans events out to them. A
// user may hold several connections (multiple tabs); every one of them gets
// the event. Delivery is best-effort: a user with no open connection simply
// misses the push and sees the entry in the activity feed instead.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[uint]map[*Client]struct{})}
}

// register adds a client to the user's connection set.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	log.Printf("[WSHub] Client %s connected for user #%d (%d open)", c.id, c.userID, len(set))
}

// unregister drops a client and closes its send channel.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	log.Printf("[WSHub] Client %s disconnected for user #%d", c.id, c.userID)
}

// sendToUser marshals the event once and queues it on every connection of the
// user. Clients with a full send buffer are dropped; a stalled reader must
// not block the hub.
func (h *Hub) sendToUser(userID uint, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WSHub] Failed to marshal %q event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	set := h.clients[userID]
	stalled := make([]*Client, 0)
	for c := range set {
		select {
		case c.send <- payload:
		default:
			stalled = append(stalled, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stalled {
		log.Printf("[WSHub] Dropping stalled client %s of user #%d", c.id, c.userID)
		h.unregister(c)
		c.conn.Close()
	}
}

// NotifyQuizPlayed implements service.Notifier.
func (h *Hub) NotifyQuizPlayed(ownerID uint, n service.QuizPlayedNotification) {
	h.sendToUser(ownerID, Event{Type: "quiz_played", Data: n})
}
