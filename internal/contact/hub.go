package contact

import (
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// subscriberBuffer is how many messages a slow subscriber may fall behind
// before new ones are dropped for it.
const subscriberBuffer = 16

// Hub fans newly created messages out to websocket subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Message
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan Message)}
}

// Subscribe registers a subscriber and returns its id, its channel, and a
// function that unregisters it.
func (h *Hub) Subscribe() (string, <-chan Message, func()) {
	id := uuid.New().String()
	ch := make(chan Message, subscriberBuffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return id, ch, cancel
}

// Publish delivers m to every subscriber without blocking.
func (h *Hub) Publish(m Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- m:
		default:
			log.Printf("contact: subscriber %s is full, dropping message %d", id, m.ID)
		}
	}
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// streamEvent is the outgoing websocket frame.
type streamEvent struct {
	Type    string  `json:"type"`
	Message Message `json:"message"`
}

func (h *Hub) handleStream(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the handshake completes so nothing created after the
	// client sees 101 is missed.
	id, ch, cancel := h.Subscribe()
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("contact: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("contact: websocket read (%s): %v", id, err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(streamEvent{Type: "message", Message: m}); err != nil {
				log.Printf("contact: websocket write (%s): %v", id, err)
				return
			}
		}
	}
}
