package views

import (
	"log"
	"net/http"
	"sync"

	"github.com/duraiaravindh/parcel-landscore/highlight"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans highlight events out to every connected map client, so each one
// renders the same single selected feature.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan highlight.Event
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan highlight.Event)}
}

// Publish implements highlight.Publisher. Slow clients drop events rather
// than stalling the selection flow.
func (h *Hub) Publish(ev highlight.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.clients {
		select {
		case ch <- ev:
		default:
			log.Printf("dropping highlight event for slow client %s", conn.RemoteAddr())
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) chan highlight.Event {
	ch := make(chan highlight.Event, 16)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	return ch
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.clients[conn]; ok {
		close(ch)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	conn.Close()
}

// ClientCount reports connected map clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HighlightWS serves GET /ws/highlight: a JSON stream of highlight events.
func (uc *UserController) HighlightWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	ch := uc.Hub.add(conn)

	// writer: one goroutine per connection owns all writes
	go func() {
		for ev := range ch {
			if err := conn.WriteJSON(ev); err != nil {
				uc.Hub.remove(conn)
				return
			}
		}
	}()

	// reader: only to detect close
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				uc.Hub.remove(conn)
				return
			}
		}
	}()
}
