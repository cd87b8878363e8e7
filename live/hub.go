// Package live pushes change events to connected browser clients over
// websockets, replacing interval polling. Events only say what changed;
// clients reload the affected resource and treat the latest successful
// response as authoritative.
package live

import (
	"encoding/json"
	"log"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub fans events out to every connected client. One team, one audience: no
// rooms. The run loop owns the client set; all access goes through channels.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("websocket client registered, total: %d", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("websocket client unregistered, total: %d", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it, the client reconnects and
					// reloads.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Notify satisfies the services.Notifier interface. It never blocks: when the
// broadcast buffer is full the event is dropped, which clients tolerate by
// reloading on reconnect.
func (h *Hub) Notify(eventType string, payload interface{}) {
	message, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		log.Printf("broadcast buffer full, dropping %s event", eventType)
	}
}
