// Package feed pushes check-in events to connected admin dashboards over
// WebSocket. The hub is a one-way broadcast: clients only listen.
package feed

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	EventCheckInCreated   = "check_in.created"
	EventCheckInValidated = "check_in.validated"
)

type Event struct {
	Type       string    `json:"type"`
	CheckInID  uuid.UUID `json:"checkInId"`
	UserID     uuid.UUID `json:"userId"`
	GymID      uuid.UUID `json:"gymId"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			return

		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("ERROR [feed.Hub] failed to marshal event: %v", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.clients, client)
					client.Close()
				}
			}
		}
	}
}

// Publish queues an event for broadcast. Safe to call after Stop; the event
// is discarded once the hub is down.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Stop shuts down the hub and disconnects all clients.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}
