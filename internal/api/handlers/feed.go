package handlers

import (
	"log"
	"net/http"

	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"github.com/jvmedeiros/gym-checkin-api/internal/feed"
	"github.com/jvmedeiros/gym-checkin-api/internal/service"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedHandler struct {
	hub         *feed.Hub
	authService *service.AuthService
}

func NewFeedHandler(hub *feed.Hub, authService *service.AuthService) *FeedHandler {
	return &FeedHandler{
		hub:         hub,
		authService: authService,
	}
}

// Handle upgrades an admin connection onto the check-in event feed. The token
// travels as a query parameter because browsers cannot set WebSocket headers.
func (h *FeedHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	role, _ := (*claims)["role"].(string)
	if domain.Role(role) != domain.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed upgrade error: %v", err)
		return
	}

	client := feed.NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
