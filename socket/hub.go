package socket

import (
	"encoding/json"
	"sync"

	"creatorvault/pkg/logger"
)

const (
	IdeaCreatedType    = "IDEA_CREATED"    // A new idea was saved
	IdeaUpdatedType    = "IDEA_UPDATED"    // An idea was patched or replaced
	IdeaDeletedType    = "IDEA_DELETED"    // An idea was removed
	PresenceUpdateType = "PRESENCE_UPDATE" // Session count for this user changed
)

// Event is one message on the idea event stream. UserID addresses the room;
// every open session of that user receives the payload.
type Event struct {
	Type    string          `json:"type"`
	UserID  string          `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
}

type presence struct {
	Sessions int `json:"sessions"`
}

// Hub keeps one room per user and fans idea change events out to all of that
// user's open connections. Rooms are created on first connect and torn down
// when the last session closes.
type Hub struct {
	Rooms      map[string]map[*Client]bool // userID -> connections
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan Event),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.UserID] == nil {
				h.Rooms[client.UserID] = make(map[*Client]bool)
			}
			h.Rooms[client.UserID][client] = true
			h.mu.Unlock()

			h.broadcastPresenceUpdate(client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			userID := client.UserID
			if _, ok := h.Rooms[userID][client]; ok {
				delete(h.Rooms[userID], client)
				close(client.Send)

				if len(h.Rooms[userID]) == 0 {
					delete(h.Rooms, userID)
					logger.Sugar.Infof("Closed empty event room for user %s", userID)
				}
			}
			h.mu.Unlock()

			h.broadcastPresenceUpdate(userID)

		case evt := <-h.Broadcast:
			payload, err := json.Marshal(evt)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}

			// Copy the recipient list so the lock is not held during sends.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[evt.UserID]))
			for client := range h.Rooms[evt.UserID] {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// If the send buffer is full, the client is lagging.
					// Unregister asynchronously; Run is busy in this case arm.
					logger.Sugar.Warnf("Client %s's send buffer is full. Unregistering.", client.UserID)
					go func(c *Client) { h.Unregister <- c }(client)
				}
			}
		}
	}
}

func (h *Hub) broadcastPresenceUpdate(userID string) {
	h.mu.Lock()
	clientsToSend := make([]*Client, 0, len(h.Rooms[userID]))
	for client := range h.Rooms[userID] {
		clientsToSend = append(clientsToSend, client)
	}
	h.mu.Unlock()

	if len(clientsToSend) == 0 {
		return
	}

	payload, err := json.Marshal(presence{Sessions: len(clientsToSend)})
	if err != nil {
		logger.Sugar.Errorf("Error marshalling presence broadcast: %v", err)
		return
	}
	broadcastPayload, _ := json.Marshal(Event{Type: PresenceUpdateType, UserID: userID, Payload: payload})

	for _, client := range clientsToSend {
		select {
		case client.Send <- broadcastPayload:
		default:
			// Don't unregister here, just log. The main pumps will handle unresponsive clients.
			logger.Sugar.Warnf("Client %s's send buffer was full during presence update.", client.UserID)
		}
	}
}
