package ws

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Conn is the subset of a websocket connection the hub needs. Satisfied by
// *client.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Event is the envelope broadcast to room subscribers.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Hub tracks which connections are subscribed to which community rooms.
// One room per community id; each subscription remembers the user behind
// the connection so a removed member can be evicted.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[Conn]string // conn -> user id
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[Conn]string),
	}
}

// Join subscribes a connection to a community's room. Membership has
// already been verified by the caller.
func (h *Hub) Join(communityID, userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[communityID]
	if !ok {
		room = make(map[Conn]string)
		h.rooms[communityID] = room
	}
	room[conn] = userID
}

// Leave unsubscribes a connection from a community's room.
func (h *Hub) Leave(communityID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[communityID]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, communityID)
		}
	}
}

// LeaveAll unsubscribes a connection from every room. Called on disconnect.
func (h *Hub) LeaveAll(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for communityID, room := range h.rooms {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, communityID)
		}
	}
}

// EvictFromCommunity unsubscribes every connection the user holds in the
// community's room. Called when a membership row is deleted so a removed
// member stops receiving broadcasts immediately.
func (h *Hub) EvictFromCommunity(communityID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[communityID]
	if !ok {
		return
	}
	for conn, uid := range room {
		if uid != userID {
			continue
		}
		delete(room, conn)
		_ = conn.WriteJSON(Event{Event: "removed", Data: communityID})
	}
	if len(room) == 0 {
		delete(h.rooms, communityID)
	}
}

// RoomSize reports how many connections are subscribed to a room.
func (h *Hub) RoomSize(communityID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[communityID])
}

// BroadcastToCommunity pushes an event to every connection in the
// community's room. Fire-and-forget: a failed write only logs.
func (h *Hub) BroadcastToCommunity(communityID string, event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.rooms[communityID] {
		if err := conn.WriteJSON(Event{Event: event, Data: payload}); err != nil {
			logrus.WithError(err).WithField("community_id", communityID).Warn("Broadcast write failed")
		}
	}
}
