package ws

import (
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/services"
	jwtutil "github.com/Aidana2206/GrowthSpace/pkg/jwt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is what subscribers send over the socket.
type clientMessage struct {
	Type        string `json:"type"` // "join" | "leave"
	CommunityID string `json:"community_id"`
}

// ChatHandler upgrades connections and manages room subscriptions.
// Joining a room requires a membership row; non-members are refused.
type ChatHandler struct {
	Hub         *Hub
	Memberships *services.MembershipService
	JWTSecret   string
}

// NewChatHandler creates a new instance of ChatHandler.
func NewChatHandler(hub *Hub, memberships *services.MembershipService, jwtSecret string) *ChatHandler {
	return &ChatHandler{
		Hub:         hub,
		Memberships: memberships,
		JWTSecret:   jwtSecret,
	}
}

// ServeWS handles the websocket endpoint.
func (h *ChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	logrus.WithField("userID", claims.UserID).Info("WebSocket connected")

	// The hub broadcasts to this connection from other goroutines, so every
	// write goes through the client's lock.
	cl := newClient(conn)

	defer func() {
		h.Hub.LeaveAll(cl)
		conn.Close()
		logrus.WithField("userID", claims.UserID).Info("WebSocket disconnected")
	}()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break // client disconnected
		}

		switch msg.Type {
		case "join":
			communityID, err := primitive.ObjectIDFromHex(msg.CommunityID)
			if err != nil {
				_ = cl.WriteJSON(Event{Event: "error", Data: "invalid community id"})
				continue
			}

			isMember, err := h.Memberships.IsMember(r.Context(), userID, communityID)
			if err != nil {
				_ = cl.WriteJSON(Event{Event: "error", Data: "membership check failed"})
				continue
			}
			if !isMember {
				logrus.WithFields(logrus.Fields{
					"userID":      claims.UserID,
					"communityID": msg.CommunityID,
				}).Warn("Non-member refused channel subscription")
				_ = cl.WriteJSON(Event{Event: "error", Data: "not a member of this community"})
				continue
			}

			h.Hub.Join(msg.CommunityID, claims.UserID, cl)
			_ = cl.WriteJSON(Event{Event: "joined", Data: msg.CommunityID})

		case "leave":
			h.Hub.Leave(msg.CommunityID, cl)
			_ = cl.WriteJSON(Event{Event: "left", Data: msg.CommunityID})

		default:
			_ = cl.WriteJSON(Event{Event: "error", Data: "unknown message type"})
		}
	}
}
