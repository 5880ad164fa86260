package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Event names pushed to clients.
const (
	EventNewMessage          = "new_message"
	EventConversationUpdated = "conversation_updated"
	EventConversationRead    = "conversation_read"
)

// envelope is the wire frame for every server-to-client push.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// ConversationUpdate is the payload delivered to each participant's personal
// room when a conversation gains a new message.
type ConversationUpdate struct {
	ConversationID string `json:"conversationId"`
	LastMessage    any    `json:"lastMessage"`
	Unread         bool   `json:"unread"`
}

// ReadReceipt is the payload delivered to a conversation room when a
// participant marks it as read.
type ReadReceipt struct {
	ConversationID string    `json:"conversationId"`
	UserID         string    `json:"userId"`
	ReadAt         time.Time `json:"readAt"`
}

// Hub coordinates websocket sessions and conversation rooms. Every attached
// connection doubles as its user's personal room; fan-out to a conversation
// reaches all sessions currently joined to it.
//
// A Hub is constructed once and handed to whichever component needs to push.
// Pushes are best-effort: delivery failures are logged and never propagate to
// the caller.
type Hub struct {
	logger *slog.Logger

	mu           sync.RWMutex
	sessions     map[string]*Connection            // sessionID -> connection
	userSessions map[string]string                 // userID -> sessionID
	rooms        map[string]map[string]*Connection // conversationID -> sessionID -> connection
	sessionRooms map[string]map[string]struct{}    // sessionID -> set of conversationIDs
}

// NewHub constructs an initialized Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:       logger,
		sessions:     make(map[string]*Connection),
		userSessions: make(map[string]string),
		rooms:        make(map[string]map[string]*Connection),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection for the given user. If a previous session
// exists, it is removed and closed after the swap to enforce one active socket
// per user.
func (h *Hub) Attach(conn *Connection) {
	var previous *Connection

	h.mu.Lock()
	if existingID, ok := h.userSessions[conn.UserID]; ok {
		if existing := h.sessions[existingID]; existing != nil {
			previous = existing
			h.detachLocked(existingID)
		}
	}

	h.sessions[conn.ID] = conn
	h.userSessions[conn.UserID] = conn.ID
	h.sessionRooms[conn.ID] = make(map[string]struct{})
	h.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	h.detachLocked(conn.ID)
	h.mu.Unlock()
}

// Join adds the connection to the conversation room. Membership authorization
// happens before this call, at the socket controller.
func (h *Hub) Join(conversationID string, conn *Connection) {
	h.mu.Lock()
	if _, ok := h.sessions[conn.ID]; !ok {
		h.mu.Unlock()
		return
	}

	room := h.rooms[conversationID]
	if room == nil {
		room = make(map[string]*Connection)
		h.rooms[conversationID] = room
	}
	room[conn.ID] = conn

	memberships := h.sessionRooms[conn.ID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		h.sessionRooms[conn.ID] = memberships
	}
	memberships[conversationID] = struct{}{}
	h.mu.Unlock()
}

// Leave removes the connection from the conversation room.
func (h *Hub) Leave(conversationID string, conn *Connection) {
	h.mu.Lock()
	h.leaveLocked(conversationID, conn.ID)
	h.mu.Unlock()
}

// EmitNewMessage pushes the persisted message to the conversation room.
func (h *Hub) EmitNewMessage(conversationID string, message any) {
	payload, err := json.Marshal(envelope{Event: EventNewMessage, Data: message})
	if err != nil {
		h.logger.Error("encode new_message event", "conversation", conversationID, "error", err)
		return
	}
	delivered := h.broadcast(conversationID, payload)
	h.logger.Debug("pushed new_message", "conversation", conversationID, "delivered", delivered)
}

// EmitConversationUpdated notifies each participant's personal room, sender
// included, so conversation lists reorder without a room subscription.
func (h *Hub) EmitConversationUpdated(participantIDs []string, update ConversationUpdate) {
	payload, err := json.Marshal(envelope{Event: EventConversationUpdated, Data: update})
	if err != nil {
		h.logger.Error("encode conversation_updated event", "conversation", update.ConversationID, "error", err)
		return
	}
	for _, userID := range participantIDs {
		h.notifyUser(userID, payload)
	}
}

// EmitConversationRead pushes a read receipt to the conversation room.
func (h *Hub) EmitConversationRead(receipt ReadReceipt) {
	payload, err := json.Marshal(envelope{Event: EventConversationRead, Data: receipt})
	if err != nil {
		h.logger.Error("encode conversation_read event", "conversation", receipt.ConversationID, "error", err)
		return
	}
	h.broadcast(receipt.ConversationID, payload)
}

// broadcast writes payload to all sessions in the conversation room and
// returns the delivered count.
func (h *Hub) broadcast(conversationID string, payload []byte) int {
	h.mu.RLock()
	room := h.rooms[conversationID]
	if len(room) == 0 {
		h.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range room {
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// notifyUser delivers payload to the current connection of the given user.
func (h *Hub) notifyUser(userID string, payload []byte) bool {
	h.mu.RLock()
	sessionID, ok := h.userSessions[userID]
	if !ok {
		h.mu.RUnlock()
		return false
	}
	conn := h.sessions[sessionID]
	h.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.userSessions = make(map[string]string)
	h.rooms = make(map[string]map[string]*Connection)
	h.sessionRooms = make(map[string]map[string]struct{})
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(sessionID string) {
	conn, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)

	if current, ok := h.userSessions[conn.UserID]; ok && current == sessionID {
		delete(h.userSessions, conn.UserID)
	}

	for roomID := range h.sessionRooms[sessionID] {
		h.leaveLocked(roomID, sessionID)
	}
	delete(h.sessionRooms, sessionID)
}

func (h *Hub) leaveLocked(conversationID string, sessionID string) {
	if sessionID == "" {
		return
	}
	room := h.rooms[conversationID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
	if memberships, ok := h.sessionRooms[sessionID]; ok {
		delete(memberships, conversationID)
		if len(memberships) == 0 {
			delete(h.sessionRooms, sessionID)
		}
	}
}
