package chat

import "time"

// Conversation is a persisted thread between two users. The schema allows
// group threads (IsGroup, Name) but no group-specific behavior exists.
//
// UpdatedAt is the activity sort key. It is bumped on every new message and by
// nothing else.
type Conversation struct {
	ID        string    `json:"id"`
	IsGroup   bool      `json:"isGroup"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConversationDetail is a conversation hydrated with its participants.
type ConversationDetail struct {
	Conversation
	Participants []Participant `json:"participants"`
}

// HasParticipant tells whether userID is a member of this conversation.
func (d *ConversationDetail) HasParticipant(userID string) bool {
	for _, p := range d.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// ConversationSummary is the enriched listing row for a user's conversation
// overview: participants, the most recent message body, and display fields
// computed from the peer for direct threads.
type ConversationSummary struct {
	Conversation
	Participants  []Participant `json:"participants"`
	LastMessage   *string       `json:"lastMessage"`
	DisplayName   string        `json:"displayName"`
	DisplayAvatar *string       `json:"displayAvatar"`
	Online        bool          `json:"online"`
}

// Enrich computes the display fields for viewerID. For a direct thread the
// peer's name, avatar and online flag are used; group threads fall back to the
// conversation's own name and are never shown online.
func (s *ConversationSummary) Enrich(viewerID string) {
	if s.IsGroup {
		if s.Name != nil {
			s.DisplayName = *s.Name
		}
		s.Online = false
		return
	}
	for _, p := range s.Participants {
		if p.ID == viewerID {
			continue
		}
		s.DisplayName = p.Name
		s.DisplayAvatar = p.Avatar
		s.Online = p.Online
		return
	}
	s.DisplayName = "Unknown User"
}

// PairKey returns the deterministic unordered-pair key used to keep a direct
// conversation unique per pair of users.
func PairKey(userA, userB string) string {
	if userA < userB {
		return userA + ":" + userB
	}
	return userB + ":" + userA
}
