package chat

import "time"

// Participant is the hydrated view of a conversation member as exposed to
// clients: identity fields from the user row plus the membership timestamps.
//
// LastReadAt is owned exclusively by the participant it belongs to and is
// monotonically non-decreasing; only that user's mark-as-read advances it.
type Participant struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Avatar     *string    `json:"avatar"`
	Online     bool       `json:"online"`
	JoinedAt   time.Time  `json:"joinedAt"`
	LastReadAt *time.Time `json:"lastReadAt,omitempty"`
}
