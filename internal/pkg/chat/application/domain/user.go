package chat

import "time"

// User is the identity record referenced by the chat core. The password hash
// never leaves the repository layer.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	FriendCode string     `json:"friendCode"`
	Avatar     *string    `json:"avatar"`
	Status     *string    `json:"status"`
	Online     bool       `json:"online"`
	LastSeen   *time.Time `json:"lastSeen"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
