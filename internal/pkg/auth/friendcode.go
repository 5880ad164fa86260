package auth

import (
	"crypto/rand"
	"strings"
)

const friendCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateFriendCode produces a shareable code in the form
// XXXXX-XXXXX-XXXXX (17 characters). Uniqueness is enforced by the caller
// against the user store.
func GenerateFriendCode() string {
	buf := make([]byte, 15)
	_, _ = rand.Read(buf)

	var b strings.Builder
	b.Grow(17)
	for i, c := range buf {
		if i > 0 && i%5 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(friendCodeChars[int(c)%len(friendCodeChars)])
	}
	return b.String()
}
