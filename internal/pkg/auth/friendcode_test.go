package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var friendCodePattern = regexp.MustCompile(`^[A-Z0-9]{5}-[A-Z0-9]{5}-[A-Z0-9]{5}$`)

func TestGenerateFriendCode_Format(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateFriendCode()
		require.Len(t, code, 17)
		require.Regexp(t, friendCodePattern, code)
	}
}

func TestGenerateFriendCode_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		seen[GenerateFriendCode()] = struct{}{}
	}
	// 15 random characters, collisions in 20 draws would mean a broken source.
	require.Len(t, seen, 20)
}
