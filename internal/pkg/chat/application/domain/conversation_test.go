package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestPairKey_OrderIndependent(t *testing.T) {
	require.Equal(t, PairKey("a", "b"), PairKey("b", "a"))
	require.Equal(t, "a:b", PairKey("b", "a"))
	require.NotEqual(t, PairKey("a", "b"), PairKey("a", "c"))
}

func TestConversationDetail_HasParticipant(t *testing.T) {
	detail := ConversationDetail{
		Participants: []Participant{{ID: "u1"}, {ID: "u2"}},
	}
	require.True(t, detail.HasParticipant("u1"))
	require.True(t, detail.HasParticipant("u2"))
	require.False(t, detail.HasParticipant("u3"))
}

func TestEnrich_DirectUsesPeer(t *testing.T) {
	s := ConversationSummary{
		Participants: []Participant{
			{ID: "viewer", Name: "Me"},
			{ID: "peer", Name: "Ada", Avatar: strptr("https://cdn/a.png"), Online: true},
		},
	}
	s.Enrich("viewer")
	require.Equal(t, "Ada", s.DisplayName)
	require.Equal(t, "https://cdn/a.png", *s.DisplayAvatar)
	require.True(t, s.Online)
}

func TestEnrich_MissingPeerFallsBack(t *testing.T) {
	s := ConversationSummary{
		Participants: []Participant{{ID: "viewer", Name: "Me"}},
	}
	s.Enrich("viewer")
	require.Equal(t, "Unknown User", s.DisplayName)
	require.Nil(t, s.DisplayAvatar)
	require.False(t, s.Online)
}

func TestEnrich_GroupUsesConversationName(t *testing.T) {
	s := ConversationSummary{
		Conversation: Conversation{IsGroup: true, Name: strptr("weekend plans")},
		Participants: []Participant{
			{ID: "viewer"},
			{ID: "peer", Name: "Ada", Online: true},
		},
	}
	s.Enrich("viewer")
	require.Equal(t, "weekend plans", s.DisplayName)
	require.False(t, s.Online)
}
