package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthedRouter(verifier Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireAuth(verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c), "email": Email(c)})
	})
	return r
}

func TestRequireAuth_AcceptsBearerToken(t *testing.T) {
	p := NewTokenProvider("secret", time.Hour)
	token, err := p.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	r := newAuthedRouter(p)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"userId":"user-1","email":"ada@example.com"}`, w.Body.String())
}

func TestRequireAuth_RejectsMissingAndMalformedHeaders(t *testing.T) {
	p := NewTokenProvider("secret", time.Hour)
	token, err := p.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	r := newAuthedRouter(p)
	for _, header := range []string{
		"",
		token,            // missing scheme
		"Basic " + token, // wrong scheme
		"Bearer not-a-jwt",
	} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRefresh_IssuesTokenForSameIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := NewTokenProvider("secret", time.Hour)
	svc := NewService(newMemUserRepo(), p)
	ctl := NewController(svc, svc.Users)

	r := gin.New()
	r.POST("/auth/refresh", RequireAuth(p), ctl.Refresh())

	token, err := p.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	// The reissued token carries the caller's identity unchanged.
	identity, err := p.Verify(resp.Data.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", identity.UserID)
	require.Equal(t, "ada@example.com", identity.Email)

	// Without a valid token there is nothing to refresh.
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	p := NewTokenProvider("secret", time.Hour)
	token, err := p.Issue("user-1", "ada@example.com")
	require.NoError(t, err)

	r := newAuthedRouter(p)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
