package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansancola/sceneswitcher/pkg/logger"
)

func newTestTwitch(idURL, helixURL string) *Twitch {
	t := NewTwitch(logger.New(""), &http.Client{Timeout: time.Second}, "tok", "client-id")
	if idURL != "" {
		t.idURL = idURL
	}
	if helixURL != "" {
		t.helixURL = helixURL
	}
	return t
}

func TestValidateToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate", r.URL.Path)
		assert.Equal(t, "OAuth tok-abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"client_id":"client-id","login":"somebot","user_id":"1234","expires_in":5000}`))
	}))
	defer srv.Close()

	tw := newTestTwitch(srv.URL, "")
	login, err := tw.ValidateToken(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, "somebot", login)
}

func TestValidateToken_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":401,"message":"invalid access token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tw := newTestTwitch(srv.URL, "")
	_, err := tw.ValidateToken(context.Background(), "bad")
	assert.Error(t, err)
}

func TestGetChannelID_CachesLookups(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "scene42", r.URL.Query().Get("login"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "client-id", r.Header.Get("Client-Id"))
		_, _ = w.Write([]byte(`{"data":[{"id":"777","login":"scene42","display_name":"Scene42"}]}`))
	}))
	defer srv.Close()

	tw := newTestTwitch("", srv.URL)

	id, err := tw.GetChannelID(context.Background(), "scene42")
	require.NoError(t, err)
	assert.Equal(t, "777", id)

	id, err = tw.GetChannelID(context.Background(), "scene42")
	require.NoError(t, err)
	assert.Equal(t, "777", id)

	assert.Equal(t, int32(1), hits.Load())
}

func TestGetChannelID_UnknownLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	tw := newTestTwitch("", srv.URL)
	_, err := tw.GetChannelID(context.Background(), "ghost")
	assert.Error(t, err)
}
