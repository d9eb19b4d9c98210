package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}))
	defer srv.Close()

	client := New("bot-token")
	client.SetBaseURL(srv.URL)

	require.NoError(t, client.Send(context.Background(), "1001", "привет"))
	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "1001", gotBody["chat_id"])
	assert.Equal(t, "привет", gotBody["text"])
}

func TestSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": false, "error_code": 403, "description": "bot was blocked by the user",
		})
	}))
	defer srv.Close()

	client := New("bot-token")
	client.SetBaseURL(srv.URL)

	err := client.Send(context.Background(), "1001", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "blocked")
}

func TestSendWithoutToken(t *testing.T) {
	client := New("")
	assert.False(t, client.Enabled())
	assert.Error(t, client.Send(context.Background(), "1001", "hi"))
}
