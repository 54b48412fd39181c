package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabugame/bot/internal/game"
)

type capturedCall struct {
	path string
	body map[string]any
}

func newCaptureServer(t *testing.T, status int) (*httptest.Server, *capturedCall) {
	t.Helper()
	captured := &capturedCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))
		w.WriteHeader(status)
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestBroadcast(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK)
	c := NewClient("test-token", srv.URL)

	err := c.Broadcast(context.Background(), 42, "Merhaba!")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", captured.path)
	assert.Equal(t, float64(42), captured.body["chat_id"])
	assert.Equal(t, "Merhaba!", captured.body["text"])
	assert.Equal(t, "Markdown", captured.body["parse_mode"])
	assert.NotContains(t, captured.body, "reply_markup")
}

func TestBroadcastButtons(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK)
	c := NewClient("test-token", srv.URL)

	err := c.BroadcastButtons(context.Background(), 42, "Kelimen hazır", []game.Button{
		{Label: "Kelimeyi Gör", Payload: "show_word_7"},
		{Label: "Kelimeyi Değiştir", Payload: "change_word_7"},
	})
	require.NoError(t, err)

	markup, ok := captured.body["reply_markup"].(map[string]any)
	require.True(t, ok)
	rows, ok := markup["inline_keyboard"].([]any)
	require.True(t, ok)
	// One button per row.
	require.Len(t, rows, 2)
	first := rows[0].([]any)[0].(map[string]any)
	assert.Equal(t, "Kelimeyi Gör", first["text"])
	assert.Equal(t, "show_word_7", first["callback_data"])
}

func TestAnswerPopup(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK)
	c := NewClient("test-token", srv.URL)

	err := c.AnswerPopup(context.Background(), "cb-99", "Kelimen: deniz", true)
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/answerCallbackQuery", captured.path)
	assert.Equal(t, "cb-99", captured.body["callback_query_id"])
	assert.Equal(t, "Kelimen: deniz", captured.body["text"])
	assert.Equal(t, true, captured.body["show_alert"])
}

func TestBroadcast_ErrorStatus(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusBadRequest)
	c := NewClient("test-token", srv.URL)

	err := c.Broadcast(context.Background(), 42, "Merhaba!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
