package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabugame/bot/internal/game"
	"github.com/tabugame/bot/internal/telegram"
)

type nullNotifier struct {
	mu       sync.Mutex
	messages []string
	popups   []string
}

func (n *nullNotifier) Broadcast(_ context.Context, _ int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

func (n *nullNotifier) BroadcastButtons(_ context.Context, _ int64, text string, _ []game.Button) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return nil
}

func (n *nullNotifier) AnswerPopup(_ context.Context, _ string, text string, _ bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.popups = append(n.popups, text)
	return nil
}

type staticGenerator struct{}

func (staticGenerator) Generate(context.Context) (game.Challenge, error) {
	return game.Challenge{Word: "deniz", ForbiddenWords: []string{"su"}}, nil
}

type nullHistory struct{}

func (nullHistory) Exists(context.Context, int64, string) (bool, error) { return false, nil }

func (nullHistory) Record(context.Context, int64, string, []string) error { return nil }

func newTestHandler(t *testing.T) (*WebhookHandler, *game.Registry, *nullNotifier) {
	t.Helper()
	notifier := &nullNotifier{}
	registry := game.NewRegistry(game.Deps{
		Notifier:   notifier,
		Supplier:   game.NewSupplier(staticGenerator{}, nullHistory{}, 5),
		JoinWindow: time.Hour,
	})
	return NewWebhookHandler(registry, notifier), registry, notifier
}

func message(chatID, userID int64, text string) *telegram.Message {
	return &telegram.Message{
		From: &telegram.User{ID: userID, Username: "user"},
		Chat: &telegram.Chat{ID: chatID},
		Text: text,
	}
}

func TestDispatch_StartCommand(t *testing.T) {
	h, registry, _ := newTestHandler(t)

	kind := h.Dispatch(context.Background(), telegram.Update{Message: message(1, 10, "/oyun")})

	assert.Equal(t, EventStartCommand, kind)
	assert.Equal(t, "joining", registry.Session(1).Status().Phase)
}

func TestDispatch_CancelCommand(t *testing.T) {
	h, registry, _ := newTestHandler(t)
	ctx := context.Background()

	h.Dispatch(ctx, telegram.Update{Message: message(1, 10, "/oyun")})
	kind := h.Dispatch(ctx, telegram.Update{Message: message(1, 11, "/iptal")})

	assert.Equal(t, EventCancelCommand, kind)
	assert.Equal(t, "idle", registry.Session(1).Status().Phase)
}

func TestDispatch_JoinClick(t *testing.T) {
	h, registry, _ := newTestHandler(t)
	ctx := context.Background()

	h.Dispatch(ctx, telegram.Update{Message: message(1, 10, "/oyun")})
	kind := h.Dispatch(ctx, telegram.Update{CallbackQuery: &telegram.CallbackQuery{
		ID:      "cb1",
		From:    &telegram.User{ID: 20, Username: "joiner"},
		Message: message(1, 10, ""),
		Data:    game.JoinPayload,
	}})

	assert.Equal(t, EventJoinClick, kind)
	assert.Equal(t, 1, registry.Session(1).Status().Players)
}

func TestDispatch_JoinCommandText(t *testing.T) {
	h, registry, _ := newTestHandler(t)
	ctx := context.Background()

	h.Dispatch(ctx, telegram.Update{Message: message(1, 10, "/oyun")})
	kind := h.Dispatch(ctx, telegram.Update{Message: message(1, 20, "katiliyorum")})

	assert.Equal(t, EventJoinCommand, kind)
	assert.Equal(t, 1, registry.Session(1).Status().Players)
}

func TestDispatch_ClickKinds(t *testing.T) {
	h, _, notifier := newTestHandler(t)
	ctx := context.Background()

	kind := h.Dispatch(ctx, telegram.Update{CallbackQuery: &telegram.CallbackQuery{
		ID:      "cb1",
		From:    &telegram.User{ID: 20},
		Message: message(1, 10, ""),
		Data:    game.RevealPayload(99),
	}})
	assert.Equal(t, EventRevealClick, kind)

	kind = h.Dispatch(ctx, telegram.Update{CallbackQuery: &telegram.CallbackQuery{
		ID:      "cb2",
		From:    &telegram.User{ID: 20},
		Message: message(1, 10, ""),
		Data:    game.ChangeWordPayload(99),
	}})
	assert.Equal(t, EventChangeWordClick, kind)

	// Both clicks were unauthorized for user 20.
	require.Len(t, notifier.popups, 2)
}

func TestDispatch_IgnoredKinds(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := context.Background()

	assert.Equal(t, EventIgnored, h.Dispatch(ctx, telegram.Update{}))
	assert.Equal(t, EventIgnored, h.Dispatch(ctx, telegram.Update{
		EditedMessage: message(1, 10, "düzenlendi"),
	}))
	assert.Equal(t, EventIgnored, h.Dispatch(ctx, telegram.Update{
		MyChatMember: []byte(`{"status":"kicked"}`),
	}))
	// Missing sender or chat is dropped, not dispatched.
	assert.Equal(t, EventIgnored, h.Dispatch(ctx, telegram.Update{
		Message: &telegram.Message{Chat: &telegram.Chat{ID: 1}, Text: "merhaba"},
	}))
	assert.Equal(t, EventIgnored, h.Dispatch(ctx, telegram.Update{
		CallbackQuery: &telegram.CallbackQuery{ID: "cb", Data: game.JoinPayload},
	}))
}

func TestDispatch_PlainMessageAndCommands(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := context.Background()

	assert.Equal(t, EventPlainMessage, h.Dispatch(ctx, telegram.Update{Message: message(1, 10, "merhaba")}))
	assert.Equal(t, EventAdminCommand, h.Dispatch(ctx, telegram.Update{Message: message(1, 10, "/puan")}))
}

func TestReceive_AlwaysAnswersOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _ := newTestHandler(t)
	r := gin.New()
	r.POST("/webhook", h.Receive)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook",
		bytes.NewBufferString(`{"update_id":1,"message":{"message_id":5,"from":{"id":10,"username":"u"},"chat":{"id":1,"type":"group"},"text":"/oyun"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Malformed body is acknowledged, never retried by Telegram.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReceive_RecoversFromPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	notifier := &nullNotifier{}
	// A nil registry makes dispatch panic on the first session lookup.
	h := NewWebhookHandler(nil, notifier)
	r := gin.New()
	r.POST("/webhook", h.Receive)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook",
		bytes.NewBufferString(`{"update_id":1,"message":{"message_id":5,"from":{"id":10,"username":"u"},"chat":{"id":1,"type":"group"},"text":"/oyun"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, msgInternalError, notifier.messages[0])
}
