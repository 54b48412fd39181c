package handler

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tabugame/bot/internal/game"
	"github.com/tabugame/bot/internal/middleware"
	"github.com/tabugame/bot/internal/telegram"
)

// EventKind classifies one inbound update.
type EventKind string

const (
	EventIgnored         EventKind = "ignored"
	EventStartCommand    EventKind = "start_command"
	EventCancelCommand   EventKind = "cancel_command"
	EventJoinCommand     EventKind = "join_command"
	EventJoinClick       EventKind = "join_click"
	EventRevealClick     EventKind = "reveal_click"
	EventChangeWordClick EventKind = "change_word_click"
	EventAdminCommand    EventKind = "admin_command"
	EventPlainMessage    EventKind = "plain_message"
)

// msgInternalError is the one player-facing text the handler owns; the rest
// live next to the game session.
const msgInternalError = "😔 Bir hata oluştu, lütfen tekrar deneyin."

// WebhookHandler receives Telegram updates, classifies them and dispatches
// into the per-chat session. Every update is answered 200 so Telegram never
// retries, whatever happened while handling it.
type WebhookHandler struct {
	registry *game.Registry
	notifier game.Notifier
}

func NewWebhookHandler(registry *game.Registry, notifier game.Notifier) *WebhookHandler {
	return &WebhookHandler{registry: registry, notifier: notifier}
}

func (h *WebhookHandler) Receive(c *gin.Context) {
	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Printf("[Webhook] Malformed update: %v", err)
		c.String(http.StatusOK, "ok")
		return
	}

	h.handle(c.Request.Context(), update)

	c.String(http.StatusOK, "ok")
}

func (h *WebhookHandler) handle(ctx context.Context, update telegram.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Webhook] Panic while handling update %d: %v", update.UpdateID, r)
			if chatID, ok := updateChat(update); ok && h.notifier != nil {
				_ = h.notifier.Broadcast(ctx, chatID, msgInternalError)
			}
		}
	}()

	kind := h.Dispatch(ctx, update)
	middleware.RecordUpdate(string(kind))
}

func updateChat(update telegram.Update) (int64, bool) {
	if update.Message != nil && update.Message.Chat != nil {
		return update.Message.Chat.ID, true
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
		return update.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

// Dispatch routes one update and returns its classification.
func (h *WebhookHandler) Dispatch(ctx context.Context, update telegram.Update) EventKind {
	switch {
	case update.CallbackQuery != nil:
		return h.dispatchCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		return h.dispatchMessage(ctx, update.Message)
	default:
		// Membership changes, edited messages, polls, inline queries and
		// the rest are acknowledged but carry no game traffic.
		return EventIgnored
	}
}

func (h *WebhookHandler) dispatchMessage(ctx context.Context, msg *telegram.Message) EventKind {
	if msg.From == nil || msg.Chat == nil || msg.Text == "" {
		return EventIgnored
	}

	session := h.registry.Session(msg.Chat.ID)
	from := player(msg.From)
	text := msg.Text

	switch {
	case text == "/oyun":
		session.StartJoining(ctx)
		return EventStartCommand
	case text == "/iptal":
		session.Cancel(ctx, from)
		return EventCancelCommand
	case text == game.JoinPayload:
		session.Join(ctx, from)
		return EventJoinCommand
	case strings.HasPrefix(text, "/"):
		session.HandleCommand(ctx, from, text)
		return EventAdminCommand
	default:
		session.HandleText(ctx, from, text)
		return EventPlainMessage
	}
}

func (h *WebhookHandler) dispatchCallback(ctx context.Context, cb *telegram.CallbackQuery) EventKind {
	if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		log.Printf("[Webhook] Callback query missing from or chat")
		return EventIgnored
	}

	session := h.registry.Session(cb.Message.Chat.ID)
	from := player(cb.From)

	if cb.Data == game.JoinPayload {
		session.HandleJoinClick(ctx, cb.ID, from)
		return EventJoinClick
	}
	if target, ok := game.ParseRevealPayload(cb.Data); ok {
		session.HandleRevealClick(ctx, cb.ID, from, target)
		return EventRevealClick
	}
	if target, ok := game.ParseChangeWordPayload(cb.Data); ok {
		session.HandleChangeWordClick(ctx, cb.ID, from, target)
		return EventChangeWordClick
	}

	return EventIgnored
}

func player(u *telegram.User) game.Player {
	return game.Player{ID: u.ID, Username: u.Username, FirstName: u.FirstName}
}
