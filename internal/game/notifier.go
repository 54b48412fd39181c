package game

import "context"

// Button is one inline affordance on an outbound message. The payload is an
// opaque string the router decodes when the click comes back.
type Button struct {
	Label   string
	Payload string
}

// Notifier is the outbound side of the chat transport. The broadcast channel
// only ever carries phase, turn and outcome announcements; secret content
// goes through AnswerPopup, which only the clicking user sees.
type Notifier interface {
	Broadcast(ctx context.Context, chatID int64, text string) error
	BroadcastButtons(ctx context.Context, chatID int64, text string, buttons []Button) error
	AnswerPopup(ctx context.Context, callbackID, text string, alert bool) error
}
