package telegram

import "encoding/json"

// Update is one inbound event from the Bot API webhook. Only message and
// callback_query carry game traffic; the rest must still be acknowledged.
type Update struct {
	UpdateID           int64           `json:"update_id"`
	Message            *Message        `json:"message"`
	EditedMessage      *Message        `json:"edited_message"`
	ChannelPost        *Message        `json:"channel_post"`
	CallbackQuery      *CallbackQuery  `json:"callback_query"`
	MyChatMember       json.RawMessage `json:"my_chat_member"`
	ChatMember         json.RawMessage `json:"chat_member"`
	InlineQuery        json.RawMessage `json:"inline_query"`
	ChosenInlineResult json.RawMessage `json:"chosen_inline_result"`
	Poll               json.RawMessage `json:"poll"`
	PollAnswer         json.RawMessage `json:"poll_answer"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      *Chat  `json:"chat"`
	Text      string `json:"text"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}
