package model

import (
	"time"

	"gorm.io/datatypes"
)

// UsedWord is one word already issued to a chat. The history is append-only
// and scoped per chat: the same word may recur in a different chat.
type UsedWord struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID         int64          `gorm:"not null;index:idx_used_words_chat_word,priority:1" json:"chatId"`
	Word           string         `gorm:"not null;size:255;index:idx_used_words_chat_word,priority:2" json:"word"`
	ForbiddenWords datatypes.JSON `json:"forbiddenWords"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (UsedWord) TableName() string {
	return "used_words"
}
