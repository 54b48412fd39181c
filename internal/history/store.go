package history

import (
	"context"
	"encoding/json"
	"log"

	"github.com/tabugame/bot/internal/cache"
	"github.com/tabugame/bot/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store keeps the per-chat word history in Postgres, with a Redis set in
// front of the existence check. The cache is optional: with no Redis the
// store falls through to the database on every lookup.
type Store struct {
	db    *gorm.DB
	cache *cache.RedisCache
}

func NewStore(db *gorm.DB, redisCache *cache.RedisCache) *Store {
	return &Store{db: db, cache: redisCache}
}

// Exists reports whether the word was already issued to this chat.
// Words compare case-insensitively with Turkish casing rules.
func (s *Store) Exists(ctx context.Context, chatID int64, word string) (bool, error) {
	normalized := normalize(word)

	if s.cache != nil {
		used, err := s.cache.IsUsedWord(ctx, chatID, normalized)
		if err == nil && used {
			return true, nil
		}
		if err != nil {
			log.Printf("[History] Redis lookup failed, falling back to DB: %v", err)
		}
	}

	var count int64
	result := s.db.WithContext(ctx).Model(&model.UsedWord{}).
		Where("chat_id = ? AND word = ?", chatID, normalized).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Record appends an issued word to the chat's history.
func (s *Store) Record(ctx context.Context, chatID int64, word string, forbiddenWords []string) error {
	normalized := normalize(word)

	lowered := make([]string, len(forbiddenWords))
	for i, w := range forbiddenWords {
		lowered[i] = normalize(w)
	}
	forbiddenJSON, _ := json.Marshal(lowered)

	used := model.UsedWord{
		ChatID:         chatID,
		Word:           normalized,
		ForbiddenWords: datatypes.JSON(forbiddenJSON),
	}
	if err := s.db.WithContext(ctx).Create(&used).Error; err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.AddUsedWord(ctx, chatID, normalized); err != nil {
			log.Printf("[History] Failed to cache used word: %v", err)
		}
	}

	return nil
}

// normalize lowercases with Turkish casing so that dotless-I round-trips
// ("GÖKKUŞAĞI" -> "gökkuşağı").
func normalize(word string) string {
	return cases.Lower(language.Turkish).String(word)
}
