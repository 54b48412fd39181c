package game

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/tabugame/bot/internal/middleware"
)

// Generator produces candidate challenges. It knows nothing about chats;
// repeat filtering happens here.
type Generator interface {
	Generate(ctx context.Context) (Challenge, error)
}

// History is the per-chat record of words already issued.
type History interface {
	Exists(ctx context.Context, chatID int64, word string) (bool, error)
	Record(ctx context.Context, chatID int64, word string, forbiddenWords []string) error
}

// fallbackWords keeps the game playable when the generator is unreachable
// or keeps repeating itself.
var fallbackWords = []string{"elma", "kitap", "bilgisayar", "film", "müzik"}

var fallbackForbidden = []string{"yemek", "ağaç", "meyve"}

// Supplier acquires non-repeating challenges for a chat: ask the generator,
// discard words the chat has seen, record the accepted one. Retries on
// repeats are bounded by retryCap.
type Supplier struct {
	generator Generator
	history   History
	retryCap  int
}

func NewSupplier(generator Generator, history History, retryCap int) *Supplier {
	if retryCap <= 0 {
		retryCap = 5
	}
	return &Supplier{
		generator: generator,
		history:   history,
		retryCap:  retryCap,
	}
}

// Acquire never fails: generator errors and retry-cap exhaustion both
// resolve to the fallback pool so play always continues.
func (s *Supplier) Acquire(ctx context.Context, chatID int64) Challenge {
	for attempt := 0; attempt < s.retryCap; attempt++ {
		start := time.Now()
		challenge, err := s.generator.Generate(ctx)
		middleware.RecordGeneratorCall(err == nil, time.Since(start))
		if err != nil {
			log.Printf("[Supplier] Generator failed for chat %d: %v", chatID, err)
			return s.fallback()
		}

		used, err := s.history.Exists(ctx, chatID, challenge.Word)
		if err != nil {
			// Treat lookup failures as unseen so play continues.
			log.Printf("[Supplier] History lookup failed for chat %d: %v", chatID, err)
			used = false
		}
		if used {
			log.Printf("[Supplier] %q already used in chat %d, retrying (%d/%d)",
				challenge.Word, chatID, attempt+1, s.retryCap)
			continue
		}

		if err := s.history.Record(ctx, chatID, challenge.Word, challenge.ForbiddenWords); err != nil {
			log.Printf("[Supplier] Failed to record %q for chat %d: %v", challenge.Word, chatID, err)
		}
		middleware.RecordWordServed("generator")
		return challenge
	}

	log.Printf("[Supplier] Retry cap reached for chat %d, using fallback pool", chatID)
	return s.fallback()
}

func (s *Supplier) fallback() Challenge {
	middleware.RecordWordServed("fallback")
	return Challenge{
		Word:           fallbackWords[rand.Intn(len(fallbackWords))],
		ForbiddenWords: fallbackForbidden,
	}
}
