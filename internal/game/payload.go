package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Button payloads carry the action plus the authorized user id, so a click
// can be checked against the player it was meant for.
const JoinPayload = "katiliyorum"

const (
	revealPrefix     = "show_word_"
	changeWordPrefix = "change_word_"
)

func RevealPayload(userID int64) string {
	return fmt.Sprintf("%s%d", revealPrefix, userID)
}

func ChangeWordPayload(userID int64) string {
	return fmt.Sprintf("%s%d", changeWordPrefix, userID)
}

// ParseRevealPayload returns the authorized user id, or false when the
// payload is not a reveal payload or is malformed.
func ParseRevealPayload(data string) (int64, bool) {
	return parseTarget(data, revealPrefix)
}

func ParseChangeWordPayload(data string) (int64, bool) {
	return parseTarget(data, changeWordPrefix)
}

func parseTarget(data, prefix string) (int64, bool) {
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
