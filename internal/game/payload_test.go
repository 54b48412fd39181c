package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadRoundTrip(t *testing.T) {
	id, ok := ParseRevealPayload(RevealPayload(42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	id, ok = ParseChangeWordPayload(ChangeWordPayload(7))
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestPayloadMalformed(t *testing.T) {
	_, ok := ParseRevealPayload("show_word_abc")
	assert.False(t, ok)

	_, ok = ParseRevealPayload("change_word_42")
	assert.False(t, ok)

	_, ok = ParseChangeWordPayload("katiliyorum")
	assert.False(t, ok)
}
