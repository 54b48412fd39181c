package game

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type sentMessage struct {
	text    string
	buttons []Button
}

type popupCall struct {
	callbackID string
	text       string
	alert      bool
}

// recorderNotifier captures all outbound traffic for assertions.
type recorderNotifier struct {
	mu       sync.Mutex
	messages []sentMessage
	popups   []popupCall
}

func (r *recorderNotifier) Broadcast(_ context.Context, _ int64, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, sentMessage{text: text})
	return nil
}

func (r *recorderNotifier) BroadcastButtons(_ context.Context, _ int64, text string, buttons []Button) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, sentMessage{text: text, buttons: buttons})
	return nil
}

func (r *recorderNotifier) AnswerPopup(_ context.Context, callbackID, text string, alert bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.popups = append(r.popups, popupCall{callbackID: callbackID, text: text, alert: alert})
	return nil
}

func (r *recorderNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func (r *recorderNotifier) contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if strings.Contains(m.text, substr) {
			return true
		}
	}
	return false
}

func (r *recorderNotifier) lastButtons() []Button {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.messages) - 1; i >= 0; i-- {
		if len(r.messages[i].buttons) > 0 {
			return r.messages[i].buttons
		}
	}
	return nil
}

// scriptedGenerator replays a queue of challenges, repeating the last one
// once the queue runs out.
type scriptedGenerator struct {
	mu    sync.Mutex
	queue []Challenge
	err   error
	calls int
}

func (g *scriptedGenerator) Generate(context.Context) (Challenge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return Challenge{}, g.err
	}
	if len(g.queue) == 0 {
		return Challenge{Word: "varsayılan", ForbiddenWords: []string{"kelime"}}, nil
	}
	ch := g.queue[0]
	if len(g.queue) > 1 {
		g.queue = g.queue[1:]
	}
	return ch, nil
}

func (g *scriptedGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// reentrantGenerator serves challenges like scriptedGenerator but runs a
// hook inside its first Generate call, simulating an event that lands while
// a supplier call is in flight.
type reentrantGenerator struct {
	mu    sync.Mutex
	hook  func(ctx context.Context)
	fired bool
	queue []Challenge
}

func (g *reentrantGenerator) Generate(ctx context.Context) (Challenge, error) {
	g.mu.Lock()
	fire := !g.fired
	g.fired = true
	ch := Challenge{Word: "varsayılan", ForbiddenWords: []string{"kelime"}}
	if len(g.queue) > 0 {
		ch = g.queue[0]
		if len(g.queue) > 1 {
			g.queue = g.queue[1:]
		}
	}
	hook := g.hook
	g.mu.Unlock()

	if fire && hook != nil {
		hook(ctx)
	}
	return ch, nil
}

// memHistory is an in-memory History.
type memHistory struct {
	mu        sync.Mutex
	words     map[int64]map[string]bool
	existsErr error
}

func newMemHistory() *memHistory {
	return &memHistory{words: make(map[int64]map[string]bool)}
}

func (h *memHistory) Exists(_ context.Context, chatID int64, word string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.existsErr != nil {
		return false, h.existsErr
	}
	return h.words[chatID][strings.ToLower(word)], nil
}

func (h *memHistory) Record(_ context.Context, chatID int64, word string, _ []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.words[chatID] == nil {
		h.words[chatID] = make(map[string]bool)
	}
	h.words[chatID][strings.ToLower(word)] = true
	return nil
}

// fixedSelector always picks the same index.
type fixedSelector struct {
	idx int
}

func (f fixedSelector) PickExcluding(int, int) int {
	return f.idx
}

const testChatID = int64(100)

var (
	alice = Player{ID: 1, Username: "alice"}
	bob   = Player{ID: 2, Username: "bob"}
	carol = Player{ID: 3, Username: "carol"}
)

func newTestSession(t *testing.T, gen Generator, sel Selector) (*Session, *recorderNotifier) {
	t.Helper()
	notifier := &recorderNotifier{}
	supplier := NewSupplier(gen, newMemHistory(), 5)
	s := NewSession(testChatID, Deps{
		Notifier:   notifier,
		Supplier:   supplier,
		Selector:   sel,
		JoinWindow: time.Hour,
	})
	return s, notifier
}

// startPlaying joins the given players and closes the join window.
func startPlaying(t *testing.T, s *Session, players ...Player) {
	t.Helper()
	ctx := context.Background()
	s.StartJoining(ctx)
	for _, p := range players {
		s.Join(ctx, p)
	}
	s.onJoinDeadline()
}
