package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tabugame/bot/internal/middleware"
)

// Deps are the collaborators a session needs. Selector and JoinWindow get
// defaults when zero.
type Deps struct {
	Notifier   Notifier
	Supplier   *Supplier
	Selector   Selector
	JoinWindow time.Duration
}

// Session is the per-chat game state machine. All state is guarded by mu,
// which is shared between event handling and the join-deadline timer
// callback. External I/O (supplier, notifier) never runs under the lock;
// handlers snapshot what they need, unlock, do the I/O, and stale results
// are discarded via the epoch counter.
type Session struct {
	mu sync.Mutex

	chatID      int64
	gameID      string
	phase       Phase
	players     []Player
	scores      *ScoreBoard
	narratorIdx int
	challenge   Challenge
	joinTimer   *time.Timer

	// epoch advances on every narrator change and reset. A challenge
	// acquired under an older epoch is dropped instead of being delivered
	// to a no-longer-current narrator.
	epoch uint64

	deps Deps
}

func NewSession(chatID int64, deps Deps) *Session {
	if deps.Selector == nil {
		deps.Selector = RandomSelector{}
	}
	if deps.JoinWindow <= 0 {
		deps.JoinWindow = time.Minute
	}
	return &Session{chatID: chatID, deps: deps}
}

// StartJoining opens the join window. Only one game per chat can be live.
func (s *Session) StartJoining(ctx context.Context) {
	s.mu.Lock()
	if s.phase != PhaseIdle {
		s.mu.Unlock()
		s.broadcast(ctx, msgAlreadyActive())
		return
	}
	s.phase = PhaseJoining
	s.gameID = uuid.NewString()
	s.players = nil
	s.scores = nil
	s.narratorIdx = 0
	s.challenge = Challenge{}
	s.epoch++
	window := s.deps.JoinWindow
	s.joinTimer = time.AfterFunc(window, s.onJoinDeadline)
	gameID := s.gameID
	s.mu.Unlock()

	log.Printf("[Session] Game %s waiting for players in chat %d", gameID, s.chatID)
	middleware.RecordGameStarted()
	s.broadcastButtons(ctx, msgJoinPrompt(formatWindow(window)), []Button{
		{Label: "Katılıyorum", Payload: JoinPayload},
	})
}

// Join adds a player during the join window. Duplicate ids are ignored;
// insertion order is join order.
func (s *Session) Join(ctx context.Context, p Player) {
	s.mu.Lock()
	if s.phase != PhaseJoining {
		s.mu.Unlock()
		return
	}
	for _, existing := range s.players {
		if existing.ID == p.ID {
			s.mu.Unlock()
			return
		}
	}
	s.players = append(s.players, p)
	s.mu.Unlock()

	s.broadcast(ctx, msgJoined(p.DisplayName()))
}

// Cancel aborts the current game in any non-idle phase.
func (s *Session) Cancel(ctx context.Context, _ Player) {
	s.mu.Lock()
	if s.phase == PhaseIdle {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.mu.Unlock()

	s.broadcast(ctx, msgCancelled())
}

// onJoinDeadline fires when the join window closes. The timer is a
// concurrent writer relative to event handling, so it takes the same lock
// and no-ops unless the session is still Joining.
func (s *Session) onJoinDeadline() {
	ctx := context.Background()

	s.mu.Lock()
	if s.phase != PhaseJoining {
		s.mu.Unlock()
		return
	}
	s.joinTimer = nil

	if len(s.players) < 2 {
		s.resetLocked()
		s.mu.Unlock()
		s.broadcast(ctx, msgNotEnoughPlayers())
		return
	}

	s.scores = NewScoreBoard(s.players)
	s.narratorIdx = 0
	s.phase = PhasePlaying
	s.epoch++
	names := make([]string, len(s.players))
	for i, p := range s.players {
		names[i] = p.DisplayName()
	}
	narrator := s.players[0]
	s.mu.Unlock()

	log.Printf("[Session] Game starting in chat %d with %d players", s.chatID, len(names))
	s.broadcast(ctx, msgRoster(names, narrator.DisplayName()))
	s.broadcast(ctx, msgPlayStarted(narrator.DisplayName()))
	s.issueChallenge(ctx)
}

// HandleText processes a plain message while Playing: forbidden-word
// detection for the narrator, guess detection for everyone else.
func (s *Session) HandleText(ctx context.Context, from Player, text string) {
	s.mu.Lock()
	if s.phase != PhasePlaying {
		s.mu.Unlock()
		return
	}

	if s.narratorIdx < 0 || s.narratorIdx >= len(s.players) {
		s.abortLocked(ctx, "narrator index out of range")
		return
	}
	narrator := s.players[s.narratorIdx]

	if from.ID == narrator.ID {
		matched := s.challenge.MatchForbidden(text)
		if len(matched) == 0 {
			s.mu.Unlock()
			return
		}

		// One penalty per violating message, however many words matched.
		newScore, _ := s.scores.Add(narrator.ID, -1)
		next := s.advanceNarratorLocked()
		s.mu.Unlock()

		middleware.RecordViolation()
		s.broadcast(ctx, msgViolation(narrator.DisplayName(), matched, newScore))
		s.broadcast(ctx, msgNextNarrator(next.DisplayName()))
		s.issueChallenge(ctx)
		return
	}

	if !containsFold(text, s.challenge.Word) {
		s.mu.Unlock()
		return
	}

	word := s.challenge.Word
	s.scores.Add(from.ID, 1)
	s.scores.Add(narrator.ID, 1)

	// The guesser becomes the narrator; if they somehow are not on the
	// roster, keep the narrator and still refresh the word.
	guesserIdx := s.indexOfLocked(from.ID)
	inRoster := guesserIdx >= 0
	var next Player
	if inRoster {
		s.narratorIdx = guesserIdx
		next = s.players[guesserIdx]
	}
	s.epoch++
	s.mu.Unlock()

	middleware.RecordCorrectGuess()
	s.broadcast(ctx, msgCorrectGuess(from.DisplayName(), narrator.DisplayName(), word))
	if inRoster {
		s.broadcast(ctx, msgNextNarrator(next.DisplayName()))
	} else {
		log.Printf("[Session] Guesser %d not in roster of chat %d", from.ID, s.chatID)
		s.broadcast(ctx, msgGuesserNotInRoster())
	}
	s.issueChallenge(ctx)
}

var adminCommands = map[string]bool{
	"/kelimever": true,
	"/tur":       true,
	"/puan":      true,
	"/bitir":     true,
}

// HandleCommand processes in-game slash commands. /kelimever and /tur are
// narrator-only; /puan and /bitir are open to everyone.
func (s *Session) HandleCommand(ctx context.Context, from Player, command string) {
	if !adminCommands[command] {
		s.broadcast(ctx, msgUsage())
		return
	}

	s.mu.Lock()
	if s.phase != PhasePlaying {
		s.mu.Unlock()
		s.broadcast(ctx, msgNotStarted())
		return
	}

	switch command {
	case "/kelimever":
		if !s.isNarratorLocked(from.ID) {
			s.mu.Unlock()
			s.broadcast(ctx, msgNarratorOnly())
			return
		}
		s.epoch++
		s.mu.Unlock()
		s.issueChallenge(ctx)

	case "/tur":
		if !s.isNarratorLocked(from.ID) {
			s.mu.Unlock()
			s.broadcast(ctx, msgNarratorOnly())
			return
		}
		next := s.advanceNarratorLocked()
		s.mu.Unlock()
		s.broadcast(ctx, msgNextNarrator(next.DisplayName()))
		s.issueChallenge(ctx)

	case "/puan":
		standings := s.scores.Standings(s.players)
		s.mu.Unlock()
		s.broadcast(ctx, msgStandings(standings))

	case "/bitir":
		ranking := s.scores.Ranking(s.players)
		winners := Winners(ranking)
		gameID := s.gameID
		s.resetLocked()
		s.mu.Unlock()

		middleware.RecordGameFinished()
		log.Printf("[Session] Game %s finished in chat %d", gameID, s.chatID)
		s.broadcast(ctx, msgFinal(ranking, winners))
	}
}

// HandleJoinClick acknowledges the click and runs the join path.
func (s *Session) HandleJoinClick(ctx context.Context, callbackID string, from Player) {
	s.popup(ctx, callbackID, msgJoinAck(), false)
	s.Join(ctx, from)
}

// HandleRevealClick shows the secret word to the authorized narrator as a
// private popup. Anyone else gets a rejection; no state changes either way.
func (s *Session) HandleRevealClick(ctx context.Context, callbackID string, from Player, targetID int64) {
	if from.ID != targetID {
		log.Printf("[Session] Unauthorized reveal click by %d in chat %d", from.ID, s.chatID)
		s.popup(ctx, callbackID, msgUnauthorizedButton(), true)
		return
	}

	s.mu.Lock()
	if s.phase != PhasePlaying || s.challenge.Word == "" {
		s.mu.Unlock()
		s.popup(ctx, callbackID, msgNotStarted(), true)
		return
	}
	challenge := s.challenge
	s.mu.Unlock()

	s.popup(ctx, callbackID, msgReveal(challenge), true)
}

// HandleChangeWordClick behaves like /kelimever for the authorized narrator.
func (s *Session) HandleChangeWordClick(ctx context.Context, callbackID string, from Player, targetID int64) {
	if from.ID != targetID {
		log.Printf("[Session] Unauthorized change-word click by %d in chat %d", from.ID, s.chatID)
		s.popup(ctx, callbackID, msgUnauthorizedButton(), true)
		return
	}

	s.mu.Lock()
	if s.phase != PhasePlaying || !s.isNarratorLocked(from.ID) {
		s.mu.Unlock()
		s.popup(ctx, callbackID, msgUnauthorizedButton(), true)
		return
	}
	s.epoch++
	s.mu.Unlock()

	s.popup(ctx, callbackID, msgWordComing(), false)
	s.issueChallenge(ctx)
}

type Status struct {
	ChatID  int64  `json:"chatId"`
	GameID  string `json:"gameId,omitempty"`
	Phase   string `json:"phase"`
	Players int    `json:"players"`
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ChatID:  s.chatID,
		GameID:  s.gameID,
		Phase:   s.phase.String(),
		Players: len(s.players),
	}
}

// issueChallenge acquires a fresh challenge and prompts the narrator. The
// supplier call blocks on external I/O, so the lock is released around it
// and the result is dropped if the game moved on in the meantime.
func (s *Session) issueChallenge(ctx context.Context) {
	s.mu.Lock()
	if s.phase != PhasePlaying {
		s.mu.Unlock()
		return
	}
	if s.narratorIdx < 0 || s.narratorIdx >= len(s.players) {
		s.abortLocked(ctx, "narrator index out of range")
		return
	}
	epoch := s.epoch
	narrator := s.players[s.narratorIdx]
	s.mu.Unlock()

	challenge := s.deps.Supplier.Acquire(ctx, s.chatID)

	s.mu.Lock()
	if s.phase != PhasePlaying || s.epoch != epoch {
		s.mu.Unlock()
		log.Printf("[Session] Discarding stale challenge for chat %d", s.chatID)
		return
	}
	s.challenge = challenge
	s.mu.Unlock()

	s.broadcastButtons(ctx, msgNarratorPrompt(), []Button{
		{Label: "🔐 Gizli Kelimeyi Gör", Payload: RevealPayload(narrator.ID)},
		{Label: "🔄 Kelimeyi Değiştir", Payload: ChangeWordPayload(narrator.ID)},
	})
}

// advanceNarratorLocked moves to a random different narrator and bumps the
// epoch so in-flight challenges for the old narrator get discarded.
func (s *Session) advanceNarratorLocked() Player {
	s.narratorIdx = s.deps.Selector.PickExcluding(len(s.players), s.narratorIdx)
	s.epoch++
	return s.players[s.narratorIdx]
}

func (s *Session) isNarratorLocked(id int64) bool {
	return s.narratorIdx >= 0 && s.narratorIdx < len(s.players) && s.players[s.narratorIdx].ID == id
}

func (s *Session) indexOfLocked(id int64) int {
	for i, p := range s.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// abortLocked handles an invariant violation: the session resets, players
// are told to start over, the process stays up. Takes the lock held and
// releases it.
func (s *Session) abortLocked(ctx context.Context, reason string) {
	log.Printf("[Session] Aborting game in chat %d: %s", s.chatID, reason)
	s.resetLocked()
	s.mu.Unlock()
	s.broadcast(ctx, msgStateBroken())
}

func (s *Session) resetLocked() {
	if s.joinTimer != nil {
		s.joinTimer.Stop()
		s.joinTimer = nil
	}
	s.phase = PhaseIdle
	s.gameID = ""
	s.players = nil
	s.scores = nil
	s.narratorIdx = 0
	s.challenge = Challenge{}
	s.epoch++
}

func (s *Session) broadcast(ctx context.Context, text string) {
	if err := s.deps.Notifier.Broadcast(ctx, s.chatID, text); err != nil {
		log.Printf("[Session] Broadcast to chat %d failed: %v", s.chatID, err)
	}
}

func (s *Session) broadcastButtons(ctx context.Context, text string, buttons []Button) {
	if err := s.deps.Notifier.BroadcastButtons(ctx, s.chatID, text, buttons); err != nil {
		log.Printf("[Session] Broadcast to chat %d failed: %v", s.chatID, err)
	}
}

func (s *Session) popup(ctx context.Context, callbackID, text string, alert bool) {
	if err := s.deps.Notifier.AnswerPopup(ctx, callbackID, text, alert); err != nil {
		log.Printf("[Session] Callback answer failed in chat %d: %v", s.chatID, err)
	}
}
