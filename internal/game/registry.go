package game

import "sync"

// Registry maps chat ids to their session. Each chat gets exactly one
// session instance, so the single-active-game invariant holds per chat
// rather than process-wide.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	deps     Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		sessions: make(map[int64]*Session),
		deps:     deps,
	}
}

// Session returns the chat's session, creating an idle one on first use.
func (r *Registry) Session(chatID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[chatID]
	if !ok {
		s = NewSession(chatID, r.deps)
		r.sessions[chatID] = s
	}
	return s
}

// Active returns the status of every non-idle session.
func (r *Registry) Active() []Status {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	var active []Status
	for _, s := range sessions {
		if status := s.Status(); status.Phase != "idle" {
			active = append(active, status)
		}
	}
	return active
}
