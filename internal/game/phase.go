package game

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseJoining
	PhasePlaying
)

func (p Phase) String() string {
	switch p {
	case PhaseJoining:
		return "joining"
	case PhasePlaying:
		return "playing"
	default:
		return "idle"
	}
}
