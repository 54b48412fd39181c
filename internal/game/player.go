package game

// Player is one chat member enrolled in a session. Identity is the platform
// user id; display fields are captured at join time.
type Player struct {
	ID        int64
	Username  string
	FirstName string
}

func (p Player) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	if p.FirstName != "" {
		return p.FirstName
	}
	return "Oyuncu"
}
