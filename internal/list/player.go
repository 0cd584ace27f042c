package list

// Player is a user appearing on the list, either as a record holder or
// as a demon's publisher or verifier. Players are resolved by name and
// created on first reference.
type Player struct {
	ID     int64
	Name   string
	Banned bool
}

// Clone returns a copy of the player.
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}
