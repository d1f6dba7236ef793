package world

// Content is what a map tile holds before any food is eaten.
type Content uint8

const (
	Empty Content = iota
	Wall
	Door
	Tunnel
	Pellet
	Energizer
)

func (c Content) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Door:
		return "door"
	case Tunnel:
		return "tunnel"
	case Pellet:
		return "pellet"
	case Energizer:
		return "energizer"
	default:
		return "unknown"
	}
}

// IsFood reports whether the content is a pellet or an energizer.
func (c Content) IsFood() bool {
	return c == Pellet || c == Energizer
}

// parseContent maps a terrain character to tile content.
func parseContent(r rune) (Content, bool) {
	switch r {
	case ' ':
		return Empty, true
	case '#':
		return Wall, true
	case '-':
		return Door, true
	case 'T':
		return Tunnel, true
	case '.':
		return Pellet, true
	case '*':
		return Energizer, true
	default:
		return Empty, false
	}
}
