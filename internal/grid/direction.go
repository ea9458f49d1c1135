package grid

// Direction is a unit vector along one axis. The zero value means no direction.
type Direction struct {
	DX, DY int
}

var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// IsZero reports whether d carries no direction
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Opposite returns the reversed direction
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// Horizontal reports whether d moves along the X axis
func (d Direction) Horizontal() bool {
	return d.DX != 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Direction{}:
		return "none"
	}
	return "invalid"
}
