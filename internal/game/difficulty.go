package game

const (
	// DefaultBaseSpeed feeds the tick rate formula
	DefaultBaseSpeed = 20

	// hazards are in play strictly above this level
	hazardLevel = 2
	// one hazard slot per this many cells of length
	hazardEvery = 10
	// cells of length per level
	lengthPerLevel = 5
)

// Level is derived from the snake length and never stored
func Level(length int) int {
	return length/lengthPerLevel + 1
}

// HazardsActive reports whether hazards are in play at level
func HazardsActive(level int) bool {
	return level > hazardLevel
}

// TickRate is the number of ticks per second at level
func TickRate(baseSpeed, level int) int {
	return baseSpeed/3 + level
}

// hazardMilestone reports whether growing to length earns a new hazard slot
func hazardMilestone(length int) bool {
	return length > 0 && length%hazardEvery == 0
}
