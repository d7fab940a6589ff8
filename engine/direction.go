package engine

// Direction is a player movement impulse.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ParseDirection maps a direction name to a Direction. Unknown names report false.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return d, true
	}
	return "", false
}
