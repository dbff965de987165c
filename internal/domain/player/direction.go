package player

import (
	"errors"
	"fmt"
	"strings"

	"wildbound/internal/domain/suggest"
	"wildbound/internal/domain/world"
)

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

var ErrUnknownDirection = errors.New("unknown direction")

var directions = []Direction{Up, Down, Left, Right}

func ParseDirection(raw string) (Direction, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	names := make([]string, 0, len(directions))
	for _, d := range directions {
		if string(d) == v {
			return d, nil
		}
		names = append(names, string(d))
	}
	if s, ok := suggest.Closest(v, names); ok {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownDirection, raw, s)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, raw)
}

// Step returns p moved one cell in d. Up decreases y.
func (d Direction) Step(p world.Point) (world.Point, bool) {
	switch d {
	case Up:
		return world.Point{X: p.X, Y: p.Y - 1}, true
	case Down:
		return world.Point{X: p.X, Y: p.Y + 1}, true
	case Left:
		return world.Point{X: p.X - 1, Y: p.Y}, true
	case Right:
		return world.Point{X: p.X + 1, Y: p.Y}, true
	default:
		return p, false
	}
}
