// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coord

import (
	"strings"

	"golang.org/x/xerrors"
)

// Direction is one of the four neighbours of a chip.
type Direction uint8

const (
	East Direction = iota
	South
	West
	North
)

var dirs = [...]struct {
	name string
	off  Offset
}{
	East:  {"EAST", Offset{DX: +1, DY: 0}},
	South: {"SOUTH", Offset{DX: 0, DY: -1}},
	West:  {"WEST", Offset{DX: -1, DY: 0}},
	North: {"NORTH", Offset{DX: 0, DY: +1}},
}

// Directions returns the four directions.
func Directions() []Direction {
	return []Direction{East, South, West, North}
}

// DirectionFrom returns the direction named name (EAST, SOUTH, WEST or NORTH).
func DirectionFrom(name string) (Direction, error) {
	key := strings.ToUpper(name)
	for i, d := range dirs {
		if d.name == key {
			return Direction(i), nil
		}
	}
	return 0, xerrors.Errorf("coord: invalid direction %q: %w", name, ErrUnsupportedDirection)
}

// Offset returns the unit step associated with d.
// The zero Offset is returned for an unknown direction.
func (d Direction) Offset() Offset {
	if int(d) >= len(dirs) {
		return Offset{}
	}
	return dirs[d].off
}

func (d Direction) String() string {
	if int(d) >= len(dirs) {
		return "Direction(?)"
	}
	return dirs[d].name
}
