// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coord holds the coordinate algebra of the PAICORE core grid.
package coord // import "github.com/go-lpc/pai/coord"

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"
)

const (
	// MaxXY is the largest value of a coordinate component.
	MaxXY = 1<<5 - 1

	// MaxOffset is the largest magnitude of an offset component.
	MaxOffset = MaxXY
)

var (
	ErrInvalidCoord         = errors.New("coord: invalid coordinate")
	ErrUnsupportedDirection = errors.New("coord: unsupported direction")
)

// Coord is the position of a core (or a chip) on a 32x32 grid.
type Coord struct {
	X, Y int
}

// New returns the coordinate (x, y).
func New(x, y int) (Coord, error) {
	if x < 0 || x > MaxXY || y < 0 || y > MaxXY {
		return Coord{}, xerrors.Errorf("coord: (%d, %d) out of [0, %d]: %w", x, y, MaxXY, ErrInvalidCoord)
	}
	return Coord{X: x, Y: y}, nil
}

// Make builds a coordinate from an (x, y) pair.
// Any other number of values is rejected.
func Make(vs ...int) (Coord, error) {
	if len(vs) != 2 {
		return Coord{}, xerrors.Errorf("coord: invalid pair %v (got %d values, want 2): %w", vs, len(vs), ErrInvalidCoord)
	}
	return New(vs[0], vs[1])
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Add moves c by the offset o.
func (c Coord) Add(o Offset) (Coord, error) {
	x, y := c.X+o.DX, c.Y+o.DY
	if x < 0 || x > MaxXY || y < 0 || y > MaxXY {
		return Coord{}, xerrors.Errorf("coord: %v + %v = (%d, %d) leaves the grid: %w", c, o, x, y, ErrInvalidCoord)
	}
	return Coord{X: x, Y: y}, nil
}

// Sub returns the offset that moves o onto c.
func (c Coord) Sub(o Coord) Offset {
	return Offset{DX: c.X - o.X, DY: c.Y - o.Y}
}

// Compare returns -1, 0 or +1 depending on whether c sorts before,
// equal to or after o.
// Coordinates are sorted by their packed address.
func (c Coord) Compare(o Coord) int {
	a, b := ToAddr(c), ToAddr(o)
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	}
	return 0
}

// Less reports whether c sorts before o.
func (c Coord) Less(o Coord) bool {
	return c.Compare(o) < 0
}

// Offset is a displacement on the grid.
type Offset struct {
	DX, DY int
}

// NewOffset returns the offset (dx, dy).
func NewOffset(dx, dy int) (Offset, error) {
	if dx < -MaxOffset || dx > MaxOffset || dy < -MaxOffset || dy > MaxOffset {
		return Offset{}, xerrors.Errorf("coord: offset (%d, %d) out of [-%d, %d]: %w", dx, dy, MaxOffset, MaxOffset, ErrInvalidCoord)
	}
	return Offset{DX: dx, DY: dy}, nil
}

func (o Offset) String() string {
	return fmt.Sprintf("(%+d, %+d)", o.DX, o.DY)
}
