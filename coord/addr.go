// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coord

import "golang.org/x/xerrors"

// Addr is the packed 10-bit address of a coordinate: x<<5 | y.
type Addr uint16

const (
	addrBits = 10
	addrMask = 1<<addrBits - 1
	yBits    = 5
	yMask    = 1<<yBits - 1

	// NumAddrs is the number of addresses on the grid.
	NumAddrs = 1 << addrBits
)

// Test-chip address split: the 10-bit address is sent as a 3-bit high
// group and a 7-bit low group.
const (
	TestChipAddrCombinationOffset = 7
	TestChipAddrHigh3Mask         = 1<<3 - 1
	TestChipAddrLow7Mask          = 1<<7 - 1
)

// ToAddr packs c into its grid address.
func ToAddr(c Coord) Addr {
	return Addr(c.X<<yBits | c.Y)
}

// FromAddr unpacks a grid address.
func FromAddr(a Addr) (Coord, error) {
	if a&^addrMask != 0 {
		return Coord{}, xerrors.Errorf("coord: address 0x%x wider than %d bits: %w", a, addrBits, ErrInvalidCoord)
	}
	return Coord{X: int(a >> yBits), Y: int(a & yMask)}, nil
}

// SplitTestChipAddr splits a into its high3 and low7 groups.
func SplitTestChipAddr(a Addr) (high3, low7 uint8) {
	high3 = uint8((a >> TestChipAddrCombinationOffset) & TestChipAddrHigh3Mask)
	low7 = uint8(a & TestChipAddrLow7Mask)
	return high3, low7
}

// CombineTestChipAddr is the inverse of SplitTestChipAddr.
func CombineTestChipAddr(high3, low7 uint8) Addr {
	return Addr(high3&TestChipAddrHigh3Mask)<<TestChipAddrCombinationOffset | Addr(low7&TestChipAddrLow7Mask)
}
