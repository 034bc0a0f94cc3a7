// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import "github.com/go-lpc/pai/coord"

// General frame layout.
const (
	HeaderOffset = 60
	HeaderMask   = 1<<4 - 1

	ChipAddrOffset   = 50
	CoreAddrOffset   = 40
	CoreExAddrOffset = 30
	AddrMask         = 1<<10 - 1

	PayloadOffset = 0
	PayloadMask   = 1<<30 - 1
)

// Parameter register, word #0.
const (
	WeightWidthOffset = 28
	WeightWidthMask   = 1<<2 - 1

	LCNOffset = 24
	LCNMask   = 1<<4 - 1

	InputWidthOffset = 23
	InputWidthMask   = 1

	SpikeWidthOffset = 22
	SpikeWidthMask   = 1

	NeuronNumOffset = 9
	NeuronNumMask   = 1<<13 - 1

	PoolMaxOffset = 8
	PoolMaxMask   = 1

	TickWaitStartHigh8Offset = 0
	TickWaitStartHigh8Mask   = 1<<8 - 1
)

// Parameter register, word #1.
const (
	TickWaitStartLow7Offset        = 23
	TickWaitStartLow7Mask          = 1<<7 - 1
	TickWaitStartCombinationOffset = 7
	TickWaitStartMask              = 1<<15 - 1

	TickWaitEndOffset = 8
	TickWaitEndMask   = 1<<15 - 1

	SNNEnOffset = 7
	SNNEnMask   = 1

	TargetLCNOffset = 3
	TargetLCNMask   = 1<<4 - 1

	TestChipAddrHigh3Offset = 0
	TestChipAddrHigh3Mask   = coord.TestChipAddrHigh3Mask
)

// Parameter register, word #2.
const (
	TestChipAddrLow7Offset = 23
	TestChipAddrLow7Mask   = coord.TestChipAddrLow7Mask

	TestChipAddrCombinationOffset = coord.TestChipAddrCombinationOffset
)

// ParamRegWords is the number of frames needed to carry a parameter register.
const ParamRegWords = 3
