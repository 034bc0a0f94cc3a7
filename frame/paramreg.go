// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"github.com/go-lpc/pai/coord"
	"golang.org/x/xerrors"
)

// ParamReg is the parameter register of a core.
type ParamReg struct {
	WeightWidth   uint8  // 2 bits
	LCN           uint8  // 4 bits
	InputWidth    uint8  // 1 bit
	SpikeWidth    uint8  // 1 bit
	NeuronNum     uint16 // 13 bits
	PoolMax       uint8  // 1 bit
	TickWaitStart uint16 // 15 bits
	TickWaitEnd   uint16 // 15 bits
	SNNEn         uint8  // 1 bit
	TargetLCN     uint8  // 4 bits

	TestChip coord.Coord // where the core sends its test-output frames
}

// DefaultParamReg returns the register used when no parameters are given.
func DefaultParamReg(testChip coord.Coord) ParamReg {
	return ParamReg{
		NeuronNum:     512,
		TickWaitStart: 1,
		SNNEn:         1,
		TestChip:      testChip,
	}
}

// Validate checks every field fits its slot.
func (reg ParamReg) Validate() error {
	for _, f := range []struct {
		name string
		v    uint64
		mask uint64
	}{
		{"weight_width", uint64(reg.WeightWidth), WeightWidthMask},
		{"LCN", uint64(reg.LCN), LCNMask},
		{"input_width", uint64(reg.InputWidth), InputWidthMask},
		{"spike_width", uint64(reg.SpikeWidth), SpikeWidthMask},
		{"neuron_num", uint64(reg.NeuronNum), NeuronNumMask},
		{"pool_max", uint64(reg.PoolMax), PoolMaxMask},
		{"tick_wait_start", uint64(reg.TickWaitStart), TickWaitStartMask},
		{"tick_wait_end", uint64(reg.TickWaitEnd), TickWaitEndMask},
		{"snn_en", uint64(reg.SNNEn), SNNEnMask},
		{"target_LCN", uint64(reg.TargetLCN), TargetLCNMask},
	} {
		if f.v&^f.mask != 0 {
			return xerrors.Errorf("frame: %s=%d does not fit in 0x%x: %w", f.name, f.v, f.mask, ErrInvalidParam)
		}
	}
	if _, err := coord.New(reg.TestChip.X, reg.TestChip.Y); err != nil {
		return xerrors.Errorf("frame: invalid test chip: %w", err)
	}
	return nil
}

// Words returns the payloads of the 3 frames carrying the register.
func (reg ParamReg) Words() ([ParamRegWords]uint64, error) {
	var ws [ParamRegWords]uint64
	if err := reg.Validate(); err != nil {
		return ws, err
	}

	var (
		tws         = uint64(reg.TickWaitStart)
		high3, low7 = coord.SplitTestChipAddr(coord.ToAddr(reg.TestChip))
	)

	ws[0] = uint64(reg.WeightWidth)&WeightWidthMask<<WeightWidthOffset |
		uint64(reg.LCN)&LCNMask<<LCNOffset |
		uint64(reg.InputWidth)&InputWidthMask<<InputWidthOffset |
		uint64(reg.SpikeWidth)&SpikeWidthMask<<SpikeWidthOffset |
		uint64(reg.NeuronNum)&NeuronNumMask<<NeuronNumOffset |
		uint64(reg.PoolMax)&PoolMaxMask<<PoolMaxOffset |
		(tws>>TickWaitStartCombinationOffset)&TickWaitStartHigh8Mask<<TickWaitStartHigh8Offset

	ws[1] = tws&TickWaitStartLow7Mask<<TickWaitStartLow7Offset |
		uint64(reg.TickWaitEnd)&TickWaitEndMask<<TickWaitEndOffset |
		uint64(reg.SNNEn)&SNNEnMask<<SNNEnOffset |
		uint64(reg.TargetLCN)&TargetLCNMask<<TargetLCNOffset |
		uint64(high3)&TestChipAddrHigh3Mask<<TestChipAddrHigh3Offset

	ws[2] = uint64(low7) & TestChipAddrLow7Mask << TestChipAddrLow7Offset

	return ws, nil
}

// GenParamReg returns the payloads of the default parameter register
// pointing at testChip.
func GenParamReg(testChip coord.Coord) [ParamRegWords]uint64 {
	ws, err := DefaultParamReg(testChip).Words()
	if err != nil {
		panic(err)
	}
	return ws
}

func paramRegFrom(ws [ParamRegWords]uint64) ParamReg {
	var (
		w0 = ws[0]
		w1 = ws[1]
		w2 = ws[2]

		high8 = w0 >> TickWaitStartHigh8Offset & TickWaitStartHigh8Mask
		low7  = w1 >> TickWaitStartLow7Offset & TickWaitStartLow7Mask

		tcHigh3 = w1 >> TestChipAddrHigh3Offset & TestChipAddrHigh3Mask
		tcLow7  = w2 >> TestChipAddrLow7Offset & TestChipAddrLow7Mask
	)

	return ParamReg{
		WeightWidth:   uint8(w0 >> WeightWidthOffset & WeightWidthMask),
		LCN:           uint8(w0 >> LCNOffset & LCNMask),
		InputWidth:    uint8(w0 >> InputWidthOffset & InputWidthMask),
		SpikeWidth:    uint8(w0 >> SpikeWidthOffset & SpikeWidthMask),
		NeuronNum:     uint16(w0 >> NeuronNumOffset & NeuronNumMask),
		PoolMax:       uint8(w0 >> PoolMaxOffset & PoolMaxMask),
		TickWaitStart: uint16(high8<<TickWaitStartCombinationOffset | low7),
		TickWaitEnd:   uint16(w1 >> TickWaitEndOffset & TickWaitEndMask),
		SNNEn:         uint8(w1 >> SNNEnOffset & SNNEnMask),
		TargetLCN:     uint8(w1 >> TargetLCNOffset & TargetLCNMask),
		TestChip:      addrCoord(coord.CombineTestChipAddr(uint8(tcHigh3), uint8(tcLow7))),
	}
}
