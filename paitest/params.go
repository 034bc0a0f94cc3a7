// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paitest

import (
	"github.com/go-lpc/pai/coord"
	"github.com/go-lpc/pai/frame"
	"golang.org/x/exp/rand"
)

// params returns n random parameter registers pointing at the test chip.
// The same generator always returns the same registers.
func (gen *Generator) params(n int) []frame.ParamReg {
	var (
		rnd  = rand.New(rand.NewSource(gen.seed))
		regs = make([]frame.ParamReg, n)
	)
	for i := range regs {
		regs[i] = RandomParamReg(rnd, gen.testChip)
	}
	return regs
}

// RandomParamReg returns a parameter register with random fields.
func RandomParamReg(rnd *rand.Rand, testChip coord.Coord) frame.ParamReg {
	u := func(mask uint64) uint64 {
		return rnd.Uint64n(mask + 1)
	}
	return frame.ParamReg{
		WeightWidth:   uint8(u(frame.WeightWidthMask)),
		LCN:           uint8(u(frame.LCNMask)),
		InputWidth:    uint8(u(frame.InputWidthMask)),
		SpikeWidth:    uint8(u(frame.SpikeWidthMask)),
		NeuronNum:     uint16(u(frame.NeuronNumMask)),
		PoolMax:       uint8(u(frame.PoolMaxMask)),
		TickWaitStart: uint16(u(frame.TickWaitStartMask)),
		TickWaitEnd:   uint16(u(frame.TickWaitEndMask)),
		SNNEn:         uint8(u(frame.SNNEnMask)),
		TargetLCN:     uint8(u(frame.TargetLCNMask)),
		TestChip:      testChip,
	}
}
