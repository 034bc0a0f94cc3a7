// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"fmt"

	"github.com/go-lpc/pai/coord"
	"golang.org/x/xerrors"
)

// Kind describes which frames a batch holds.
type Kind uint8

const (
	KindConfig  Kind = iota // config-II frames, 3 per core
	KindTestIn              // test-II input frames, 1 per core
	KindTestOut             // test-II output frames, 3 per core
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTestIn:
		return "test-in"
	case KindTestOut:
		return "test-out"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// WordsPerCore returns the number of frames a core needs in a batch of kind k.
func (k Kind) WordsPerCore() int {
	switch k {
	case KindTestIn:
		return 1
	default:
		return ParamRegWords
	}
}

// EncodeBatch builds the frames of kind k for each core, in order.
//
// chip is the chip holding the cores for config and test-in frames,
// and the test chip for test-out frames.
// regs holds either a single register shared by all cores,
// or one register per core. It is ignored for test-in frames.
func EncodeBatch(k Kind, chip coord.Coord, cores []coord.Coord, regs []ParamReg) ([]Frame, error) {
	var hdr Header
	switch k {
	case KindConfig:
		hdr = ConfigType2
	case KindTestIn:
		return TestInFrames(chip, cores), nil
	case KindTestOut:
		hdr = TestType2
	default:
		return nil, xerrors.Errorf("frame: invalid batch kind %v", k)
	}

	if len(cores) == 0 {
		return nil, nil
	}

	switch len(regs) {
	case 1, len(cores):
	default:
		return nil, xerrors.Errorf(
			"frame: invalid number of registers (got=%d, want=1 or %d): %w",
			len(regs), len(cores), ErrInvalidParam,
		)
	}

	var (
		out  = make([]Frame, 0, len(cores)*ParamRegWords)
		ws   [ParamRegWords]uint64
		err  error
		prev = -1
	)
	for i, core := range cores {
		j := 0
		if len(regs) > 1 {
			j = i
		}
		if j != prev {
			ws, err = regs[j].Words()
			if err != nil {
				return nil, xerrors.Errorf("frame: could not encode register for core %v: %w", core, err)
			}
			prev = j
		}
		for _, w := range ws {
			out = append(out, New(hdr, chip, core, coord.Coord{}, uint32(w)))
		}
	}
	return out, nil
}

// ConfigFrames returns the config-II frames configuring cores of chip.
func ConfigFrames(chip coord.Coord, cores []coord.Coord, regs []ParamReg) ([]Frame, error) {
	return EncodeBatch(KindConfig, chip, cores, regs)
}

// TestInFrames returns the test-II frames requesting the parameter
// register of each core of chip.
func TestInFrames(chip coord.Coord, cores []coord.Coord) []Frame {
	out := make([]Frame, len(cores))
	for i, core := range cores {
		out[i] = New(TestType2, chip, core, coord.Coord{}, 0)
	}
	return out
}

// TestOutFrames returns the test-II frames each core is expected to
// send back to testChip.
func TestOutFrames(testChip coord.Coord, cores []coord.Coord, regs []ParamReg) ([]Frame, error) {
	return EncodeBatch(KindTestOut, testChip, cores, regs)
}
