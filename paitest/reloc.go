// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paitest

import (
	"github.com/go-lpc/pai/coord"
	"github.com/go-lpc/pai/frame"
	"golang.org/x/xerrors"
)

// ReplaceCoreCoord returns f with its core address pointing at c.
// All the other bits of f are left untouched.
func ReplaceCoreCoord(f frame.Frame, c coord.Coord) (frame.Frame, error) {
	if _, err := coord.New(c.X, c.Y); err != nil {
		return 0, xerrors.Errorf("paitest: invalid relocation target: %w", err)
	}
	return f.WithCoreAddr(coord.ToAddr(c)), nil
}

// ReplaceCoreCoords returns a copy of fs where every frame points at core c.
func ReplaceCoreCoords(fs []frame.Frame, c coord.Coord) ([]frame.Frame, error) {
	if _, err := coord.New(c.X, c.Y); err != nil {
		return nil, xerrors.Errorf("paitest: invalid relocation target: %w", err)
	}
	if fs == nil {
		return nil, nil
	}
	addr := coord.ToAddr(c)
	out := make([]frame.Frame, len(fs))
	for i, f := range fs {
		out[i] = f.WithCoreAddr(addr)
	}
	return out, nil
}

// ReplaceCoreXY is like ReplaceCoreCoords with a raw (x, y) target.
func ReplaceCoreXY(fs []frame.Frame, x, y int) ([]frame.Frame, error) {
	return ReplaceCoreCoords(fs, coord.Coord{X: x, Y: y})
}

// ReplaceTestChipCoord returns a copy of fs where the test chip address
// of every parameter register points at c.
// fs must be a sequence of config-II or test-II triples: the high 3 bits
// of the test chip address sit in the second word of a register and the
// low 7 bits in the third one, so a lone frame cannot be relocated.
func ReplaceTestChipCoord(fs []frame.Frame, c coord.Coord) ([]frame.Frame, error) {
	if _, err := coord.New(c.X, c.Y); err != nil {
		return nil, xerrors.Errorf("paitest: invalid test chip: %w", err)
	}
	if len(fs)%frame.ParamRegWords != 0 {
		return nil, xerrors.Errorf(
			"paitest: %d frames is not a multiple of %d: %w",
			len(fs), frame.ParamRegWords, frame.ErrDecode,
		)
	}

	const (
		high3 = uint32(frame.TestChipAddrHigh3Mask) << frame.TestChipAddrHigh3Offset
		low7  = uint32(frame.TestChipAddrLow7Mask) << frame.TestChipAddrLow7Offset
	)

	hi, lo := coord.SplitTestChipAddr(coord.ToAddr(c))
	out := make([]frame.Frame, len(fs))
	for i := 0; i < len(fs); i += frame.ParamRegWords {
		// make sure we are rewriting a parameter register.
		_, err := frame.DecodeParamReg(fs[i:])
		if err != nil {
			return nil, xerrors.Errorf("paitest: could not decode register #%d: %w", i/frame.ParamRegWords, err)
		}
		var (
			w1 = fs[i+1].Payload()&^high3 | uint32(hi)<<frame.TestChipAddrHigh3Offset
			w2 = fs[i+2].Payload()&^low7 | uint32(lo)<<frame.TestChipAddrLow7Offset
		)
		out[i+0] = fs[i+0]
		out[i+1] = fs[i+1].WithPayload(w1)
		out[i+2] = fs[i+2].WithPayload(w2)
	}
	return out, nil
}
