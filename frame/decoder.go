// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"github.com/go-lpc/pai/coord"
	"golang.org/x/xerrors"
)

// Record is a decoded frame.
type Record struct {
	Header      Header
	ChipCoord   coord.Coord
	CoreCoord   coord.Coord
	CoreExCoord coord.Coord
	Payload     uint32

	// Reg is only set by DecodeParamReg.
	Reg *ParamReg
}

// Decode decodes a single frame.
func Decode(f Frame) (Record, error) {
	hdr := f.Header()
	if !hdr.Valid() {
		return Record{}, xerrors.Errorf("frame: invalid header 0b%04b in frame %v: %w", uint8(hdr), f, ErrDecode)
	}
	return Record{
		Header:      hdr,
		ChipCoord:   addrCoord(f.ChipAddr()),
		CoreCoord:   addrCoord(f.CoreAddr()),
		CoreExCoord: addrCoord(f.CoreExAddr()),
		Payload:     f.Payload(),
	}, nil
}

// DecodeParamReg decodes the parameter register carried by the first
// 3 frames of fs.
// The frames must be config-II or test-II frames sharing the same
// header and addresses.
func DecodeParamReg(fs []Frame) (Record, error) {
	if len(fs) < ParamRegWords {
		return Record{}, xerrors.Errorf(
			"frame: too few frames for a parameter register (got=%d, want=%d): %w",
			len(fs), ParamRegWords, ErrDecode,
		)
	}

	rec, err := Decode(fs[0])
	if err != nil {
		return Record{}, err
	}
	switch rec.Header {
	case ConfigType2, TestType2:
	default:
		return Record{}, xerrors.Errorf("frame: %v frame does not carry a parameter register: %w", rec.Header, ErrDecode)
	}

	const addrs = Frame(HeaderMask)<<HeaderOffset |
		Frame(AddrMask)<<ChipAddrOffset |
		Frame(AddrMask)<<CoreAddrOffset |
		Frame(AddrMask)<<CoreExAddrOffset

	var ws [ParamRegWords]uint64
	for i, f := range fs[:ParamRegWords] {
		if f&addrs != fs[0]&addrs {
			return Record{}, xerrors.Errorf(
				"frame: frame #%d (%v) inconsistent with frame #0 (%v): %w",
				i, f, fs[0], ErrDecode,
			)
		}
		ws[i] = uint64(f.Payload())
	}

	reg := paramRegFrom(ws)
	rec.Reg = &reg
	return rec, nil
}
