// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame encodes and decodes PAICORE 64-bit frames.
//
// A frame is laid out as:
//
//	[63:60] header
//	[59:50] chip address
//	[49:40] core address
//	[39:30] core* address
//	[29:0]  payload
package frame // import "github.com/go-lpc/pai/frame"

import (
	"errors"
	"fmt"

	"github.com/go-lpc/pai/coord"
)

var (
	ErrDecode       = errors.New("frame: could not decode")
	ErrInvalidParam = errors.New("frame: invalid parameter")
)

// Header is the 4-bit frame subtype.
type Header uint8

const (
	ConfigType1 Header = 0b0000
	ConfigType2 Header = 0b0001 // parameter register
	ConfigType3 Header = 0b0010 // neuron RAM
	ConfigType4 Header = 0b0011 // weight RAM
	TestType1   Header = 0b0100
	TestType2   Header = 0b0101 // parameter register
	TestType3   Header = 0b0110
	TestType4   Header = 0b0111
	WorkType1   Header = 0b1000 // spike
	WorkType2   Header = 0b1001 // sync
	WorkType3   Header = 0b1010 // clear
	WorkType4   Header = 0b1011 // init
)

var headerNames = [...]string{
	ConfigType1: "config-I",
	ConfigType2: "config-II",
	ConfigType3: "config-III",
	ConfigType4: "config-IV",
	TestType1:   "test-I",
	TestType2:   "test-II",
	TestType3:   "test-III",
	TestType4:   "test-IV",
	WorkType1:   "work-I",
	WorkType2:   "work-II",
	WorkType3:   "work-III",
	WorkType4:   "work-IV",
}

// Valid reports whether h is one of the 12 legal subtypes.
func (h Header) Valid() bool {
	return int(h) < len(headerNames)
}

func (h Header) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Header(0b%04b)", uint8(h))
	}
	return headerNames[h]
}

// Frame is a 64-bit PAICORE frame.
type Frame uint64

// New assembles a frame from its fields.
// Fields wider than their slot are truncated.
func New(h Header, chip, core, coreEx coord.Coord, payload uint32) Frame {
	return Frame(uint64(h&HeaderMask)<<HeaderOffset |
		uint64(coord.ToAddr(chip)&AddrMask)<<ChipAddrOffset |
		uint64(coord.ToAddr(core)&AddrMask)<<CoreAddrOffset |
		uint64(coord.ToAddr(coreEx)&AddrMask)<<CoreExAddrOffset |
		uint64(payload&PayloadMask)<<PayloadOffset)
}

func (f Frame) Header() Header { return Header(f >> HeaderOffset & HeaderMask) }

func (f Frame) ChipAddr() coord.Addr   { return coord.Addr(f >> ChipAddrOffset & AddrMask) }
func (f Frame) CoreAddr() coord.Addr   { return coord.Addr(f >> CoreAddrOffset & AddrMask) }
func (f Frame) CoreExAddr() coord.Addr { return coord.Addr(f >> CoreExAddrOffset & AddrMask) }

func (f Frame) Payload() uint32 { return uint32(f >> PayloadOffset & PayloadMask) }

// WithCoreAddr returns f with its core address replaced by a.
func (f Frame) WithCoreAddr(a coord.Addr) Frame {
	const mask = Frame(AddrMask) << CoreAddrOffset
	return f&^mask | Frame(a&AddrMask)<<CoreAddrOffset
}

// WithPayload returns f with its payload replaced by p.
func (f Frame) WithPayload(p uint32) Frame {
	const mask = Frame(PayloadMask) << PayloadOffset
	return f&^mask | Frame(p&PayloadMask)<<PayloadOffset
}

func (f Frame) String() string {
	return fmt.Sprintf("0x%016x", uint64(f))
}

// addrCoord converts a 10-bit field into a coordinate.
// The field width guarantees success.
func addrCoord(a coord.Addr) coord.Coord {
	c, err := coord.FromAddr(a & AddrMask)
	if err != nil {
		panic(err)
	}
	return c
}
