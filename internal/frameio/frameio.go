// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frameio reads and writes streams of PAICORE frames.
//
// A stream is a plain sequence of 64-bit big-endian words.
package frameio // import "github.com/go-lpc/pai/internal/frameio"

import (
	"encoding/binary"
	"io"

	"github.com/go-lpc/pai/frame"
	"golang.org/x/xerrors"
)

const wordSize = 8

// Encoder writes frames to an output stream.
type Encoder struct {
	w   io.Writer
	buf []byte
	err error
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:   w,
		buf: make([]byte, wordSize),
	}
}

// Encode writes fs to the stream.
func (enc *Encoder) Encode(fs []frame.Frame) error {
	for i, f := range fs {
		enc.writeU64(uint64(f))
		if enc.err != nil {
			return xerrors.Errorf("frameio: could not write frame #%d: %w", i, enc.err)
		}
	}
	return nil
}

func (enc *Encoder) writeU64(v uint64) {
	if enc.err != nil {
		return
	}
	binary.BigEndian.PutUint64(enc.buf, v)
	_, enc.err = enc.w.Write(enc.buf)
}

// Decoder reads frames from an input stream.
type Decoder struct {
	r   io.Reader
	buf []byte
	err error
}

// NewDecoder returns a new Decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:   r,
		buf: make([]byte, wordSize),
	}
}

// Decode reads the next frame.
// Decode returns io.EOF when the stream ends on a frame boundary.
func (dec *Decoder) Decode(f *frame.Frame) error {
	v := dec.readU64()
	if dec.err != nil {
		if xerrors.Is(dec.err, io.EOF) {
			return io.EOF
		}
		return xerrors.Errorf("frameio: could not read frame: %w", dec.err)
	}
	*f = frame.Frame(v)
	return nil
}

// DecodeAll reads frames until the end of the stream.
func (dec *Decoder) DecodeAll() ([]frame.Frame, error) {
	var fs []frame.Frame
	for {
		var f frame.Frame
		err := dec.Decode(&f)
		if err != nil {
			if xerrors.Is(err, io.EOF) {
				return fs, nil
			}
			return fs, err
		}
		fs = append(fs, f)
	}
}

func (dec *Decoder) readU64() uint64 {
	if dec.err != nil {
		return 0
	}
	_, dec.err = io.ReadFull(dec.r, dec.buf)
	if dec.err != nil {
		return 0
	}
	return binary.BigEndian.Uint64(dec.buf)
}
