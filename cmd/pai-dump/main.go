// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pai-dump decodes and displays PAICORE frame files.
//
// Usage: pai-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> pai-dump ./out/config.bin
//	=== config.bin ===
//	Frames:               3
//	0x100064002587d124 config-II  chip=(0, 0) core=(3, 4) core*=(0, 0) payload=0x2587d124
//	0x100064001a7abcc9 config-II  chip=(0, 0) core=(3, 4) core*=(0, 0) payload=0x1a7abcc9
//	0x1000640012800000 config-II  chip=(0, 0) core=(3, 4) core*=(0, 0) payload=0x12800000
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-lpc/pai/frame"
	"github.com/go-lpc/pai/paitest"
)

func main() {
	log.SetPrefix("pai-dump: ")
	log.SetFlags(0)

	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	var (
		fset = flag.NewFlagSet("pai-dump", flag.ExitOnError)
		reg  = fset.Bool("reg", false, "decode parameter registers")
	)

	fset.Usage = func() {
		fmt.Printf(`pai-dump decodes and displays PAICORE frame files.

Usage: pai-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> pai-dump ./out/config.bin
 === config.bin ===
 Frames:               3
 0x100064002587d124 config-II  chip=(0, 0) core=(3, 4) core*=(0, 0) payload=0x2587d124
 0x100064001a7abcc9 config-II  chip=(0, 0) core=(3, 4) core*=(0, 0) payload=0x1a7abcc9
 0x1000640012800000 config-II  chip=(0, 0) core=(3, 4) core*=(0, 0) payload=0x12800000

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		log.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() == 0 {
		fset.Usage()
		log.Fatalf("missing path to input frame file")
	}

	for _, fname := range fset.Args() {
		err := process(w, fname, *reg)
		if err != nil {
			log.Fatalf("could not dump file %q: %+v", fname, err)
		}
	}
}

func process(w io.Writer, fname string, reg bool) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	fs, err := paitest.ReadFile(fname)
	if err != nil {
		return err
	}

	fmt.Fprintf(wbuf, "=== %s ===\n", filepath.Base(fname))
	fmt.Fprintf(wbuf, "Frames:      % 10d\n", len(fs))

	for i, f := range fs {
		rec, err := frame.Decode(f)
		if err != nil {
			return fmt.Errorf("could not decode frame #%d: %w", i, err)
		}
		fmt.Fprintf(wbuf, "%v %-10s chip=%v core=%v core*=%v payload=0x%08x\n",
			f, rec.Header, rec.ChipCoord, rec.CoreCoord, rec.CoreExCoord, rec.Payload,
		)
	}

	if !reg {
		return nil
	}

	if len(fs)%frame.ParamRegWords != 0 {
		return fmt.Errorf("could not decode registers: %d frames is not a multiple of %d", len(fs), frame.ParamRegWords)
	}
	for i := 0; i < len(fs); i += frame.ParamRegWords {
		rec, err := frame.DecodeParamReg(fs[i:])
		if err != nil {
			return fmt.Errorf("could not decode register #%d: %w", i/frame.ParamRegWords, err)
		}
		r := rec.Reg
		fmt.Fprintf(wbuf, "core=%v weight_width=%d LCN=%d input_width=%d spike_width=%d neuron_num=%d pool_max=%d tick_wait_start=%d tick_wait_end=%d snn_en=%d target_LCN=%d test_chip=%v\n",
			rec.CoreCoord,
			r.WeightWidth, r.LCN, r.InputWidth, r.SpikeWidth, r.NeuronNum,
			r.PoolMax, r.TickWaitStart, r.TickWaitEnd, r.SNNEn, r.TargetLCN,
			r.TestChip,
		)
	}

	return nil
}
