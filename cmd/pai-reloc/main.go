// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pai-reloc relocates the frames of a PAICORE frame file to
// another core and/or another test chip, without regenerating them.
package main // import "github.com/go-lpc/pai/cmd/pai-reloc"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-lpc/pai/coord"
	"github.com/go-lpc/pai/paitest"
)

var (
	msg = log.New(os.Stdout, "pai-reloc: ", 0)
)

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	var (
		fset = flag.NewFlagSet("pai-reloc", flag.ExitOnError)

		oname = fset.String("o", "out.bin", "path to output frame file")
		core  = fset.String("core", "", "coordinate x,y of the new core")
		chip  = fset.String("test-chip", "", "coordinate x,y of the new test chip")
	)

	fset.Usage = func() {
		fmt.Printf(`Usage: pai-reloc [OPTIONS] file.bin

ex:
 $> pai-reloc -core 3,4 -o out.bin ./config.bin
 $> pai-reloc -test-chip 0,1 -o out.bin ./config.bin

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		log.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() != 1 {
		fset.Usage()
		msg.Fatalf("missing input frame file")
	}

	if *oname == "" {
		fset.Usage()
		msg.Fatalf("invalid output frame file")
	}

	if *core == "" && *chip == "" {
		fset.Usage()
		msg.Fatalf("missing relocation target")
	}

	err = process(*oname, fset.Arg(0), *core, *chip)
	if err != nil {
		msg.Fatalf("could not relocate frames of %q: %+v", fset.Arg(0), err)
	}
}

func process(oname, fname, core, chip string) error {
	fs, err := paitest.ReadFile(fname)
	if err != nil {
		return err
	}

	if core != "" {
		c, err := parseCoord(core)
		if err != nil {
			return fmt.Errorf("invalid core: %w", err)
		}
		fs, err = paitest.ReplaceCoreCoords(fs, c)
		if err != nil {
			return fmt.Errorf("could not relocate core: %w", err)
		}
		msg.Printf("relocated %d frames to core %v", len(fs), c)
	}

	if chip != "" {
		c, err := parseCoord(chip)
		if err != nil {
			return fmt.Errorf("invalid test chip: %w", err)
		}
		fs, err = paitest.ReplaceTestChipCoord(fs, c)
		if err != nil {
			return fmt.Errorf("could not relocate test chip: %w", err)
		}
		msg.Printf("relocated %d registers to test chip %v", len(fs)/3, c)
	}

	err = paitest.WriteFile(oname, fs)
	if err != nil {
		return fmt.Errorf("could not write relocated frames: %w", err)
	}
	return nil
}

func parseCoord(s string) (coord.Coord, error) {
	toks := strings.Split(s, ",")
	vs := make([]int, len(toks))
	for i, tok := range toks {
		v, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return coord.Coord{}, fmt.Errorf("could not parse %q: %w", s, err)
		}
		vs[i] = v
	}
	return coord.Make(vs...)
}
