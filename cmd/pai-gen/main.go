// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pai-gen generates groups of PAICORE test frames.
//
// Usage: pai-gen [OPTIONS]
//
// Example:
//
//	$> pai-gen -dir EAST -mode ncores-nparams -n 10 -mask 0,3 -o ./out
//	pai-gen: wrote 30 frames to "out/config.bin"
//	pai-gen: wrote 10 frames to "out/input.bin"
//	pai-gen: wrote 30 frames to "out/output.bin"
package main // import "github.com/go-lpc/pai/cmd/pai-gen"

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-lpc/pai/paitest"
)

var (
	msg = log.New(os.Stdout, "pai-gen: ", 0)
)

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	var (
		fset = flag.NewFlagSet("pai-gen", flag.ExitOnError)

		fname = fset.String("cfg", "", "path to a TOML run description")
		dir   = fset.String("dir", "", "direction of the test chip (EAST, SOUTH, WEST, NORTH)")
		chip  = fset.String("chip", "", "coordinate x,y of the chip under test")
		mode  = fset.String("mode", "", "generation mode (1core-1param, 1core-nparams, ncores-1param, ncores-nparams)")
		n     = fset.Int("n", 0, "number of cores/parameter registers")
		mask  = fset.String("mask", "", "coordinate x,y of the core to exclude")
		seed  = fset.Uint64("seed", 0, "seed of the random parameter registers")
		oname = fset.String("o", "", "output directory")
	)

	fset.Usage = func() {
		fmt.Printf(`Usage: pai-gen [OPTIONS]

ex:
 $> pai-gen -dir EAST -mode ncores-nparams -n 10 -mask 0,3 -o ./out
 $> pai-gen -cfg ./run.toml

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		msg.Fatalf("could not parse input arguments: %+v", err)
	}

	var cfg paitest.Config
	if *fname != "" {
		cfg, err = paitest.LoadConfig(*fname)
		if err != nil {
			msg.Fatalf("could not load run description: %+v", err)
		}
	}

	err = override(&cfg, cmdline{
		dir:   *dir,
		chip:  *chip,
		mode:  *mode,
		n:     *n,
		mask:  *mask,
		seed:  *seed,
		oname: *oname,
	})
	if err != nil {
		fset.Usage()
		msg.Fatalf("invalid arguments: %+v", err)
	}

	if cfg.Output == "" {
		fset.Usage()
		msg.Fatalf("missing output directory")
	}

	grp, err := process(cfg)
	if err != nil {
		msg.Fatalf("could not generate frames: %+v", err)
	}
	msg.Printf("generated %d config, %d input and %d output frames",
		len(grp.Config), len(grp.Input), len(grp.Output),
	)
}

func process(cfg paitest.Config) (paitest.Group, error) {
	err := cfg.Validate()
	if err != nil {
		return paitest.Group{}, fmt.Errorf("invalid run description: %w", err)
	}
	return cfg.Run(msg)
}

// cmdline holds the command-line values. Zero values are not set.
type cmdline struct {
	dir   string
	chip  string
	mode  string
	n     int
	mask  string
	seed  uint64
	oname string
}

// override applies the command-line values on top of cfg.
func override(cfg *paitest.Config, cmd cmdline) error {
	var err error
	if cmd.dir != "" {
		cfg.Direction = cmd.dir
	}
	if cfg.Direction == "" {
		cfg.Direction = "EAST"
	}
	if cmd.chip != "" {
		cfg.Chip, err = parseXY(cmd.chip)
		if err != nil {
			return fmt.Errorf("invalid chip: %w", err)
		}
	}
	if cmd.mode != "" {
		cfg.Mode = strings.ToLower(cmd.mode)
	}
	if cfg.Mode == "" {
		cfg.Mode = paitest.ModeNCoresNParams
	}
	if cmd.n != 0 {
		cfg.N = cmd.n
	}
	if cfg.N == 0 {
		cfg.N = 1
	}
	if cmd.mask != "" {
		cfg.Mask, err = parseXY(cmd.mask)
		if err != nil {
			return fmt.Errorf("invalid mask: %w", err)
		}
	}
	if cmd.seed != 0 {
		cfg.Seed = cmd.seed
	}
	if cmd.oname != "" {
		cfg.Output = cmd.oname
	}
	return nil
}

func parseXY(s string) ([]int, error) {
	toks := strings.Split(s, ",")
	vs := make([]int, len(toks))
	for i, tok := range toks {
		v, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("could not parse %q: %w", s, err)
		}
		vs[i] = v
	}
	return vs, nil
}
