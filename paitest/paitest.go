// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paitest generates groups of frames testing the parameter
// registers of the cores of a PAICORE chip.
//
// A group is made of 3 sequences:
//   - the config-II frames writing the parameter register of each core,
//   - the test-II input frames asking each core for its register,
//   - the test-II output frames each core is expected to send back to
//     the test chip.
package paitest // import "github.com/go-lpc/pai/paitest"

import (
	"errors"

	"github.com/go-lpc/pai/coord"
	"github.com/go-lpc/pai/frame"
	"golang.org/x/xerrors"
)

const (
	// MaxCores is the number of cores that can be allocated on a chip.
	MaxCores = coord.NumAddrs - numReserved

	numReserved  = 16
	reservedBase = 0b11100 // cores with x and y >= reservedBase are reserved.
)

var (
	ErrCapacity     = errors.New("paitest: capacity exceeded")
	ErrInvalidCount = errors.New("paitest: invalid count")
)

// Group holds the frames of a test.
type Group struct {
	Config []frame.Frame
	Input  []frame.Frame
	Output []frame.Frame
}

// Generator generates groups of test frames.
// A Generator is immutable and safe for concurrent use.
type Generator struct {
	dir      coord.Direction
	chip     coord.Coord
	testChip coord.Coord
	seed     uint64
}

// Option configures a Generator.
type Option func(gen *Generator)

// WithChip sets the coordinate of the chip under test.
// The default is (0, 0).
func WithChip(c coord.Coord) Option {
	return func(gen *Generator) {
		gen.chip = c
	}
}

// WithSeed sets the seed of the random parameter registers.
func WithSeed(seed uint64) Option {
	return func(gen *Generator) {
		gen.seed = seed
	}
}

// New returns a generator whose test chip is the neighbour of the chip
// under test in the given direction.
func New(direction string, opts ...Option) (*Generator, error) {
	dir, err := coord.DirectionFrom(direction)
	if err != nil {
		return nil, xerrors.Errorf("paitest: could not create generator: %w", err)
	}

	gen := &Generator{dir: dir}
	for _, opt := range opts {
		opt(gen)
	}

	gen.chip, err = coord.New(gen.chip.X, gen.chip.Y)
	if err != nil {
		return nil, xerrors.Errorf("paitest: invalid chip: %w", err)
	}

	gen.testChip, err = gen.chip.Add(dir.Offset())
	if err != nil {
		return nil, xerrors.Errorf("paitest: no test chip %v of chip %v: %w", dir, gen.chip, err)
	}

	return gen, nil
}

// Direction returns the direction of the test chip.
func (gen *Generator) Direction() coord.Direction { return gen.dir }

// Chip returns the coordinate of the chip under test.
func (gen *Generator) Chip() coord.Coord { return gen.chip }

// TestChip returns the coordinate of the test chip.
func (gen *Generator) TestChip() coord.Coord { return gen.testChip }

// OneCoreOneParam tests one core with one parameter register.
func (gen *Generator) OneCoreOneParam(opts ...GenOption) (Group, error) {
	return gen.generate(1, 1, opts)
}

// OneCoreNParams tests one core with n parameter registers.
func (gen *Generator) OneCoreNParams(n int, opts ...GenOption) (Group, error) {
	return gen.generate(1, n, opts)
}

// NCoresOneParam tests n cores sharing the same parameter register.
func (gen *Generator) NCoresOneParam(n int, opts ...GenOption) (Group, error) {
	return gen.generate(n, 1, opts)
}

// NCoresNParams tests n cores, each with its own parameter register.
func (gen *Generator) NCoresNParams(n int, opts ...GenOption) (Group, error) {
	return gen.generate(n, n, opts)
}

// generate builds a group testing ncores cores with nparams registers.
// When ncores is 1, the single core is configured nparams times.
func (gen *Generator) generate(ncores, nparams int, opts []GenOption) (Group, error) {
	n := ncores
	if nparams > n {
		n = nparams
	}
	if n > MaxCores {
		return Group{}, xerrors.Errorf("paitest: %d cores requested, max is %d: %w", n, MaxCores, ErrCapacity)
	}
	if n < 1 {
		return Group{}, xerrors.Errorf("paitest: %d cores requested: %w", n, ErrInvalidCount)
	}

	var cfg genConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	mask, err := cfg.maskCoord()
	if err != nil {
		return Group{}, err
	}

	cores, err := allocate(ncores, mask)
	if err != nil {
		return Group{}, err
	}

	regs := gen.params(nparams)

	// expand to one (core, register) pair per configured word group.
	if ncores == 1 && nparams > 1 {
		all := make([]coord.Coord, nparams)
		for i := range all {
			all[i] = cores[0]
		}
		cores = all
	}

	var grp Group
	grp.Config, err = frame.ConfigFrames(gen.chip, cores, regs)
	if err != nil {
		return Group{}, xerrors.Errorf("paitest: could not generate config frames: %w", err)
	}

	grp.Input = frame.TestInFrames(gen.chip, cores)

	grp.Output, err = frame.TestOutFrames(gen.testChip, cores, regs)
	if err != nil {
		return Group{}, xerrors.Errorf("paitest: could not generate output frames: %w", err)
	}

	if cfg.dir != "" {
		err = Save(cfg.dir, grp, cfg.log)
		if err != nil {
			return Group{}, xerrors.Errorf("paitest: could not save frames: %w", err)
		}
	}

	return grp, nil
}
