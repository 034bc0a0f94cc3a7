// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paitest

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/go-lpc/pai/coord"
	"github.com/go-lpc/pai/frame"
	"golang.org/x/exp/rand"
	"golang.org/x/xerrors"
)

type genFunc func(gen *Generator, n int, opts ...GenOption) (Group, error)

var modes = []struct {
	name   string
	fct    genFunc
	ncores func(n int) int
}{
	{
		name: "1core-nparams",
		fct:  (*Generator).OneCoreNParams,
		ncores: func(int) int {
			return 1
		},
	},
	{
		name:   "ncores-1param",
		fct:    (*Generator).NCoresOneParam,
		ncores: func(n int) int { return n },
	},
	{
		name:   "ncores-nparams",
		fct:    (*Generator).NCoresNParams,
		ncores: func(n int) int { return n },
	},
}

func newGen(t *testing.T) *Generator {
	t.Helper()
	gen, err := New("EAST", WithSeed(1234))
	if err != nil {
		t.Fatalf("could not create generator: %+v", err)
	}
	return gen
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		dir  string
		chip coord.Coord
		want coord.Coord
		err  error
	}{
		{dir: "EAST", want: coord.Coord{X: 1, Y: 0}},
		{dir: "NORTH", want: coord.Coord{X: 0, Y: 1}},
		{dir: "WEST", chip: coord.Coord{X: 3, Y: 3}, want: coord.Coord{X: 2, Y: 3}},
		{dir: "SOUTH", chip: coord.Coord{X: 3, Y: 3}, want: coord.Coord{X: 3, Y: 2}},
		{dir: "WEST", err: coord.ErrInvalidCoord},
		{dir: "EAST", chip: coord.Coord{X: 31, Y: 0}, err: coord.ErrInvalidCoord},
		{dir: "EAST", chip: coord.Coord{X: -1, Y: 0}, err: coord.ErrInvalidCoord},
		{dir: "DOWN", err: coord.ErrUnsupportedDirection},
		{dir: "", err: coord.ErrUnsupportedDirection},
	} {
		t.Run(fmt.Sprintf("%s-%v", tc.dir, tc.chip), func(t *testing.T) {
			gen, err := New(tc.dir, WithChip(tc.chip))
			if tc.err != nil {
				if !xerrors.Is(err, tc.err) {
					t.Fatalf("invalid error: got=%v, want=%v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("could not create generator: %+v", err)
			}
			if got, want := gen.TestChip(), tc.want; got != want {
				t.Fatalf("invalid test chip: got=%v, want=%v", got, want)
			}
			if got, want := gen.Chip(), tc.chip; got != want {
				t.Fatalf("invalid chip: got=%v, want=%v", got, want)
			}
		})
	}
}

func TestRandomDirections(t *testing.T) {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	rnd := rand.New(rand.NewSource(1234))
	for i := 0; i < 100; i++ {
		var sb strings.Builder
		for j, n := 0, rnd.Intn(11); j < n; j++ {
			sb.WriteByte(letters[rnd.Intn(len(letters))])
		}
		name := sb.String()
		if _, err := coord.DirectionFrom(name); err == nil {
			continue // valid direction by chance.
		}
		_, err := New(name)
		if !xerrors.Is(err, coord.ErrUnsupportedDirection) {
			t.Fatalf("direction %q: invalid error: got=%v, want=%v", name, err, coord.ErrUnsupportedDirection)
		}
	}
}

func TestGroupLengths(t *testing.T) {
	gen := newGen(t)

	grp, err := gen.OneCoreOneParam()
	if err != nil {
		t.Fatalf("could not generate 1core-1param: %+v", err)
	}
	checkLengths(t, grp, 1)

	for _, mode := range modes {
		for _, n := range []int{1, 2, 10, MaxCores} {
			t.Run(fmt.Sprintf("%s-%d", mode.name, n), func(t *testing.T) {
				grp, err := mode.fct(gen, n)
				if err != nil {
					t.Fatalf("could not generate group: %+v", err)
				}
				checkLengths(t, grp, n)
			})
		}
	}
}

func checkLengths(t *testing.T, grp Group, n int) {
	t.Helper()
	if got, want := len(grp.Config), 3*n; got != want {
		t.Fatalf("invalid config length: got=%d, want=%d", got, want)
	}
	if got, want := len(grp.Input), n; got != want {
		t.Fatalf("invalid input length: got=%d, want=%d", got, want)
	}
	if got, want := len(grp.Output), 3*n; got != want {
		t.Fatalf("invalid output length: got=%d, want=%d", got, want)
	}
}

func TestCapacity(t *testing.T) {
	gen := newGen(t)
	if got, want := MaxCores, 1008; got != want {
		t.Fatalf("invalid capacity: got=%d, want=%d", got, want)
	}

	for _, mode := range modes {
		t.Run(mode.name, func(t *testing.T) {
			for _, tc := range []struct {
				n    int
				mask []int
				err  error
			}{
				{n: MaxCores},
				{n: MaxCores + 1, err: ErrCapacity},
				{n: MaxCores + 1, mask: []int{0, 0}, err: ErrCapacity},
				{n: MaxCores + 1, mask: []int{-1, 0}, err: ErrCapacity},
				{n: 0, err: ErrInvalidCount},
				{n: -1, err: ErrInvalidCount},
				{n: MaxCores, mask: []int{31, 31}},
				{n: 10, mask: []int{32, 0}, err: coord.ErrInvalidCoord},
				{n: 10, mask: []int{0, -1}, err: coord.ErrInvalidCoord},
			} {
				var opts []GenOption
				if tc.mask != nil {
					opts = append(opts, WithMask(tc.mask[0], tc.mask[1]))
				}
				grp, err := mode.fct(gen, tc.n, opts...)
				if tc.err != nil {
					if !xerrors.Is(err, tc.err) {
						t.Fatalf("n=%d, mask=%v: invalid error: got=%v, want=%v", tc.n, tc.mask, err, tc.err)
					}
					if !reflect.DeepEqual(grp, Group{}) {
						t.Fatalf("n=%d, mask=%v: partial group returned", tc.n, tc.mask)
					}
					continue
				}
				if err != nil {
					t.Fatalf("n=%d, mask=%v: could not generate group: %+v", tc.n, tc.mask, err)
				}
			}

			// a usable masked core reduces the capacity by one.
			_, err := mode.fct(gen, MaxCores, WithMask(5, 5))
			switch mode.ncores(MaxCores) {
			case 1:
				if err != nil {
					t.Fatalf("could not generate group: %+v", err)
				}
			default:
				if !xerrors.Is(err, ErrCapacity) {
					t.Fatalf("invalid error: got=%v, want=%v", err, ErrCapacity)
				}
			}
		})
	}
}

func TestScenario1008(t *testing.T) {
	grp, err := newGen(t).OneCoreNParams(1008)
	if err != nil {
		t.Fatalf("could not generate group: %+v", err)
	}
	if got, want := len(grp.Config), 3024; got != want {
		t.Fatalf("invalid config length: got=%d, want=%d", got, want)
	}
}

func TestAllocation(t *testing.T) {
	gen := newGen(t)
	grp, err := gen.NCoresNParams(MaxCores)
	if err != nil {
		t.Fatalf("could not generate group: %+v", err)
	}

	var (
		seen = make(map[coord.Coord]bool, MaxCores)
		prev *coord.Coord
	)
	for i, f := range grp.Input {
		rec, err := frame.Decode(f)
		if err != nil {
			t.Fatalf("could not decode input frame #%d: %+v", i, err)
		}
		c := rec.CoreCoord
		if seen[c] {
			t.Fatalf("core %v allocated twice", c)
		}
		seen[c] = true
		if Reserved(c) {
			t.Fatalf("reserved core %v allocated", c)
		}
		if prev != nil && !prev.Less(c) {
			t.Fatalf("cores out of order: %v then %v", *prev, c)
		}
		prev = &c
	}
}

func TestAllocationMaskOrder(t *testing.T) {
	gen := newGen(t)
	grp, err := gen.NCoresOneParam(4, WithMask(0, 1))
	if err != nil {
		t.Fatalf("could not generate group: %+v", err)
	}
	want := []coord.Coord{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 0, Y: 3}, {X: 0, Y: 4}}
	for i, f := range grp.Input {
		rec, err := frame.Decode(f)
		if err != nil {
			t.Fatalf("could not decode input frame #%d: %+v", i, err)
		}
		if got := rec.CoreCoord; got != want[i] {
			t.Fatalf("core #%d: got=%v, want=%v", i, got, want[i])
		}
	}
}

func TestMasking(t *testing.T) {
	var (
		gen = newGen(t)
		rnd = rand.New(rand.NewSource(1234))
	)

	for i := 0; i < 1000; i++ {
		mask := coord.Coord{X: rnd.Intn(32), Y: rnd.Intn(32)}
		if i < 10 {
			mask = coord.Coord{X: 0, Y: i} // within the first allocated cores.
		}
		grp, err := gen.NCoresNParams(10, WithMask(mask.X, mask.Y))
		if err != nil {
			t.Fatalf("mask=%v: could not generate group: %+v", mask, err)
		}
		for j, f := range grp.Config {
			rec, err := frame.Decode(f)
			if err != nil {
				t.Fatalf("mask=%v: could not decode frame #%d: %+v", mask, j, err)
			}
			if rec.CoreCoord == mask {
				t.Fatalf("mask=%v: frame #%d allocated to the masked core", mask, j)
			}
		}
	}
}

func TestGroupContent(t *testing.T) {
	gen := newGen(t)
	for _, mode := range modes {
		t.Run(mode.name, func(t *testing.T) {
			const n = 7
			grp, err := mode.fct(gen, n)
			if err != nil {
				t.Fatalf("could not generate group: %+v", err)
			}

			regs := make(map[frame.ParamReg]bool)
			for i := 0; i < n; i++ {
				cfg, err := frame.DecodeParamReg(grp.Config[3*i:])
				if err != nil {
					t.Fatalf("could not decode config register #%d: %+v", i, err)
				}
				out, err := frame.DecodeParamReg(grp.Output[3*i:])
				if err != nil {
					t.Fatalf("could not decode output register #%d: %+v", i, err)
				}
				in, err := frame.Decode(grp.Input[i])
				if err != nil {
					t.Fatalf("could not decode input frame #%d: %+v", i, err)
				}

				if got, want := cfg.Header, frame.ConfigType2; got != want {
					t.Fatalf("invalid config header: got=%v, want=%v", got, want)
				}
				if got, want := in.Header, frame.TestType2; got != want {
					t.Fatalf("invalid input header: got=%v, want=%v", got, want)
				}
				if got, want := out.Header, frame.TestType2; got != want {
					t.Fatalf("invalid output header: got=%v, want=%v", got, want)
				}
				if got, want := cfg.ChipCoord, gen.Chip(); got != want {
					t.Fatalf("invalid config chip: got=%v, want=%v", got, want)
				}
				if got, want := out.ChipCoord, gen.TestChip(); got != want {
					t.Fatalf("invalid output chip: got=%v, want=%v", got, want)
				}
				if cfg.CoreCoord != in.CoreCoord || cfg.CoreCoord != out.CoreCoord {
					t.Fatalf("core mismatch: config=%v, input=%v, output=%v", cfg.CoreCoord, in.CoreCoord, out.CoreCoord)
				}
				if *cfg.Reg != *out.Reg {
					t.Fatalf("register mismatch:\nconfig=%+v\noutput=%+v", *cfg.Reg, *out.Reg)
				}
				if got, want := cfg.Reg.TestChip, gen.TestChip(); got != want {
					t.Fatalf("invalid test chip: got=%v, want=%v", got, want)
				}
				regs[*cfg.Reg] = true
			}

			want := n
			if mode.name == "ncores-1param" {
				want = 1
			}
			if got := len(regs); got != want {
				t.Fatalf("invalid number of distinct registers: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	gen := newGen(t)
	g1, err := gen.NCoresNParams(20, WithMask(0, 3))
	if err != nil {
		t.Fatalf("could not generate group: %+v", err)
	}
	g2, err := gen.NCoresNParams(20, WithMask(0, 3))
	if err != nil {
		t.Fatalf("could not generate group: %+v", err)
	}
	if !reflect.DeepEqual(g1, g2) {
		t.Fatalf("generation is not reproducible")
	}

	other, err := New("EAST", WithSeed(4321))
	if err != nil {
		t.Fatalf("could not create generator: %+v", err)
	}
	g3, err := other.NCoresNParams(20, WithMask(0, 3))
	if err != nil {
		t.Fatalf("could not generate group: %+v", err)
	}
	if !reflect.DeepEqual(g1.Input, g3.Input) {
		t.Fatalf("allocation depends on the seed")
	}
	if reflect.DeepEqual(g1.Config, g3.Config) {
		t.Fatalf("registers do not depend on the seed")
	}
}

func TestAllocateCapacity(t *testing.T) {
	for _, tc := range []struct {
		name string
		n    int
		mask *coord.Coord
	}{
		{name: "no-mask", n: MaxCores + 1},
		{name: "mask", n: MaxCores, mask: &coord.Coord{X: 1, Y: 2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := allocate(tc.n, tc.mask)
			if !xerrors.Is(err, ErrCapacity) {
				t.Fatalf("invalid error: got=%v, want=%v", err, ErrCapacity)
			}
		})
	}
}
