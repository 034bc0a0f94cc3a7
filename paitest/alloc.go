// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paitest

import (
	"log"

	"github.com/go-lpc/pai/coord"
	"golang.org/x/xerrors"
)

// GenOption configures the generation of a group.
type GenOption func(cfg *genConfig)

type genConfig struct {
	mask []int
	dir  string
	log  *log.Logger
}

// WithMask excludes the core (x, y) from the allocation.
func WithMask(x, y int) GenOption {
	return func(cfg *genConfig) {
		cfg.mask = []int{x, y}
	}
}

// WithSaveDir saves the generated frames under dir.
func WithSaveDir(dir string) GenOption {
	return func(cfg *genConfig) {
		cfg.dir = dir
	}
}

// WithLogger reports saved files to msg.
func WithLogger(msg *log.Logger) GenOption {
	return func(cfg *genConfig) {
		cfg.log = msg
	}
}

func (cfg genConfig) maskCoord() (*coord.Coord, error) {
	if cfg.mask == nil {
		return nil, nil
	}
	c, err := coord.Make(cfg.mask...)
	if err != nil {
		return nil, xerrors.Errorf("paitest: invalid masked core: %w", err)
	}
	return &c, nil
}

// Reserved reports whether c is one of the reserved core addresses.
func Reserved(c coord.Coord) bool {
	return c.X >= reservedBase && c.Y >= reservedBase
}

// allocate returns the first n usable cores in address order,
// skipping mask.
func allocate(n int, mask *coord.Coord) ([]coord.Coord, error) {
	avail := MaxCores
	if mask != nil && !Reserved(*mask) {
		avail--
	}
	if n > avail {
		return nil, xerrors.Errorf(
			"paitest: %d cores requested, %d available: %w",
			n, avail, ErrCapacity,
		)
	}

	cores := make([]coord.Coord, 0, n)
	for a := coord.Addr(0); a < coord.NumAddrs && len(cores) < n; a++ {
		c, err := coord.FromAddr(a)
		if err != nil {
			return nil, err
		}
		if Reserved(c) || (mask != nil && c == *mask) {
			continue
		}
		cores = append(cores, c)
	}
	return cores, nil
}
