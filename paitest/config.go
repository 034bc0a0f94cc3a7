// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paitest

import (
	"log"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-lpc/pai/coord"
	"golang.org/x/xerrors"
)

// Generation modes.
const (
	Mode1Core1Param   = "1core-1param"
	Mode1CoreNParams  = "1core-nparams"
	ModeNCores1Param  = "ncores-1param"
	ModeNCoresNParams = "ncores-nparams"
)

// Config describes a generation run.
type Config struct {
	Direction string `toml:"direction"`
	Chip      []int  `toml:"chip"`
	Seed      uint64 `toml:"seed"`
	Mode      string `toml:"mode"`
	N         int    `toml:"n"`
	Mask      []int  `toml:"mask"`
	Output    string `toml:"output"`
}

// LoadConfig reads a run description from the TOML file at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, xerrors.Errorf("paitest: could not parse config file %q: %w", path, err)
	}
	cfg.defaults()

	err = cfg.Validate()
	if err != nil {
		return Config{}, xerrors.Errorf("paitest: invalid config file %q: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) defaults() {
	if cfg.Direction == "" {
		cfg.Direction = coord.East.String()
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeNCoresNParams
	}
	if cfg.N == 0 {
		cfg.N = 1
	}
	cfg.Mode = strings.ToLower(cfg.Mode)
}

// Validate checks the run description is consistent.
func (cfg Config) Validate() error {
	if _, err := coord.DirectionFrom(cfg.Direction); err != nil {
		return xerrors.Errorf("paitest: invalid direction: %w", err)
	}
	if cfg.Chip != nil {
		if _, err := coord.Make(cfg.Chip...); err != nil {
			return xerrors.Errorf("paitest: invalid chip: %w", err)
		}
	}
	if cfg.Mask != nil {
		if _, err := coord.Make(cfg.Mask...); err != nil {
			return xerrors.Errorf("paitest: invalid mask: %w", err)
		}
	}
	switch cfg.Mode {
	case Mode1Core1Param, Mode1CoreNParams, ModeNCores1Param, ModeNCoresNParams:
	default:
		return xerrors.Errorf("paitest: invalid mode %q", cfg.Mode)
	}
	if cfg.N < 1 || cfg.N > MaxCores {
		return xerrors.Errorf("paitest: invalid number of cores/params %d (want in [1, %d]): %w", cfg.N, MaxCores, ErrCapacity)
	}
	return nil
}

// Run generates the group described by cfg.
// msg may be nil.
func (cfg Config) Run(msg *log.Logger) (Group, error) {
	opts := []Option{WithSeed(cfg.Seed)}
	if cfg.Chip != nil {
		chip, err := coord.Make(cfg.Chip...)
		if err != nil {
			return Group{}, xerrors.Errorf("paitest: invalid chip: %w", err)
		}
		opts = append(opts, WithChip(chip))
	}

	gen, err := New(cfg.Direction, opts...)
	if err != nil {
		return Group{}, err
	}

	var gopts []GenOption
	if cfg.Mask != nil {
		if len(cfg.Mask) != 2 {
			return Group{}, xerrors.Errorf("paitest: invalid mask %v: %w", cfg.Mask, coord.ErrInvalidCoord)
		}
		gopts = append(gopts, WithMask(cfg.Mask[0], cfg.Mask[1]))
	}
	if cfg.Output != "" {
		gopts = append(gopts, WithSaveDir(cfg.Output), WithLogger(msg))
	}

	switch strings.ToLower(cfg.Mode) {
	case Mode1Core1Param:
		return gen.OneCoreOneParam(gopts...)
	case Mode1CoreNParams:
		return gen.OneCoreNParams(cfg.N, gopts...)
	case ModeNCores1Param:
		return gen.NCoresOneParam(cfg.N, gopts...)
	case ModeNCoresNParams:
		return gen.NCoresNParams(cfg.N, gopts...)
	}
	return Group{}, xerrors.Errorf("paitest: invalid mode %q", cfg.Mode)
}
