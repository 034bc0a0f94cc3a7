// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paitest

import (
	"log"
	"os"
	"path/filepath"

	"github.com/go-lpc/pai/frame"
	"github.com/go-lpc/pai/internal/frameio"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// Names of the files holding the 3 sequences of a group.
const (
	ConfigFile = "config.bin"
	InputFile  = "input.bin"
	OutputFile = "output.bin"
)

// Save writes the frames of grp under dir, one file per sequence.
// msg may be nil.
func Save(dir string, grp Group, msg *log.Logger) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return xerrors.Errorf("paitest: could not create output dir %q: %w", dir, err)
	}

	var g errgroup.Group
	for _, v := range []struct {
		name string
		fs   []frame.Frame
	}{
		{ConfigFile, grp.Config},
		{InputFile, grp.Input},
		{OutputFile, grp.Output},
	} {
		var (
			fname = filepath.Join(dir, v.name)
			fs    = v.fs
		)
		g.Go(func() error {
			return save(fname, fs, msg)
		})
	}

	return g.Wait()
}

func save(fname string, fs []frame.Frame, msg *log.Logger) error {
	f, err := os.Create(fname)
	if err != nil {
		return xerrors.Errorf("paitest: could not create output file: %w", err)
	}
	defer f.Close()

	err = frameio.NewEncoder(f).Encode(fs)
	if err != nil {
		return xerrors.Errorf("paitest: could not write frames to %q: %w", fname, err)
	}

	err = f.Close()
	if err != nil {
		return xerrors.Errorf("paitest: could not close output file %q: %w", fname, err)
	}

	if msg != nil {
		msg.Printf("wrote %d frames to %q", len(fs), fname)
	}
	return nil
}

// Load reads back a group saved under dir.
func Load(dir string) (Group, error) {
	var (
		grp Group
		err error
	)
	for _, v := range []struct {
		name string
		fs   *[]frame.Frame
	}{
		{ConfigFile, &grp.Config},
		{InputFile, &grp.Input},
		{OutputFile, &grp.Output},
	} {
		*v.fs, err = ReadFile(filepath.Join(dir, v.name))
		if err != nil {
			return Group{}, err
		}
	}
	return grp, nil
}

// ReadFile reads all the frames stored in fname.
func ReadFile(fname string) ([]frame.Frame, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, xerrors.Errorf("paitest: could not open frames file: %w", err)
	}
	defer f.Close()

	fs, err := frameio.NewDecoder(f).DecodeAll()
	if err != nil {
		return nil, xerrors.Errorf("paitest: could not read frames from %q: %w", fname, err)
	}
	return fs, nil
}

// WriteFile writes fs to fname.
func WriteFile(fname string, fs []frame.Frame) error {
	return save(fname, fs, nil)
}
