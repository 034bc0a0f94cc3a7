// Copyright 2023 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pai-shell is an interactive shell to inspect PAICORE frames.
//
// Example:
//
//	$> pai-shell
//	pai> decode 0x100064002587d124
//	header=config-II chip=(0, 0) core=(3, 4) core*=(0, 0) payload=0x2587d124
//	pai> addr 5 5
//	addr=0x0a5 high3=1 low7=37
//	pai> reloc 0x100064002587d124 1 2
//	0x100022002587d124
package main // import "github.com/go-lpc/pai/cmd/pai-shell"

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-lpc/pai/coord"
	"github.com/go-lpc/pai/frame"
	"github.com/go-lpc/pai/paitest"
	"github.com/peterh/liner"
)

var errQuit = errors.New("quit")

func main() {
	log.SetPrefix("pai-shell: ")
	log.SetFlags(0)

	hist := flag.String("history", defaultHistory(), "path to the history file")
	flag.Parse()

	run(os.Stdout, *hist)
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pai_history")
}

func run(w io.Writer, hist string) {
	term := liner.NewLiner()
	defer term.Close()

	term.SetCtrlCAborts(true)
	term.SetCompleter(complete)

	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = term.ReadHistory(f)
			f.Close()
		}
		defer func() {
			f, err := os.Create(hist)
			if err != nil {
				log.Printf("could not save history: %+v", err)
				return
			}
			defer f.Close()
			_, _ = term.WriteHistory(f)
		}()
	}

	sh := shell{w: w}
	for {
		line, err := term.Prompt("pai> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return
			}
			log.Printf("could not read command: %+v", err)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		term.AppendHistory(line)

		err = sh.exec(line)
		switch {
		case errors.Is(err, errQuit):
			return
		case err != nil:
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}

var cmds = []string{"addr", "decode", "exit", "help", "quit", "reg", "reloc", "test-chip"}

func complete(line string) []string {
	var out []string
	for _, cmd := range cmds {
		if strings.HasPrefix(cmd, strings.ToLower(line)) {
			out = append(out, cmd)
		}
	}
	return out
}

type shell struct {
	w io.Writer
}

func (sh *shell) exec(line string) error {
	toks := strings.Fields(line)
	if len(toks) == 0 {
		return nil
	}
	args := toks[1:]
	switch strings.ToLower(toks[0]) {
	case "quit", "exit":
		return errQuit
	case "help":
		sh.help()
		return nil
	case "addr":
		return sh.addr(args)
	case "decode":
		return sh.decode(args)
	case "reg":
		return sh.reg(args)
	case "reloc":
		return sh.reloc(args)
	case "test-chip":
		return sh.testChip(args)
	}
	return fmt.Errorf("unknown command %q (try \"help\")", toks[0])
}

func (sh *shell) help() {
	fmt.Fprintf(sh.w, `commands:
  addr X Y                  packed and test-chip split address of core (X, Y)
  decode FRAME [FRAME...]   decode frames
  reg F0 F1 F2              decode a parameter register
  reloc FRAME X Y           move a frame to core (X, Y)
  test-chip F0 F1 F2 X Y    move a parameter register to test chip (X, Y)
  help                      this message
  quit                      leave the shell
`)
}

func (sh *shell) addr(args []string) error {
	c, err := parseCoord(args)
	if err != nil {
		return err
	}
	var (
		addr        = coord.ToAddr(c)
		high3, low7 = coord.SplitTestChipAddr(addr)
	)
	fmt.Fprintf(sh.w, "addr=0x%03x high3=%d low7=%d\n", addr, high3, low7)
	return nil
}

func (sh *shell) decode(args []string) error {
	fs, err := parseFrames(args)
	if err != nil {
		return err
	}
	if len(fs) == 0 {
		return fmt.Errorf("missing frame")
	}
	for _, f := range fs {
		rec, err := frame.Decode(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.w, "header=%v chip=%v core=%v core*=%v payload=0x%08x\n",
			rec.Header, rec.ChipCoord, rec.CoreCoord, rec.CoreExCoord, rec.Payload,
		)
	}
	return nil
}

func (sh *shell) reg(args []string) error {
	fs, err := parseFrames(args)
	if err != nil {
		return err
	}
	rec, err := frame.DecodeParamReg(fs)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.w, "core=%v %+v\n", rec.CoreCoord, *rec.Reg)
	return nil
}

func (sh *shell) reloc(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("reloc: want FRAME X Y")
	}
	fs, err := parseFrames(args[:1])
	if err != nil {
		return err
	}
	c, err := parseCoord(args[1:])
	if err != nil {
		return err
	}
	f, err := paitest.ReplaceCoreCoord(fs[0], c)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.w, "%v\n", f)
	return nil
}

func (sh *shell) testChip(args []string) error {
	if len(args) != frame.ParamRegWords+2 {
		return fmt.Errorf("test-chip: want F0 F1 F2 X Y")
	}
	fs, err := parseFrames(args[:frame.ParamRegWords])
	if err != nil {
		return err
	}
	c, err := parseCoord(args[frame.ParamRegWords:])
	if err != nil {
		return err
	}
	fs, err = paitest.ReplaceTestChipCoord(fs, c)
	if err != nil {
		return err
	}
	for _, f := range fs {
		fmt.Fprintf(sh.w, "%v\n", f)
	}
	return nil
}

func parseFrames(args []string) ([]frame.Frame, error) {
	fs := make([]frame.Frame, len(args))
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse frame %q: %w", arg, err)
		}
		fs[i] = frame.Frame(v)
	}
	return fs, nil
}

func parseCoord(args []string) (coord.Coord, error) {
	vs := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return coord.Coord{}, fmt.Errorf("could not parse coordinate %q: %w", arg, err)
		}
		vs[i] = v
	}
	return coord.Make(vs...)
}
