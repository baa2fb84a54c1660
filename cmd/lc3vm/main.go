// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.


package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lassandro/lc3vm/pkg/console"
	"github.com/lassandro/lc3vm/pkg/encoding"
	"github.com/lassandro/lc3vm/pkg/machine"
)

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

// runError marks failures that happen after the command line was accepted.
type runError struct {
	err error
}

func (err *runError) Error() string { return err.err.Error() }
func (err *runError) Unwrap() error { return err.err }

func newCommand(in *os.File, out *os.File) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "lc3vm [flags] IMAGE",
		Short:         "Runs an LC-3 program image",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd.Flags())

			if err != nil {
				return err
			}

			if err := run(cfg, args[0], in, out); err != nil {
				return &runError{err}
			}

			return nil
		},
	}

	defineFlags(cmd.Flags())

	return cmd
}

func run(cfg *config, path string, in *os.File, out *os.File) error {
	logger, closer, err := newLogger(cfg, os.Stderr)

	if err != nil {
		return err
	}

	defer closer.Close()

	dbg, err := cfg.newDebugger()

	if err != nil {
		return err
	}

	fmt.Fprintf(out, "loading program at %s\n", path)

	file, err := os.Open(path)

	if err != nil {
		return err
	}

	image, err := encoding.ReadImage(file)
	file.Close()

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Statsview {
		launchStatsview(out)
	}

	mc := machine.New(console.New(in, out))
	mc.Logger = logger.Named("machine")
	mc.Prompt = cfg.Prompt

	if dbg != nil {
		dbg.Logger = logger.Named("debugger")
		mc.Debugger = dbg
	}

	mc.LoadImage(image)

	term, err := console.EnterRaw(in)

	if err != nil {
		return err
	}

	defer term.Restore()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	defer func() {
		signal.Stop(signals)
		close(signals)
	}()

	go handleSignals(signals, func() {
		term.Restore()
		fmt.Fprintln(out)
		closer.Close()
	}, os.Exit)

	err = mc.Run()

	logger.Debug("stopped", "cycles", mc.Cycles, "halted", mc.Halted())

	if err != nil {
		return err
	}

	fmt.Fprintln(out, "shutting down")

	return nil
}

// handleSignals waits for one signal, runs cleanup and exits with the
// interrupted status. A closed channel returns without exiting.
func handleSignals(signals <-chan os.Signal, cleanup func(), exit func(int)) {
	if _, ok := <-signals; ok {
		cleanup()
		exit(130)
	}
}

func lc3vm(args []string, in *os.File, out *os.File) int {
	cmd := newCommand(in, out)
	cmd.SetArgs(args)
	cmd.SetOut(out)

	if err := cmd.Execute(); err != nil {
		log.Println(err)

		var runErr *runError
		if errors.As(err, &runErr) {
			return 1
		}

		log.Println(cmd.UseLine())
		return 2
	}

	return 0
}

func main() {
	os.Exit(lc3vm(os.Args[1:], os.Stdin, os.Stdout))
}
