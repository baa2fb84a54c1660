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
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lassandro/lc3vm/pkg/debugger"
	"github.com/lassandro/lc3vm/pkg/machine"
)

type config struct {
	LogLevel  string
	LogFile   string
	LogJSON   bool
	Trace     bool
	Prompt    string
	Breaks    []string
	BreakIf   string
	Watches   []string
	Statsview bool
}

func defineFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Reads settings from the given config file")
	flags.String("log-level", "warn", "Minimum log level (trace, debug, info, warn, error)")
	flags.String("log-file", "", "Writes logs to a rotated file instead of stderr")
	flags.Bool("log-json", false, "Writes logs as JSON")
	flags.Bool("trace", false, "Logs every executed instruction")
	flags.String("prompt", machine.DEFAULT_PROMPT, "Prompt written by the IN trap")
	flags.StringSlice("break", nil, "Stops before executing the instruction at ADDR (hex)")
	flags.String("break-if", "", "Stops when the Starlark expression becomes true")
	flags.StringSlice("watch", nil, "Logs accesses to ADDR[:r|w|rw] (hex)")
	flags.Bool("statsview", false, "Serves runtime statistics on "+statsviewAddress)
}

// loadConfig layers flags over LC3VM_* environment variables over the
// optional config file.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet) (*config, error) {
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("LC3VM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("lc3vm")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lc3vm")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	return &config{
		LogLevel:  v.GetString("log-level"),
		LogFile:   v.GetString("log-file"),
		LogJSON:   v.GetBool("log-json"),
		Trace:     v.GetBool("trace"),
		Prompt:    v.GetString("prompt"),
		Breaks:    v.GetStringSlice("break"),
		BreakIf:   v.GetString("break-if"),
		Watches:   v.GetStringSlice("watch"),
		Statsview: v.GetBool("statsview"),
	}, nil
}

// newDebugger returns nil when no debugging feature is requested.
func (cfg *config) newDebugger() (*debugger.Debugger, error) {
	if !cfg.Trace && len(cfg.Breaks) == 0 && len(cfg.Watches) == 0 && cfg.BreakIf == "" {
		return nil, nil
	}

	dbg := &debugger.Debugger{Trace: cfg.Trace}

	for _, s := range cfg.Breaks {
		breakpoint, err := debugger.ParseBreakpoint(s)

		if err != nil {
			return nil, fmt.Errorf("break %q: %w", s, err)
		}

		dbg.Breakpoints = append(dbg.Breakpoints, breakpoint)
	}

	for _, s := range cfg.Watches {
		watchpoint, err := debugger.ParseWatchpoint(s)

		if err != nil {
			return nil, fmt.Errorf("watch %q: %w", s, err)
		}

		dbg.Watchpoints = append(dbg.Watchpoints, watchpoint)
	}

	if cfg.BreakIf != "" {
		cond, err := debugger.NewCondition(cfg.BreakIf)

		if err != nil {
			return nil, err
		}

		dbg.Condition = cond
	}

	return dbg, nil
}
