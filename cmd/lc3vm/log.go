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
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newLogger(cfg *config, stderr io.Writer) (hclog.Logger, io.Closer, error) {
	level := hclog.LevelFromString(cfg.LogLevel)

	if level == hclog.NoLevel {
		return nil, nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	if cfg.Trace {
		level = hclog.Trace
	}

	var output io.Writer = stderr
	var closer io.Closer = nopCloser{}

	if cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
		}

		output = file
		closer = file
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "lc3vm",
		Level:      level,
		Output:     output,
		JSONFormat: cfg.LogJSON,
	})

	return logger, closer, nil
}
