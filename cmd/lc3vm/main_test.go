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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/encoding"
	"github.com/lassandro/lc3vm/pkg/machine"
)

func writeImage(t *testing.T, image *encoding.Image) string {
	path := filepath.Join(t.TempDir(), "program.obj")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, image.Encode(file))

	return path
}

func helloImage() *encoding.Image {
	words := []uint16{
		0b1110_000_000000010, // LEA R0, HELLO
		0xF022,               // PUTS
		0xF025,               // HALT
	}

	for _, c := range "Hello" {
		words = append(words, uint16(c))
	}

	return &encoding.Image{Origin: 0x3000, Words: append(words, 0)}
}

// pipes returns a keyboard that never has input and a display file.
func pipes(t *testing.T) (*os.File, *os.File) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	out, err := os.Create(filepath.Join(t.TempDir(), "display"))
	require.NoError(t, err)
	t.Cleanup(func() { out.Close() })

	return r, out
}

func display(t *testing.T, out *os.File) string {
	data, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	return string(data)
}

func TestRunHello(t *testing.T) {
	assert := assert.New(t)

	path := writeImage(t, helloImage())
	in, out := pipes(t)

	assert.Equal(0, lc3vm([]string{path}, in, out))

	assert.Equal(
		"loading program at "+path+"\nHello"+"shutting down\n",
		display(t, out),
	)
}

func TestRunMissingImage(t *testing.T) {
	in, out := pipes(t)

	assert.Equal(t, 1, lc3vm([]string{filepath.Join(t.TempDir(), "missing.obj")}, in, out))
}

func TestRunUsage(t *testing.T) {
	in, out := pipes(t)

	assert.Equal(t, 2, lc3vm(nil, in, out))
	assert.Equal(t, 2, lc3vm([]string{"a.obj", "b.obj"}, in, out))
}

func TestRunBadOpcode(t *testing.T) {
	assert := assert.New(t)

	path := writeImage(t, &encoding.Image{
		Origin: 0x3000,
		Words:  []uint16{0xD000, 0xF025},
	})
	in, out := pipes(t)

	assert.Equal(1, lc3vm([]string{path}, in, out))
	assert.NotContains(display(t, out), "shutting down")
}

func TestRunBreakpoint(t *testing.T) {
	path := writeImage(t, helloImage())
	in, out := pipes(t)

	assert.Equal(t, 1, lc3vm([]string{"--break", "x3002", path}, in, out))
	assert.Contains(t, display(t, out), "Hello")
}

func TestRunBreakpointAfterHalt(t *testing.T) {
	assert := assert.New(t)

	path := writeImage(t, &encoding.Image{Origin: 0x3000, Words: []uint16{0xF025}})
	in, out := pipes(t)

	assert.Equal(0, lc3vm([]string{"--break", "x3001", path}, in, out))
	assert.Contains(display(t, out), "shutting down")
}

func TestHandleSignals(t *testing.T) {
	assert := assert.New(t)

	var calls []string

	signals := make(chan os.Signal, 1)
	signals <- os.Interrupt

	handleSignals(signals, func() {
		calls = append(calls, "cleanup")
	}, func(code int) {
		assert.Equal(130, code)
		calls = append(calls, "exit")
	})

	assert.Equal([]string{"cleanup", "exit"}, calls)

	calls = nil
	close(signals)

	handleSignals(signals, func() {
		calls = append(calls, "cleanup")
	}, func(int) {
		calls = append(calls, "exit")
	})

	assert.Empty(calls)
}

func TestRunInvalidLogLevel(t *testing.T) {
	path := writeImage(t, helloImage())
	in, out := pipes(t)

	assert.Equal(t, 1, lc3vm([]string{"--log-level", "loud", path}, in, out))
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "lc3vm.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"prompt: \"? \"\n"+
			"trace: true\n"+
			"break:\n  - x3000\n  - x3010\n",
	), 0o644))

	t.Setenv("LC3VM_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	defineFlags(flags)
	require.NoError(t, flags.Parse([]string{"--config", file, "--watch", "xFE00:r"}))

	cfg, err := loadConfig(viper.New(), flags)
	require.NoError(t, err)

	assert.Equal("? ", cfg.Prompt)
	assert.True(cfg.Trace)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal([]string{"x3000", "x3010"}, cfg.Breaks)
	assert.Equal([]string{"xFE00:r"}, cfg.Watches)

	dbg, err := cfg.newDebugger()
	require.NoError(t, err)
	assert.Len(dbg.Breakpoints, 2)
	assert.Len(dbg.Watchpoints, 1)
	assert.True(dbg.Trace)
}

func TestLoadConfigDefaults(t *testing.T) {
	assert := assert.New(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	defineFlags(flags)
	require.NoError(t, flags.Parse(nil))

	cfg, err := loadConfig(viper.New(), flags)
	require.NoError(t, err)

	assert.Equal(machine.DEFAULT_PROMPT, cfg.Prompt)
	assert.Equal("warn", cfg.LogLevel)
	assert.False(cfg.Trace)

	dbg, err := cfg.newDebugger()
	assert.NoError(err)
	assert.Nil(dbg)
}

func TestLoadConfigMissingFile(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	defineFlags(flags)
	require.NoError(t, flags.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, err := loadConfig(viper.New(), flags)
	assert.Error(t, err)
}
