// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/pdiddy/mdconvert/pkg/types"
)

// runner abstracts command lookup and execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osRunner is the production runner backed by os/exec.
type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultRunner runner = osRunner{}

// ExecConverter converts documents by running the markitdown CLI on the
// host. When the binary is not on PATH it falls back to invoking the
// configured Python interpreter with `-m markitdown`, which covers
// pip-installed environments without a console script.
type ExecConverter struct {
	binary string
	python string
	run    runner

	mu   sync.Mutex
	argv []string // resolved command prefix; nil until probed
}

// NewExecConverter creates a host-exec converter. Resolution of the
// markitdown command is deferred to the first conversion so that extras
// installed while the app is running are picked up on next use.
func NewExecConverter(cfg types.ConverterConfig) *ExecConverter {
	binary := cfg.Binary
	if binary == "" {
		binary = "markitdown"
	}
	python := cfg.Python
	if python == "" {
		python = "python3"
	}
	return &ExecConverter{binary: binary, python: python, run: defaultRunner}
}

// Probe resolves the markitdown command, preferring the console script and
// falling back to the Python module. It returns an error when neither is
// invokable. Probe discards any previously resolved command, so callers can
// force re-detection after installing extras.
func (c *ExecConverter) Probe() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.argv = nil
	return c.resolveLocked()
}

func (c *ExecConverter) resolveLocked() error {
	if c.argv != nil {
		return nil
	}
	if path, err := c.run.LookPath(c.binary); err == nil {
		c.argv = []string{path}
		return nil
	}
	if path, err := c.run.LookPath(c.python); err == nil {
		c.argv = []string{path, "-m", "markitdown"}
		return nil
	}
	return fmt.Errorf("markitdown not invokable: neither %q nor %q found on PATH", c.binary, c.python)
}

// Convert runs markitdown against the file at path and returns its stdout
// as the Markdown text. A non-zero exit becomes a ConversionError carrying
// the tool's stderr.
func (c *ExecConverter) Convert(path string) (string, error) {
	c.mu.Lock()
	if err := c.resolveLocked(); err != nil {
		c.mu.Unlock()
		return "", err
	}
	argv := c.argv
	c.mu.Unlock()

	args := make([]string, 0, len(argv))
	args = append(args, argv[1:]...)
	args = append(args, path)

	var stdout, stderr bytes.Buffer
	if err := c.run.Run(argv[0], args, &stdout, &stderr); err != nil {
		return "", &ConversionError{Path: path, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}
