// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extras installs optional markitdown feature sets into the running
// environment. Installing extras is an operational action: it runs the host
// pip as a blocking subprocess and reports the captured output, and it is
// never part of the conversion data path.
package extras

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"
)

// runner abstracts subprocess execution for testing.
type runner interface {
	Run(name string, args []string, output io.Writer) error
}

// osRunner is the production runner backed by os/exec. Stdout and stderr
// are combined, matching what an operator would see in a terminal.
type osRunner struct{}

func (osRunner) Run(name string, args []string, output io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = output
	cmd.Stderr = output
	return cmd.Run()
}

var defaultRunner runner = osRunner{}

// Prober is re-checked after a successful install so newly installed
// converter capabilities are picked up on next use. ExecConverter satisfies
// it.
type Prober interface {
	Probe() error
}

// Installer runs `<python> -m pip install markitdown[extras]`.
type Installer struct {
	python string
	prober Prober
	run    runner
}

// NewInstaller creates an installer that uses the given Python interpreter.
// prober may be nil when no converter re-probe is wanted.
func NewInstaller(python string, prober Prober) *Installer {
	if python == "" {
		python = "python3"
	}
	return &Installer{python: python, prober: prober, run: defaultRunner}
}

// PackageSpec builds the pip requirement string for the given extras,
// e.g. "markitdown[pdf,docx]".
func PackageSpec(extras []string) string {
	return fmt.Sprintf("markitdown[%s]", strings.Join(extras, ","))
}

// Install installs the named extras and returns a success flag plus the
// combined stdout/stderr of the installer for display. An empty extras list
// fails without spawning anything. The subprocess blocks with no timeout.
// After a successful install the converter is re-probed; a probe failure is
// reported in the output but does not turn success into failure.
func (i *Installer) Install(extras []string) (bool, string) {
	if len(extras) == 0 {
		return false, "No extras selected"
	}

	args := []string{"-m", "pip", "install", PackageSpec(extras)}
	var output bytes.Buffer
	if err := i.run.Run(i.python, args, &output); err != nil {
		fmt.Fprintf(&output, "\npip install failed: %v\n", err)
		return false, output.String()
	}

	if i.prober != nil {
		if err := i.prober.Probe(); err != nil {
			fmt.Fprintf(&output, "\nwarning: converter probe after install failed: %v\n", err)
		}
	}
	return true, output.String()
}

// Names returns the known extras names from the embedded catalog, sorted.
func Names(catalog []CatalogEntry) []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.Name
	}
	sort.Strings(names)
	return names
}
