// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/pdiddy/mdconvert/pkg/types"
)

// fakeCmdRunner resolves lookups from paths and records the last command it
// was asked to run.
type fakeCmdRunner struct {
	paths  map[string]string
	runErr error
	stdout string
	stderr string

	gotName string
	gotArgs []string
}

func (f *fakeCmdRunner) LookPath(file string) (string, error) {
	if p, ok := f.paths[file]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeCmdRunner) Run(name string, args []string, stdout, stderr io.Writer) error {
	f.gotName = name
	f.gotArgs = args
	io.WriteString(stdout, f.stdout)
	io.WriteString(stderr, f.stderr)
	return f.runErr
}

func newTestExecConverter(run runner) *ExecConverter {
	c := NewExecConverter(types.ConverterConfig{})
	c.run = run
	return c
}

func TestExecConverterUsesBinary(t *testing.T) {
	fr := &fakeCmdRunner{
		paths:  map[string]string{"markitdown": "/usr/bin/markitdown"},
		stdout: "# Doc\n",
	}
	c := newTestExecConverter(fr)

	got, err := c.Convert("report.pdf")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != "# Doc\n" {
		t.Errorf("Convert returned %q, want tool stdout", got)
	}
	if fr.gotName != "/usr/bin/markitdown" {
		t.Errorf("ran %q, want the resolved binary", fr.gotName)
	}
	if !reflect.DeepEqual(fr.gotArgs, []string{"report.pdf"}) {
		t.Errorf("args = %v, want just the file", fr.gotArgs)
	}
}

func TestExecConverterFallsBackToPythonModule(t *testing.T) {
	fr := &fakeCmdRunner{
		paths:  map[string]string{"python3": "/usr/bin/python3"},
		stdout: "text",
	}
	c := newTestExecConverter(fr)

	if _, err := c.Convert("report.pdf"); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if fr.gotName != "/usr/bin/python3" {
		t.Errorf("ran %q, want the python interpreter", fr.gotName)
	}
	if !reflect.DeepEqual(fr.gotArgs, []string{"-m", "markitdown", "report.pdf"}) {
		t.Errorf("args = %v, want module invocation", fr.gotArgs)
	}
}

func TestExecConverterNothingInvokable(t *testing.T) {
	c := newTestExecConverter(&fakeCmdRunner{paths: map[string]string{}})

	if err := c.Probe(); err == nil {
		t.Error("Probe succeeded with nothing on PATH")
	}
	if _, err := c.Convert("report.pdf"); err == nil {
		t.Error("Convert succeeded with nothing on PATH")
	}
}

func TestExecConverterFailureCarriesStderr(t *testing.T) {
	fr := &fakeCmdRunner{
		paths:  map[string]string{"markitdown": "/usr/bin/markitdown"},
		runErr: errors.New("exit status 1"),
		stderr: "UnsupportedFormatException: .xyz\n",
	}
	c := newTestExecConverter(fr)

	_, err := c.Convert("weird.xyz")
	if err == nil {
		t.Fatal("Convert succeeded despite tool failure")
	}
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("error type %T, want *ConversionError", err)
	}
	if convErr.Path != "weird.xyz" {
		t.Errorf("error path = %q, want the source file", convErr.Path)
	}
	if convErr.Stderr != "UnsupportedFormatException: .xyz\n" {
		t.Errorf("error stderr = %q, want the tool stderr", convErr.Stderr)
	}
}

func TestProbeRedetectsCommand(t *testing.T) {
	fr := &fakeCmdRunner{paths: map[string]string{"python3": "/usr/bin/python3"}}
	c := newTestExecConverter(fr)

	if _, err := c.Convert("a.txt"); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if fr.gotName != "/usr/bin/python3" {
		t.Fatalf("ran %q, want the python fallback first", fr.gotName)
	}

	// The console script appears after an extras install; Probe must pick
	// it up instead of keeping the cached fallback.
	fr.paths["markitdown"] = "/usr/local/bin/markitdown"
	if err := c.Probe(); err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if _, err := c.Convert("a.txt"); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if fr.gotName != "/usr/local/bin/markitdown" {
		t.Errorf("ran %q after Probe, want the newly installed binary", fr.gotName)
	}
}
