// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container detects a container runtime (docker or podman) and runs
// images with piped stdin/stdout. The conversion gateway uses it to invoke
// the markitdown image without requiring a host install.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = osExecutor{}

// Runtime is a detected container runtime. Docker and podman share the same
// invocation shape; they differ only in binary name and the subcommand used
// to check image existence.
type Runtime struct {
	bin           string
	imageCheckCmd []string
	exec          executor
}

// Name returns the runtime binary name ("docker" or "podman").
func (r *Runtime) Name() string { return r.bin }

func (r *Runtime) available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

// ImageExists checks whether the named image is present locally. It returns
// nil when the image is found.
func (r *Runtime) ImageExists(image string) error {
	args := append(append([]string{}, r.imageCheckCmd...), image)
	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

// Run executes `<runtime> run --rm -i <image>` with stdin piped in and
// stdout piped out. On failure the returned error includes the container's
// stderr.
func (r *Runtime) Run(image string, stdin io.Reader, stdout io.Writer) error {
	args := []string{"run", "--rm", "-i", image}
	var stderr bytes.Buffer
	if err := r.exec.RunPiped(r.bin, args, stdin, stdout, &stderr); err != nil {
		if msg := stderr.String(); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDocker(exec executor) *Runtime {
	return &Runtime{bin: binDocker, imageCheckCmd: []string{"image", "inspect"}, exec: exec}
}

func newPodman(exec executor) *Runtime {
	return &Runtime{bin: binPodman, imageCheckCmd: []string{"image", "exists"}, exec: exec}
}

// Detect tries docker first and falls back to podman. It returns an error
// when neither runtime is installed and operational.
func Detect() (*Runtime, error) {
	return detect(defaultExec)
}

func detect(exec executor) (*Runtime, error) {
	if docker := newDocker(exec); docker.available() {
		return docker, nil
	}
	if podman := newPodman(exec); podman.available() {
		return podman, nil
	}
	return nil, fmt.Errorf("no container runtime available: neither %s nor %s found or operational", binDocker, binPodman)
}
