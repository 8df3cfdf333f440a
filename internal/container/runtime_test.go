// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// mockExecutor simulates installed binaries and records the commands run.
type mockExecutor struct {
	installed map[string]bool  // LookPath succeeds for these names
	failInfo  map[string]bool  // `<bin> info` fails for these names
	silentErr error            // error for other RunSilent calls
	pipedErr  error
	stdout    string
	stderr    string

	silentCalls []string
	pipedName   string
	pipedArgs   []string
	stdin       string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.installed[file] {
		return "/usr/bin/" + file, nil
	}
	return "", &notFoundError{file}
}

type notFoundError struct{ file string }

func (e *notFoundError) Error() string { return e.file + ": not found" }

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	m.silentCalls = append(m.silentCalls, name+" "+strings.Join(args, " "))
	if len(args) == 1 && args[0] == "info" {
		if m.failInfo[name] {
			return &notFoundError{name}
		}
		return nil
	}
	return m.silentErr
}

func (m *mockExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	m.pipedName = name
	m.pipedArgs = args
	if stdin != nil {
		data, _ := io.ReadAll(stdin)
		m.stdin = string(data)
	}
	io.WriteString(stdout, m.stdout)
	io.WriteString(stderr, m.stderr)
	return m.pipedErr
}

func TestDetectPrefersDocker(t *testing.T) {
	exec := &mockExecutor{installed: map[string]bool{"docker": true, "podman": true}}

	rt, err := detect(exec)
	if err != nil {
		t.Fatalf("detect returned error: %v", err)
	}
	if rt.Name() != "docker" {
		t.Errorf("detected %q, want docker", rt.Name())
	}
}

func TestDetectFallsBackToPodman(t *testing.T) {
	tests := []struct {
		name string
		exec *mockExecutor
	}{
		{
			name: "docker not installed",
			exec: &mockExecutor{installed: map[string]bool{"podman": true}},
		},
		{
			name: "docker installed but daemon down",
			exec: &mockExecutor{
				installed: map[string]bool{"docker": true, "podman": true},
				failInfo:  map[string]bool{"docker": true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(tt.exec)
			if err != nil {
				t.Fatalf("detect returned error: %v", err)
			}
			if rt.Name() != "podman" {
				t.Errorf("detected %q, want podman", rt.Name())
			}
		})
	}
}

func TestDetectNoRuntime(t *testing.T) {
	exec := &mockExecutor{installed: map[string]bool{}}

	if _, err := detect(exec); err == nil {
		t.Error("detect succeeded with no runtime installed")
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name     string
		runtime  func(executor) *Runtime
		wantCall string
	}{
		{name: "docker", runtime: newDocker, wantCall: "docker image inspect markitdown:latest"},
		{name: "podman", runtime: newPodman, wantCall: "podman image exists markitdown:latest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{installed: map[string]bool{tt.name: true}}
			rt := tt.runtime(exec)

			if err := rt.ImageExists("markitdown:latest"); err != nil {
				t.Fatalf("ImageExists returned error: %v", err)
			}
			if len(exec.silentCalls) != 1 || exec.silentCalls[0] != tt.wantCall {
				t.Errorf("ran %v, want [%q]", exec.silentCalls, tt.wantCall)
			}
		})
	}
}

func TestImageExistsMissing(t *testing.T) {
	exec := &mockExecutor{installed: map[string]bool{"docker": true}, silentErr: &notFoundError{"image"}}
	rt := newDocker(exec)

	err := rt.ImageExists("markitdown:latest")
	if err == nil {
		t.Fatal("ImageExists succeeded for a missing image")
	}
	if !strings.Contains(err.Error(), "markitdown:latest") {
		t.Errorf("error %q does not name the image", err)
	}
}

func TestRunPipesStdinAndStdout(t *testing.T) {
	exec := &mockExecutor{installed: map[string]bool{"docker": true}, stdout: "# converted\n"}
	rt := newDocker(exec)

	var out bytes.Buffer
	if err := rt.Run("markitdown:latest", strings.NewReader("raw bytes"), &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if exec.pipedName != "docker" {
		t.Errorf("ran %q, want docker", exec.pipedName)
	}
	wantArgs := "run --rm -i markitdown:latest"
	if got := strings.Join(exec.pipedArgs, " "); got != wantArgs {
		t.Errorf("args = %q, want %q", got, wantArgs)
	}
	if exec.stdin != "raw bytes" {
		t.Errorf("stdin = %q, want the document bytes", exec.stdin)
	}
	if out.String() != "# converted\n" {
		t.Errorf("stdout = %q, want the container output", out.String())
	}
}

func TestRunFailureIncludesStderr(t *testing.T) {
	exec := &mockExecutor{
		installed: map[string]bool{"docker": true},
		pipedErr:  &notFoundError{"container"},
		stderr:    "conversion crashed",
	}
	rt := newDocker(exec)

	err := rt.Run("markitdown:latest", strings.NewReader(""), io.Discard)
	if err == nil {
		t.Fatal("Run succeeded despite container failure")
	}
	if !strings.Contains(err.Error(), "conversion crashed") {
		t.Errorf("error %q does not include container stderr", err)
	}
}
