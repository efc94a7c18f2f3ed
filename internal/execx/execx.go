// Package execx is a thin seam over os/exec so components that drive
// external tools (docker, uv, pip) can be tested without the binaries.
package execx

import (
    "context"
    "io"
    "os/exec"
    "strings"
)

// Runner runs external commands.
type Runner interface {
    // Run executes a command, streaming its output to the configured writers.
    Run(ctx context.Context, name string, args ...string) error
    // Output executes a command and returns its combined output, trimmed.
    Output(ctx context.Context, name string, args ...string) (string, error)
    // LookPath reports the location of a binary on PATH.
    LookPath(name string) (string, error)
}

// System runs commands on the host.
type System struct {
    Stdout io.Writer
    Stderr io.Writer
}

func (s System) Run(ctx context.Context, name string, args ...string) error {
    cmd := exec.CommandContext(ctx, name, args...)
    cmd.Stdout = s.Stdout
    cmd.Stderr = s.Stderr
    return cmd.Run()
}

func (s System) Output(ctx context.Context, name string, args ...string) (string, error) {
    out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
    return strings.TrimSpace(string(out)), err
}

func (s System) LookPath(name string) (string, error) {
    return exec.LookPath(name)
}
