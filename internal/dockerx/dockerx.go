// Package dockerx inspects and starts the agent's container. Container
// creation itself is delegated to the project's compose file; this package
// only branches on observed state.
package dockerx

import (
    "context"
    "fmt"
    "io"
    "strings"

    "chyol/internal/execx"
)

// State is the observed lifecycle state of a named container.
type State int

const (
    StateMissing State = iota
    StateStopped
    StateRunning
)

func (s State) String() string {
    switch s {
    case StateMissing:
        return "missing"
    case StateStopped:
        return "stopped"
    case StateRunning:
        return "running"
    }
    return "unknown"
}

// DaemonReady verifies the docker CLI is installed and the daemon answers.
func DaemonReady(ctx context.Context, r execx.Runner) error {
    if _, err := r.LookPath("docker"); err != nil {
        return fmt.Errorf("docker not found on PATH; install Docker first")
    }
    if _, err := r.Output(ctx, "docker", "info"); err != nil {
        return fmt.Errorf("docker daemon not reachable; start Docker and retry")
    }
    return nil
}

// ContainerState looks up name. A failing inspect means the container does
// not exist.
func ContainerState(ctx context.Context, r execx.Runner, name string) State {
    out, err := r.Output(ctx, "docker", "inspect", "-f", "{{.State.Running}}", name)
    if err != nil {
        return StateMissing
    }
    if strings.TrimSpace(out) == "true" {
        return StateRunning
    }
    return StateStopped
}

// EnsureRunning transitions the container to running: compose up when the
// container does not exist, start when stopped, nothing when running.
func EnsureRunning(ctx context.Context, r execx.Runner, name, composeFile string, out io.Writer) error {
    switch st := ContainerState(ctx, r, name); st {
    case StateRunning:
        fmt.Fprintf(out, "container %s already running\n", name)
        return nil
    case StateStopped:
        fmt.Fprintf(out, "starting container %s\n", name)
        if err := r.Run(ctx, "docker", "start", name); err != nil {
            return fmt.Errorf("docker start %s: %w", name, err)
        }
        return nil
    default:
        fmt.Fprintf(out, "creating container %s via compose\n", name)
        if err := r.Run(ctx, "docker", "compose", "-f", composeFile, "up", "-d"); err != nil {
            return fmt.Errorf("docker compose up: %w", err)
        }
        return nil
    }
}
