package dockerx

import (
    "bytes"
    "context"
    "errors"
    "fmt"
    "strings"
    "testing"

    "github.com/stretchr/testify/require"
)

// fakeRunner scripts Output results and records every invocation.
type fakeRunner struct {
    inspectOut string
    inspectErr error
    missing    []string // binaries absent from PATH
    runErr     error
    calls      []string
}

func (f *fakeRunner) record(name string, args []string) string {
    call := name + " " + strings.Join(args, " ")
    f.calls = append(f.calls, call)
    return call
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
    f.record(name, args)
    return f.runErr
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
    call := f.record(name, args)
    if strings.HasPrefix(call, "docker inspect") {
        return f.inspectOut, f.inspectErr
    }
    return "", nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
    for _, m := range f.missing {
        if m == name { return "", errors.New("not found") }
    }
    return "/usr/bin/" + name, nil
}

func TestDaemonReady(t *testing.T) {
    r := &fakeRunner{}
    require.NoError(t, DaemonReady(context.Background(), r))

    r = &fakeRunner{missing: []string{"docker"}}
    err := DaemonReady(context.Background(), r)
    require.Error(t, err)
    require.Contains(t, err.Error(), "not found on PATH")
}

func TestContainerStates(t *testing.T) {
    cases := []struct {
        out  string
        err  error
        want State
    }{
        {"true", nil, StateRunning},
        {"false", nil, StateStopped},
        {"", fmt.Errorf("No such object"), StateMissing},
    }
    for _, tc := range cases {
        r := &fakeRunner{inspectOut: tc.out, inspectErr: tc.err}
        got := ContainerState(context.Background(), r, "chying-agent")
        require.Equal(t, tc.want, got, "inspect %q err=%v", tc.out, tc.err)
    }
}

func TestEnsureRunningNoOp(t *testing.T) {
    r := &fakeRunner{inspectOut: "true"}
    var buf bytes.Buffer
    require.NoError(t, EnsureRunning(context.Background(), r, "chying-agent", "docker-compose.yml", &buf))
    require.Len(t, r.calls, 1, "running container must not be touched")
    require.Contains(t, buf.String(), "already running")
}

func TestEnsureRunningStartsStopped(t *testing.T) {
    r := &fakeRunner{inspectOut: "false"}
    var buf bytes.Buffer
    require.NoError(t, EnsureRunning(context.Background(), r, "chying-agent", "docker-compose.yml", &buf))
    require.Contains(t, r.calls, "docker start chying-agent")
}

func TestEnsureRunningCreatesMissing(t *testing.T) {
    r := &fakeRunner{inspectErr: errors.New("No such object")}
    var buf bytes.Buffer
    require.NoError(t, EnsureRunning(context.Background(), r, "chying-agent", "docker-compose.yml", &buf))
    require.Contains(t, r.calls, "docker compose -f docker-compose.yml up -d")
}

func TestEnsureRunningPropagatesFailure(t *testing.T) {
    r := &fakeRunner{inspectOut: "false", runErr: errors.New("exit 1")}
    var buf bytes.Buffer
    err := EnsureRunning(context.Background(), r, "chying-agent", "docker-compose.yml", &buf)
    require.Error(t, err)
    require.Contains(t, err.Error(), "docker start")
}
