package deploy

import (
    "bytes"
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/stretchr/testify/require"

    "chyol/internal/core"
)

type fakeRunner struct {
    inspectOut string
    inspectErr error
    noDocker   bool
    calls      []string
}

func (f *fakeRunner) call(name string, args []string) string {
    c := name + " " + strings.Join(args, " ")
    f.calls = append(f.calls, c)
    return c
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
    f.call(name, args)
    return nil
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
    c := f.call(name, args)
    if strings.HasPrefix(c, "docker inspect") {
        return f.inspectOut, f.inspectErr
    }
    return "", nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
    if f.noDocker && name == "docker" {
        return "", errors.New("not found")
    }
    if name == "uv" {
        return "", errors.New("not found")
    }
    return "/usr/bin/" + name, nil
}

func ollamaConfig() core.Config {
    cfg := core.DefaultConfig()
    cfg.Backend = core.BackendOllama
    return cfg
}

func hasCall(calls []string, sub string) bool {
    for _, c := range calls {
        if strings.Contains(c, sub) { return true }
    }
    return false
}

func TestRunCompletesWithUnreachableProbe(t *testing.T) {
    dir := t.TempDir()
    cfg := ollamaConfig()
    cfg.OllamaBaseURL = "http://127.0.0.1:1" // nothing listens here
    r := &fakeRunner{inspectErr: errors.New("No such object")}
    var buf bytes.Buffer

    err := Run(context.Background(), cfg, Options{ProjectDir: dir, SkipInstall: true}, r, &buf)
    require.NoError(t, err, "advisory probe failure must not fail the deploy")
    require.Contains(t, buf.String(), "warning:")
    require.Contains(t, buf.String(), "deploy complete")
    require.True(t, hasCall(r.calls, "docker compose"))
}

func TestRunWritesEnvFromEmbeddedTemplate(t *testing.T) {
    dir := t.TempDir()
    cfg := ollamaConfig()
    cfg.ContainerName = "agent-dev"
    r := &fakeRunner{inspectOut: "true"}
    var buf bytes.Buffer

    require.NoError(t, Run(context.Background(), cfg, Options{ProjectDir: dir, SkipInstall: true}, r, &buf))
    env, err := os.ReadFile(filepath.Join(dir, ".env"))
    require.NoError(t, err)
    require.Contains(t, string(env), "LLM_BACKEND=ollama\n")
    require.Contains(t, string(env), "OLLAMA_BASE_URL=http://192.168.10.117:11434\n")
    require.Contains(t, string(env), "OLLAMA_MAIN_MODEL=deepseek-r1:32b\n")
    require.Contains(t, string(env), "OLLAMA_ADVISOR_MODEL=qwen3:latest\n")
    require.Contains(t, string(env), "DOCKER_CONTAINER_NAME=agent-dev\n")
}

func TestRunPrefersProjectTemplate(t *testing.T) {
    dir := t.TempDir()
    tmpl := "# custom template\nLLM_BACKEND=api\nDEEPSEEK_API_KEY=\nDEEPSEEK_BASE_URL=x\nLLM_MODEL_NAME=x\n" +
        "OLLAMA_BASE_URL=x\nOLLAMA_MAIN_MODEL=x\nOLLAMA_ADVISOR_MODEL=x\nOLLAMA_TEMPERATURE=0\n" +
        "OLLAMA_NUM_CTX=0\nOLLAMA_NUM_PREDICT=0\nOLLAMA_TIMEOUT=0\nENV_MODE=x\nDOCKER_CONTAINER_NAME=x\n"
    require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.example"), []byte(tmpl), 0o644))

    cfg := core.DefaultConfig()
    cfg.APIKey = "sk-test-1234"
    r := &fakeRunner{inspectOut: "true"}
    var buf bytes.Buffer
    require.NoError(t, Run(context.Background(), cfg, Options{ProjectDir: dir, SkipInstall: true}, r, &buf))

    env, err := os.ReadFile(filepath.Join(dir, ".env"))
    require.NoError(t, err)
    require.True(t, strings.HasPrefix(string(env), "# custom template\n"))
    require.Contains(t, string(env), "DEEPSEEK_API_KEY=sk-test-1234\n")
}

func TestRunRerunIsIdempotent(t *testing.T) {
    dir := t.TempDir()
    cfg := core.DefaultConfig()
    cfg.APIKey = "sk-test"
    r := &fakeRunner{inspectOut: "true"}
    var buf bytes.Buffer
    opts := Options{ProjectDir: dir, SkipInstall: true}

    require.NoError(t, Run(context.Background(), cfg, opts, r, &buf))
    first, err := os.ReadFile(filepath.Join(dir, ".env"))
    require.NoError(t, err)
    require.NoError(t, Run(context.Background(), cfg, opts, r, &buf))
    second, err := os.ReadFile(filepath.Join(dir, ".env"))
    require.NoError(t, err)
    require.Equal(t, first, second)
}

func TestRunFailsWithoutDocker(t *testing.T) {
    dir := t.TempDir()
    cfg := core.DefaultConfig()
    cfg.APIKey = "sk-test"
    r := &fakeRunner{noDocker: true}
    var buf bytes.Buffer

    err := Run(context.Background(), cfg, Options{ProjectDir: dir}, r, &buf)
    require.Error(t, err)
    require.Contains(t, err.Error(), "docker")
    _, statErr := os.Stat(filepath.Join(dir, ".env"))
    require.True(t, os.IsNotExist(statErr), "precondition failure must precede side effects")
}

func TestRunListsProbedModels(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
        if req.URL.Path != "/api/tags" {
            http.NotFound(w, req)
            return
        }
        _, _ = w.Write([]byte(`{"models":[{"name":"deepseek-r1:32b","size":19851337728,"details":{"quantization_level":"Q4_K_M"}}]}`))
    }))
    defer srv.Close()

    dir := t.TempDir()
    cfg := ollamaConfig()
    cfg.OllamaBaseURL = srv.URL
    r := &fakeRunner{inspectOut: "true"}
    var buf bytes.Buffer
    require.NoError(t, Run(context.Background(), cfg, Options{ProjectDir: dir, SkipInstall: true}, r, &buf))

    out := buf.String()
    require.Contains(t, out, "deepseek-r1:32b")
    require.Contains(t, out, "19.85 GB")
    require.Contains(t, out, `model "qwen3:latest" not on server`)
}
