// Package deploy runs the guided deployment: write the env file, install
// dependencies, bring up the agent container and, for the Ollama backend,
// probe the model server. Steps run strictly in order; only the probe is
// allowed to fail without stopping the run.
package deploy

import (
    "context"
    "errors"
    "fmt"
    "io"
    "os"
    "path/filepath"

    "github.com/charmbracelet/lipgloss"

    "chyol/internal/core"
    "chyol/internal/dockerx"
    "chyol/internal/envfile"
    "chyol/internal/execx"
    "chyol/internal/installer"
    "chyol/internal/ollama"
    "chyol/internal/util"
)

var (
    styleStep = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
    styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
    styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Options locates the project files the deploy touches.
type Options struct {
    ProjectDir  string
    EnvTemplate string // relative to ProjectDir
    EnvFile     string // relative to ProjectDir
    ComposeFile string // relative to ProjectDir
    SkipInstall bool
    SkipDocker  bool
}

func (o *Options) setDefaults() {
    if o.ProjectDir == "" { o.ProjectDir = "." }
    if o.EnvTemplate == "" { o.EnvTemplate = ".env.example" }
    if o.EnvFile == "" { o.EnvFile = ".env" }
    if o.ComposeFile == "" { o.ComposeFile = "docker-compose.yml" }
}

// Run executes the deploy for an already-validated config.
func Run(ctx context.Context, cfg core.Config, opts Options, r execx.Runner, out io.Writer) error {
    opts.setDefaults()

    if !opts.SkipDocker {
        if err := dockerx.DaemonReady(ctx, r); err != nil {
            return err
        }
    }

    fmt.Fprintln(out, styleStep.Render("==> writing "+opts.EnvFile))
    envPath := filepath.Join(opts.ProjectDir, opts.EnvFile)
    if err := writeEnv(cfg, opts, envPath); err != nil {
        return err
    }
    fmt.Fprintf(out, "%s written (backend: %s)\n", opts.EnvFile, cfg.Backend)

    if !opts.SkipInstall {
        fmt.Fprintln(out, styleStep.Render("==> installing dependencies"))
        if err := installer.Install(ctx, r, opts.ProjectDir, out); err != nil {
            return err
        }
    }

    if !opts.SkipDocker {
        fmt.Fprintln(out, styleStep.Render("==> container "+cfg.ContainerName))
        composePath := filepath.Join(opts.ProjectDir, opts.ComposeFile)
        if err := dockerx.EnsureRunning(ctx, r, cfg.ContainerName, composePath, out); err != nil {
            return err
        }
    }

    if cfg.Backend == core.BackendOllama {
        probe(ctx, cfg, out)
    }

    summary(cfg, opts, out)
    return nil
}

func writeEnv(cfg core.Config, opts Options, envPath string) error {
    tmplPath := filepath.Join(opts.ProjectDir, opts.EnvTemplate)
    data, err := os.ReadFile(tmplPath)
    if errors.Is(err, os.ErrNotExist) {
        data = envfile.Template()
    } else if err != nil {
        return err
    }
    f, err := envfile.Parse(data)
    if err != nil {
        return fmt.Errorf("parse %s: %w", opts.EnvTemplate, err)
    }
    if err := envfile.Apply(f, cfg); err != nil {
        return fmt.Errorf("%s is missing a recognized key: %w", opts.EnvTemplate, err)
    }
    return envfile.WriteFile(envPath, f)
}

// probe is best-effort diagnostics: failures are warnings, never fatal.
func probe(ctx context.Context, cfg core.Config, out io.Writer) {
    fmt.Fprintln(out, styleStep.Render("==> probing ollama server "+cfg.OllamaBaseURL))
    client := ollama.NewClient(cfg.OllamaBaseURL)
    models, err := client.List(ctx)
    if err != nil {
        fmt.Fprintln(out, styleWarn.Render("warning: "+err.Error()))
        fmt.Fprintln(out, styleWarn.Render("warning: continuing; start the server and rerun `chyol models` to verify"))
        return
    }
    fmt.Fprintf(out, "%d models available:\n", len(models))
    for _, m := range models {
        fmt.Fprintf(out, "  %-32s %10s  %s\n", m.Name, m.SizeGB(), m.Quantization)
    }
    for _, want := range []string{cfg.OllamaMainModel, cfg.OllamaAdvisorModel} {
        found := false
        for _, m := range models {
            if m.Name == want { found = true; break }
        }
        if !found {
            fmt.Fprintln(out, styleWarn.Render(fmt.Sprintf("warning: model %q not on server; run `ollama pull %s`", want, want)))
        }
    }
}

func summary(cfg core.Config, opts Options, out io.Writer) {
    fmt.Fprintln(out, styleOK.Render("deploy complete"))
    fmt.Fprintln(out, "next steps:")
    fmt.Fprintf(out, "  docker exec -it %s bash\n", cfg.ContainerName)
    fmt.Fprintf(out, "  docker logs -f %s\n", cfg.ContainerName)
    if cfg.Backend == core.BackendAPI {
        fmt.Fprintf(out, "configured api backend %s (key %s)\n", cfg.APIBaseURL, util.Mask(cfg.APIKey))
    } else {
        fmt.Fprintf(out, "configured ollama backend %s (main %s, advisor %s)\n",
            cfg.OllamaBaseURL, cfg.OllamaMainModel, cfg.OllamaAdvisorModel)
    }
    fmt.Fprintf(out, "settings live in %s\n", filepath.Join(opts.ProjectDir, opts.EnvFile))
}
