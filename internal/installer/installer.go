// Package installer installs the target project's Python dependencies.
// Preference order: uv when present, otherwise a project-local virtualenv
// with an editable install, falling back once to an explicit package list.
package installer

import (
    "context"
    "fmt"
    "io"
    "os"
    "path/filepath"

    "chyol/internal/execx"
)

// fallbackPackages is installed when `pip install -e .` fails. The list
// mirrors the agent's direct imports.
var fallbackPackages = []string{
    "langchain-core",
    "langchain-openai",
    "langchain-deepseek",
    "langchain-ollama",
    "requests",
    "python-dotenv",
}

// Install installs dependencies for the project at dir.
func Install(ctx context.Context, r execx.Runner, dir string, out io.Writer) error {
    if _, err := r.LookPath("uv"); err == nil {
        fmt.Fprintln(out, "installing dependencies with uv")
        if err := r.Run(ctx, "uv", "sync", "--directory", dir); err != nil {
            return fmt.Errorf("uv sync: %w", err)
        }
        return nil
    }
    return installVenv(ctx, r, dir, out)
}

func installVenv(ctx context.Context, r execx.Runner, dir string, out io.Writer) error {
    venv := filepath.Join(dir, ".venv")
    if _, err := os.Stat(venv); os.IsNotExist(err) {
        fmt.Fprintln(out, "creating virtualenv .venv")
        if err := r.Run(ctx, "python3", "-m", "venv", venv); err != nil {
            return fmt.Errorf("create virtualenv: %w", err)
        }
    } else {
        fmt.Fprintln(out, "reusing existing .venv")
    }
    pip := filepath.Join(venv, "bin", "pip")
    if err := r.Run(ctx, pip, "install", "--upgrade", "pip"); err != nil {
        return fmt.Errorf("upgrade pip: %w", err)
    }
    fmt.Fprintln(out, "installing project in editable mode")
    if err := r.Run(ctx, pip, "install", "-e", dir); err != nil {
        fmt.Fprintf(out, "warning: editable install failed (%v), installing packages directly\n", err)
        args := append([]string{"install"}, fallbackPackages...)
        if err := r.Run(ctx, pip, args...); err != nil {
            return fmt.Errorf("install fallback packages: %w", err)
        }
    }
    return nil
}
