// Package patch retrofits Ollama support onto a CHYing agent source tree:
// it drops in the adapter module, wires the dependency and example env keys
// where a unique anchor exists, and emits a checklist for the edits that
// have none. Every modified file is snapshotted first.
package patch

import (
    "errors"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "regexp"
    "strings"

    "chyol/internal/envfile"
    "chyol/internal/fsx"
)

// ErrNotProjectRoot means the working directory is missing the project
// markers and nothing was touched.
var ErrNotProjectRoot = errors.New("not a CHYing project root")

const (
    adapterRel    = "chying_agent/model_ollama.py"
    pyprojectRel  = "pyproject.toml"
    envExampleRel = ".env.example"
    checklistRel  = "PATCH_CHECKLIST.md"
    quickstartRel = "OLLAMA_QUICKSTART.md"

    dependencyEntry = `    "langchain-ollama>=0.2.0",`
)

var (
    reDependencies = regexp.MustCompile(`(?m)^dependencies = \[$`)
    reBackendLine  = regexp.MustCompile(`(?m)^LLM_BACKEND=.*$`)
)

// Report summarizes what a patch run did.
type Report struct {
    BackupDir string
    Applied   []string
    Emitted   []string
    Skipped   []string
    Manual    []string
}

// CheckProjectRoot verifies dir carries the expected project markers.
func CheckProjectRoot(dir string) error {
    if fi, err := os.Stat(filepath.Join(dir, pyprojectRel)); err != nil || fi.IsDir() {
        return fmt.Errorf("%w: %s not found in %s", ErrNotProjectRoot, pyprojectRel, dir)
    }
    if fi, err := os.Stat(filepath.Join(dir, "chying_agent")); err != nil || !fi.IsDir() {
        return fmt.Errorf("%w: chying_agent/ not found in %s", ErrNotProjectRoot, dir)
    }
    return nil
}

// Run applies the patch workflow to the project at dir. It stops at the
// first failed edit; files already changed stay changed and their originals
// remain in the backup directory.
func Run(dir string, out io.Writer) (*Report, error) {
    if err := CheckProjectRoot(dir); err != nil {
        return nil, err
    }
    bd, err := fsx.NewBackupDir(dir)
    if err != nil {
        return nil, err
    }
    rep := &Report{BackupDir: bd.Path}
    fmt.Fprintf(out, "backups go to %s\n", bd.Path)

    if err := emitAdapter(dir, bd, rep, out); err != nil {
        return rep, err
    }
    if err := patchPyproject(dir, bd, rep, out); err != nil {
        return rep, err
    }
    if err := patchEnvExample(dir, bd, rep, out); err != nil {
        return rep, err
    }
    for _, doc := range []struct{ rel, content string }{
        {checklistRel, checklistMD},
        {quickstartRel, quickstartMD},
    } {
        if err := fsx.AtomicWrite(filepath.Join(dir, doc.rel), []byte(doc.content), 0o644); err != nil {
            return rep, fmt.Errorf("write %s: %w", doc.rel, err)
        }
        rep.Emitted = append(rep.Emitted, doc.rel)
        fmt.Fprintf(out, "wrote %s\n", doc.rel)
    }

    rep.Manual = []string{
        "chying_agent/config.py: add backend selector and Ollama fields (see PATCH_CHECKLIST.md)",
        "chying_agent/model.py: route model creation through the adapter (see PATCH_CHECKLIST.md)",
    }
    for _, m := range rep.Manual {
        fmt.Fprintf(out, "manual: %s\n", m)
    }
    return rep, nil
}

func emitAdapter(dir string, bd *fsx.BackupDir, rep *Report, out io.Writer) error {
    path := filepath.Join(dir, adapterRel)
    if _, err := os.Stat(path); err == nil {
        if err := bd.Save(dir, adapterRel); err != nil {
            return err
        }
    }
    if err := fsx.AtomicWrite(path, []byte(adapterPy), 0o644); err != nil {
        return fmt.Errorf("write %s: %w", adapterRel, err)
    }
    rep.Emitted = append(rep.Emitted, adapterRel)
    fmt.Fprintf(out, "wrote %s\n", adapterRel)
    return nil
}

func patchPyproject(dir string, bd *fsx.BackupDir, rep *Report, out io.Writer) error {
    path := filepath.Join(dir, pyprojectRel)
    data, err := os.ReadFile(path)
    if err != nil {
        return err
    }
    if strings.Contains(string(data), "langchain-ollama") {
        rep.Skipped = append(rep.Skipped, pyprojectRel+": langchain-ollama already declared")
        fmt.Fprintf(out, "skip %s: langchain-ollama already declared\n", pyprojectRel)
        return nil
    }
    if err := bd.Save(dir, pyprojectRel); err != nil {
        return err
    }
    patched, err := insertAfter(string(data), reDependencies, dependencyEntry)
    if err != nil {
        return fmt.Errorf("%s: %w", pyprojectRel, err)
    }
    if err := fsx.AtomicWrite(path, []byte(patched), 0o644); err != nil {
        return err
    }
    rep.Applied = append(rep.Applied, pyprojectRel+": added langchain-ollama dependency")
    fmt.Fprintf(out, "patched %s\n", pyprojectRel)
    return nil
}

func patchEnvExample(dir string, bd *fsx.BackupDir, rep *Report, out io.Writer) error {
    path := filepath.Join(dir, envExampleRel)
    data, err := os.ReadFile(path)
    if errors.Is(err, os.ErrNotExist) {
        if err := fsx.AtomicWrite(path, envfile.Template(), 0o644); err != nil {
            return err
        }
        rep.Emitted = append(rep.Emitted, envExampleRel)
        fmt.Fprintf(out, "wrote %s\n", envExampleRel)
        return nil
    }
    if err != nil {
        return err
    }
    if strings.Contains(string(data), "OLLAMA_BASE_URL=") {
        rep.Skipped = append(rep.Skipped, envExampleRel+": Ollama keys already present")
        fmt.Fprintf(out, "skip %s: Ollama keys already present\n", envExampleRel)
        return nil
    }
    if err := bd.Save(dir, envExampleRel); err != nil {
        return err
    }
    patched, err := replaceLine(string(data), reBackendLine, "LLM_BACKEND=api")
    if err != nil {
        return fmt.Errorf("%s: %w", envExampleRel, err)
    }
    patched, err = insertAfter(patched, reBackendLine, ollamaEnvBlock)
    if err != nil {
        return fmt.Errorf("%s: %w", envExampleRel, err)
    }
    if err := fsx.AtomicWrite(path, []byte(patched), 0o644); err != nil {
        return err
    }
    rep.Applied = append(rep.Applied, envExampleRel+": added Ollama key block")
    fmt.Fprintf(out, "patched %s\n", envExampleRel)
    return nil
}
