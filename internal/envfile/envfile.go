// Package envfile edits line-oriented KEY=value files against a fixed
// template: values may be replaced on existing key lines, but unknown keys
// are never appended, so the file layout stays under the template's control.
package envfile

import (
    _ "embed"
    "fmt"
    "strconv"
    "strings"

    "chyol/internal/core"
    "chyol/internal/fsx"
)

//go:embed template.env
var template []byte

// ErrUnknownKey is returned by Set for keys absent from the parsed file.
var ErrUnknownKey = fmt.Errorf("key not present in template")

// Template returns the embedded .env.example content.
func Template() []byte {
    out := make([]byte, len(template))
    copy(out, template)
    return out
}

// File is a parsed env file. Comments, blank lines and key order are
// preserved byte for byte.
type File struct {
    lines []string       // raw lines without trailing newline
    keys  map[string]int // key -> index into lines
}

// Parse reads env file content. Duplicate keys are rejected.
func Parse(content []byte) (*File, error) {
    f := &File{keys: map[string]int{}}
    f.lines = strings.Split(string(content), "\n")
    for i, line := range f.lines {
        key, ok := keyOf(line)
        if !ok { continue }
        if prev, dup := f.keys[key]; dup {
            return nil, fmt.Errorf("duplicate key %s on lines %d and %d", key, prev+1, i+1)
        }
        f.keys[key] = i
    }
    return f, nil
}

func keyOf(line string) (string, bool) {
    if line == "" || strings.HasPrefix(line, "#") {
        return "", false
    }
    eq := strings.IndexByte(line, '=')
    if eq <= 0 { return "", false }
    key := line[:eq]
    if strings.ContainsAny(key, " \t") { return "", false }
    return key, true
}

// Set replaces the value on an existing KEY= line.
func (f *File) Set(key, value string) error {
    i, ok := f.keys[key]
    if !ok {
        return fmt.Errorf("%w: %s", ErrUnknownKey, key)
    }
    f.lines[i] = key + "=" + value
    return nil
}

// Get returns the current value of key.
func (f *File) Get(key string) (string, bool) {
    i, ok := f.keys[key]
    if !ok { return "", false }
    line := f.lines[i]
    return line[strings.IndexByte(line, '=')+1:], true
}

// Has reports whether key exists in the file.
func (f *File) Has(key string) bool {
    _, ok := f.keys[key]
    return ok
}

// Bytes renders the file. Rendering is deterministic: parsing and rendering
// without edits reproduces the input exactly.
func (f *File) Bytes() []byte {
    return []byte(strings.Join(f.lines, "\n"))
}

// Apply writes every recognized key from cfg into f.
func Apply(f *File, cfg core.Config) error {
    pairs := []struct{ k, v string }{
        {"LLM_BACKEND", string(cfg.Backend)},
        {"DEEPSEEK_API_KEY", cfg.APIKey},
        {"DEEPSEEK_BASE_URL", cfg.APIBaseURL},
        {"LLM_MODEL_NAME", cfg.APIModel},
        {"OLLAMA_BASE_URL", cfg.OllamaBaseURL},
        {"OLLAMA_MAIN_MODEL", cfg.OllamaMainModel},
        {"OLLAMA_ADVISOR_MODEL", cfg.OllamaAdvisorModel},
        {"OLLAMA_TEMPERATURE", strconv.FormatFloat(cfg.OllamaTemperature, 'g', -1, 64)},
        {"OLLAMA_NUM_CTX", strconv.Itoa(cfg.OllamaNumCtx)},
        {"OLLAMA_NUM_PREDICT", strconv.Itoa(cfg.OllamaNumPredict)},
        {"OLLAMA_TIMEOUT", strconv.Itoa(cfg.OllamaTimeoutSec)},
        {"ENV_MODE", cfg.EnvMode},
        {"DOCKER_CONTAINER_NAME", cfg.ContainerName},
    }
    for _, p := range pairs {
        if err := f.Set(p.k, p.v); err != nil {
            return err
        }
    }
    return nil
}

// WriteFile renders f to path atomically.
func WriteFile(path string, f *File) error {
    return fsx.AtomicWrite(path, f.Bytes(), 0o644)
}
