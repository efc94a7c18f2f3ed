package core

import (
    "fmt"
    "strings"
)

// Answers holds raw operator input before defaults are applied. Empty fields
// take the documented defaults; BackendChoice accepts the menu index ("1",
// "2") as well as the backend name itself.
type Answers struct {
    BackendChoice      string `json:"backend"`
    APIKey             string `json:"api_key,omitempty"`
    APIBaseURL         string `json:"api_base_url,omitempty"`
    APIModel           string `json:"api_model,omitempty"`
    OllamaBaseURL      string `json:"ollama_base_url,omitempty"`
    OllamaMainModel    string `json:"ollama_main_model,omitempty"`
    OllamaAdvisorModel string `json:"ollama_advisor_model,omitempty"`
    ContainerName      string `json:"container_name,omitempty"`
}

// ResolveAnswers turns raw answers into a Config. It never fails: an
// unrecognized backend choice falls back to the API backend and is reported
// in the returned warnings.
func ResolveAnswers(a Answers) (Config, []string) {
    cfg := DefaultConfig()
    var warns []string

    switch strings.ToLower(strings.TrimSpace(a.BackendChoice)) {
    case "", "1", string(BackendAPI):
        cfg.Backend = BackendAPI
    case "2", string(BackendOllama):
        cfg.Backend = BackendOllama
    default:
        warns = append(warns, fmt.Sprintf("unrecognized backend choice %q, using %q", a.BackendChoice, BackendAPI))
        cfg.Backend = BackendAPI
    }

    set := func(dst *string, v string) {
        if v = strings.TrimSpace(v); v != "" { *dst = v }
    }
    set(&cfg.APIKey, a.APIKey)
    set(&cfg.APIBaseURL, a.APIBaseURL)
    set(&cfg.APIModel, a.APIModel)
    set(&cfg.OllamaBaseURL, a.OllamaBaseURL)
    set(&cfg.OllamaMainModel, a.OllamaMainModel)
    set(&cfg.OllamaAdvisorModel, a.OllamaAdvisorModel)
    set(&cfg.ContainerName, a.ContainerName)
    return cfg, warns
}
