package core

import (
    "errors"
    "fmt"
    "net/url"
    "strings"
)

func validURL(s string) bool {
    u, err := url.Parse(s)
    return err == nil && u.Scheme != "" && u.Host != ""
}

// Validate checks that the keys required by the selected backend are present.
func Validate(c Config) error {
    switch c.Backend {
    case BackendAPI:
        if strings.TrimSpace(c.APIKey) == "" {
            return errors.New("api backend requires an API key")
        }
        if !validURL(c.APIBaseURL) {
            return fmt.Errorf("invalid API base url: %q", c.APIBaseURL)
        }
    case BackendOllama:
        if !validURL(c.OllamaBaseURL) {
            return fmt.Errorf("invalid ollama base url: %q", c.OllamaBaseURL)
        }
        if strings.TrimSpace(c.OllamaMainModel) == "" {
            return errors.New("ollama backend requires a main model")
        }
        if strings.TrimSpace(c.OllamaAdvisorModel) == "" {
            return errors.New("ollama backend requires an advisor model")
        }
    default:
        return fmt.Errorf("unknown backend: %q", c.Backend)
    }
    if strings.TrimSpace(c.ContainerName) == "" {
        return errors.New("container name is required")
    }
    return nil
}
