package core

// Backend selects which model backend the agent talks to.
type Backend string

const (
    BackendAPI    Backend = "api"
    BackendOllama Backend = "ollama"
)

// Defaults mirror the agent's own configuration fallbacks; the deploy wizard
// substitutes them for empty answers.
const (
    DefaultAPIBaseURL = "https://api.lkeap.cloud.tencent.com/v1"
    DefaultAPIModel   = "deepseek-v3.1-terminus"

    DefaultOllamaBaseURL      = "http://192.168.10.117:11434"
    DefaultOllamaMainModel    = "deepseek-r1:32b"
    DefaultOllamaAdvisorModel = "qwen3:latest"
    DefaultOllamaTemperature  = 0.5
    DefaultOllamaNumCtx       = 8192
    DefaultOllamaNumPredict   = 4096
    DefaultOllamaTimeoutSec   = 300

    DefaultAdvisorBaseURL = "https://api.siliconflow.cn/v1"
    DefaultAdvisorModel   = "MiniMaxAI/MiniMax-M2"

    DefaultContainerName = "chying-agent"
    DefaultEnvMode       = "competition"
    DefaultSandboxName   = "CHYing-sandbox"
)

// Config is the resolved deployment configuration written into the env file.
type Config struct {
    Backend Backend

    // API backend
    APIKey     string
    APIBaseURL string
    APIModel   string

    // Ollama backend
    OllamaBaseURL      string
    OllamaMainModel    string
    OllamaAdvisorModel string
    OllamaTemperature  float64
    OllamaNumCtx       int
    OllamaNumPredict   int
    OllamaTimeoutSec   int

    ContainerName string
    EnvMode       string
}

// DefaultConfig returns a Config with every field at its documented default.
func DefaultConfig() Config {
    return Config{
        Backend:            BackendAPI,
        APIBaseURL:         DefaultAPIBaseURL,
        APIModel:           DefaultAPIModel,
        OllamaBaseURL:      DefaultOllamaBaseURL,
        OllamaMainModel:    DefaultOllamaMainModel,
        OllamaAdvisorModel: DefaultOllamaAdvisorModel,
        OllamaTemperature:  DefaultOllamaTemperature,
        OllamaNumCtx:       DefaultOllamaNumCtx,
        OllamaNumPredict:   DefaultOllamaNumPredict,
        OllamaTimeoutSec:   DefaultOllamaTimeoutSec,
        ContainerName:      DefaultContainerName,
        EnvMode:            DefaultEnvMode,
    }
}
