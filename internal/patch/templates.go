package patch

// Emitted file contents. Everything here is static so reruns are
// byte-for-byte reproducible.

const adapterPy = `"""Ollama model adapter for the CHYing agent.

Provides local model support through an Ollama server. Selected by
setting LLM_BACKEND=ollama in .env.
"""
import logging

from langchain_core.language_models import BaseChatModel

from chying_agent.common import log_system_event


def create_ollama_model(
    base_url: str = "http://192.168.10.117:11434",
    model: str = "deepseek-r1:32b",
    temperature: float = 0.5,
    num_ctx: int = 8192,
    timeout: int = 300,
    num_predict: int = 4096,
) -> BaseChatModel:
    """Create a ChatOllama instance and verify the server is reachable."""
    try:
        from langchain_ollama import ChatOllama
    except ImportError as e:
        raise ImportError(
            "langchain-ollama is not installed. Run: pip install langchain-ollama"
        ) from e

    log_system_event(
        "Creating Ollama model",
        {
            "base_url": base_url,
            "model": model,
            "temperature": temperature,
            "num_ctx": num_ctx,
            "timeout": timeout,
            "num_predict": num_predict,
        },
    )

    try:
        instance = ChatOllama(
            base_url=base_url,
            model=model,
            temperature=temperature,
            num_ctx=num_ctx,
            timeout=timeout,
            num_predict=num_predict,
        )
        _verify_ollama_connection(base_url, model)
        return instance
    except Exception as e:
        log_system_event(
            f"Ollama model creation failed: {e}",
            {"base_url": base_url, "model": model},
            level=logging.ERROR,
        )
        raise ConnectionError(
            f"Cannot reach the Ollama server at {base_url}. "
            f"Make sure the service is running and the model is pulled."
        ) from e


def _verify_ollama_connection(base_url: str, model: str) -> None:
    """Check the server inventory for the requested model."""
    import requests

    try:
        response = requests.get(f"{base_url}/api/tags", timeout=5)
        response.raise_for_status()
        names = [m["name"] for m in response.json().get("models", [])]
        if model not in names:
            log_system_event(
                f"Model '{model}' not found on the server",
                {
                    "available_models": names[:5],
                    "suggestion": f"run 'ollama pull {model}'",
                },
                level=logging.WARNING,
            )
        else:
            log_system_event(f"Ollama model '{model}' verified")
    except requests.exceptions.RequestException as e:
        raise ConnectionError(
            f"Cannot reach the Ollama server at {base_url}: {e}"
        ) from e


def list_available_ollama_models(base_url: str = "http://192.168.10.117:11434") -> list:
    """List models available on the Ollama server."""
    import requests

    try:
        response = requests.get(f"{base_url}/api/tags", timeout=5)
        response.raise_for_status()
        models = response.json().get("models", [])
        return [
            {
                "name": m["name"],
                "size": f"{m['size'] / 1e9:.2f} GB",
                "quantization": m["details"].get("quantization_level", "unknown"),
            }
            for m in models
        ]
    except Exception as e:
        log_system_event(f"Failed to list Ollama models: {e}", level=logging.ERROR)
        return []
`

// ollamaEnvBlock is inserted into .env.example after the LLM_BACKEND line
// when the file predates Ollama support.
const ollamaEnvBlock = `
# Ollama backend
OLLAMA_BASE_URL=http://192.168.10.117:11434
OLLAMA_MAIN_MODEL=deepseek-r1:32b
OLLAMA_ADVISOR_MODEL=qwen3:latest
OLLAMA_TEMPERATURE=0.5
OLLAMA_NUM_CTX=8192
OLLAMA_NUM_PREDICT=4096
OLLAMA_TIMEOUT=300`

const checklistMD = `# Ollama support: remaining manual steps

The automated pass added ` + "`chying_agent/model_ollama.py`" + `, the
` + "`langchain-ollama`" + ` dependency and the Ollama keys in ` + "`.env.example`" + `.
Two edits touch code whose surroundings change too often to patch by pattern,
so they stay manual. Originals are in the ` + "`.chyol-backup-<timestamp>`" + `
directory created by the run.

## 1. chying_agent/config.py

Add the backend selector and the Ollama fields to ` + "`AgentConfig`" + `:

    llm_backend: Literal["api", "ollama"] = "api"
    ollama_base_url: str = "http://192.168.10.117:11434"
    ollama_main_model: str = "deepseek-r1:32b"
    ollama_advisor_model: str = "qwen3:latest"
    ollama_temperature: float = 0.5
    ollama_num_ctx: int = 8192
    ollama_num_predict: int = 4096
    ollama_timeout: int = 300

In ` + "`load_agent_config`" + `, read LLM_BACKEND (reject values other than
"api"/"ollama"), make the API key check conditional on the api backend, and
read each OLLAMA_* variable with the defaults above.

## 2. chying_agent/model.py

Route ` + "`create_model`" + ` through the adapter when the ollama backend is
selected:

    from chying_agent.model_ollama import create_ollama_model

    if config.llm_backend == "ollama":
        return create_ollama_model(
            base_url=config.ollama_base_url,
            model=config.ollama_main_model,
            temperature=temperature or config.ollama_temperature,
            num_ctx=config.ollama_num_ctx,
            timeout=timeout or config.ollama_timeout,
            num_predict=max_tokens or config.ollama_num_predict,
        )

Do the same in ` + "`create_advisor_model`" + ` with
` + "`config.ollama_advisor_model`" + ` and temperature 0.7.

## 3. Verify

    python -c "from chying_agent.config import load_agent_config; load_agent_config()"

with LLM_BACKEND=ollama set in .env, then run one task end to end.
`

const quickstartMD = `# CHYing agent with a local Ollama backend

## Prerequisites

- An Ollama server reachable from this machine (default
  http://192.168.10.117:11434)
- The models pulled on that server:

      ollama pull deepseek-r1:32b
      ollama pull qwen3:latest

- Docker with the compose plugin

## Setup

Run the guided deploy from the project root:

    chyol deploy

Pick backend 2 (ollama) and accept or override the defaults. The command
writes .env, installs dependencies (uv when available, virtualenv otherwise),
starts the agent container and lists the models the server reports.

## Manual setup

Copy .env.example to .env and set:

    LLM_BACKEND=ollama
    OLLAMA_BASE_URL=http://192.168.10.117:11434
    OLLAMA_MAIN_MODEL=deepseek-r1:32b
    OLLAMA_ADVISOR_MODEL=qwen3:latest

then:

    docker compose up -d

## Troubleshooting

- "Cannot reach the Ollama server": check OLLAMA_BASE_URL and that
  ` + "`curl <url>/api/tags`" + ` answers.
- "Model not found": pull the model named in .env on the server.
- Roll back the automated edits by copying files back from the
  .chyol-backup-<timestamp> directory.
`
