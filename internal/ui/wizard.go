package ui

import (
    "fmt"
    "strings"

    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/bubbles/textinput"
    "github.com/charmbracelet/lipgloss"

    core "chyol/internal/core"
    "chyol/internal/util"
    verinfo "chyol/internal/version"
)

type mode int

const (
    modeBackend mode = iota
    modeFields
    modeConfirm
)

// Seeds pre-fills wizard defaults discovered outside the terminal (compose
// file, saved profile).
type Seeds struct {
    ContainerName string
    Answers       core.Answers
}

type field struct {
    key   string // answer field this input feeds
    label string
    input textinput.Model
}

type model struct {
    m       mode
    seeds   Seeds
    backend int // 0 = api, 1 = ollama
    fields  []field
    focus   int
    answers core.Answers
    confirmed bool
    aborted   bool
    width     int
}

var (
    styleHeader    = lipgloss.NewStyle().Bold(true)
    styleMuted     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
    styleKey       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
    styleCursor    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
    styleFieldName = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Run shows the deploy wizard and returns the collected answers. The second
// return is false when the operator aborted; nothing has been written yet in
// that case.
func Run(seeds Seeds) (core.Answers, bool, error) {
    m := initialModel(seeds)
    p := tea.NewProgram(m)
    final, err := p.Run()
    if err != nil {
        return core.Answers{}, false, err
    }
    fm := final.(model)
    return fm.answers, fm.confirmed, nil
}

func initialModel(seeds Seeds) model {
    m := model{m: modeBackend, seeds: seeds}
    if strings.HasPrefix(seeds.Answers.BackendChoice, "ollama") || seeds.Answers.BackendChoice == "2" {
        m.backend = 1
    }
    return m
}

func newInput(placeholder string, secret bool) textinput.Model {
    in := textinput.New()
    in.Placeholder = placeholder
    if secret {
        in.EchoMode = textinput.EchoPassword
    }
    return in
}

func (m *model) buildFields() {
    containerDefault := m.seeds.ContainerName
    if containerDefault == "" { containerDefault = core.DefaultContainerName }

    if m.backend == 0 {
        m.fields = []field{
            {key: "api_key", label: "API key", input: newInput("required", true)},
            {key: "api_base_url", label: "API base URL", input: newInput(core.DefaultAPIBaseURL, false)},
            {key: "api_model", label: "Model name", input: newInput(core.DefaultAPIModel, false)},
        }
    } else {
        m.fields = []field{
            {key: "ollama_base_url", label: "Ollama base URL", input: newInput(core.DefaultOllamaBaseURL, false)},
            {key: "ollama_main_model", label: "Main model", input: newInput(core.DefaultOllamaMainModel, false)},
            {key: "ollama_advisor_model", label: "Advisor model", input: newInput(core.DefaultOllamaAdvisorModel, false)},
        }
    }
    m.fields = append(m.fields, field{key: "container_name", label: "Container name", input: newInput(containerDefault, false)})

    seeded := map[string]string{
        "api_key":              m.seeds.Answers.APIKey,
        "api_base_url":         m.seeds.Answers.APIBaseURL,
        "api_model":            m.seeds.Answers.APIModel,
        "ollama_base_url":      m.seeds.Answers.OllamaBaseURL,
        "ollama_main_model":    m.seeds.Answers.OllamaMainModel,
        "ollama_advisor_model": m.seeds.Answers.OllamaAdvisorModel,
        "container_name":       m.seeds.Answers.ContainerName,
    }
    for i := range m.fields {
        if v := seeded[m.fields[i].key]; v != "" {
            m.fields[i].input.SetValue(v)
        }
    }
    m.focus = 0
    m.fields[0].input.Focus()
}

func (m *model) collect() {
    a := core.Answers{BackendChoice: "api"}
    if m.backend == 1 { a.BackendChoice = "ollama" }
    for _, f := range m.fields {
        v := strings.TrimSpace(f.input.Value())
        switch f.key {
        case "api_key":
            a.APIKey = v
        case "api_base_url":
            a.APIBaseURL = v
        case "api_model":
            a.APIModel = v
        case "ollama_base_url":
            a.OllamaBaseURL = v
        case "ollama_main_model":
            a.OllamaMainModel = v
        case "ollama_advisor_model":
            a.OllamaAdvisorModel = v
        case "container_name":
            if v == "" && m.seeds.ContainerName != "" { v = m.seeds.ContainerName }
            a.ContainerName = v
        }
    }
    m.answers = a
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    switch msg := msg.(type) {
    case tea.WindowSizeMsg:
        m.width = msg.Width
        return m, nil
    case tea.KeyMsg:
        switch m.m {
        case modeBackend:
            return m.updateBackendKey(msg)
        case modeFields:
            return m.updateFieldsKey(msg)
        case modeConfirm:
            return m.updateConfirmKey(msg)
        }
    }
    return m, nil
}

func (m model) updateBackendKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
    switch msg.String() {
    case "1":
        m.backend = 0
    case "2":
        m.backend = 1
    case "up", "k", "down", "j":
        m.backend = 1 - m.backend
    case "enter":
        m.m = modeFields
        m.buildFields()
    case "q", "esc", "ctrl+c":
        m.aborted = true
        return m, tea.Quit
    }
    return m, nil
}

func (m model) updateFieldsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
    switch msg.String() {
    case "enter", "tab", "down":
        if m.focus == len(m.fields)-1 && msg.String() == "enter" {
            m.collect()
            m.m = modeConfirm
            return m, nil
        }
        m.fields[m.focus].input.Blur()
        m.focus = (m.focus + 1) % len(m.fields)
        m.fields[m.focus].input.Focus()
    case "shift+tab", "up":
        m.fields[m.focus].input.Blur()
        m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
        m.fields[m.focus].input.Focus()
    case "esc":
        m.m = modeBackend
    case "ctrl+c":
        m.aborted = true
        return m, tea.Quit
    default:
        var cmd tea.Cmd
        m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
        return m, cmd
    }
    return m, nil
}

func (m model) updateConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
    switch msg.String() {
    case "enter", "y", "Y":
        m.confirmed = true
        return m, tea.Quit
    case "e", "esc":
        m.m = modeFields
    case "q", "n", "ctrl+c":
        m.aborted = true
        return m, tea.Quit
    }
    return m, nil
}

func (m model) View() string {
    var b strings.Builder
    b.WriteString(styleHeader.Render(verinfo.Name) + " " + styleMuted.Render(verinfo.Version) + "  guided deploy\n\n")
    switch m.m {
    case modeBackend:
        b.WriteString("Select the model backend:\n\n")
        choices := []string{"api     remote DeepSeek API", "ollama  local model server"}
        for i, c := range choices {
            cursor := "  "
            if i == m.backend { cursor = styleCursor.Render("> ") }
            b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, styleKey.Render(fmt.Sprintf("[%d]", i+1)), c))
        }
        b.WriteString("\n" + m.help())
    case modeFields:
        b.WriteString("Empty answers take the shown default.\n\n")
        for i, f := range m.fields {
            marker := "  "
            if i == m.focus { marker = styleCursor.Render("> ") }
            b.WriteString(marker + styleFieldName.Render(fmt.Sprintf("%-16s", f.label)) + f.input.View() + "\n")
        }
        b.WriteString("\n" + m.help())
    case modeConfirm:
        cfg, _ := core.ResolveAnswers(m.answers)
        b.WriteString("About to deploy with:\n\n")
        b.WriteString("  backend          " + string(cfg.Backend) + "\n")
        if cfg.Backend == core.BackendAPI {
            b.WriteString("  api base url     " + cfg.APIBaseURL + "\n")
            b.WriteString("  model            " + cfg.APIModel + "\n")
            b.WriteString("  api key          " + util.Mask(cfg.APIKey) + "\n")
        } else {
            b.WriteString("  ollama base url  " + cfg.OllamaBaseURL + "\n")
            b.WriteString("  main model       " + cfg.OllamaMainModel + "\n")
            b.WriteString("  advisor model    " + cfg.OllamaAdvisorModel + "\n")
        }
        b.WriteString("  container        " + cfg.ContainerName + "\n")
        b.WriteString("\n" + m.help())
    }
    return b.String()
}

func (m model) help() string {
    switch m.m {
    case modeBackend:
        return styleKey.Render("[1/2]") + " Pick  " + styleKey.Render("[Enter]") + " Next  " + styleKey.Render("[q]") + " Quit"
    case modeFields:
        return styleKey.Render("[Tab]") + " Next field  " + styleKey.Render("[Enter]") + " Continue  " + styleKey.Render("[Esc]") + " Back"
    default:
        return styleKey.Render("[Enter]") + " Deploy  " + styleKey.Render("[e]") + " Edit  " + styleKey.Render("[n]") + " Abort"
    }
}
