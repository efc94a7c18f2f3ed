package main

import (
    "context"
    "flag"
    "fmt"
    "os"
    "path/filepath"
    "time"

    "chyol/internal/compose"
    core "chyol/internal/core"
    "chyol/internal/deploy"
    "chyol/internal/execx"
    "chyol/internal/ollama"
    "chyol/internal/patch"
    "chyol/internal/store"
    ui "chyol/internal/ui"
    verinfo "chyol/internal/version"
)

func usage() {
    fmt.Fprintf(os.Stderr, "%s %s - retrofit and deploy the CHYing agent with an Ollama backend\n\n", verinfo.Name, verinfo.Version)
    fmt.Fprintf(os.Stderr, "Usage:\n")
    fmt.Fprintf(os.Stderr, "  chyol patch [--project <dir>]\n")
    fmt.Fprintf(os.Stderr, "  chyol deploy [--project <dir>] [--profile <name>] [--save-profile <name>]\n")
    fmt.Fprintf(os.Stderr, "               [--no-input] [--skip-install] [--skip-docker]\n")
    fmt.Fprintf(os.Stderr, "  chyol models [--url <base-url>]\n")
    fmt.Fprintf(os.Stderr, "  chyol profiles list|delete <name>\n")
}

func main() {
    if len(os.Args) == 1 {
        usage()
        os.Exit(2)
    }
    switch os.Args[1] {
    case "patch":
        patchCmd(os.Args[2:])
    case "deploy":
        deployCmd(os.Args[2:])
    case "models":
        modelsCmd(os.Args[2:])
    case "profiles":
        profilesCmd(os.Args[2:])
    case "-h", "--help", "help":
        usage()
    case "-v", "--version", "version":
        fmt.Printf("%s %s\n", verinfo.Name, verinfo.Version)
    default:
        fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
        usage()
        os.Exit(2)
    }
}

func patchCmd(args []string) {
    fs := flag.NewFlagSet("patch", flag.ExitOnError)
    project := fs.String("project", ".", "path to the CHYing project root")
    _ = fs.Parse(args)

    rep, err := patch.Run(*project, os.Stdout)
    if err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
    fmt.Printf("\napplied %d edits, emitted %d files, %d left manual (see PATCH_CHECKLIST.md)\n",
        len(rep.Applied), len(rep.Emitted), len(rep.Manual))
    fmt.Printf("originals preserved in %s\n", rep.BackupDir)
}

func deployCmd(args []string) {
    fs := flag.NewFlagSet("deploy", flag.ExitOnError)
    project := fs.String("project", ".", "path to the CHYing project root")
    envTemplate := fs.String("env-template", ".env.example", "env template, relative to the project")
    envFile := fs.String("env-file", ".env", "env file to write, relative to the project")
    composeFile := fs.String("compose-file", "docker-compose.yml", "compose file, relative to the project")
    profile := fs.String("profile", "", "replay a saved answer profile instead of prompting")
    saveProfile := fs.String("save-profile", "", "save the collected answers under this name")
    noInput := fs.Bool("no-input", false, "skip the wizard; use defaults (plus --profile when given)")
    skipInstall := fs.Bool("skip-install", false, "do not install dependencies")
    skipDocker := fs.Bool("skip-docker", false, "do not touch the container")
    _ = fs.Parse(args)

    seeds := ui.Seeds{}
    if name, err := compose.ContainerName(filepath.Join(*project, *composeFile)); err == nil {
        seeds.ContainerName = name
    }
    if *profile != "" {
        pr, err := store.GetProfile(*profile)
        if err != nil {
            fmt.Fprintln(os.Stderr, err)
            os.Exit(1)
        }
        seeds.Answers = pr.Answers
    }

    answers := seeds.Answers
    if !*noInput && *profile == "" {
        var confirmed bool
        var err error
        answers, confirmed, err = ui.Run(seeds)
        if err != nil {
            fmt.Fprintln(os.Stderr, err)
            os.Exit(1)
        }
        if !confirmed {
            fmt.Fprintln(os.Stderr, "aborted, nothing written")
            os.Exit(1)
        }
    }
    if answers.ContainerName == "" {
        answers.ContainerName = seeds.ContainerName
    }

    cfg, warns := core.ResolveAnswers(answers)
    for _, w := range warns {
        fmt.Fprintln(os.Stderr, "warning: "+w)
    }
    if err := core.Validate(cfg); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }

    if *saveProfile != "" {
        pr := store.Profile{Name: *saveProfile, Answers: answers, SavedAt: time.Now().Format("20060102-1504")}
        if err := store.SaveProfile(pr); err != nil {
            fmt.Fprintln(os.Stderr, "warning: could not save profile: "+err.Error())
        }
    }

    opts := deploy.Options{
        ProjectDir:  *project,
        EnvTemplate: *envTemplate,
        EnvFile:     *envFile,
        ComposeFile: *composeFile,
        SkipInstall: *skipInstall,
        SkipDocker:  *skipDocker,
    }
    r := execx.System{Stdout: os.Stdout, Stderr: os.Stderr}
    if err := deploy.Run(context.Background(), cfg, opts, r, os.Stdout); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

func modelsCmd(args []string) {
    fs := flag.NewFlagSet("models", flag.ExitOnError)
    url := fs.String("url", core.DefaultOllamaBaseURL, "ollama server base url")
    _ = fs.Parse(args)

    client := ollama.NewClient(*url)
    models, err := client.List(context.Background())
    if err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
    for _, m := range models {
        fmt.Printf("%-32s %10s  %s\n", m.Name, m.SizeGB(), m.Quantization)
    }
}

func profilesCmd(args []string) {
    if len(args) < 1 {
        fmt.Fprintln(os.Stderr, "profiles subcommand required: list|delete")
        os.Exit(2)
    }
    switch args[0] {
    case "list":
        profiles, err := store.LoadProfiles()
        if err != nil {
            fmt.Fprintln(os.Stderr, err)
            os.Exit(1)
        }
        if len(profiles) == 0 {
            fmt.Println("(no saved profiles)")
            return
        }
        for _, p := range profiles {
            backend := p.Answers.BackendChoice
            if backend == "" { backend = string(core.BackendAPI) }
            fmt.Printf("%s\t%s\t%s\n", p.Name, backend, p.SavedAt)
        }
    case "delete":
        if len(args) < 2 {
            fmt.Fprintln(os.Stderr, "profiles delete <name>")
            os.Exit(2)
        }
        if err := store.RemoveProfile(args[1]); err != nil {
            fmt.Fprintln(os.Stderr, err)
            os.Exit(1)
        }
        fmt.Println("deleted")
    default:
        fmt.Fprintf(os.Stderr, "unknown profiles subcommand: %s\n", args[0])
        os.Exit(2)
    }
}
