package store

import (
    "encoding/json"
    "errors"
    "fmt"
    "io/fs"
    "os"
    "path/filepath"

    "chyol/internal/core"
    "chyol/internal/fsx"
)

// Profile is a saved set of deploy answers, re-playable with --profile.
type Profile struct {
    Name    string       `json:"name"`
    Answers core.Answers `json:"answers"`
    SavedAt string       `json:"saved_at"`
}

type profileFile struct {
    Version  int       `json:"version"`
    Profiles []Profile `json:"profiles"`
}

func configDir() string {
    if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
        return filepath.Join(d, "chyol")
    }
    h, _ := os.UserHomeDir()
    if h == "" { h = "." }
    return filepath.Join(h, ".config", "chyol")
}

// ProfilesPath returns the JSON file holding saved deploy profiles.
func ProfilesPath() string {
    return filepath.Join(configDir(), "profiles.json")
}

// LoadProfiles returns all saved profiles.
func LoadProfiles() ([]Profile, error) {
    b, err := os.ReadFile(ProfilesPath())
    if err != nil {
        if errors.Is(err, os.ErrNotExist) { return nil, nil }
        return nil, err
    }
    var f profileFile
    if err := json.Unmarshal(b, &f); err != nil { return nil, err }
    return f.Profiles, nil
}

// GetProfile finds a profile by name.
func GetProfile(name string) (Profile, error) {
    list, err := LoadProfiles()
    if err != nil { return Profile{}, err }
    for _, p := range list {
        if p.Name == name { return p, nil }
    }
    return Profile{}, fmt.Errorf("profile not found: %s", name)
}

// SaveProfile adds or replaces a profile by name.
func SaveProfile(pr Profile) error {
    list, err := LoadProfiles()
    if err != nil { return err }
    replaced := false
    for i, p := range list {
        if p.Name == pr.Name {
            list[i] = pr
            replaced = true
            break
        }
    }
    if !replaced { list = append(list, pr) }
    return writeProfiles(list)
}

// RemoveProfile deletes a profile by name.
func RemoveProfile(name string) error {
    list, err := LoadProfiles()
    if err != nil { return err }
    kept := make([]Profile, 0, len(list))
    removed := false
    for _, p := range list {
        if p.Name == name { removed = true; continue }
        kept = append(kept, p)
    }
    if !removed { return fmt.Errorf("profile not found: %s", name) }
    return writeProfiles(kept)
}

func writeProfiles(list []Profile) error {
    pf := profileFile{Version: 1, Profiles: list}
    data, err := json.MarshalIndent(&pf, "", "  ")
    if err != nil { return err }
    path := ProfilesPath()
    if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil { return err }
    return fsx.AtomicWrite(path, data, fs.FileMode(0o600))
}
