// Package compose reads just enough of a docker-compose file to seed the
// deploy wizard's container-name default.
package compose

import (
    "fmt"
    "os"
    "sort"

    "gopkg.in/yaml.v3"
)

type composeFile struct {
    Services map[string]struct {
        ContainerName string `yaml:"container_name"`
    } `yaml:"services"`
}

// ContainerName returns the container_name of the first service (service key
// as fallback). Services are considered in sorted order so the result is
// stable across runs.
func ContainerName(path string) (string, error) {
    data, err := os.ReadFile(path)
    if err != nil {
        return "", err
    }
    var cf composeFile
    if err := yaml.Unmarshal(data, &cf); err != nil {
        return "", fmt.Errorf("parse %s: %w", path, err)
    }
    if len(cf.Services) == 0 {
        return "", fmt.Errorf("no services in %s", path)
    }
    names := make([]string, 0, len(cf.Services))
    for name := range cf.Services {
        names = append(names, name)
    }
    sort.Strings(names)
    first := names[0]
    if cn := cf.Services[first].ContainerName; cn != "" {
        return cn, nil
    }
    return first, nil
}
