package profiles

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package profiles loads the named backend hosts the CLI can target.

// Profile maps a name to a backend host URL.
type Profile struct {
	Name string `yaml:"name" json:"name"`
	Host string `yaml:"host" json:"host"`
}

type registryFile struct {
	Profiles []Profile `yaml:"profiles" json:"profiles"`
}

// Registry resolves profile names to backend hosts.
type Registry struct {
	profiles map[string]Profile
}

// Load reads a profiles registry from a YAML file.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse profiles file %s: %w", path, err)
	}

	reg := &Registry{profiles: make(map[string]Profile, len(file.Profiles))}
	for _, p := range file.Profiles {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" || strings.TrimSpace(p.Host) == "" {
			return nil, fmt.Errorf("profile entries need both name and host (got name=%q host=%q)", p.Name, p.Host)
		}
		reg.profiles[name] = p
	}
	return reg, nil
}

// HostFor resolves a profile name to its backend host.
func (r *Registry) HostFor(name string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("profiles registry is nil")
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", fmt.Errorf("profile name is empty")
	}
	p, ok := r.profiles[key]
	if !ok {
		return "", fmt.Errorf("no profile named %q", name)
	}
	return p.Host, nil
}

// Names returns the loaded profile names.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	return names
}
