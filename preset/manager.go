package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// extensions in lookup order; the first is used for saving
var extensions = []string{".toml", ".yaml", ".yml"}

// Manager handles save/load of named setups under a directory
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// Dir returns the base directory
func (m *Manager) Dir() string {
	return m.basePath
}

// FilePath returns the save path for a preset name
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+extensions[0])
}

// Exists reports whether a stored preset or the embedded default has name
func (m *Manager) Exists(name string) bool {
	return name == DefaultName || m.Stored(name)
}

// Stored reports whether name is backed by a file rather than the embedded default
func (m *Manager) Stored(name string) bool {
	_, err := m.find(name)
	return err == nil
}

// Save writes the setup under its name as TOML
func (m *Manager) Save(s Setup) error {
	if err := validName(s.Name); err != nil {
		return err
	}
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}
	path := m.FilePath(s.Name)
	if err := SaveFile(path, s); err != nil {
		return err
	}
	log.Printf("preset: saved %q to %s", s.Name, path)
	return nil
}

// Load reads a named preset, falling back to the embedded default for DefaultName
func (m *Manager) Load(name string) (Setup, error) {
	if err := validName(name); err != nil {
		return Setup{}, err
	}
	path, err := m.find(name)
	if err != nil {
		if name == DefaultName {
			return Default(), nil
		}
		return Setup{}, err
	}
	s, err := LoadFile(path)
	if err != nil {
		return Setup{}, err
	}
	if s.Name == "" {
		s.Name = name
	}
	return s, nil
}

// List returns the sorted names of stored presets plus the embedded default
func (m *Manager) List() ([]string, error) {
	seen := map[string]bool{DefaultName: true}
	entries, err := os.ReadDir(m.basePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromPath(e.Name()); err != nil {
			continue
		}
		seen[strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))] = true
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Manager) find(name string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(m.basePath, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// LoadFile reads a setup, picking the format from the extension
func LoadFile(path string) (Setup, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Setup{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Setup{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return Setup{}, err
	}
	s, err := Decode(data, format)
	if err != nil {
		return Setup{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SaveFile writes a setup, picking the format from the extension
func SaveFile(path string, s Setup) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(s, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid preset name %q", name)
	}
	return nil
}
