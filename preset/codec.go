package preset

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a preset document encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var (
	ErrUnknownFormat = errors.New("unknown preset format")
	ErrNotFound      = errors.New("preset not found")
)

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Decode parses a setup; unknown keys are rejected so typos surface early
func Decode(data []byte, format Format) (Setup, error) {
	var s Setup
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return Setup{}, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return Setup{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Setup{}, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	return s, nil
}

// Encode serializes a setup
func Encode(s Setup, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		data, err := toml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}
