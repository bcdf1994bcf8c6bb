package presets

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// File is the import/export document.
type File struct {
	Presets []Preset `yaml:"presets" toml:"presets"`
}

func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported preset file %q: want .yaml, .yml or .toml", path)
}

func Decode(r io.Reader, format Format) ([]Preset, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml presets: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, fmt.Errorf("decode toml presets: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml presets: unknown key %s", undecoded[0])
		}
	default:
		return nil, fmt.Errorf("unsupported preset format %q", format)
	}
	out := make([]Preset, 0, len(f.Presets))
	for i, p := range f.Presets {
		p = p.Normalize()
		p.SortOrder = i
		out = append(out, p)
	}
	return out, nil
}

func Encode(w io.Writer, format Format, ps []Preset) error {
	f := File{Presets: ps}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode yaml presets: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return fmt.Errorf("encode toml presets: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported preset format %q", format)
}
