package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/threadmatch/internal/colour"
	"github.com/jmylchreest/threadmatch/internal/match"
)

// Format is a dataset file encoding.
type Format string

const (
	// FormatJSON is the JSON dataset encoding.
	FormatJSON Format = "json"
	// FormatYAML is the YAML dataset encoding.
	FormatYAML Format = "yaml"
	// FormatTOML is the TOML dataset encoding.
	FormatTOML Format = "toml"
)

// Formats returns the supported dataset encodings.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported dataset format %q", name)
	}
}

// FormatFromPath returns the encoding implied by a file's extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot determine dataset format of %s", filepath.Base(path))
	}
	return ParseFormat(ext)
}

// document is the on-disk dataset layout shared by every encoding.
type document struct {
	Name        string           `json:"name" yaml:"name" toml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Colours     []documentColour `json:"colours" yaml:"colours" toml:"colours"`
}

type documentColour struct {
	Code     string       `json:"code" yaml:"code" toml:"code"`
	Name     string       `json:"name" yaml:"name" toml:"name"`
	Category string       `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Hex      string       `json:"hex,omitempty" yaml:"hex,omitempty" toml:"hex,omitempty"`
	RGB      *documentRGB `json:"rgb,omitempty" yaml:"rgb,omitempty" toml:"rgb,omitempty"`
}

type documentRGB struct {
	R int `json:"r" yaml:"r" toml:"r"`
	G int `json:"g" yaml:"g" toml:"g"`
	B int `json:"b" yaml:"b" toml:"b"`
}

// Decode parses a dataset document. An empty name in the document is replaced by fallbackName.
// The returned palette has been validated.
func Decode(data []byte, format Format, fallbackName string) (match.Palette, error) {
	var doc document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return match.Palette{}, fmt.Errorf("unsupported dataset format %q", format)
	}
	if err != nil {
		return match.Palette{}, fmt.Errorf("failed to parse %s dataset: %w", format, err)
	}

	if doc.Name == "" {
		doc.Name = fallbackName
	}

	entries := make([]match.Entry, 0, len(doc.Colours))
	for i, c := range doc.Colours {
		rgb, err := c.colour()
		if err != nil {
			return match.Palette{}, fmt.Errorf("dataset %s: colour %d (%s): %w", doc.Name, i, c.Code, err)
		}
		entries = append(entries, match.Entry{
			Code:     c.Code,
			Name:     c.Name,
			Category: c.Category,
			Colour:   rgb,
		})
	}

	p := match.NewPalette(doc.Name, entries)
	if err := p.Validate(); err != nil {
		return match.Palette{}, err
	}
	return p, nil
}

func (c documentColour) colour() (colour.RGB, error) {
	switch {
	case c.Hex != "" && c.RGB != nil:
		return colour.RGB{}, fmt.Errorf("both hex and rgb given")
	case c.Hex != "":
		rgb, ok := colour.ParseHex(c.Hex)
		if !ok {
			return colour.RGB{}, fmt.Errorf("invalid hex %q", c.Hex)
		}
		return rgb, nil
	case c.RGB != nil:
		for _, v := range []int{c.RGB.R, c.RGB.G, c.RGB.B} {
			if v < 0 || v > 255 {
				return colour.RGB{}, fmt.Errorf("rgb channel %d out of range", v)
			}
		}
		return colour.RGB{R: uint8(c.RGB.R), G: uint8(c.RGB.G), B: uint8(c.RGB.B)}, nil
	default:
		return colour.RGB{}, fmt.Errorf("no hex or rgb value")
	}
}

// Encode serialises a palette in the given format. Colours are written as hex.
func Encode(p match.Palette, format Format) ([]byte, error) {
	doc := document{Name: p.Name, Colours: make([]documentColour, len(p.Entries))}
	for i, e := range p.Entries {
		doc.Colours[i] = documentColour{
			Code:     e.Code,
			Name:     e.Name,
			Category: e.Category,
			Hex:      e.Colour.Hex(),
		}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
}
