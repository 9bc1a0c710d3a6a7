package skin

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// StandardWidgets lists every widget kind the default skin styles.
var StandardWidgets = []string{
	"button",
	"check-box",
	"image-button",
	"image-text-button",
	"label",
	"list",
	"progress-bar",
	"scroll-pane",
	"select-box",
	"slider",
	"split-pane",
	"text-area",
	"text-button",
	"text-field",
	"tooltip",
	"touchpad",
	"tree",
	"window",
}

// DefaultStyle is the style name every widget kind falls back to.
const DefaultStyle = "default"

var (
	ErrUnknownStyle = errors.New("unknown style")
	ErrUnknownColor = errors.New("unknown color")
)

//go:embed default.yaml
var defaultSkin []byte

type Color struct {
	R, G, B, A float32
}

// ParseColor reads "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: float32(v>>24&0xff) / 255,
		G: float32(v>>16&0xff) / 255,
		B: float32(v>>8&0xff) / 255,
		A: float32(v&0xff) / 255,
	}, nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Font struct {
	File string `yaml:"file"`
	Size int    `yaml:"size"`
}

// Style refers to fonts and colors of its skin by name.
type Style struct {
	Font       string  `yaml:"font"`
	FontColor  string  `yaml:"fontColor"`
	Background string  `yaml:"background"`
	Padding    float32 `yaml:"padding"`
}

type Skin struct {
	Fonts  map[string]Font             `yaml:"fonts"`
	Colors map[string]Color            `yaml:"colors"`
	Styles map[string]map[string]Style `yaml:"styles"`
}

// Parse decodes a YAML skin and checks that every style reference resolves.
func Parse(data []byte) (*Skin, error) {
	var s Skin
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse skin: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Skin) validate() error {
	for _, widget := range sortedKeys(s.Styles) {
		for _, name := range sortedKeys(s.Styles[widget]) {
			style := s.Styles[widget][name]
			if _, ok := s.Fonts[style.Font]; style.Font != "" && !ok {
				return fmt.Errorf("style %s/%s: unknown font %q", widget, name, style.Font)
			}
			for _, c := range []string{style.FontColor, style.Background} {
				if _, ok := s.Colors[c]; c != "" && !ok {
					return fmt.Errorf("style %s/%s: unknown color %q", widget, name, c)
				}
			}
		}
	}
	return nil
}

// Load reads and parses the skin at path on fs.
func Load(fs afero.Fs, path string) (*Skin, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("load skin: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in skin, which styles every StandardWidgets kind.
func Default() (*Skin, error) {
	return Parse(defaultSkin)
}

func (s *Skin) Style(widget, name string) (Style, error) {
	style, ok := s.Styles[widget][name]
	if !ok {
		return Style{}, fmt.Errorf("%s/%s: %w", widget, name, ErrUnknownStyle)
	}
	return style, nil
}

func (s *Skin) Color(name string) (Color, error) {
	c, ok := s.Colors[name]
	if !ok {
		return Color{}, fmt.Errorf("color %q: %w", name, ErrUnknownColor)
	}
	return c, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
