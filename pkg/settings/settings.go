// Package settings persists the display preferences of the notes view:
// the font and its size, and the background and foreground colours.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	MinFontSize     = 8
	MaxFontSize     = 72
	FontSizeStep    = 2
	DefaultFontSize = 16
)

// ErrUnsupportedFormat is returned for settings files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Color is a named display colour.
type Color struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Hex  string `json:"hex" yaml:"hex" toml:"hex"`
}

// AvailableFonts lists the fonts cycled by NextFont, in order.
var AvailableFonts = []string{
	"Roboto",
	"RobotoMono",
	"DejaVuSans",
	"DejaVuSansMono",
	"FiraCode",
}

// AvailableColors lists the colours cycled by NextColor, in order.
var AvailableColors = []Color{
	{Name: "black", Hex: "#000000"},
	{Name: "white", Hex: "#ffffff"},
	{Name: "gray", Hex: "#808080"},
	{Name: "navy", Hex: "#000080"},
	{Name: "teal", Hex: "#008080"},
	{Name: "green", Hex: "#008000"},
	{Name: "olive", Hex: "#808000"},
	{Name: "maroon", Hex: "#800000"},
	{Name: "purple", Hex: "#800080"},
	{Name: "beige", Hex: "#f5f5dc"},
}

// Settings are the display preferences.
type Settings struct {
	FontName   string `json:"font_name" yaml:"font_name" toml:"font_name"`
	FontSize   int    `json:"font_size" yaml:"font_size" toml:"font_size"`
	Background string `json:"background_color" yaml:"background_color" toml:"background_color"`
	Foreground string `json:"foreground_color" yaml:"foreground_color" toml:"foreground_color"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		FontName:   AvailableFonts[0],
		FontSize:   DefaultFontSize,
		Background: "black",
		Foreground: "white",
	}
}

// ColorByName looks a colour up in AvailableColors.
func ColorByName(name string) (Color, error) {
	i := slices.IndexFunc(AvailableColors, func(c Color) bool { return c.Name == name })
	if i < 0 {
		return Color{}, fmt.Errorf("unknown color %q", name)
	}
	return AvailableColors[i], nil
}

// NextFont returns the font following current. An unknown font restarts the cycle.
func NextFont(current string) string {
	return AvailableFonts[(slices.Index(AvailableFonts, current)+1)%len(AvailableFonts)]
}

// NextColor returns the colour name following current. An unknown name restarts the cycle.
func NextColor(current string) string {
	i := slices.IndexFunc(AvailableColors, func(c Color) bool { return c.Name == current })
	return AvailableColors[(i+1)%len(AvailableColors)].Name
}

// AdjustFontSize changes the font size by delta, kept within [MinFontSize, MaxFontSize].
func (s Settings) AdjustFontSize(delta int) Settings {
	s.FontSize = min(max(s.FontSize+delta, MinFontSize), MaxFontSize)
	return s
}

func (s Settings) IncreaseFontSize() Settings { return s.AdjustFontSize(FontSizeStep) }

func (s Settings) DecreaseFontSize() Settings { return s.AdjustFontSize(-FontSizeStep) }

func (s Settings) WithNextFont() Settings {
	s.FontName = NextFont(s.FontName)
	return s
}

func (s Settings) WithNextBackground() Settings {
	s.Background = NextColor(s.Background)
	return s
}

func (s Settings) WithNextForeground() Settings {
	s.Foreground = NextColor(s.Foreground)
	return s
}

// Validate checks that every value is one the view can display.
func (s Settings) Validate() error {
	var errs []error
	if !slices.Contains(AvailableFonts, s.FontName) {
		errs = append(errs, fmt.Errorf("unknown font %q", s.FontName))
	}
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		errs = append(errs, fmt.Errorf("font size %d out of range [%d, %d]", s.FontSize, MinFontSize, MaxFontSize))
	}
	if _, err := ColorByName(s.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if _, err := ColorByName(s.Foreground); err != nil {
		errs = append(errs, fmt.Errorf("foreground: %w", err))
	}
	return errors.Join(errs...)
}

type codec struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}, nil
	case ".toml":
		return codec{marshal: toml.Marshal, unmarshal: toml.Unmarshal}, nil
	}
	return codec{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Load reads settings from a YAML or TOML file. A missing file yields Default.
// Keys absent from the file keep their default value.
func Load(path string) (Settings, error) {
	c, err := codecFor(path)
	if err != nil {
		return Settings{}, err
	}

	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return Settings{}, err
	}
	if err := c.unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to path, choosing the format from its extension.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c, err := codecFor(path)
	if err != nil {
		return err
	}
	data, err := c.marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the settings file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notes", "settings.yaml"), nil
}
